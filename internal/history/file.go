package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps records in a single JSON document
type FileStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewFileStore creates a store backed by path, creating parent directories
func NewFileStore(path string, limit int) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileStore{path: path, limit: limitOrDefault(limit)}, nil
}

func (s *FileStore) Load(_ context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() ([]domain.HistoryRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.HistoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file %s: %w", s.path, err)
	}
	var records []domain.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", s.path, err)
	}
	return records, nil
}

func (s *FileStore) write(records []domain.HistoryRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

func (s *FileStore) Save(_ context.Context, rec *domain.HistoryRecord) error {
	Prepare(rec, time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		return err
	}
	records = append([]domain.HistoryRecord{*rec}, records...)
	if len(records) > s.limit {
		records = records[:s.limit]
	}
	return s.write(records)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
