package history

import (
	"context"
	"sync"
	"time"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps records in process memory
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	records []domain.HistoryRecord // newest first
}

// NewMemoryStore creates a store capped at limit records (DefaultLimit when <= 0)
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limitOrDefault(limit)}
}

func (s *MemoryStore) Load(_ context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, rec *domain.HistoryRecord) error {
	Prepare(rec, time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.HistoryRecord{*rec}, s.records...)
	if len(s.records) > s.limit {
		s.records = s.records[:s.limit]
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
