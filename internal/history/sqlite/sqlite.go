// Package sqlite provides a SQLite-backed implementation of history.Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/history"
)

// Ensure Store implements history.Store
var _ history.Store = (*Store)(nil)

func init() {
	history.Register(func(path string, limit int) (history.Store, error) {
		s, err := New(path, limit)
		if err != nil {
			return nil, err
		}
		return s, nil
	}, ".db", ".sqlite", ".sqlite3")
}

// Store implements history.Store using SQLite.
type Store struct {
	db    *sql.DB
	limit int
}

// New opens the database at dbPath, creating parent directories and running
// migrations. limit <= 0 means history.DefaultLimit.
func New(dbPath string, limit int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if limit <= 0 {
		limit = history.DefaultLimit
	}
	return &Store{db: db, limit: limit}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the record and trims the table to the newest limit rows.
func (s *Store) Save(ctx context.Context, rec *domain.HistoryRecord) error {
	history.Prepare(rec, time.Now())

	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	results, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO history (id, kind, inputs, results, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, string(rec.Kind), string(inputs), string(results), rec.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`,
		s.limit,
	)
	if err != nil {
		return fmt.Errorf("failed to evict old history: %w", err)
	}

	return tx.Commit()
}

// Load returns the stored records, newest first.
func (s *Store) Load(ctx context.Context) ([]domain.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, inputs, results, created_at FROM history ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	records := []domain.HistoryRecord{}
	for rows.Next() {
		var (
			rec       domain.HistoryRecord
			kind      string
			inputs    string
			results   string
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &kind, &inputs, &results, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.Kind = domain.CalculationKind(kind)
		rec.Timestamp = time.Unix(0, createdAt).UTC()
		if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
			return nil, fmt.Errorf("failed to decode inputs of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(results), &rec.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes every record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
