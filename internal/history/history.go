// Package history keeps the most recent calculations so a user can revisit
// them. The calculation engine never touches it; callers save outcomes.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// DefaultLimit is how many records a store keeps before evicting the oldest
const DefaultLimit = 10

// Store defines the interface for history persistence
type Store interface {
	// Load returns the stored records, newest first.
	Load(ctx context.Context) ([]domain.HistoryRecord, error)

	// Save persists a record, assigning ID and Timestamp when unset, and
	// evicts the oldest records beyond the store's limit.
	Save(ctx context.Context, rec *domain.HistoryRecord) error

	// Clear removes every record.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// NewRecord builds a history record for a finished calculation
func NewRecord(out *domain.CalculationOutcome) *domain.HistoryRecord {
	return &domain.HistoryRecord{
		Kind:    out.Request.Kind,
		Inputs:  out.Request,
		Results: out,
	}
}

// Prepare fills in the ID and timestamp of a record about to be saved
func Prepare(rec *domain.HistoryRecord, now time.Time) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now.UTC()
	}
	if rec.Kind == "" {
		rec.Kind = rec.Inputs.Kind
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
