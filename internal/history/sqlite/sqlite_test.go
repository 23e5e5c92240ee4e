package sqlite

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/history"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "history.db")
	store, err := New(dbPath, 0)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("Save assigns ID and timestamp", func(t *testing.T) {
		loan := domain.LoanInputs{Principal: decimal.NewFromInt(500000), AnnualRatePercent: decimal.NewFromInt(12), TenureMonths: 36}
		rec := history.NewRecord(&domain.CalculationOutcome{
			Request: domain.CalculationRequest{Name: "car", Kind: domain.KindEMI, Loan: &loan},
			Loan:    &domain.LoanSummary{Installment: decimal.RequireFromString("16607.1549064256"), TenureMonths: 36},
		})
		require.NoError(t, store.Save(ctx, rec))
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.Timestamp.IsZero())

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, rec.ID, records[0].ID)
		assert.Equal(t, "car", records[0].Inputs.Label())
		assert.Equal(t, 36, records[0].Inputs.Loan.TenureMonths)
		assert.True(t, records[0].Results.Loan.Installment.Equal(decimal.RequireFromString("16607.1549064256")))
		assert.True(t, rec.Timestamp.Equal(records[0].Timestamp))
	})

	t.Run("Save evicts beyond the limit", func(t *testing.T) {
		for i := 0; i < history.DefaultLimit+5; i++ {
			require.NoError(t, store.Save(ctx, &domain.HistoryRecord{
				Inputs: domain.CalculationRequest{Name: strconv.Itoa(i), Kind: domain.KindCAGR},
			}))
		}
		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, history.DefaultLimit)
		assert.Equal(t, strconv.Itoa(history.DefaultLimit+4), records[0].Inputs.Name)
		assert.Equal(t, "5", records[len(records)-1].Inputs.Name)
	})

	t.Run("Clear empties the table", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		records, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := New(dbPath, 2)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, &domain.HistoryRecord{
			Inputs: domain.CalculationRequest{Name: strconv.Itoa(i), Kind: domain.KindGST},
		}))
	}
	require.NoError(t, store.Close())

	reopened, err := New(dbPath, 2)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[0].Inputs.Name)
}

func TestOpenByExtension(t *testing.T) {
	for _, name := range []string{"history.db", "history.sqlite", "history.SQLite3"} {
		store, err := history.Open(filepath.Join(t.TempDir(), name), 5)
		require.NoError(t, err, name)
		assert.IsType(t, &Store{}, store, name)
		require.NoError(t, store.Close())
	}
}
