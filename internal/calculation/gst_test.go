package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGST_Reference(t *testing.T) {
	exclusive, err := CalculateGST(domain.GSTInput{
		Amount:       d("10000"),
		RatePercent:  d("18"),
		Mode:         domain.GSTExclusive,
		Jurisdiction: domain.IntraState,
	})
	require.NoError(t, err)
	assert.True(t, exclusive.TaxAmount.Equal(d("1800")))
	assert.True(t, exclusive.FinalAmount.Equal(d("11800")))
	assert.True(t, exclusive.SplitComponents.ComponentA.Equal(d("900")))
	assert.True(t, exclusive.SplitComponents.ComponentB.Equal(d("900")))

	inclusive, err := CalculateGST(domain.GSTInput{
		Amount:       d("11800"),
		RatePercent:  d("18"),
		Mode:         domain.GSTInclusive,
		Jurisdiction: domain.InterState,
	})
	require.NoError(t, err)
	assert.True(t, inclusive.BaseAmount.Equal(d("10000")))
	assert.True(t, inclusive.TaxAmount.Equal(d("1800")))
	assert.True(t, inclusive.SplitComponents.ComponentA.Equal(d("1800")))
	assert.True(t, inclusive.SplitComponents.ComponentB.IsZero())
}

func TestGST_RoundTrip(t *testing.T) {
	for _, rate := range domain.StandardGSTRates {
		for _, amount := range []string{"1", "99.99", "10000", "123456.78", "7"} {
			x := d(amount)
			ex, err := ApplyExclusive(x, rate)
			require.NoError(t, err)
			in, err := ApplyInclusive(ex.FinalAmount, rate)
			require.NoError(t, err)
			assert.InDelta(t, x.InexactFloat64(), in.BaseAmount.InexactFloat64(), 1e-8, "rate %s amount %s", rate, amount)
		}
	}
}

func TestGST_RoundTripAnyRate(t *testing.T) {
	// cess-style levies can exceed the base amount
	for _, rate := range []string{"0", "0.25", "100", "160", "428"} {
		ex, err := ApplyExclusive(d("2500"), d(rate))
		require.NoError(t, err)
		in, err := ApplyInclusive(ex.FinalAmount, d(rate))
		require.NoError(t, err)
		assert.InDelta(t, 2500, in.BaseAmount.InexactFloat64(), 1e-8, "rate %s", rate)
	}

	result := NewCalculationEngine().GST(domain.GSTInput{
		Amount: d("1000"), RatePercent: d("160"), Mode: domain.GSTExclusive, Jurisdiction: domain.InterState,
	})
	assert.True(t, result.FinalAmount.Equal(d("2600")))
}

func TestSplitGST_ComponentsSumToTax(t *testing.T) {
	for _, tax := range []string{"0.01", "1800", "333.333", "0"} {
		split, err := SplitGST(d(tax), domain.IntraState)
		require.NoError(t, err)
		assert.True(t, split.ComponentA.Add(split.ComponentB).Equal(d(tax)))
	}
}

func TestCalculateGST_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   domain.GSTInput
	}{
		{"unknown jurisdiction", domain.GSTInput{Amount: d("100"), RatePercent: d("5"), Mode: domain.GSTExclusive, Jurisdiction: "offshore"}},
		{"unknown mode", domain.GSTInput{Amount: d("100"), RatePercent: d("5"), Mode: "reverse", Jurisdiction: domain.IntraState}},
		{"negative rate", domain.GSTInput{Amount: d("100"), RatePercent: d("-5"), Mode: domain.GSTExclusive, Jurisdiction: domain.IntraState}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateGST(tt.in)
			var oe *domain.OutOfRangeError
			assert.True(t, errors.As(err, &oe), "got %v", err)
		})
	}

	_, err := CalculateGST(domain.GSTInput{Amount: d("0"), RatePercent: d("5"), Mode: domain.GSTInclusive, Jurisdiction: domain.IntraState})
	var de *domain.DegenerateInputError
	assert.True(t, errors.As(err, &de))
}
