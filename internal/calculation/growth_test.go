package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR_Reference(t *testing.T) {
	result, err := CAGR(domain.CAGRInputs{Initial: d("100000"), Final: d("250000"), Years: d("5")})
	require.NoError(t, err)

	assert.InDelta(t, 20.11, result.CAGRPercent.InexactFloat64(), 0.005)
	assert.True(t, result.AbsoluteReturn.Equal(d("150000")))
	assert.True(t, result.AbsoluteReturnPercent.Equal(d("150")))
}

func TestCAGR_RoundTrip(t *testing.T) {
	cases := []domain.CAGRInputs{
		{Initial: d("100000"), Final: d("250000"), Years: d("5")},
		{Initial: d("5000"), Final: d("4000"), Years: d("3")},
		{Initial: d("1"), Final: d("1"), Years: d("10")},
		{Initial: d("75000"), Final: d("180000"), Years: d("2.5")},
		{Initial: d("10"), Final: d("0"), Years: d("1")},
	}
	for _, in := range cases {
		result, err := CAGR(in)
		require.NoError(t, err)

		rate := result.CAGRPercent.InexactFloat64() / 100
		back := in.Initial.InexactFloat64() * math.Pow(1+rate, in.Years.InexactFloat64())
		assert.InDelta(t, in.Final.InexactFloat64(), back, 1e-6*math.Max(1, in.Final.InexactFloat64()))
	}
}

func TestCAGR_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		in   domain.CAGRInputs
	}{
		{"zero initial", domain.CAGRInputs{Initial: d("0"), Final: d("100"), Years: d("2")}},
		{"negative initial", domain.CAGRInputs{Initial: d("-1"), Final: d("100"), Years: d("2")}},
		{"zero years", domain.CAGRInputs{Initial: d("100"), Final: d("200"), Years: d("0")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CAGR(tt.in)
			var de *domain.DegenerateInputError
			assert.True(t, errors.As(err, &de))
		})
	}
}

func TestFutureValueRecurring(t *testing.T) {
	fv, err := FutureValueRecurring(d("10000"), d("12"), 120)
	require.NoError(t, err)
	assert.InDelta(t, 2323390.76, fv.InexactFloat64(), 0.01)

	flat, err := FutureValueRecurring(d("2500"), d("0"), 24)
	require.NoError(t, err)
	assert.True(t, flat.Equal(d("60000")))

	_, err = FutureValueRecurring(d("2500"), d("10"), 0)
	assert.Error(t, err)
}

func TestFutureValueLumpsum(t *testing.T) {
	fv, err := FutureValueLumpsum(d("100000"), d("10"), 10)
	require.NoError(t, err)
	assert.True(t, fv.Equal(d("259374.24601")), "got %s", fv)

	_, err = FutureValueLumpsum(d("100000"), d("-100"), 10)
	assert.Error(t, err)
}

func TestProjectGrowth_RecurringMonthly(t *testing.T) {
	result, err := ProjectGrowth(domain.GrowthInputs{
		PeriodicContribution: d("10000"),
		AnnualRatePercent:    d("12"),
		Periods:              18,
		Mode:                 domain.RecurringMonthly,
	})
	require.NoError(t, err)

	require.Len(t, result.AnnualBreakdown, 2, "one full year plus a partial year")
	assert.Equal(t, 1, result.AnnualBreakdown[0].Period)
	assert.InDelta(t, 128093.28, result.AnnualBreakdown[0].Balance.InexactFloat64(), 0.01)
	assert.InDelta(t, 10015.67, result.AnnualBreakdown[1].GainThisPeriod.InexactFloat64(), 0.01)

	assert.InDelta(t, 198108.95, result.MaturityValue.InexactFloat64(), 0.01)
	assert.True(t, result.TotalContributed.Equal(d("180000")))
	assert.True(t, result.MaturityValue.Equal(result.TotalContributed.Add(result.TotalGain)))
}

func TestProjectGrowth_Lumpsum(t *testing.T) {
	result, err := ProjectGrowth(domain.GrowthInputs{
		InitialAmount:     d("100000"),
		AnnualRatePercent: d("10"),
		Periods:           10,
		Mode:              domain.Lumpsum,
	})
	require.NoError(t, err)

	assert.Len(t, result.AnnualBreakdown, 10)
	assert.True(t, result.AnnualBreakdown[0].Balance.Equal(d("110000")))
	assert.True(t, result.AnnualBreakdown[0].GainThisPeriod.Equal(d("10000")))
	assert.True(t, result.MaturityValue.Equal(d("259374.24601")))
	assert.True(t, result.TotalContributed.Equal(d("100000")))

	sum := d("0")
	for _, s := range result.AnnualBreakdown {
		sum = sum.Add(s.GainThisPeriod)
	}
	assert.True(t, sum.Equal(result.TotalGain))
}

func TestProjectGrowth_FixedAnnual(t *testing.T) {
	nsc, err := ProjectGrowth(domain.GrowthInputs{
		InitialAmount:     d("100000"),
		AnnualRatePercent: d("7.7"),
		Periods:           5,
		Mode:              domain.FixedAnnual,
	})
	require.NoError(t, err)
	assert.InDelta(t, 144903.38, nsc.MaturityValue.InexactFloat64(), 0.01)

	ppf, err := ProjectGrowth(domain.GrowthInputs{
		PeriodicContribution: d("150000"),
		AnnualRatePercent:    d("7.1"),
		Periods:              15,
		Mode:                 domain.FixedAnnual,
	})
	require.NoError(t, err)
	assert.InDelta(t, 4068209.22, ppf.MaturityValue.InexactFloat64(), 0.01)
	assert.True(t, ppf.TotalContributed.Equal(d("2250000")))
}

func TestProjectGrowth_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   domain.GrowthInputs
	}{
		{"unknown mode", domain.GrowthInputs{InitialAmount: d("1"), AnnualRatePercent: d("5"), Periods: 1, Mode: "weekly"}},
		{"zero periods", domain.GrowthInputs{InitialAmount: d("1"), AnnualRatePercent: d("5"), Periods: 0, Mode: domain.Lumpsum}},
		{"too many periods", domain.GrowthInputs{InitialAmount: d("1"), AnnualRatePercent: d("5"), Periods: MaxGrowthPeriods + 1, Mode: domain.Lumpsum}},
		{"negative contribution", domain.GrowthInputs{PeriodicContribution: d("-1"), AnnualRatePercent: d("5"), Periods: 3, Mode: domain.RecurringMonthly}},
		{"lumpsum with contribution", domain.GrowthInputs{InitialAmount: d("1"), PeriodicContribution: d("1"), AnnualRatePercent: d("5"), Periods: 3, Mode: domain.Lumpsum}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProjectGrowth(tt.in)
			assert.Error(t, err)
		})
	}
}
