package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slab(lower, upper, rate string) domain.TaxSlab {
	s := domain.TaxSlab{LowerBound: d(lower), RatePercent: d(rate)}
	if upper != "" {
		s.UpperBound = decimalPtr(d(upper))
	}
	return s
}

func newRegime2024() domain.TaxRegime {
	return domain.TaxRegime{
		ID:                "new",
		Name:              "New regime",
		FinancialYear:     "2024-25",
		StandardDeduction: d("75000"),
		Slabs: []domain.TaxSlab{
			slab("0", "300000", "0"),
			slab("300000", "700000", "5"),
			slab("700000", "1000000", "10"),
			slab("1000000", "1200000", "15"),
			slab("1200000", "1500000", "20"),
			slab("1500000", "", "30"),
		},
		RebateThreshold: d("700000"),
		SurchargeBands: []domain.SurchargeBand{
			{Threshold: d("5000000"), RatePercent: d("10")},
			{Threshold: d("10000000"), RatePercent: d("15")},
			{Threshold: d("20000000"), RatePercent: d("25")},
		},
		CessPercent: d("4"),
	}
}

func oldRegime2024() domain.TaxRegime {
	return domain.TaxRegime{
		ID:                       "old",
		Name:                     "Old regime",
		FinancialYear:            "2024-25",
		StandardDeduction:        d("50000"),
		AllowsItemizedDeductions: true,
		Slabs: []domain.TaxSlab{
			slab("0", "250000", "0"),
			slab("250000", "500000", "5"),
			slab("500000", "1000000", "20"),
			slab("1000000", "", "30"),
		},
		AgeBandSlabs: map[domain.AgeBand][]domain.TaxSlab{
			domain.AgeSenior60to80: {
				slab("0", "300000", "0"),
				slab("300000", "500000", "5"),
				slab("500000", "1000000", "20"),
				slab("1000000", "", "30"),
			},
		},
		RebateThreshold: d("500000"),
		CessPercent:     d("4"),
	}
}

// cliffRegime has no deductions so the rebate boundary sits exactly at 700000
func cliffRegime() domain.TaxRegime {
	r := newRegime2024()
	r.StandardDeduction = decimal.Zero
	r.AllowsItemizedDeductions = true
	return r
}

func income(gross string) domain.TaxRegimeInput {
	return domain.TaxRegimeInput{GrossIncome: d(gross)}
}

func TestComputeTax_RebateCliff(t *testing.T) {
	at, err := ComputeTax(income("700000"), cliffRegime())
	require.NoError(t, err)
	assert.True(t, at.TotalTax.IsZero())
	assert.True(t, at.RebateApplied)
	assert.True(t, at.SlabTax.Equal(d("20000")))

	above, err := ComputeTax(income("700001"), cliffRegime())
	require.NoError(t, err)
	assert.False(t, above.RebateApplied)
	assert.True(t, above.TaxBeforeCess.Equal(d("20000.1")), "got %s", above.TaxBeforeCess)
	assert.True(t, above.Cess.Equal(d("800.004")))
	assert.True(t, above.TotalTax.Equal(d("20800.104")))
}

func TestComputeTax_NewRegime(t *testing.T) {
	result, err := ComputeTax(income("1200000"), newRegime2024())
	require.NoError(t, err)

	assert.Equal(t, "new@2024-25", result.Regime)
	assert.True(t, result.TaxableIncome.Equal(d("1125000")))
	assert.True(t, result.TaxBeforeCess.Equal(d("68750")))
	assert.True(t, result.Cess.Equal(d("2750")))
	assert.True(t, result.TotalTax.Equal(d("71500")))
	assert.InDelta(t, 5.9583, result.EffectiveRatePercent.InexactFloat64(), 0.0001)
}

func TestComputeTax_StandardDeductionPullsUnderRebate(t *testing.T) {
	result, err := ComputeTax(income("775000"), newRegime2024())
	require.NoError(t, err)
	assert.True(t, result.TotalTax.IsZero())
}

func TestComputeTax_ItemizedDeductionsOnlyWhereAllowed(t *testing.T) {
	in := domain.TaxRegimeInput{GrossIncome: d("1200000"), EligibleDeductions: d("150000")}

	old, err := ComputeTax(in, oldRegime2024())
	require.NoError(t, err)
	assert.True(t, old.TaxableIncome.Equal(d("1000000")))
	assert.True(t, old.TotalTax.Equal(d("117000")))

	newer, err := ComputeTax(in, newRegime2024())
	require.NoError(t, err)
	assert.True(t, newer.TaxableIncome.Equal(d("1125000")), "new regime ignores itemized deductions")
}

func TestComputeTax_AgeBand(t *testing.T) {
	in := domain.TaxRegimeInput{GrossIncome: d("850000"), AgeBand: domain.AgeSenior60to80}
	senior, err := ComputeTax(in, oldRegime2024())
	require.NoError(t, err)

	in.AgeBand = domain.AgeUnder60
	young, err := ComputeTax(in, oldRegime2024())
	require.NoError(t, err)

	assert.True(t, young.TotalTax.Sub(senior.TotalTax).Equal(d("2600")), "five percent of 50000 plus cess")

	in.AgeBand = "teen"
	_, err = ComputeTax(in, oldRegime2024())
	var oe *domain.OutOfRangeError
	assert.True(t, errors.As(err, &oe))
}

func TestComputeTax_Surcharge(t *testing.T) {
	result, err := ComputeTax(income("6000000"), newRegime2024())
	require.NoError(t, err)
	assert.True(t, result.TaxBeforeCess.Equal(d("1467500")))
	assert.True(t, result.Surcharge.Equal(d("146750")))
	assert.True(t, result.TotalTax.Equal(d("1678820")))

	atThreshold, err := ComputeTax(income("5000000"), newRegime2024())
	require.NoError(t, err)
	assert.True(t, atThreshold.Surcharge.IsZero(), "threshold must be exceeded")
}

func TestComputeTax_SurchargeMarginalRelief(t *testing.T) {
	regime := newRegime2024()
	without, err := ComputeTax(income("5000100"), regime)
	require.NoError(t, err)
	assert.True(t, without.Surcharge.Equal(d("116753")))

	regime.SurchargeMarginalRelief = true
	with, err := ComputeTax(income("5000100"), regime)
	require.NoError(t, err)
	assert.True(t, with.Surcharge.Equal(d("70")), "got %s", with.Surcharge)

	far, err := ComputeTax(income("6000000"), regime)
	require.NoError(t, err)
	assert.True(t, far.Surcharge.Equal(d("146750")), "relief does not apply well above the threshold")
}

func TestComputeTax_Monotonic(t *testing.T) {
	regimes := []domain.TaxRegime{newRegime2024(), oldRegime2024(), cliffRegime()}
	for _, regime := range regimes {
		for _, relief := range []bool{false, true} {
			regime.SurchargeMarginalRelief = relief
			prev := decimal.NewFromInt(-1)
			for gross := int64(0); gross <= 30000000; gross += 12500 {
				result, err := ComputeTax(income(decimal.NewFromInt(gross).String()), regime)
				require.NoError(t, err)
				assert.True(t, result.TotalTax.GreaterThanOrEqual(prev),
					"%s relief=%v: tax fell at %d", regime.Key(), relief, gross)
				prev = result.TotalTax
			}
		}
	}
}

func TestComputeTax_ZeroIncome(t *testing.T) {
	result, err := ComputeTax(income("0"), newRegime2024())
	require.NoError(t, err)
	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.EffectiveRatePercent.IsZero())
}

func TestComputeTax_FinancialYearMismatch(t *testing.T) {
	in := income("1000000")
	in.FinancialYear = "2025-26"
	_, err := ComputeTax(in, newRegime2024())
	var rm *domain.RegimeMismatchError
	assert.True(t, errors.As(err, &rm))
}

func TestValidateSlabs(t *testing.T) {
	tests := []struct {
		name  string
		slabs []domain.TaxSlab
		index int
		ok    bool
	}{
		{"valid", newRegime2024().Slabs, 0, true},
		{"empty", nil, 0, false},
		{"not starting at zero", []domain.TaxSlab{slab("100", "", "5")}, 0, false},
		{"gap", []domain.TaxSlab{slab("0", "100", "0"), slab("200", "", "5")}, 1, false},
		{"overlap", []domain.TaxSlab{slab("0", "100", "0"), slab("50", "", "5")}, 1, false},
		{"unsorted", []domain.TaxSlab{slab("0", "100", "0"), slab("100", "50", "5")}, 1, false},
		{"unbounded in the middle", []domain.TaxSlab{slab("0", "", "0"), slab("100", "", "5")}, 0, false},
		{"rate above 100", []domain.TaxSlab{slab("0", "", "101")}, 0, false},
		{"bounded last slab", []domain.TaxSlab{slab("0", "100", "0"), slab("100", "200", "5")}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlabs("test", tt.slabs)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var rm *domain.RegimeMismatchError
			require.True(t, errors.As(err, &rm), "got %v", err)
			assert.Equal(t, tt.index, rm.SlabIndex)
		})
	}
}

func TestSlabTax_StopsWhenSlabsRunOut(t *testing.T) {
	slabs := []domain.TaxSlab{slab("0", "100", "0"), slab("100", "200", "10")}
	assert.True(t, SlabTax(d("1000"), slabs).Equal(d("10")))
}

func TestCompareRegimes(t *testing.T) {
	in := domain.TaxRegimeInput{GrossIncome: d("1200000"), EligibleDeductions: d("150000")}
	cmp, err := CompareRegimes(in, newRegime2024(), oldRegime2024(), RegimeNew)
	require.NoError(t, err)

	assert.Equal(t, RegimeNew, cmp.Recommended)
	assert.True(t, cmp.Savings.Equal(d("45500")))

	// huge itemized deductions flip the recommendation
	in.EligibleDeductions = d("800000")
	cmp, err = CompareRegimes(in, newRegime2024(), oldRegime2024(), RegimeNew)
	require.NoError(t, err)
	assert.Equal(t, RegimeOld, cmp.Recommended)
}

func TestCompareRegimes_TieGoesToDefault(t *testing.T) {
	in := income("300000")
	cmp, err := CompareRegimes(in, oldRegime2024(), newRegime2024(), RegimeNew)
	require.NoError(t, err)
	assert.True(t, cmp.Savings.IsZero())
	assert.Equal(t, RegimeNew, cmp.Recommended)
}
