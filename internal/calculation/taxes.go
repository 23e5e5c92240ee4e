package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateSlabs checks that a slab table starts at zero, is ascending and
// contiguous, and that only the last slab is unbounded.
func ValidateSlabs(regime string, slabs []domain.TaxSlab) error {
	if len(slabs) == 0 {
		return &domain.RegimeMismatchError{Regime: regime, Message: "no slabs defined"}
	}
	if !slabs[0].LowerBound.IsZero() {
		return &domain.RegimeMismatchError{Regime: regime, Message: "first slab must start at zero"}
	}
	for i, slab := range slabs {
		if slab.RatePercent.IsNegative() || slab.RatePercent.GreaterThan(hundred) {
			return &domain.RegimeMismatchError{Regime: regime, SlabIndex: i, Message: "rate must be between 0 and 100"}
		}
		if slab.Unbounded() {
			if i != len(slabs)-1 {
				return &domain.RegimeMismatchError{Regime: regime, SlabIndex: i, Message: "only the last slab may be unbounded"}
			}
		} else if !slab.UpperBound.GreaterThan(slab.LowerBound) {
			return &domain.RegimeMismatchError{Regime: regime, SlabIndex: i, Message: "upper bound must exceed lower bound"}
		}
		if i > 0 && !slab.LowerBound.Equal(*slabs[i-1].UpperBound) {
			return &domain.RegimeMismatchError{Regime: regime, SlabIndex: i, Message: "slabs are not contiguous"}
		}
	}
	return nil
}

// SlabTax walks the slabs marginally: each slab taxes only the part of the
// income that falls inside it.
func SlabTax(taxable decimal.Decimal, slabs []domain.TaxSlab) decimal.Decimal {
	tax := decimal.Zero
	for _, slab := range slabs {
		if taxable.LessThanOrEqual(slab.LowerBound) {
			break
		}
		top := taxable
		if !slab.Unbounded() && slab.UpperBound.LessThan(top) {
			top = *slab.UpperBound
		}
		tax = tax.Add(top.Sub(slab.LowerBound).Mul(slab.RatePercent).DivRound(hundred, moneyScale))
	}
	return tax
}

// ComputeTax applies a regime to an income
func ComputeTax(in domain.TaxRegimeInput, regime domain.TaxRegime) (domain.TaxResult, error) {
	const op = "compute_tax"
	if in.GrossIncome.IsNegative() {
		return domain.TaxResult{}, domain.NewOutOfRangeError(op, "gross_income", in.GrossIncome, "must not be negative")
	}
	if in.EligibleDeductions.IsNegative() {
		return domain.TaxResult{}, domain.NewOutOfRangeError(op, "eligible_deductions", in.EligibleDeductions, "must not be negative")
	}
	if !in.AgeBand.Valid() {
		return domain.TaxResult{}, domain.NewOutOfRangeError(op, "age_band", in.AgeBand, "unknown age band")
	}
	if in.FinancialYear != "" && regime.FinancialYear != "" && in.FinancialYear != regime.FinancialYear {
		return domain.TaxResult{}, &domain.RegimeMismatchError{
			Regime:  regime.Key(),
			Message: "regime does not cover financial year " + in.FinancialYear,
		}
	}
	slabs := regime.SlabsFor(in.AgeBand)
	if err := ValidateSlabs(regime.Key(), slabs); err != nil {
		return domain.TaxResult{}, err
	}

	calc := taxComputer{regime: regime, slabs: slabs, deductions: regime.StandardDeduction}
	if regime.AllowsItemizedDeductions {
		calc.deductions = calc.deductions.Add(in.EligibleDeductions)
	}

	l := calc.assess(in.GrossIncome)
	beforeCess := l.taxBeforeCess.Add(l.surcharge)
	cess := beforeCess.Mul(regime.CessPercent).DivRound(hundred, moneyScale)
	total := beforeCess.Add(cess)

	effective := decimal.Zero
	if in.GrossIncome.IsPositive() {
		effective = total.Mul(hundred).DivRound(in.GrossIncome, moneyScale)
	}
	return domain.TaxResult{
		Regime:               regime.Key(),
		TaxableIncome:        l.taxable,
		SlabTax:              l.slabTax,
		TaxBeforeCess:        l.taxBeforeCess,
		RebateApplied:        l.rebate,
		Surcharge:            l.surcharge,
		Cess:                 cess,
		TotalTax:             total,
		EffectiveRatePercent: effective,
	}, nil
}

type taxComputer struct {
	regime     domain.TaxRegime
	slabs      []domain.TaxSlab
	deductions decimal.Decimal
}

type liability struct {
	taxable       decimal.Decimal
	slabTax       decimal.Decimal
	taxBeforeCess decimal.Decimal
	rebate        bool
	surcharge     decimal.Decimal
}

func (c taxComputer) assess(gross decimal.Decimal) liability {
	l := liability{taxable: clampZero(gross.Sub(c.deductions))}
	l.slabTax = SlabTax(l.taxable, c.slabs)
	l.taxBeforeCess = l.slabTax
	if c.regime.RebateThreshold.IsPositive() && l.taxable.LessThanOrEqual(c.regime.RebateThreshold) {
		l.rebate = l.slabTax.IsPositive()
		l.taxBeforeCess = decimal.Zero
	}

	band, ok := surchargeBand(c.regime.SurchargeBands, gross)
	if !ok {
		return l
	}
	l.surcharge = l.taxBeforeCess.Mul(band.RatePercent).DivRound(hundred, moneyScale)

	// Marginal relief: crossing a threshold may not cost more in tax than the
	// income earned above it.
	if c.regime.SurchargeMarginalRelief {
		at := c.assess(band.Threshold)
		ceiling := at.taxBeforeCess.Add(at.surcharge).Add(gross.Sub(band.Threshold))
		if l.taxBeforeCess.Add(l.surcharge).GreaterThan(ceiling) {
			l.surcharge = clampZero(ceiling.Sub(l.taxBeforeCess))
		}
	}
	return l
}

// surchargeBand picks the highest band whose threshold the income exceeds
func surchargeBand(bands []domain.SurchargeBand, gross decimal.Decimal) (domain.SurchargeBand, bool) {
	var best domain.SurchargeBand
	found := false
	for _, b := range bands {
		if gross.GreaterThan(b.Threshold) && (!found || b.Threshold.GreaterThan(best.Threshold)) {
			best, found = b, true
		}
	}
	return best, found
}

// CompareRegimes runs both regimes over the same income. The cheaper one is
// recommended; on a tie the regime whose ID is tieDefault wins, or a when
// neither matches.
func CompareRegimes(in domain.TaxRegimeInput, a, b domain.TaxRegime, tieDefault string) (domain.RegimeComparison, error) {
	taxA, err := ComputeTax(in, a)
	if err != nil {
		return domain.RegimeComparison{}, err
	}
	taxB, err := ComputeTax(in, b)
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	cmp := domain.RegimeComparison{
		TaxA:    taxA,
		TaxB:    taxB,
		Savings: taxA.TotalTax.Sub(taxB.TotalTax).Abs(),
	}
	switch taxA.TotalTax.Cmp(taxB.TotalTax) {
	case -1:
		cmp.Recommended = a.ID
	case 1:
		cmp.Recommended = b.ID
	default:
		cmp.Recommended = a.ID
		if b.ID == tieDefault && a.ID != tieDefault {
			cmp.Recommended = b.ID
		}
	}
	return cmp, nil
}
