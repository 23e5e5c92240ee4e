package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

func validateGSTRate(op string, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domain.NewOutOfRangeError(op, "rate_percent", rate, "must not be negative")
	}
	return nil
}

// ApplyExclusive adds GST on top of a base amount. SplitComponents is left
// empty; see SplitGST.
func ApplyExclusive(base, ratePercent decimal.Decimal) (domain.GSTResult, error) {
	const op = "apply_exclusive"
	if !base.IsPositive() {
		return domain.GSTResult{}, domain.NewDegenerateInputError(op, "amount", "must be greater than zero")
	}
	if err := validateGSTRate(op, ratePercent); err != nil {
		return domain.GSTResult{}, err
	}
	tax := base.Mul(ratePercent).DivRound(hundred, moneyScale)
	return domain.GSTResult{BaseAmount: base, TaxAmount: tax, FinalAmount: base.Add(tax)}, nil
}

// ApplyInclusive extracts the GST already contained in a gross amount
func ApplyInclusive(gross, ratePercent decimal.Decimal) (domain.GSTResult, error) {
	const op = "apply_inclusive"
	if !gross.IsPositive() {
		return domain.GSTResult{}, domain.NewDegenerateInputError(op, "amount", "must be greater than zero")
	}
	if err := validateGSTRate(op, ratePercent); err != nil {
		return domain.GSTResult{}, err
	}
	base := gross.DivRound(one.Add(percent(ratePercent)), moneyScale)
	return domain.GSTResult{BaseAmount: base, TaxAmount: gross.Sub(base), FinalAmount: gross}, nil
}

// SplitGST divides a tax amount by jurisdiction: two equal halves within a
// state, one undivided component across states.
func SplitGST(tax decimal.Decimal, j domain.Jurisdiction) (domain.GSTSplit, error) {
	switch j {
	case domain.IntraState:
		half := tax.Div(two)
		return domain.GSTSplit{ComponentA: half, ComponentB: tax.Sub(half)}, nil
	case domain.InterState:
		return domain.GSTSplit{ComponentA: tax, ComponentB: decimal.Zero}, nil
	}
	return domain.GSTSplit{}, domain.NewOutOfRangeError("split_gst", "jurisdiction", j, "unknown jurisdiction")
}

// CalculateGST runs a complete GST request
func CalculateGST(in domain.GSTInput) (domain.GSTResult, error) {
	var (
		result domain.GSTResult
		err    error
	)
	switch in.Mode {
	case domain.GSTExclusive:
		result, err = ApplyExclusive(in.Amount, in.RatePercent)
	case domain.GSTInclusive:
		result, err = ApplyInclusive(in.Amount, in.RatePercent)
	default:
		return domain.GSTResult{}, domain.NewOutOfRangeError("calculate_gst", "mode", in.Mode, "unknown GST mode")
	}
	if err != nil {
		return domain.GSTResult{}, err
	}
	if result.SplitComponents, err = SplitGST(result.TaxAmount, in.Jurisdiction); err != nil {
		return domain.GSTResult{}, err
	}
	return result, nil
}
