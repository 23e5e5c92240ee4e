package calculation

import (
	"github.com/shopspring/decimal"
)

const (
	// MaxTenureMonths bounds loan schedules
	MaxTenureMonths = 1200
	// MaxGrowthPeriods bounds growth projections, in the mode's own unit
	MaxGrowthPeriods = 1200

	// moneyScale is the number of decimal places carried for intermediate
	// amounts. Display rounding happens in the output layer.
	moneyScale = 10
	// factorScale is used for compounding factors, which get multiplied by
	// large principals.
	factorScale = 20
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// compound returns base^n for n >= 0 by repeated squaring. Every product is
// rounded to factorScale so long tenures don't blow up the digit count.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(factorScale)
		}
		base = base.Mul(base).Round(factorScale)
		n >>= 1
	}
	return result
}

// percent converts a percentage into a fraction
func percent(p decimal.Decimal) decimal.Decimal {
	return p.DivRound(hundred, factorScale)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
