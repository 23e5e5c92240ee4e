package calculation

import (
	"math"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// CAGR computes the compound annual growth rate between two values.
// Years may be fractional.
func CAGR(in domain.CAGRInputs) (domain.CAGRResult, error) {
	const op = "cagr"
	if !in.Initial.IsPositive() {
		return domain.CAGRResult{}, domain.NewDegenerateInputError(op, "initial", "must be greater than zero")
	}
	if !in.Years.IsPositive() {
		return domain.CAGRResult{}, domain.NewDegenerateInputError(op, "years", "must be greater than zero")
	}
	if in.Final.IsNegative() {
		return domain.CAGRResult{}, domain.NewOutOfRangeError(op, "final", in.Final, "must not be negative")
	}

	ratio := in.Final.DivRound(in.Initial, factorScale).InexactFloat64()
	rate := math.Pow(ratio, 1/in.Years.InexactFloat64()) - 1
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return domain.CAGRResult{}, domain.NewDegenerateInputError(op, "years", "growth rate is not a finite number")
	}

	absolute := in.Final.Sub(in.Initial)
	return domain.CAGRResult{
		CAGRPercent:           decimal.NewFromFloat(rate).Mul(hundred).Round(moneyScale),
		AbsoluteReturn:        absolute,
		AbsoluteReturnPercent: absolute.Mul(hundred).DivRound(in.Initial, moneyScale),
	}, nil
}

// FutureValueRecurring is the maturity value of a contribution made at the
// start of each month for periods months (annuity-due, monthly compounding).
func FutureValueRecurring(contribution, ratePercent decimal.Decimal, periods int) (decimal.Decimal, error) {
	const op = "future_value_recurring"
	if err := validateGrowthArgs(op, contribution, ratePercent, periods); err != nil {
		return decimal.Zero, err
	}
	return annuityDue(contribution, ratePercent.DivRound(decimal.NewFromInt(1200), factorScale), periods), nil
}

// FutureValueLumpsum compounds principal annually for periods years
func FutureValueLumpsum(principal, ratePercent decimal.Decimal, periods int) (decimal.Decimal, error) {
	const op = "future_value_lumpsum"
	if err := validateGrowthArgs(op, principal, ratePercent, periods); err != nil {
		return decimal.Zero, err
	}
	return lumpsum(principal, percent(ratePercent), periods), nil
}

func validateGrowthArgs(op string, amount, ratePercent decimal.Decimal, periods int) error {
	if amount.IsNegative() {
		return domain.NewOutOfRangeError(op, "amount", amount, "must not be negative")
	}
	if ratePercent.LessThanOrEqual(hundred.Neg()) {
		return domain.NewOutOfRangeError(op, "annual_rate_percent", ratePercent, "must be greater than -100")
	}
	if periods <= 0 {
		return domain.NewDegenerateInputError(op, "periods", "must be at least one")
	}
	if periods > MaxGrowthPeriods {
		return domain.NewOutOfRangeError(op, "periods", periods, "exceeds maximum projection length")
	}
	return nil
}

func lumpsum(principal, r decimal.Decimal, n int) decimal.Decimal {
	return principal.Mul(compound(one.Add(r), n)).Round(moneyScale)
}

// annuityDue is c·((1+r)^n − 1)/r·(1+r), or c·n when r is zero
func annuityDue(contribution, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return contribution.Mul(decimal.NewFromInt(int64(n)))
	}
	growth := one.Add(r)
	return contribution.Mul(compound(growth, n).Sub(one)).Mul(growth).DivRound(r, moneyScale)
}

// ProjectGrowth projects an investment to maturity with a yearly breakdown.
// Every snapshot comes from the closed form, so the last one equals the
// maturity value.
func ProjectGrowth(in domain.GrowthInputs) (domain.GrowthResult, error) {
	const op = "project_growth"
	if in.InitialAmount.IsNegative() {
		return domain.GrowthResult{}, domain.NewOutOfRangeError(op, "initial_amount", in.InitialAmount, "must not be negative")
	}
	if err := validateGrowthArgs(op, in.PeriodicContribution, in.AnnualRatePercent, in.Periods); err != nil {
		return domain.GrowthResult{}, err
	}

	var balanceAt func(k int) decimal.Decimal
	periodsPerYear := 1
	switch in.Mode {
	case domain.Lumpsum:
		if !in.PeriodicContribution.IsZero() {
			return domain.GrowthResult{}, domain.NewDegenerateInputError(op, "periodic_contribution", "lumpsum projections take no periodic contribution")
		}
		r := percent(in.AnnualRatePercent)
		balanceAt = func(k int) decimal.Decimal { return lumpsum(in.InitialAmount, r, k) }
	case domain.RecurringMonthly:
		r := in.AnnualRatePercent.DivRound(decimal.NewFromInt(1200), factorScale)
		periodsPerYear = 12
		balanceAt = func(k int) decimal.Decimal {
			return lumpsum(in.InitialAmount, r, k).Add(annuityDue(in.PeriodicContribution, r, k))
		}
	case domain.FixedAnnual:
		r := percent(in.AnnualRatePercent)
		balanceAt = func(k int) decimal.Decimal {
			return lumpsum(in.InitialAmount, r, k).Add(annuityDue(in.PeriodicContribution, r, k))
		}
	default:
		return domain.GrowthResult{}, domain.NewOutOfRangeError(op, "mode", in.Mode, "unknown compounding mode")
	}

	contributedAt := func(k int) decimal.Decimal {
		return in.InitialAmount.Add(in.PeriodicContribution.Mul(decimal.NewFromInt(int64(k))))
	}

	var breakdown []domain.GrowthSnapshot
	prevBalance, prevContributed := in.InitialAmount, in.InitialAmount
	for year, k := 1, periodsPerYear; ; year, k = year+1, k+periodsPerYear {
		if k > in.Periods {
			k = in.Periods
		}
		balance, contributed := balanceAt(k), contributedAt(k)
		breakdown = append(breakdown, domain.GrowthSnapshot{
			Period:         year,
			Balance:        balance,
			GainThisPeriod: balance.Sub(prevBalance).Sub(contributed.Sub(prevContributed)),
		})
		if k == in.Periods {
			break
		}
		prevBalance, prevContributed = balance, contributed
	}

	maturity := breakdown[len(breakdown)-1].Balance
	contributed := contributedAt(in.Periods)
	return domain.GrowthResult{
		MaturityValue:    maturity,
		TotalContributed: contributed,
		TotalGain:        maturity.Sub(contributed),
		AnnualBreakdown:  breakdown,
	}, nil
}
