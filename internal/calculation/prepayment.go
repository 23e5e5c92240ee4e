package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulatePrepayment compares the interest still owed after AtPeriod with and
// without a one-time extra payment made right after that period's installment.
func SimulatePrepayment(in domain.LoanInputs, sc domain.PrepaymentScenario) (domain.PrepaymentResult, error) {
	const op = "simulate_prepayment"
	if err := validateLoan(op, in); err != nil {
		return domain.PrepaymentResult{}, err
	}
	if sc.AtPeriod < 1 || sc.AtPeriod > in.TenureMonths {
		return domain.PrepaymentResult{}, domain.NewOutOfRangeError(op, "at_period", sc.AtPeriod, "must fall within the loan tenure")
	}
	if !sc.ExtraAmount.IsPositive() {
		return domain.PrepaymentResult{}, domain.NewDegenerateInputError(op, "extra_amount", "must be greater than zero")
	}
	strategy := sc.EffectiveStrategy()
	if strategy != domain.ReduceTenure && strategy != domain.ReduceInstallment {
		return domain.PrepaymentResult{}, domain.NewOutOfRangeError(op, "strategy", strategy, "unknown prepayment strategy")
	}

	schedule, err := GenerateSchedule(in)
	if err != nil {
		return domain.PrepaymentResult{}, err
	}
	installment, err := installmentFor(op, in.Principal, in.MonthlyRate(), in.TenureMonths)
	if err != nil {
		return domain.PrepaymentResult{}, err
	}

	r := in.MonthlyRate()
	outstanding := schedule[sc.AtPeriod-1].ClosingBalance
	remaining := in.TenureMonths - sc.AtPeriod
	baseline, _ := runDown(outstanding, r, installment, remaining)

	result := domain.PrepaymentResult{
		OutstandingBalance: outstanding,
		BaselineInterest:   baseline,
		RemainingPeriods:   remaining,
		RevisedInstallment: installment,
	}

	reduced := clampZero(outstanding.Sub(sc.ExtraAmount))
	switch {
	case reduced.IsZero() || remaining == 0:
		result.RevisedInstallment = decimal.Zero
	case strategy == domain.ReduceInstallment:
		revised, err := installmentFor(op, reduced, r, remaining)
		if err != nil {
			return domain.PrepaymentResult{}, err
		}
		result.RevisedInstallment = revised
		result.RevisedInterest, result.RevisedPeriods = runDown(reduced, r, revised, remaining)
	default:
		result.RevisedInterest, result.RevisedPeriods = runDown(reduced, r, installment, remaining)
	}

	result.InterestSaved = clampZero(result.BaselineInterest.Sub(result.RevisedInterest))
	if reduction := remaining - result.RevisedPeriods; reduction > 0 {
		result.TenureReductionPeriods = reduction
	}
	return result, nil
}

// runDown pays balance off at a fixed installment, for at most maxPeriods
// periods, and returns the interest paid and the periods used. The final
// step's principal is capped at the remaining balance.
func runDown(balance, r, installment decimal.Decimal, maxPeriods int) (decimal.Decimal, int) {
	interestPaid := decimal.Zero
	periods := 0
	for periods < maxPeriods && balance.IsPositive() {
		periods++
		interest := balance.Mul(r).Round(moneyScale)
		principal := installment.Sub(interest)
		if principal.GreaterThanOrEqual(balance) || periods == maxPeriods {
			principal = balance
		}
		interestPaid = interestPaid.Add(interest)
		balance = balance.Sub(principal)
	}
	return interestPaid, periods
}
