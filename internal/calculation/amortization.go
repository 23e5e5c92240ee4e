package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

func validateLoan(op string, in domain.LoanInputs) error {
	if !in.Principal.IsPositive() {
		return domain.NewDegenerateInputError(op, "principal", "must be greater than zero")
	}
	if in.AnnualRatePercent.IsNegative() {
		return domain.NewOutOfRangeError(op, "annual_rate_percent", in.AnnualRatePercent, "must not be negative")
	}
	if in.TenureMonths <= 0 {
		return domain.NewDegenerateInputError(op, "tenure_months", "must be at least one month")
	}
	if in.TenureMonths > MaxTenureMonths {
		return domain.NewOutOfRangeError(op, "tenure_months", in.TenureMonths, "exceeds maximum tenure")
	}
	return nil
}

// ComputeInstallment returns the fixed monthly installment that retires the
// loan in exactly TenureMonths payments.
func ComputeInstallment(in domain.LoanInputs) (decimal.Decimal, error) {
	const op = "compute_installment"
	if err := validateLoan(op, in); err != nil {
		return decimal.Zero, err
	}
	return installmentFor(op, in.Principal, in.MonthlyRate(), in.TenureMonths)
}

// installmentFor is the annuity formula P·r·(1+r)^n / ((1+r)^n − 1), rounded
// up so that n installments never fall short of the principal.
func installmentFor(op string, principal, r decimal.Decimal, n int) (decimal.Decimal, error) {
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).RoundCeil(moneyScale), nil
	}
	factor := compound(one.Add(r), n)
	denominator := factor.Sub(one)
	if !denominator.IsPositive() {
		return decimal.Zero, domain.NewDegenerateInputError(op, "annual_rate_percent", "rate too small to amortize over the tenure")
	}
	return principal.Mul(r).Mul(factor).Div(denominator).RoundCeil(moneyScale), nil
}

// PrincipalForInstallment inverts the annuity formula: the largest principal
// that the given installment retires in tenureMonths payments at ratePercent.
func PrincipalForInstallment(installment, ratePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	const op = "principal_for_installment"
	if !installment.IsPositive() {
		return decimal.Zero, domain.NewDegenerateInputError(op, "installment", "must be greater than zero")
	}
	probe := domain.LoanInputs{Principal: one, AnnualRatePercent: ratePercent, TenureMonths: tenureMonths}
	if err := validateLoan(op, probe); err != nil {
		return decimal.Zero, err
	}
	r := probe.MonthlyRate()
	if r.IsZero() {
		return installment.Mul(decimal.NewFromInt(int64(tenureMonths))), nil
	}
	factor := compound(one.Add(r), tenureMonths)
	return installment.Mul(factor.Sub(one)).DivRound(r.Mul(factor), moneyScale), nil
}

// GenerateSchedule builds the full amortization table. The last period pays
// off whatever balance is left, so the final closing balance is exactly zero.
func GenerateSchedule(in domain.LoanInputs) ([]domain.AmortizationEntry, error) {
	const op = "generate_schedule"
	if err := validateLoan(op, in); err != nil {
		return nil, err
	}
	r := in.MonthlyRate()
	installment, err := installmentFor(op, in.Principal, r, in.TenureMonths)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AmortizationEntry, 0, in.TenureMonths)
	balance := in.Principal
	for period := 1; period <= in.TenureMonths; period++ {
		interest := balance.Mul(r).Round(moneyScale)
		principal := installment.Sub(interest)
		if period == in.TenureMonths {
			principal = balance
		}
		closing := balance.Sub(principal)
		entries = append(entries, domain.AmortizationEntry{
			Period:           period,
			OpeningBalance:   balance,
			InterestPortion:  interest,
			PrincipalPortion: principal,
			ClosingBalance:   closing,
		})
		balance = closing
	}
	return entries, nil
}

// SummarizeLoan totals a freshly generated schedule
func SummarizeLoan(in domain.LoanInputs) (domain.LoanSummary, error) {
	installment, err := ComputeInstallment(in)
	if err != nil {
		return domain.LoanSummary{}, err
	}
	schedule, err := GenerateSchedule(in)
	if err != nil {
		return domain.LoanSummary{}, err
	}
	summary := domain.LoanSummary{Installment: installment, TenureMonths: in.TenureMonths}
	for _, e := range schedule {
		summary.TotalInterest = summary.TotalInterest.Add(e.InterestPortion)
		summary.TotalPayment = summary.TotalPayment.Add(e.Payment())
	}
	return summary, nil
}
