package transform

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustRate shifts the annual rate by DeltaPercent percentage points.
// A negative delta models a rate cut.
type AdjustRate struct {
	DeltaPercent decimal.Decimal
}

func (ar *AdjustRate) Name() string {
	return "adjust_rate"
}

func (ar *AdjustRate) Description() string {
	if ar.DeltaPercent.IsNegative() {
		return fmt.Sprintf("Cut the interest rate by %s percentage points", ar.DeltaPercent.Abs().String())
	}
	return fmt.Sprintf("Raise the interest rate by %s percentage points", ar.DeltaPercent.String())
}

func (ar *AdjustRate) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(ar.Name(), "validate", "base scenario is nil", nil)
	}
	if base.Loan.AnnualRatePercent.Add(ar.DeltaPercent).IsNegative() {
		return NewTransformError(ar.Name(), "validate",
			fmt.Sprintf("rate %s%% adjusted by %s would be negative", base.Loan.AnnualRatePercent, ar.DeltaPercent), nil)
	}
	return nil
}

func (ar *AdjustRate) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Loan.AnnualRatePercent = base.Loan.AnnualRatePercent.Add(ar.DeltaPercent)
	return result, nil
}

// SetRate replaces the annual rate outright
type SetRate struct {
	RatePercent decimal.Decimal
}

func (sr *SetRate) Name() string {
	return "set_rate"
}

func (sr *SetRate) Description() string {
	return fmt.Sprintf("Set the interest rate to %s%%", sr.RatePercent.String())
}

func (sr *SetRate) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base scenario is nil", nil)
	}
	if sr.RatePercent.IsNegative() {
		return NewTransformError(sr.Name(), "validate", "rate cannot be negative", nil)
	}
	return nil
}

func (sr *SetRate) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Loan.AnnualRatePercent = sr.RatePercent
	return result, nil
}

// ChangeTenure lengthens (positive) or shortens (negative) the loan by DeltaMonths
type ChangeTenure struct {
	DeltaMonths int
}

func (ct *ChangeTenure) Name() string {
	return "change_tenure"
}

func (ct *ChangeTenure) Description() string {
	if ct.DeltaMonths < 0 {
		return fmt.Sprintf("Shorten the tenure by %d months", -ct.DeltaMonths)
	}
	return fmt.Sprintf("Extend the tenure by %d months", ct.DeltaMonths)
}

func (ct *ChangeTenure) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(ct.Name(), "validate", "base scenario is nil", nil)
	}
	tenure := base.Loan.TenureMonths + ct.DeltaMonths
	if tenure < 1 || tenure > calculation.MaxTenureMonths {
		return NewTransformError(ct.Name(), "validate",
			fmt.Sprintf("resulting tenure %d must be between 1 and %d months", tenure, calculation.MaxTenureMonths), nil)
	}
	if base.Prepayment != nil && base.Prepayment.AtPeriod > tenure {
		return NewTransformError(ct.Name(), "validate",
			fmt.Sprintf("prepayment at period %d falls after the new tenure of %d months", base.Prepayment.AtPeriod, tenure), nil)
	}
	return nil
}

func (ct *ChangeTenure) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Loan.TenureMonths = base.Loan.TenureMonths + ct.DeltaMonths
	return result, nil
}

// ChangePrincipal adds DeltaAmount to the amount borrowed (negative borrows less)
type ChangePrincipal struct {
	DeltaAmount decimal.Decimal
}

func (cp *ChangePrincipal) Name() string {
	return "change_principal"
}

func (cp *ChangePrincipal) Description() string {
	if cp.DeltaAmount.IsNegative() {
		return fmt.Sprintf("Borrow %s less", cp.DeltaAmount.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Borrow %s more", cp.DeltaAmount.StringFixed(0))
}

func (cp *ChangePrincipal) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(cp.Name(), "validate", "base scenario is nil", nil)
	}
	if !base.Loan.Principal.Add(cp.DeltaAmount).IsPositive() {
		return NewTransformError(cp.Name(), "validate", "resulting principal must be greater than zero", nil)
	}
	return nil
}

func (cp *ChangePrincipal) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Loan.Principal = base.Loan.Principal.Add(cp.DeltaAmount)
	return result, nil
}

// AddPrepayment attaches a one-time prepayment, replacing any existing one
type AddPrepayment struct {
	Amount   decimal.Decimal
	AtPeriod int
	Strategy domain.PrepaymentStrategy
}

func (ap *AddPrepayment) Name() string {
	return "add_prepayment"
}

func (ap *AddPrepayment) Description() string {
	strategy := domain.PrepaymentScenario{Strategy: ap.Strategy}.EffectiveStrategy()
	return fmt.Sprintf("Prepay %s after installment %d (%s)", ap.Amount.StringFixed(0), ap.AtPeriod, strategy)
}

func (ap *AddPrepayment) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(ap.Name(), "validate", "base scenario is nil", nil)
	}
	if !ap.Amount.IsPositive() {
		return NewTransformError(ap.Name(), "validate", "prepayment amount must be greater than zero", nil)
	}
	if ap.AtPeriod < 1 || ap.AtPeriod > base.Loan.TenureMonths {
		return NewTransformError(ap.Name(), "validate",
			fmt.Sprintf("period %d must fall within the %d month tenure", ap.AtPeriod, base.Loan.TenureMonths), nil)
	}
	switch ap.Strategy {
	case "", domain.ReduceTenure, domain.ReduceInstallment:
	default:
		return NewTransformError(ap.Name(), "validate", fmt.Sprintf("unknown strategy %q", ap.Strategy), nil)
	}
	return nil
}

func (ap *AddPrepayment) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Prepayment = &domain.PrepaymentScenario{
		ExtraAmount: ap.Amount,
		AtPeriod:    ap.AtPeriod,
		Strategy:    ap.Strategy,
	}
	return result, nil
}

// RemovePrepayment drops any prepayment from the scenario
type RemovePrepayment struct{}

func (rp *RemovePrepayment) Name() string {
	return "remove_prepayment"
}

func (rp *RemovePrepayment) Description() string {
	return "Remove the prepayment"
}

func (rp *RemovePrepayment) Validate(base *domain.LoanScenario) error {
	if base == nil {
		return NewTransformError(rp.Name(), "validate", "base scenario is nil", nil)
	}
	return nil
}

func (rp *RemovePrepayment) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	result := base.DeepCopy()
	result.Prepayment = nil
	return result, nil
}
