package domain

import (
	"github.com/shopspring/decimal"
)

// LoanInputs describes a fixed-installment loan. TenureMonths is the number of
// monthly installments.
type LoanInputs struct {
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annualRatePercent"`
	TenureMonths      int             `yaml:"tenure_months" json:"tenureMonths"`
}

// MonthlyRate returns the per-period rate as a fraction (8.5% p.a. -> 0.0070833...)
func (l LoanInputs) MonthlyRate() decimal.Decimal {
	return l.AnnualRatePercent.DivRound(decimal.NewFromInt(1200), 20)
}

// AmortizationEntry is one row of an amortization schedule
type AmortizationEntry struct {
	Period           int             `yaml:"period" json:"period"`
	OpeningBalance   decimal.Decimal `yaml:"opening_balance" json:"openingBalance"`
	InterestPortion  decimal.Decimal `yaml:"interest_portion" json:"interestPortion"`
	PrincipalPortion decimal.Decimal `yaml:"principal_portion" json:"principalPortion"`
	ClosingBalance   decimal.Decimal `yaml:"closing_balance" json:"closingBalance"`
}

// Payment returns the total amount paid in this period
func (e AmortizationEntry) Payment() decimal.Decimal {
	return e.InterestPortion.Add(e.PrincipalPortion)
}

// LoanSummary aggregates a schedule into the figures a loan calculator displays
type LoanSummary struct {
	Installment   decimal.Decimal `yaml:"installment" json:"installment"`
	TotalInterest decimal.Decimal `yaml:"total_interest" json:"totalInterest"`
	TotalPayment  decimal.Decimal `yaml:"total_payment" json:"totalPayment"`
	TenureMonths  int             `yaml:"tenure_months" json:"tenureMonths"`
}

// PrepaymentStrategy selects what a prepayment buys: a shorter loan or a smaller installment
type PrepaymentStrategy string

const (
	ReduceTenure      PrepaymentStrategy = "reduce_tenure"
	ReduceInstallment PrepaymentStrategy = "reduce_installment"
)

// PrepaymentScenario is a one-time extra payment made right after the
// scheduled installment of AtPeriod.
type PrepaymentScenario struct {
	ExtraAmount decimal.Decimal    `yaml:"extra_amount" json:"extraAmount"`
	AtPeriod    int                `yaml:"at_period" json:"atPeriod"`
	Strategy    PrepaymentStrategy `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// EffectiveStrategy returns the strategy, defaulting to ReduceTenure
func (p PrepaymentScenario) EffectiveStrategy() PrepaymentStrategy {
	if p.Strategy == "" {
		return ReduceTenure
	}
	return p.Strategy
}

// PrepaymentResult reports what a prepayment saves. InterestSaved and
// TenureReductionPeriods are never negative.
type PrepaymentResult struct {
	InterestSaved          decimal.Decimal `yaml:"interest_saved" json:"interestSaved"`
	TenureReductionPeriods int             `yaml:"tenure_reduction_periods" json:"tenureReductionPeriods"`

	OutstandingBalance decimal.Decimal `yaml:"outstanding_balance" json:"outstandingBalance"` // balance after the AtPeriod installment, before prepaying
	BaselineInterest   decimal.Decimal `yaml:"baseline_interest" json:"baselineInterest"`     // interest still due without prepaying
	RevisedInterest    decimal.Decimal `yaml:"revised_interest" json:"revisedInterest"`
	RemainingPeriods   int             `yaml:"remaining_periods" json:"remainingPeriods"`
	RevisedPeriods     int             `yaml:"revised_periods" json:"revisedPeriods"`
	RevisedInstallment decimal.Decimal `yaml:"revised_installment" json:"revisedInstallment"`
}

// LoanScenario is a named loan with an optional prepayment, the unit that
// transforms rewrite and comparisons evaluate.
type LoanScenario struct {
	Name       string              `yaml:"name" json:"name"`
	Loan       LoanInputs          `yaml:"loan" json:"loan"`
	Prepayment *PrepaymentScenario `yaml:"prepayment,omitempty" json:"prepayment,omitempty"`
}

// DeepCopy returns a copy that shares no pointers with s
func (s *LoanScenario) DeepCopy() *LoanScenario {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Prepayment != nil {
		p := *s.Prepayment
		cp.Prepayment = &p
	}
	return &cp
}
