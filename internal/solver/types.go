package solver

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the loan parameter being solved for
type Target string

const (
	SolveRate      Target = "rate"      // annual rate that yields Installment
	SolveTenure    Target = "tenure"    // months needed to repay at Installment
	SolvePrincipal Target = "principal" // amount Installment can service
)

// Request defines one solve. The loan field matching Target is ignored.
type Request struct {
	Target      Target            `json:"target"`
	Loan        domain.LoanInputs `json:"loan"`
	Installment decimal.Decimal   `json:"installment"`
}

// Result contains the solved parameter and the loan it produces
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info,omitempty"`

	RatePercent  *decimal.Decimal `json:"rate_percent,omitempty"`
	TenureMonths *int             `json:"tenure_months,omitempty"`
	Principal    *decimal.Decimal `json:"principal,omitempty"`

	// Loan with the solved parameter filled in, and its summary
	Loan    domain.LoanInputs  `json:"loan"`
	Summary domain.LoanSummary `json:"summary"`
}

// Options configures the bisection
type Options struct {
	MaxIterations  int             // bisection steps before giving up
	RateTolerance  decimal.Decimal // width of the final rate bracket, in percentage points
	MaxRatePercent decimal.Decimal // upper end of the rate search
}

// DefaultOptions returns default solver configuration
func DefaultOptions() Options {
	return Options{
		MaxIterations:  200,
		RateTolerance:  decimal.New(1, -8),
		MaxRatePercent: decimal.NewFromInt(100),
	}
}

// SolverError represents errors from the loan solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
