package solver

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the loan parameter that produces a target installment
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    Options
}

// NewSolver creates a new loan solver
func NewSolver(calcEngine *calculation.CalculationEngine, options Options) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultOptions())
}

func (s *Solver) logger() calculation.Logger {
	if s.CalcEngine == nil || s.CalcEngine.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.CalcEngine.Logger
}

// Solve routes the request to the matching solver and summarizes the solved loan
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	var (
		result *Result
		err    error
	)
	switch req.Target {
	case SolveRate:
		result, err = s.ImpliedRate(ctx, req.Loan.Principal, req.Loan.TenureMonths, req.Installment)
	case SolveTenure:
		result, err = s.TenureForInstallment(ctx, req.Loan.Principal, req.Loan.AnnualRatePercent, req.Installment)
	case SolvePrincipal:
		result, err = s.AffordablePrincipal(req.Loan.AnnualRatePercent, req.Loan.TenureMonths, req.Installment)
	default:
		return nil, &SolverError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}
	if err != nil {
		return nil, err
	}
	result.Request = req

	loan := result.Loan
	out, err := s.CalcEngine.Run(ctx, domain.CalculationRequest{Kind: domain.KindEMI, Loan: &loan})
	if err != nil {
		return nil, &SolverError{Operation: "solve", Message: "failed to summarize solved loan", Cause: err}
	}
	result.Summary = *out.Loan
	return result, nil
}

// ImpliedRate finds the annual rate at which principal is repaid by tenureMonths
// installments of the given size. The monthly installment is increasing in the
// rate, so the root is bracketed by [0, MaxRatePercent] and bisected.
func (s *Solver) ImpliedRate(ctx context.Context, principal decimal.Decimal, tenureMonths int, installment decimal.Decimal) (*Result, error) {
	const op = "implied_rate"
	if !installment.IsPositive() {
		return nil, &SolverError{Operation: op, Message: "invalid installment",
			Cause: domain.NewDegenerateInputError(op, "installment", "must be greater than zero")}
	}

	probe := domain.LoanInputs{Principal: principal, TenureMonths: tenureMonths}
	if _, err := calculation.ComputeInstallment(probe); err != nil {
		return nil, &SolverError{Operation: op, Message: "invalid loan", Cause: err}
	}

	// At 0% the installment is principal/n, the smallest any rate allows
	paid := installment.Mul(decimal.NewFromInt(int64(tenureMonths)))
	switch paid.Cmp(principal) {
	case -1:
		return nil, &SolverError{Operation: op,
			Message: fmt.Sprintf("installment %s over %d months does not cover the principal at any rate", installment.StringFixed(2), tenureMonths)}
	case 0:
		probe.AnnualRatePercent = decimal.Zero
		zero := decimal.Zero
		return &Result{Success: true, RatePercent: &zero, Loan: probe, ConvergenceInfo: "Interest-free loan"}, nil
	}

	emiAt := func(rate decimal.Decimal) (decimal.Decimal, error) {
		probe.AnnualRatePercent = rate
		return calculation.ComputeInstallment(probe)
	}

	lo, hi := decimal.Zero, s.Options.MaxRatePercent
	top, err := emiAt(hi)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to evaluate rate bound", Cause: err}
	}
	if top.LessThan(installment) {
		return nil, &SolverError{Operation: op,
			Message: fmt.Sprintf("installment requires a rate above %s%%", hi.String())}
	}

	iterations := 0
	converged := false
	for iterations < s.Options.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		mid := lo.Add(hi).Div(two)
		emi, err := emiAt(mid)
		if err != nil {
			return nil, &SolverError{Operation: op, Message: "failed to evaluate rate", Cause: err}
		}
		if emi.GreaterThanOrEqual(installment) {
			hi = mid
		} else {
			lo = mid
		}

		if hi.Sub(lo).LessThan(s.Options.RateTolerance) {
			converged = true
			break
		}
	}
	s.logger().Debugf("%s: bracket [%s, %s] after %d iterations", op, lo, hi, iterations)

	rate := lo.Add(hi).Div(two).Round(8)
	probe.AnnualRatePercent = rate
	result := &Result{
		Success:     converged,
		Iterations:  iterations,
		RatePercent: &rate,
		Loan:        probe,
	}
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %s percentage points", s.Options.RateTolerance.String())
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", s.Options.MaxIterations)
	}
	return result, nil
}

// TenureForInstallment finds the fewest months in which installments no larger
// than installment repay principal at ratePercent.
func (s *Solver) TenureForInstallment(ctx context.Context, principal, ratePercent, installment decimal.Decimal) (*Result, error) {
	const op = "tenure_for_installment"
	if !installment.IsPositive() {
		return nil, &SolverError{Operation: op, Message: "invalid installment",
			Cause: domain.NewDegenerateInputError(op, "installment", "must be greater than zero")}
	}

	probe := domain.LoanInputs{Principal: principal, AnnualRatePercent: ratePercent, TenureMonths: 1}
	first, err := calculation.ComputeInstallment(probe)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "invalid loan", Cause: err}
	}
	if first.LessThanOrEqual(installment) {
		return &Result{Success: true, TenureMonths: intPtr(1), Loan: probe, ConvergenceInfo: "Repaid in a single installment"}, nil
	}

	if interest := principal.Mul(probe.MonthlyRate()); installment.LessThanOrEqual(interest) {
		return nil, &SolverError{Operation: op,
			Message: fmt.Sprintf("installment %s does not cover the monthly interest of %s", installment.StringFixed(2), interest.StringFixed(2))}
	}

	emiAt := func(n int) (decimal.Decimal, error) {
		probe.TenureMonths = n
		return calculation.ComputeInstallment(probe)
	}

	longest, err := emiAt(calculation.MaxTenureMonths)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "failed to evaluate tenure bound", Cause: err}
	}
	if longest.GreaterThan(installment) {
		return nil, &SolverError{Operation: op,
			Message: fmt.Sprintf("installment needs more than %d months", calculation.MaxTenureMonths)}
	}

	// Invariant: emi(lo) > installment >= emi(hi)
	lo, hi := 1, calculation.MaxTenureMonths
	iterations := 0
	for hi-lo > 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		mid := lo + (hi-lo)/2
		emi, err := emiAt(mid)
		if err != nil {
			return nil, &SolverError{Operation: op, Message: "failed to evaluate tenure", Cause: err}
		}
		if emi.LessThanOrEqual(installment) {
			hi = mid
		} else {
			lo = mid
		}
	}
	s.logger().Debugf("%s: %d months after %d iterations", op, hi, iterations)

	probe.TenureMonths = hi
	return &Result{
		Success:         true,
		Iterations:      iterations,
		TenureMonths:    intPtr(hi),
		Loan:            probe,
		ConvergenceInfo: "Smallest tenure whose installment fits",
	}, nil
}

// AffordablePrincipal is the closed-form inverse of the installment formula
func (s *Solver) AffordablePrincipal(ratePercent decimal.Decimal, tenureMonths int, installment decimal.Decimal) (*Result, error) {
	const op = "affordable_principal"
	principal, err := calculation.PrincipalForInstallment(installment, ratePercent, tenureMonths)
	if err != nil {
		return nil, &SolverError{Operation: op, Message: "invalid inputs", Cause: err}
	}
	principal = principal.Round(2)
	return &Result{
		Success:   true,
		Principal: &principal,
		Loan: domain.LoanInputs{
			Principal:         principal,
			AnnualRatePercent: ratePercent,
			TenureMonths:      tenureMonths,
		},
		ConvergenceInfo: "Closed form",
	}, nil
}

func intPtr(i int) *int {
	return &i
}
