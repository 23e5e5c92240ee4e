package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine is the display-facing surface over the package functions.
// Its calculator methods never fail: bad input is logged at debug level and
// yields a zero value, which is what a form bound to live inputs wants. Run is
// the strict entry point for batch and CLI use.
type CalculationEngine struct {
	Regimes       *RegimeBook
	DefaultRegime string
	Logger        Logger
	Debug         bool // log every request Run handles
}

// NewCalculationEngine creates an engine with an empty regime book
func NewCalculationEngine() *CalculationEngine {
	book, _ := NewRegimeBook()
	return NewCalculationEngineWithRegimes(book, RegimeNew)
}

// NewCalculationEngineWithRegimes creates an engine over a populated regime book
func NewCalculationEngineWithRegimes(book *RegimeBook, defaultRegime string) *CalculationEngine {
	if defaultRegime == "" {
		defaultRegime = RegimeNew
	}
	return &CalculationEngine{
		Regimes:       book,
		DefaultRegime: defaultRegime,
		Logger:        NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) discard(op string, err error) {
	ce.Logger.Debugf("%s: returning zero value: %v", op, err)
}

// Installment returns the monthly installment, or zero
func (ce *CalculationEngine) Installment(in domain.LoanInputs) decimal.Decimal {
	v, err := ComputeInstallment(in)
	if err != nil {
		ce.discard("installment", err)
		return decimal.Zero
	}
	return v
}

// Schedule returns the amortization table, or an empty slice
func (ce *CalculationEngine) Schedule(in domain.LoanInputs) []domain.AmortizationEntry {
	v, err := GenerateSchedule(in)
	if err != nil {
		ce.discard("schedule", err)
		return []domain.AmortizationEntry{}
	}
	return v
}

// LoanSummary returns installment and totals, or a zero summary
func (ce *CalculationEngine) LoanSummary(in domain.LoanInputs) domain.LoanSummary {
	v, err := SummarizeLoan(in)
	if err != nil {
		ce.discard("loan summary", err)
		return domain.LoanSummary{}
	}
	return v
}

// Prepayment returns the prepayment savings, or a zeroed result
func (ce *CalculationEngine) Prepayment(in domain.LoanInputs, sc domain.PrepaymentScenario) domain.PrepaymentResult {
	v, err := SimulatePrepayment(in, sc)
	if err != nil {
		ce.discard("prepayment", err)
		return domain.PrepaymentResult{}
	}
	return v
}

// CAGR returns the growth rate, or a zeroed result
func (ce *CalculationEngine) CAGR(in domain.CAGRInputs) domain.CAGRResult {
	v, err := CAGR(in)
	if err != nil {
		ce.discard("cagr", err)
		return domain.CAGRResult{}
	}
	return v
}

// Growth returns the projection, or a zeroed result with an empty breakdown
func (ce *CalculationEngine) Growth(in domain.GrowthInputs) domain.GrowthResult {
	v, err := ProjectGrowth(in)
	if err != nil {
		ce.discard("growth", err)
		return domain.GrowthResult{AnnualBreakdown: []domain.GrowthSnapshot{}}
	}
	return v
}

// Tax applies the named regime (empty means the default), or returns zero
func (ce *CalculationEngine) Tax(in domain.TaxRegimeInput, regimeRef string) domain.TaxResult {
	v, err := ce.tax(in, regimeRef)
	if err != nil {
		ce.discard("tax", err)
		return domain.TaxResult{}
	}
	return v
}

// CompareRegimes compares two named regimes, or returns a zeroed comparison
func (ce *CalculationEngine) CompareRegimes(in domain.TaxRegimeInput, a, b string) domain.RegimeComparison {
	v, err := ce.compare(in, a, b)
	if err != nil {
		ce.discard("compare regimes", err)
		return domain.RegimeComparison{}
	}
	return v
}

// GST runs a GST request, or returns a zeroed result
func (ce *CalculationEngine) GST(in domain.GSTInput) domain.GSTResult {
	v, err := CalculateGST(in)
	if err != nil {
		ce.discard("gst", err)
		return domain.GSTResult{}
	}
	return v
}

func (ce *CalculationEngine) tax(in domain.TaxRegimeInput, regimeRef string) (domain.TaxResult, error) {
	if regimeRef == "" {
		regimeRef = ce.DefaultRegime
	}
	regime, err := ce.Regimes.Lookup(regimeRef, in.FinancialYear)
	if err != nil {
		return domain.TaxResult{}, err
	}
	return ComputeTax(in, regime)
}

func (ce *CalculationEngine) compare(in domain.TaxRegimeInput, a, b string) (domain.RegimeComparison, error) {
	if a == "" {
		a = ce.DefaultRegime
	}
	if b == "" {
		b = RegimeOld
		if a == RegimeOld {
			b = RegimeNew
		}
	}
	regimeA, err := ce.Regimes.Lookup(a, in.FinancialYear)
	if err != nil {
		return domain.RegimeComparison{}, err
	}
	regimeB, err := ce.Regimes.Lookup(b, in.FinancialYear)
	if err != nil {
		return domain.RegimeComparison{}, err
	}
	return CompareRegimes(in, regimeA, regimeB, ce.DefaultRegime)
}

// Run executes one request strictly, returning the first error encountered
func (ce *CalculationEngine) Run(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ce.Debug {
		ce.Logger.Debugf("running %s (%s)", req.Label(), req.Kind)
	}
	out, err := ce.run(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Label(), err)
	}
	return out, nil
}

func (ce *CalculationEngine) run(req domain.CalculationRequest) (*domain.CalculationOutcome, error) {
	out := &domain.CalculationOutcome{Request: req}
	switch req.Kind {
	case domain.KindEMI, domain.KindSchedule:
		if req.Loan == nil {
			return nil, missingSection(req.Kind, "loan")
		}
		summary, err := SummarizeLoan(*req.Loan)
		if err != nil {
			return nil, err
		}
		out.Loan = &summary
		if req.Kind == domain.KindSchedule {
			if out.Schedule, err = GenerateSchedule(*req.Loan); err != nil {
				return nil, err
			}
		}
	case domain.KindPrepayment:
		if req.Loan == nil {
			return nil, missingSection(req.Kind, "loan")
		}
		if req.Prepayment == nil {
			return nil, missingSection(req.Kind, "prepayment")
		}
		result, err := SimulatePrepayment(*req.Loan, *req.Prepayment)
		if err != nil {
			return nil, err
		}
		out.Prepayment = &result
	case domain.KindCAGR:
		if req.CAGR == nil {
			return nil, missingSection(req.Kind, "cagr")
		}
		result, err := CAGR(*req.CAGR)
		if err != nil {
			return nil, err
		}
		out.CAGR = &result
	case domain.KindGrowth:
		if req.Growth == nil {
			return nil, missingSection(req.Kind, "growth")
		}
		result, err := ProjectGrowth(*req.Growth)
		if err != nil {
			return nil, err
		}
		out.Growth = &result
	case domain.KindTax:
		if req.Tax == nil {
			return nil, missingSection(req.Kind, "tax")
		}
		result, err := ce.tax(*req.Tax, regimeAt(req.Regimes, 0))
		if err != nil {
			return nil, err
		}
		out.Tax = &result
	case domain.KindTaxCompare:
		if req.Tax == nil {
			return nil, missingSection(req.Kind, "tax")
		}
		result, err := ce.compare(*req.Tax, regimeAt(req.Regimes, 0), regimeAt(req.Regimes, 1))
		if err != nil {
			return nil, err
		}
		out.RegimeComparison = &result
	case domain.KindGST:
		if req.GST == nil {
			return nil, missingSection(req.Kind, "gst")
		}
		result, err := CalculateGST(*req.GST)
		if err != nil {
			return nil, err
		}
		out.GST = &result
	default:
		return nil, domain.NewOutOfRangeError("run", "kind", req.Kind, "unknown calculation kind")
	}
	return out, nil
}

// RunAll runs requests in order and stops at the first failure
func (ce *CalculationEngine) RunAll(ctx context.Context, reqs []domain.CalculationRequest) ([]*domain.CalculationOutcome, error) {
	outcomes := make([]*domain.CalculationOutcome, 0, len(reqs))
	for i, req := range reqs {
		out, err := ce.Run(ctx, req)
		if err != nil {
			return outcomes, fmt.Errorf("request %d: %w", i, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func missingSection(kind domain.CalculationKind, section string) error {
	return domain.NewDegenerateInputError(string(kind), section, "section is required for this kind")
}

func regimeAt(refs []string, i int) string {
	if i < len(refs) {
		return refs[i]
	}
	return ""
}
