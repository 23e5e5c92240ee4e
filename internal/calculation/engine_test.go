package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records debug messages
type TestLogger struct {
	debug []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.debug = append(l.debug, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Infof(string, ...any)              {}
func (l *TestLogger) Warnf(string, ...any)              {}
func (l *TestLogger) Errorf(string, ...any)             {}

func newTestEngine(t *testing.T) *CalculationEngine {
	t.Helper()
	newer := newRegime2024()
	newer2025 := newRegime2024()
	newer2025.FinancialYear = "2025-26"
	newer2025.RebateThreshold = d("1200000")
	book, err := NewRegimeBook(newer, oldRegime2024(), newer2025)
	require.NoError(t, err)
	return NewCalculationEngineWithRegimes(book, RegimeNew)
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Regimes, "Should initialize regime book")
	assert.Equal(t, RegimeNew, engine.DefaultRegime)
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_FailsSoft(t *testing.T) {
	engine := newTestEngine(t)
	logger := &TestLogger{}
	engine.SetLogger(logger)

	bad := loan("0", "12", 36)
	assert.True(t, engine.Installment(bad).IsZero())
	assert.Empty(t, engine.Schedule(bad))
	assert.NotNil(t, engine.Schedule(bad))
	assert.Equal(t, domain.LoanSummary{}, engine.LoanSummary(bad))
	assert.Equal(t, domain.PrepaymentResult{},
		engine.Prepayment(loan("500000", "12", 36), domain.PrepaymentScenario{ExtraAmount: d("1"), AtPeriod: 99}))
	assert.True(t, engine.CAGR(domain.CAGRInputs{Initial: d("0"), Final: d("1"), Years: d("1")}).CAGRPercent.IsZero())
	assert.Empty(t, engine.Growth(domain.GrowthInputs{Mode: "weekly"}).AnnualBreakdown)
	assert.True(t, engine.Tax(income("100"), "flat").TotalTax.IsZero())
	assert.Empty(t, engine.CompareRegimes(income("100"), "new", "flat").Recommended)
	assert.True(t, engine.GST(domain.GSTInput{Amount: d("100"), Mode: "reverse"}).FinalAmount.IsZero())

	assert.Len(t, logger.debug, 10, "every failure is logged at debug level")
}

func TestCalculationEngine_ToleratesAndComputes(t *testing.T) {
	engine := newTestEngine(t)

	assert.InDelta(t, 16607.15, engine.Installment(loan("500000", "12", 36)).InexactFloat64(), 0.01)
	assert.Len(t, engine.Schedule(loan("500000", "12", 36)), 36)

	latest := engine.Tax(income("1275000"), "")
	assert.Equal(t, "new@2025-26", latest.Regime, "empty year picks the latest regime")
	assert.True(t, latest.TotalTax.IsZero())

	in := income("1275000")
	in.FinancialYear = "2024-25"
	assert.Equal(t, "new@2024-25", engine.Tax(in, "new").Regime)

	cmp := engine.CompareRegimes(in, "", "")
	assert.Equal(t, "new@2024-25", cmp.TaxA.Regime)
	assert.Equal(t, "old@2024-25", cmp.TaxB.Regime)
}

func TestCalculationEngine_Run(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   domain.CalculationRequest
		check func(t *testing.T, out *domain.CalculationOutcome)
	}{
		{
			name: "emi",
			req:  domain.CalculationRequest{Kind: domain.KindEMI, Loan: &domain.LoanInputs{Principal: d("500000"), AnnualRatePercent: d("12"), TenureMonths: 36}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.Loan)
				assert.Nil(t, out.Schedule)
			},
		},
		{
			name: "schedule",
			req:  domain.CalculationRequest{Kind: domain.KindSchedule, Loan: &domain.LoanInputs{Principal: d("500000"), AnnualRatePercent: d("12"), TenureMonths: 36}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				assert.Len(t, out.Schedule, 36)
			},
		},
		{
			name: "prepayment",
			req: domain.CalculationRequest{
				Kind:       domain.KindPrepayment,
				Loan:       &domain.LoanInputs{Principal: d("500000"), AnnualRatePercent: d("12"), TenureMonths: 36},
				Prepayment: &domain.PrepaymentScenario{ExtraAmount: d("100000"), AtPeriod: 12},
			},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.Prepayment)
				assert.Equal(t, 7, out.Prepayment.TenureReductionPeriods)
			},
		},
		{
			name: "cagr",
			req:  domain.CalculationRequest{Kind: domain.KindCAGR, CAGR: &domain.CAGRInputs{Initial: d("100000"), Final: d("250000"), Years: d("5")}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.CAGR)
			},
		},
		{
			name: "growth",
			req:  domain.CalculationRequest{Kind: domain.KindGrowth, Growth: &domain.GrowthInputs{PeriodicContribution: d("5000"), AnnualRatePercent: d("12"), Periods: 24, Mode: domain.RecurringMonthly}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.Growth)
				assert.Len(t, out.Growth.AnnualBreakdown, 2)
			},
		},
		{
			name: "tax with explicit regime",
			req:  domain.CalculationRequest{Kind: domain.KindTax, Tax: &domain.TaxRegimeInput{GrossIncome: d("1200000"), FinancialYear: "2024-25"}, Regimes: []string{"old"}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.Tax)
				assert.Equal(t, "old@2024-25", out.Tax.Regime)
			},
		},
		{
			name: "tax compare",
			req:  domain.CalculationRequest{Kind: domain.KindTaxCompare, Tax: &domain.TaxRegimeInput{GrossIncome: d("1200000"), FinancialYear: "2024-25"}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.RegimeComparison)
				assert.Equal(t, RegimeNew, out.RegimeComparison.Recommended)
			},
		},
		{
			name: "gst",
			req:  domain.CalculationRequest{Kind: domain.KindGST, GST: &domain.GSTInput{Amount: d("10000"), RatePercent: d("18"), Mode: domain.GSTExclusive, Jurisdiction: domain.IntraState}},
			check: func(t *testing.T, out *domain.CalculationOutcome) {
				require.NotNil(t, out.GST)
				assert.True(t, out.GST.FinalAmount.Equal(d("11800")))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Run(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.req.Kind, out.Request.Kind)
			tt.check(t, out)
		})
	}
}

func TestCalculationEngine_RunErrors(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Run(context.Background(), domain.CalculationRequest{Name: "my-loan", Kind: domain.KindEMI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "my-loan")

	_, err = engine.Run(context.Background(), domain.CalculationRequest{Kind: "mortgage"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Run(ctx, domain.CalculationRequest{Kind: domain.KindCAGR, CAGR: &domain.CAGRInputs{Initial: d("1"), Final: d("2"), Years: d("1")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RunAll(t *testing.T) {
	engine := newTestEngine(t)
	reqs := []domain.CalculationRequest{
		{Kind: domain.KindCAGR, CAGR: &domain.CAGRInputs{Initial: d("1"), Final: d("2"), Years: d("1")}},
		{Kind: domain.KindGST},
		{Kind: domain.KindCAGR, CAGR: &domain.CAGRInputs{Initial: d("1"), Final: d("2"), Years: d("1")}},
	}
	outcomes, err := engine.RunAll(context.Background(), reqs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request 1")
	assert.Len(t, outcomes, 1)
}

func TestRegimeBook(t *testing.T) {
	broken := newRegime2024()
	broken.ID = "broken"
	broken.Slabs = broken.Slabs[1:]
	_, err := NewRegimeBook(broken)
	assert.Error(t, err)

	book, err := NewRegimeBook(newRegime2024(), oldRegime2024())
	require.NoError(t, err)
	assert.Equal(t, 2, book.Len())

	r, err := book.Lookup("old@2024-25", "")
	require.NoError(t, err)
	assert.Equal(t, "old", r.ID)

	_, err = book.Lookup("new", "2030-31")
	assert.Error(t, err)

	all := book.All()
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
}
