package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

func defaults(t *testing.T) (*domain.Configuration, *calculation.CalculationEngine) {
	t.Helper()
	cfg, err := config.DefaultConfiguration()
	require.NoError(t, err)
	engine, err := config.NewEngine(cfg)
	require.NoError(t, err)
	return cfg, engine
}

func calculatorFor(t *testing.T, id string) *CalculatorModel {
	t.Helper()
	cfg, engine := defaults(t)
	p, err := config.Profile(cfg, id)
	require.NoError(t, err)
	m := NewCalculatorModel(engine)
	m.SetProfile(p)
	return m
}

func press(m *CalculatorModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCalculator_PersonalLoanDefaults(t *testing.T) {
	m := calculatorFor(t, "personal_loan")

	out := m.Outcome()
	require.NotNil(t, out.Loan)
	assert.Equal(t, "16607.15", out.Loan.Installment.StringFixed(2))
	assert.Equal(t, "97857.58", out.Loan.TotalInterest.StringFixed(2))
	assert.Equal(t, domain.KindEMI, out.Request.Kind)
}

func TestCalculator_AdjustRecomputes(t *testing.T) {
	m := calculatorFor(t, "personal_loan")
	before := m.Outcome().Loan.Installment

	press(m, tea.KeyDown)
	cmd := press(m, tea.KeyRight)
	require.NotNil(t, cmd)

	changed, ok := cmd().(tuimsg.ParameterChangedMsg)
	require.True(t, ok)
	assert.Equal(t, "personal_loan", changed.ProfileID)
	assert.Equal(t, "annual_rate_percent", changed.Parameter)
	assert.True(t, changed.Value.Equal(decimal.RequireFromString("12.25")))
	assert.True(t, m.Outcome().Loan.Installment.GreaterThan(before))

	_, _ = m.Update(runes("r"))
	assert.Equal(t, "16607.15", m.Outcome().Loan.Installment.StringFixed(2))
}

func TestCalculator_AdjustAtBoundIsNoop(t *testing.T) {
	m := calculatorFor(t, "nsc")

	// nsc pins the rate, so the slider cannot move
	press(m, tea.KeyDown)
	assert.Nil(t, press(m, tea.KeyRight))
	assert.Nil(t, press(m, tea.KeyLeft))
}

func TestCalculator_FocusStaysInRange(t *testing.T) {
	m := calculatorFor(t, "personal_loan")

	press(m, tea.KeyUp)
	assert.True(t, m.sliders[0].IsFocused)

	for i := 0; i < 5; i++ {
		press(m, tea.KeyDown)
	}
	assert.True(t, m.sliders[len(m.sliders)-1].IsFocused)
	assert.False(t, m.sliders[0].IsFocused)
}

func TestCalculator_EnterRequestsSave(t *testing.T) {
	m := calculatorFor(t, "gst")

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	save, ok := cmd().(tuimsg.SaveOutcomeMsg)
	require.True(t, ok)
	require.NotNil(t, save.Outcome.GST)
	assert.True(t, save.Outcome.GST.FinalAmount.Equal(decimal.NewFromInt(11800)))
}

func TestCalculator_View(t *testing.T) {
	m := calculatorFor(t, "personal_loan")
	view := m.View()
	assert.Contains(t, view, "Personal loan")
	assert.Contains(t, view, "Monthly EMI")
	assert.Contains(t, view, "Total repayment")

	m.SetStatus("Saved personal_loan to history")
	assert.Contains(t, m.View(), "Saved personal_loan to history")

	empty := NewCalculatorModel(nil)
	assert.Contains(t, empty.View(), "No calculator selected")
}

func TestCalculator_GrowthChart(t *testing.T) {
	m := calculatorFor(t, "sip")
	view := m.View()
	assert.Contains(t, view, "Balance by year")
	assert.Contains(t, view, "Maturity value")
}

func TestEvaluate_EveryDefaultProfile(t *testing.T) {
	cfg, engine := defaults(t)

	for _, p := range cfg.Profiles {
		t.Run(p.ID, func(t *testing.T) {
			out := Evaluate(engine, config.RequestFromProfile(p, config.DefaultValues(p)))
			metrics := output.Metrics(out)
			require.NotEmpty(t, metrics)
			for _, metric := range metrics {
				assert.NotEmpty(t, FormatMetric(metric), metric.Key)
			}
		})
	}
}

func TestEvaluate_TaxCompareUsesDefaultPair(t *testing.T) {
	cfg, engine := defaults(t)
	p, err := config.Profile(cfg, "income_tax")
	require.NoError(t, err)

	out := Evaluate(engine, config.RequestFromProfile(p, nil))
	require.NotNil(t, out.RegimeComparison)
	assert.NotEmpty(t, out.RegimeComparison.Recommended)
	assert.Contains(t, out.RegimeComparison.TaxA.Regime, "new")
}

func TestEvaluate_InvalidInputsGiveZeros(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	req := domain.CalculationRequest{
		Kind: domain.KindEMI,
		Loan: &domain.LoanInputs{Principal: decimal.Zero, AnnualRatePercent: decimal.NewFromInt(12), TenureMonths: 36},
	}

	out := Evaluate(engine, req)
	require.NotNil(t, out.Loan)
	assert.True(t, out.Loan.Installment.IsZero())
}

func TestEvaluate_MissingSection(t *testing.T) {
	out := Evaluate(calculation.NewCalculationEngine(), domain.CalculationRequest{Kind: domain.KindPrepayment})
	assert.Nil(t, out.Loan)
	assert.Nil(t, out.Prepayment)
	assert.Empty(t, output.Metrics(out))
}

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "7", FormatMetric(output.Metric{Kind: output.Count, Value: decimal.NewFromInt(7)}))
	assert.Equal(t, "20.11%", FormatMetric(output.Metric{Kind: output.Percent, Value: decimal.RequireFromString("20.1124")}))
	assert.Equal(t, "new", FormatMetric(output.Metric{Kind: output.Text, Text: "new"}))
}

func TestProfiles_Navigation(t *testing.T) {
	cfg, _ := defaults(t)
	m := NewProfilesModel()
	m.SetProfiles(cfg.Profiles)
	assert.Equal(t, "home_loan", m.SelectedProfile())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "home_loan", m.SelectedProfile())

	_, _ = m.Update(runes("G"))
	assert.Equal(t, cfg.Profiles[len(cfg.Profiles)-1].ID, m.SelectedProfile())

	_, _ = m.Update(runes("g"))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.ProfileSelectedMsg{ProfileID: "car_loan"}, cmd())

	view := m.View()
	assert.Contains(t, view, "Calculators")
	assert.Contains(t, view, "monthly investment")
}

func TestProfiles_Empty(t *testing.T) {
	m := NewProfilesModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No calculator profiles configured")
}
