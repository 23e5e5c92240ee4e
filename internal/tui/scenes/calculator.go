package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/tui/components"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// maxChartBars caps the rows of the growth chart; longer horizons are sampled
const maxChartBars = 15

// CalculatorModel is one calculator page: a slider per profile field and the
// results, recomputed on every change.
type CalculatorModel struct {
	engine   *calculation.CalculationEngine
	profile  domain.CalculatorProfile
	sliders  []*components.ParameterSlider
	focused  int
	outcome  *domain.CalculationOutcome
	baseline *domain.CalculationOutcome // at the profile defaults
	status   string
	width    int
	height   int
}

// NewCalculatorModel creates a calculator scene over the tolerant engine
func NewCalculatorModel(engine *calculation.CalculationEngine) *CalculatorModel {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &CalculatorModel{engine: engine}
}

// SetEngine swaps the engine, e.g. after the configuration is reloaded
func (m *CalculatorModel) SetEngine(engine *calculation.CalculationEngine) {
	m.engine = engine
	if m.profile.ID != "" {
		m.recalculate()
	}
}

// SetProfile loads a profile and computes its defaults
func (m *CalculatorModel) SetProfile(p domain.CalculatorProfile) {
	m.profile = p
	m.status = ""
	m.buildSliders()
	m.recalculate()
	m.baseline = m.outcome
}

// Profile returns the profile being edited
func (m *CalculatorModel) Profile() domain.CalculatorProfile {
	return m.profile
}

// Outcome returns the latest result
func (m *CalculatorModel) Outcome() *domain.CalculationOutcome {
	return m.outcome
}

// SetStatus shows a one-line message under the results
func (m *CalculatorModel) SetStatus(s string) {
	m.status = s
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CalculatorModel) buildSliders() {
	m.sliders = make([]*components.ParameterSlider, 0, len(m.profile.Fields))
	for _, f := range m.profile.Fields {
		m.sliders = append(m.sliders, components.NewSliderForField(f).WithWidth(36))
	}
	m.focused = 0
	if len(m.sliders) > 0 {
		m.sliders[0].SetFocused(true)
	}
}

// Values returns the slider values keyed by field name
func (m *CalculatorModel) Values() map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal, len(m.sliders))
	for _, s := range m.sliders {
		values[s.Name] = s.Value
	}
	return values
}

func (m *CalculatorModel) recalculate() {
	m.outcome = Evaluate(m.engine, config.RequestFromProfile(m.profile, m.Values()))
}

// Evaluate runs a request through the engine's tolerant methods, so invalid
// slider combinations show zeros instead of an error screen.
func Evaluate(engine *calculation.CalculationEngine, req domain.CalculationRequest) *domain.CalculationOutcome {
	out := &domain.CalculationOutcome{Request: req}
	regime := func(i int) string {
		if i < len(req.Regimes) {
			return req.Regimes[i]
		}
		return ""
	}

	switch req.Kind {
	case domain.KindEMI, domain.KindSchedule:
		if req.Loan != nil {
			summary := engine.LoanSummary(*req.Loan)
			out.Loan = &summary
			if req.Kind == domain.KindSchedule {
				out.Schedule = engine.Schedule(*req.Loan)
			}
		}
	case domain.KindPrepayment:
		if req.Loan != nil && req.Prepayment != nil {
			summary := engine.LoanSummary(*req.Loan)
			result := engine.Prepayment(*req.Loan, *req.Prepayment)
			out.Loan = &summary
			out.Prepayment = &result
		}
	case domain.KindCAGR:
		if req.CAGR != nil {
			result := engine.CAGR(*req.CAGR)
			out.CAGR = &result
		}
	case domain.KindGrowth:
		if req.Growth != nil {
			result := engine.Growth(*req.Growth)
			out.Growth = &result
		}
	case domain.KindTax:
		if req.Tax != nil {
			result := engine.Tax(*req.Tax, regime(0))
			out.Tax = &result
		}
	case domain.KindTaxCompare:
		if req.Tax != nil {
			result := engine.CompareRegimes(*req.Tax, regime(0), regime(1))
			out.RegimeComparison = &result
		}
	case domain.KindGST:
		if req.GST != nil {
			result := engine.GST(*req.GST)
			out.GST = &result
		}
	}
	return out
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *CalculatorModel) handleKeyPress(msg tea.KeyMsg) (*CalculatorModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.moveFocus(1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "-"))):
		return m, m.adjust((*components.ParameterSlider).Decrement)
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "+", "="))):
		return m, m.adjust((*components.ParameterSlider).Increment)
	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.buildSliders()
		m.recalculate()
		m.status = "Reset to defaults"
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		out := m.outcome
		return m, func() tea.Msg {
			return tuimsg.SaveOutcomeMsg{Outcome: out}
		}
	}
	return m, nil
}

func (m *CalculatorModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *CalculatorModel) adjust(step func(*components.ParameterSlider) bool) tea.Cmd {
	slider := m.sliders[m.focused]
	if !step(slider) {
		return nil
	}
	m.status = ""
	m.recalculate()

	changed := tuimsg.ParameterChangedMsg{ProfileID: m.profile.ID, Parameter: slider.Name, Value: slider.Value}
	return func() tea.Msg { return changed }
}

// View renders the calculator scene
func (m *CalculatorModel) View() string {
	if m.profile.ID == "" {
		return "No calculator selected.\n\nPick one from the list (press ESC)."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	var sliders []string
	for _, s := range m.sliders {
		sliders = append(sliders, s.Render(), "")
	}
	left := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Render(strings.TrimRight(strings.Join(sliders, "\n"), "\n"))

	right := lipgloss.JoinVertical(lipgloss.Left, m.renderMetrics(), "", m.renderChart())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if m.width > 0 && m.width < lipgloss.Width(body) {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	parts := []string{titleStyle.Render(m.profile.Label), body}
	if m.status != "" {
		parts = append(parts, tuistyles.InfoStyle.Render(m.status))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render("↑/↓ field • ←/→ adjust • r reset • Enter save to history • ESC back"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *CalculatorModel) renderMetrics() string {
	if m.outcome == nil {
		return ""
	}
	var baseline map[string]output.Metric
	if m.baseline != nil && m.baseline != m.outcome {
		baseline = make(map[string]output.Metric)
		for _, b := range output.Metrics(m.baseline) {
			baseline[b.Key] = b
		}
	}

	var cards []*components.MetricCard
	for i, metric := range output.Metrics(m.outcome) {
		card := components.NewMetricCard(metric.Label, FormatMetric(metric))
		if i == 0 {
			card.Highlighted()
		}
		if b, ok := baseline[metric.Key]; ok && metric.Kind == output.Money {
			delta := metric.Value.Sub(b.Value).Round(0)
			card.WithDelta(delta, tuistyles.FormatCurrency(delta)+" vs default")
		}
		cards = append(cards, card)
	}
	return components.MetricGrid(cards, 2)
}

// FormatMetric renders a metric the way the calculator pages show it
func FormatMetric(m output.Metric) string {
	switch m.Kind {
	case output.Money:
		return tuistyles.FormatCurrency(m.Value)
	case output.Percent:
		return output.FormatPercentage(m.Value)
	case output.Count:
		return m.Value.String()
	default:
		return m.Text
	}
}

func (m *CalculatorModel) renderChart() string {
	switch {
	case m.outcome.Growth != nil && len(m.outcome.Growth.AnnualBreakdown) > 0:
		return growthChart(m.outcome.Growth.AnnualBreakdown).Render()
	case m.outcome.Loan != nil && m.outcome.Loan.TotalPayment.IsPositive():
		loan := m.outcome.Loan
		return components.NewBarChart("Total repayment").
			AddBar("Paid", loan.TotalPayment.InexactFloat64(), loan.TotalPayment.Sub(loan.TotalInterest).InexactFloat64(),
				tuistyles.FormatCurrency(loan.TotalPayment)).
			WithLegend("principal", "interest").
			Render()
	}
	return ""
}

func growthChart(breakdown []domain.GrowthSnapshot) *components.BarChart {
	chart := components.NewBarChart("Balance by year").WithLegend("invested", "returns")
	every := int(math.Ceil(float64(len(breakdown)) / maxChartBars))
	gain := decimal.Zero
	for i, s := range breakdown {
		gain = gain.Add(s.GainThisPeriod)
		if (i+1)%every != 0 && i != len(breakdown)-1 {
			continue
		}
		chart.AddBar(fmt.Sprintf("Y%d", s.Period), s.Balance.InexactFloat64(), s.Balance.Sub(gain).InexactFloat64(), tuistyles.FormatCurrency(s.Balance))
	}
	return chart
}
