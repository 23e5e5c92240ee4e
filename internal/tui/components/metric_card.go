package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard is one result figure, optionally with its change against a
// reference outcome (the profile defaults on calculator pages).
type MetricCard struct {
	Label     string
	Value     string
	Delta     decimal.Decimal
	DeltaText string // formatted Delta, without the leading "+"
	Highlight bool
	Width     int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// WithDelta attaches a change; a zero delta is not shown
func (c *MetricCard) WithDelta(delta decimal.Decimal, text string) *MetricCard {
	c.Delta = delta
	c.DeltaText = text
	return c
}

// Highlighted draws the card border in the primary color
func (c *MetricCard) Highlighted() *MetricCard {
	c.Highlight = true
	return c
}

// Render returns the styled metric card
func (c *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(c.Label),
		tuistyles.MetricValueStyle.Render(c.Value),
	}
	if !c.Delta.IsZero() {
		up := c.Delta.IsPositive()
		text := c.DeltaText
		if up {
			text = "+" + text
		}
		lines = append(lines, tuistyles.MetricTrendStyle(up).Render(tuistyles.TrendIndicator(up)+" "+text))
	}

	border := tuistyles.ColorBorder
	if c.Highlight {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(c.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricGrid lays cards out left to right, columns per row
func MetricGrid(cards []*MetricCard, columns int) string {
	columns = max(columns, 1)
	var rows []string
	for start := 0; start < len(cards); start += columns {
		row := make([]string, 0, columns)
		for _, c := range cards[start:min(start+columns, len(cards))] {
			row = append(row, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
