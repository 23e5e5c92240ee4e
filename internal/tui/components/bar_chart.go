package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// Bar is one row of a BarChart. Base is drawn in the primary color and the
// remainder up to Value in the accent color, so a bar can show contributed
// versus earned, or principal versus interest.
type Bar struct {
	Label string
	Value float64
	Base  float64
	Text  string // right-hand annotation, usually the formatted value
}

// BarChart renders horizontal bars scaled to the largest value
type BarChart struct {
	Title      string
	Bars       []Bar
	Width      int
	BaseLegend string
	RestLegend string
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// AddBar appends a bar
func (c *BarChart) AddBar(label string, value, base float64, text string) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Base: base, Text: text})
	return c
}

// WithLegend names the two segments of each bar
func (c *BarChart) WithLegend(base, rest string) *BarChart {
	c.BaseLegend = base
	c.RestLegend = rest
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n")
	}

	maxValue, labelWidth := 0.0, 0
	for _, b := range c.Bars {
		maxValue = math.Max(maxValue, b.Value)
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}

	baseStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	restStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)
	for _, b := range c.Bars {
		total, base := c.scale(b.Value, maxValue), c.scale(math.Min(b.Base, b.Value), maxValue)
		content.WriteString(fmt.Sprintf("%-*s ", labelWidth, b.Label))
		content.WriteString(baseStyle.Render(strings.Repeat("█", base)))
		content.WriteString(restStyle.Render(strings.Repeat("█", total-base)))
		content.WriteString(strings.Repeat(" ", c.Width-total))
		if b.Text != "" {
			content.WriteString(" " + tuistyles.MetricLabelStyle.Render(b.Text))
		}
		content.WriteString("\n")
	}

	if c.BaseLegend != "" || c.RestLegend != "" {
		content.WriteString(baseStyle.Render("█") + " " + c.BaseLegend + "  " + restStyle.Render("█") + " " + c.RestLegend)
	}
	return strings.TrimRight(content.String(), "\n")
}

func (c *BarChart) scale(v, maxValue float64) int {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / maxValue * float64(c.Width)))
	return min(n, c.Width)
}
