// Package tuistyles holds the lipgloss palette shared by the tui packages.
// It lives apart from tui so components and scenes can import it without a cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF4672")
	ColorInfo      = lipgloss.Color("#3C9EE7")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#7A7A7A")
	ColorBorder     = lipgloss.Color("#3C3C3C")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)
)

// MetricTrendStyle colors an increase green and a decrease red
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for a trend
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole rupees with Indian digit grouping
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
