package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable input with a visual slider. Values are
// decimals so stepping never accumulates float error into the calculation.
type ParameterSlider struct {
	Name        string // field name the value is reported under
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        string // "₹", "%", "months", "years"
	Width       int    // total width of the slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	return &ParameterSlider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
}

// NewSliderForField builds a slider from a profile field
func NewSliderForField(f domain.ProfileField) *ParameterSlider {
	s := NewParameterSlider(f.Label, f.Default, f.Min, f.Max, f.Step).WithUnit(f.Unit)
	s.Name = f.Name
	return s
}

// WithUnit sets the unit
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value, clamping to min/max, and reports whether it changed
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	value = decimal.Max(p.Min, decimal.Min(p.Max, value))
	if value.Equal(p.Value) {
		return false
	}
	p.Value = value
	return true
}

// Percentage returns the value's position in the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// FormatValue renders a value in the slider's unit
func (p *ParameterSlider) FormatValue(v decimal.Decimal) string {
	switch p.Unit {
	case "₹":
		return tuistyles.FormatCurrency(v)
	case "%":
		return v.String() + "%"
	case "":
		return v.String()
	default:
		return v.String() + " " + p.Unit
	}
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.FormatValue(p.Value)))
	content.WriteString("\n")

	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.FormatValue(p.Min), p.FormatValue(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	return content.String()
}

func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")
	return bar.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.FormatValue(p.Value)))
}
