package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// ProfilesModel lists the calculator profiles to pick from
type ProfilesModel struct {
	profiles      []domain.CalculatorProfile
	selectedIndex int
	width         int
	height        int
}

// NewProfilesModel creates a new profiles scene model
func NewProfilesModel() *ProfilesModel {
	return &ProfilesModel{}
}

// SetProfiles updates the profile list
func (m *ProfilesModel) SetProfiles(profiles []domain.CalculatorProfile) {
	m.profiles = profiles
	if m.selectedIndex >= len(m.profiles) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ProfilesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedProfile returns the highlighted profile id
func (m *ProfilesModel) SelectedProfile() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.profiles) {
		return m.profiles[m.selectedIndex].ID
	}
	return ""
}

// Update handles messages for the profiles scene
func (m *ProfilesModel) Update(msg tea.Msg) (*ProfilesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ProfilesModel) handleKeyPress(msg tea.KeyMsg) (*ProfilesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.profiles)-1 {
			m.selectedIndex++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(msg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.profiles)-1)
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		id := m.SelectedProfile()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.ProfileSelectedMsg{ProfileID: id}
		}
	}
	return m, nil
}

// View renders the profile list grouped in file order
func (m *ProfilesModel) View() string {
	if len(m.profiles) == 0 {
		return tuistyles.BorderStyle.Render("No calculator profiles configured.")
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary).
		MarginBottom(1)

	var list strings.Builder
	for i, p := range m.profiles {
		line := fmt.Sprintf("%-18s %s", p.Label, tuistyles.MetricLabelStyle.Render(kindLabel(p)))
		if i == m.selectedIndex {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + line))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	help := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Render("↑/↓ navigate • Enter open calculator • ? help • q quit")

	return tuistyles.BorderStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Calculators"),
		list.String(),
		help,
	))
}

func kindLabel(p domain.CalculatorProfile) string {
	switch p.Kind {
	case domain.KindEMI:
		return "loan EMI"
	case domain.KindPrepayment:
		return "loan prepayment"
	case domain.KindGrowth:
		switch p.Mode {
		case domain.RecurringMonthly:
			return "monthly investment"
		case domain.FixedAnnual:
			return "yearly compounding"
		default:
			return "one-time investment"
		}
	case domain.KindCAGR:
		return "growth rate"
	case domain.KindTax, domain.KindTaxCompare:
		return "income tax"
	case domain.KindGST:
		return "GST"
	default:
		return string(p.Kind)
	}
}
