package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err),
		))
	}
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ Loading configuration..."))
	}

	var content string
	switch m.currentScene {
	case SceneProfiles:
		content = m.profilesModel.View()
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4)
	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("fincalc - loans, investments and tax")

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneCalculator {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.calculatorModel.Profile().Label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("esc", "back"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.lastChange != "" {
		right := tuistyles.SubtitleStyle.Render(m.lastChange)
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(right)-4))
		statusText = statusText + spacer + right
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/↓ or k/j", "move between calculators or fields"},
		{"Enter", "open a calculator / save the result to history"},
		{"←/→ or -/+", "adjust the focused field"},
		{"r", "reset fields to their defaults"},
		{"esc", "go back"},
		{"?", "show this help"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n", tuistyles.StatusKeyStyle.Width(12).Render(r[0]), r[1]))
	}
	if m.store == nil {
		b.WriteString("\n" + tuistyles.InfoStyle.Render("History is off; start with --history to save results."))
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}
