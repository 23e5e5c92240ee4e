package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.profilesModel.SetSize(msg.Width, msg.Height)
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.engine = msg.Engine
		m.loading = false
		m.profilesModel.SetProfiles(msg.Config.Profiles)
		m.calculatorModel.SetEngine(msg.Engine)
		return m, nil

	case tuimsg.ProfileSelectedMsg:
		p, err := config.Profile(m.config, msg.ProfileID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.calculatorModel.SetProfile(p)
		m.lastChange = ""
		return m, func() tea.Msg {
			return NavigateMsg{Scene: SceneCalculator}
		}

	case tuimsg.ParameterChangedMsg:
		m.lastChange = fmt.Sprintf("%s = %s", msg.Parameter, msg.Value)
		return m, nil

	case tuimsg.SaveOutcomeMsg:
		return m, saveOutcomeCmd(m.store, msg.Outcome)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.calculatorModel.SetStatus("Not saved: " + msg.Err.Error())
		} else {
			m.calculatorModel.SetStatus(fmt.Sprintf("Saved %s to history", msg.Label))
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m, func() tea.Msg {
				return NavigateMsg{Scene: SceneHelp}
			}
		}

	case "esc":
		switch m.currentScene {
		case SceneHelp:
			back := m.previousScene
			return m, func() tea.Msg {
				return NavigateMsg{Scene: back}
			}
		case SceneCalculator:
			return m, func() tea.Msg {
				return NavigateMsg{Scene: SceneProfiles}
			}
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneProfiles:
		updated, cmd := m.profilesModel.Update(msg)
		m.profilesModel = updated
		return m, cmd
	case SceneCalculator:
		updated, cmd := m.calculatorModel.Update(msg)
		m.calculatorModel = updated
		return m, cmd
	}
	return m, nil
}
