package tui

import (
	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneProfiles Scene = iota
	SceneCalculator
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded and an engine built over its regimes
type ConfigLoadedMsg struct {
	Config *domain.Configuration
	Engine *calculation.CalculationEngine
}

func (s Scene) String() string {
	switch s {
	case SceneProfiles:
		return "Calculators"
	case SceneCalculator:
		return "Calculator"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
