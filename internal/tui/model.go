// Package tui is the interactive calculator front end. Each profile becomes a
// page of sliders whose results recompute on every keystroke.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/history"
	"github.com/rgehrsitz/fincalc/internal/tui/scenes"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

var errNoHistory = errors.New("no history store configured")

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration
	engine     *calculation.CalculationEngine
	store      history.Store

	profilesModel   *scenes.ProfilesModel
	calculatorModel *scenes.CalculatorModel

	lastChange string
	err        error
	loading    bool
}

// NewModel creates a new application model. configPath may be empty to use
// the built-in profiles; store may be nil to disable saving.
func NewModel(configPath string, store history.Store) Model {
	return Model{
		currentScene:    SceneProfiles,
		configPath:      configPath,
		store:           store,
		profilesModel:   scenes.NewProfilesModel(),
		calculatorModel: scenes.NewCalculatorModel(nil),
		loading:         true,
		width:           80,
		height:          24,
	}
}

// Init loads the configuration
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd layers the file at path over the embedded defaults
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.DefaultConfiguration()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if path != "" {
			user, err := config.NewInputParser().LoadFromFile(path)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			cfg = config.Merge(cfg, user)
		}

		engine, err := config.NewEngine(cfg)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg, Engine: engine}
	}
}

// saveOutcomeCmd records an outcome in the history store
func saveOutcomeCmd(store history.Store, out *domain.CalculationOutcome) tea.Cmd {
	return func() tea.Msg {
		if out == nil {
			return tuimsg.SaveCompleteMsg{Err: errors.New("nothing to save")}
		}
		label := out.Request.Label()
		if store == nil {
			return tuimsg.SaveCompleteMsg{Label: label, Err: errNoHistory}
		}
		return tuimsg.SaveCompleteMsg{Label: label, Err: store.Save(context.Background(), history.NewRecord(out))}
	}
}
