// Package tuimsg holds the messages scenes send to the top-level model.
package tuimsg

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ProfileSelectedMsg signals a calculator profile has been picked from the list
type ProfileSelectedMsg struct {
	ProfileID string
}

// ParameterChangedMsg signals a slider value has changed
type ParameterChangedMsg struct {
	ProfileID string
	Parameter string
	Value     decimal.Decimal
}

// SaveOutcomeMsg asks for the current outcome to be recorded in history
type SaveOutcomeMsg struct {
	Outcome *domain.CalculationOutcome
}

// SaveCompleteMsg signals a history save has finished
type SaveCompleteMsg struct {
	Label string
	Err   error
}
