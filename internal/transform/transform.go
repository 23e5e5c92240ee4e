package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// LoanTransform is one what-if edit of a loan scenario, such as a rate cut or
// a lump-sum prepayment. The compare command and the templates build on it.
type LoanTransform interface {
	// Apply returns the edited scenario; base is never mutated.
	Apply(base *domain.LoanScenario) (*domain.LoanScenario, error)

	// Name is the registry identifier, e.g. "adjust_rate".
	Name() string

	// Description is shown next to comparison results.
	Description() string

	// Validate checks the parameters against base without applying them.
	Validate(base *domain.LoanScenario) error
}

var errNilBase = errors.New("base scenario cannot be nil")

// Chain applies its transforms in order, each seeing the previous result. A
// chain is itself a LoanTransform.
type Chain []LoanTransform

func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, t := range c {
		if t != nil {
			names = append(names, t.Name())
		}
	}
	return strings.Join(names, "+")
}

func (c Chain) Description() string {
	parts := make([]string, 0, len(c))
	for _, t := range c {
		if t != nil {
			parts = append(parts, t.Description())
		}
	}
	return strings.Join(parts, "; ")
}

// Validate runs the chain on a copy, since later steps depend on earlier ones
func (c Chain) Validate(base *domain.LoanScenario) error {
	_, err := c.Apply(base)
	return err
}

func (c Chain) Apply(base *domain.LoanScenario) (*domain.LoanScenario, error) {
	if base == nil {
		return nil, errNilBase
	}

	current := base.DeepCopy()
	for i, t := range c {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// ApplyTransforms applies transforms to base in order
func ApplyTransforms(base *domain.LoanScenario, transforms []LoanTransform) (*domain.LoanScenario, error) {
	return Chain(transforms).Apply(base)
}

// TransformError reports a transform rejecting its parameters or its input
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	msg := fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error { return e.Err }

// NewTransformError creates a new TransformError
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{TransformName: transformName, Operation: operation, Reason: reason, Err: err}
}
