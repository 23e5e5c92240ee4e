package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DegenerateInputError reports inputs that cannot produce a meaningful result:
// non-positive principal, zero tenure, or a rate that drives the formula to a
// non-finite value.
type DegenerateInputError struct {
	Operation string
	Field     string
	Message   string
}

func (e *DegenerateInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: degenerate input: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("%s: degenerate input %s: %s", e.Operation, e.Field, e.Message)
}

// OutOfRangeError reports a value outside its valid domain, such as a
// prepayment period past the end of the loan or an unknown GST jurisdiction.
type OutOfRangeError struct {
	Operation string
	Field     string
	Value     string
	Message   string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %s=%s out of range: %s", e.Operation, e.Field, e.Value, e.Message)
}

// RegimeMismatchError reports a slab table that is not sorted and contiguous
type RegimeMismatchError struct {
	Regime    string
	SlabIndex int
	Message   string
	Cause     error
}

func (e *RegimeMismatchError) Error() string {
	msg := fmt.Sprintf("regime %q slab %d: %s", e.Regime, e.SlabIndex, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RegimeMismatchError) Unwrap() error {
	return e.Cause
}

// NewDegenerateInputError creates a new DegenerateInputError.
func NewDegenerateInputError(operation, field, message string) error {
	return &DegenerateInputError{Operation: operation, Field: field, Message: message}
}

// NewOutOfRangeError creates a new OutOfRangeError.
func NewOutOfRangeError(operation, field string, value any, message string) error {
	return &OutOfRangeError{Operation: operation, Field: field, Value: fmt.Sprint(value), Message: message}
}

// MoneyFromFloat converts a raw form value into a decimal. NaN and ±Inf are
// rejected so they never reach the engine.
func MoneyFromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, NewDegenerateInputError("parse", field, "value is not a finite number")
	}
	return decimal.NewFromFloat(f), nil
}
