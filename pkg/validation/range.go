package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/mathutil"
)

// ErrOutOfRange is matched by every *OutOfRangeError.
var ErrOutOfRange = errors.New("value out of range")

// ErrUnknownField is returned when a field name has no policy bounds.
var ErrUnknownField = errors.New("unknown input field")

// OutOfRangeError describes a rejected input value.
type OutOfRangeError struct {
	Label string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Label, e.Min, e.Max, e.Value)
}

// Is lets errors.Is match ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Result is the outcome of a range check. The zero value is not meaningful;
// use ValidateRange.
type Result struct {
	Accepted bool
	Reason   string
	err      *OutOfRangeError
}

// Err returns nil for an accepted value and an *OutOfRangeError otherwise.
func (r Result) Err() error {
	if r.Accepted || r.err == nil {
		return nil
	}
	return r.err
}

// ValidateRange accepts a finite value iff min <= value <= max. The rejection reason
// carries the label and bounds for display.
func ValidateRange(value, min, max float64, label string) Result {
	if mathutil.IsFinite(value) && mathutil.InRange(value, min, max) {
		return Result{Accepted: true}
	}
	oor := &OutOfRangeError{Label: label, Value: value, Min: min, Max: max}
	return Result{Accepted: false, Reason: oor.Error(), err: oor}
}

// ValidateField checks value against the policy bounds of the named input.
func ValidateField(field string, value float64) (Result, error) {
	bounds, ok := constants.InputBounds[field]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return ValidateRange(value, bounds.Min, bounds.Max, bounds.Label), nil
}
