package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/herd-cost/pkg/constants"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		accepted bool
	}{
		{"Inside range", 1000, 500, 2000, true},
		{"Lower bound inclusive", 500, 500, 2000, true},
		{"Upper bound inclusive", 2000, 500, 2000, true},
		{"Above max", 3000, 500, 2000, false},
		{"Below min", 499, 500, 2000, false},
		{"Zero", 0, 500, 2000, false},
		{"NaN is never accepted", math.NaN(), 500, 2000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRange(tt.value, tt.min, tt.max, "Nº de Animais")
			if result.Accepted != tt.accepted {
				t.Fatalf("ValidateRange(%v) accepted = %v, expected %v", tt.value, result.Accepted, tt.accepted)
			}
			if tt.accepted {
				if result.Err() != nil {
					t.Errorf("expected nil error for accepted value, got %v", result.Err())
				}
				if result.Reason != "" {
					t.Errorf("expected empty reason, got %q", result.Reason)
				}
				return
			}
			if !errors.Is(result.Err(), ErrOutOfRange) {
				t.Errorf("expected ErrOutOfRange, got %v", result.Err())
			}
			if !strings.Contains(result.Reason, "Nº de Animais") {
				t.Errorf("expected reason to carry the label, got %q", result.Reason)
			}
		})
	}
}

func TestValidateRangeReasonCarriesBounds(t *testing.T) {
	result := ValidateRange(3000, 500, 2000, "Nº de Animais")

	var oor *OutOfRangeError
	if !errors.As(result.Err(), &oor) {
		t.Fatalf("expected *OutOfRangeError, got %T", result.Err())
	}
	if oor.Min != 500 || oor.Max != 2000 || oor.Value != 3000 {
		t.Errorf("unexpected error fields: %+v", oor)
	}
	if result.Reason != "Nº de Animais must be between 500 and 2000, got 3000" {
		t.Errorf("unexpected reason: %q", result.Reason)
	}
}

func TestValidateRangeIsPure(t *testing.T) {
	first := ValidateRange(3000, 500, 2000, "a")
	_ = ValidateRange(1000, 500, 2000, "a")
	second := ValidateRange(3000, 500, 2000, "a")
	if first.Accepted != second.Accepted || first.Reason != second.Reason {
		t.Errorf("expected identical results for identical calls, got %+v and %+v", first, second)
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		field    string
		value    float64
		accepted bool
	}{
		{constants.FieldHerdSize, 1000, true},
		{constants.FieldHerdSize, 3000, false},
		{constants.FieldUnitCost, 30, true},
		{constants.FieldUnitCost, 61, false},
		{constants.FieldRevenue, 100000, true},
		{constants.FieldRevenue, 49999, false},
		{constants.FieldVariableCost, 20000, true},
		{constants.FieldVariableCost, 50001, false},
		{constants.FieldFixedCost, 30000, true},
		{constants.FieldFixedCost, 9999, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			result, err := ValidateField(tt.field, tt.value)
			if err != nil {
				t.Fatalf("ValidateField() error = %v", err)
			}
			if result.Accepted != tt.accepted {
				t.Errorf("ValidateField(%s, %v) accepted = %v, expected %v", tt.field, tt.value, result.Accepted, tt.accepted)
			}
		})
	}
}

func TestValidateFieldUnknown(t *testing.T) {
	if _, err := ValidateField("weight", 10); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}
