package mathutil

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Regular value", 12.5, true},
		{"Zero", 0, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name          string
		val, min, max float64
		expected      bool
	}{
		{"Lower bound inclusive", 500, 500, 2000, true},
		{"Upper bound inclusive", 2000, 500, 2000, true},
		{"Inside", 1000, 500, 2000, true},
		{"Below", 499.99, 500, 2000, false},
		{"Above", 3000, 500, 2000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := InRange(tt.val, tt.min, tt.max); result != tt.expected {
				t.Errorf("InRange(%v, %v, %v) = %v, expected %v", tt.val, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Half", 50, 100, 50},
		{"Margin over revenue", 35000, 65000, 53.84615384615385},
		{"Zero total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}
