package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	got := MustParseTime(ReportDateLayout, "08/10/2025")
	if got.Year() != 2025 || got.Month() != time.October || got.Day() != 8 {
		t.Errorf("MustParseTime() = %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid date")
		}
	}()
	MustParseTime(ReportDateLayout, "2025-10-08")
}

func TestReportDate(t *testing.T) {
	fallback := time.Date(2026, time.March, 15, 17, 45, 12, 0, time.UTC)

	tests := []struct {
		name      string
		value     string
		expected  time.Time
		expectErr bool
	}{
		{"Configured date", "08/10/2025", time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC), false},
		{"Surrounding whitespace", " 31/12/2024 ", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"Empty falls back to day", "", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), false},
		{"ISO layout rejected", "2025-10-08", time.Time{}, true},
		{"Invalid day", "32/01/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReportDate(tt.value, fallback)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ReportDate(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReportDate(%q) error = %v", tt.value, err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ReportDate(%q) = %v, expected %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatReportDate(t *testing.T) {
	date := time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC)
	if got := FormatReportDate(date); got != "08/10/2025" {
		t.Errorf("FormatReportDate() = %q", got)
	}
}
