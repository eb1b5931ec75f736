// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/herd-cost/pkg/constants"
)

const (
	// ReportDateLayout is the format expected in config files and shown in
	// the dashboard header.
	ReportDateLayout = constants.ReportDateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ReportDate parses a configured report date. An empty value falls back to
// the given time truncated to the day.
func ReportDate(value string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, fallback.Location()), nil
	}
	return time.Parse(ReportDateLayout, trimmed)
}

// FormatReportDate renders t the way the dashboard header shows it.
func FormatReportDate(t time.Time) string {
	return t.Format(ReportDateLayout)
}
