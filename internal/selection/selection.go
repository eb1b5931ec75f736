// Package selection tracks which months are included in the profit trend.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/herd-cost/pkg/constants"
)

// ErrUnknownMonth is returned for labels outside constants.MonthLabels.
var ErrUnknownMonth = errors.New("unknown month")

// Selection is an immutable set of canonical month labels. The zero value is
// an uninitialized selection, which is distinct from an empty one.
type Selection struct {
	months      map[string]struct{}
	initialized bool
}

// New returns an initialized selection holding the given months. Unknown
// labels are rejected.
func New(months ...string) (Selection, error) {
	s := Selection{months: make(map[string]struct{}, len(months)), initialized: true}
	for _, month := range months {
		label, err := Canonical(month)
		if err != nil {
			return Selection{}, err
		}
		s.months[label] = struct{}{}
	}
	return s, nil
}

// Default returns the selection shown before any toggle.
func Default() Selection {
	s, _ := New(constants.DefaultMonths...)
	return s
}

// Canonical maps a month label to its canonical spelling, ignoring case and
// surrounding whitespace.
func Canonical(month string) (string, error) {
	trimmed := strings.TrimSpace(month)
	for _, label := range constants.MonthLabels {
		if strings.EqualFold(label, trimmed) {
			return label, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMonth, month)
}

// Toggle removes month when present and adds it otherwise. The receiver is
// left untouched.
func (s Selection) Toggle(month string) (Selection, error) {
	label, err := Canonical(month)
	if err != nil {
		return s, err
	}

	next := Selection{months: make(map[string]struct{}, len(s.months)+1), initialized: true}
	for m := range s.months {
		next.months[m] = struct{}{}
	}
	if _, ok := next.months[label]; ok {
		delete(next.months, label)
	} else {
		next.months[label] = struct{}{}
	}
	return next, nil
}

// Contains reports whether month is selected.
func (s Selection) Contains(month string) bool {
	_, ok := s.months[month]
	return ok
}

// Len returns the number of selected months.
func (s Selection) Len() int {
	return len(s.months)
}

// Empty reports whether an initialized selection holds no months.
func (s Selection) Empty() bool {
	return s.initialized && len(s.months) == 0
}

// Initialized reports whether the selection was built with New or Toggle.
func (s Selection) Initialized() bool {
	return s.initialized
}

// Months returns the selected labels in canonical calendar order.
func (s Selection) Months() []string {
	months := make([]string, 0, len(s.months))
	for _, label := range constants.MonthLabels {
		if _, ok := s.months[label]; ok {
			months = append(months, label)
		}
	}
	return months
}

// Equal reports whether both selections hold the same months.
func (s Selection) Equal(other Selection) bool {
	if len(s.months) != len(other.months) {
		return false
	}
	for m := range s.months {
		if _, ok := other.months[m]; !ok {
			return false
		}
	}
	return true
}

func (s Selection) String() string {
	return strings.Join(s.Months(), ",")
}
