// Package session owns the dashboard state and applies input changes to it.
package session

import (
	"errors"
	"fmt"

	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/validation"
)

// State is the complete, transient state of one dashboard session.
type State struct {
	Inputs    metrics.CostInputs
	Selection selection.Selection
	Busy      bool
}

// NewState returns a state holding the given inputs and selection.
func NewState(inputs metrics.CostInputs, sel selection.Selection) State {
	return State{Inputs: inputs, Selection: sel}
}

// Event is a discrete change requested by the user.
type Event interface {
	fmt.Stringer
	apply(State) (State, error)
}

// SetInput proposes a new value for one input.
type SetInput struct {
	Field string
	Value float64
}

func (e SetInput) apply(s State) (State, error) {
	result, err := validation.ValidateField(e.Field, e.Value)
	if err != nil {
		return s, err
	}
	if !result.Accepted {
		return s, result.Err()
	}
	inputs, err := s.Inputs.With(e.Field, e.Value)
	if err != nil {
		return s, err
	}
	s.Inputs = inputs
	return s, nil
}

func (e SetInput) String() string {
	return fmt.Sprintf("set %s=%g", e.Field, e.Value)
}

// ToggleMonth adds or removes a month from the trend selection.
type ToggleMonth struct {
	Month string
}

func (e ToggleMonth) apply(s State) (State, error) {
	sel, err := s.Selection.Toggle(e.Month)
	if err != nil {
		return s, err
	}
	s.Selection = sel
	return s, nil
}

func (e ToggleMonth) String() string {
	return fmt.Sprintf("toggle %s", e.Month)
}

// Reduce applies event to state and returns the new state. A rejected event
// returns the unchanged state together with the reason.
func Reduce(state State, event Event) (State, error) {
	if event == nil {
		return state, errors.New("nil event")
	}
	return event.apply(state)
}

// Snapshot recomputes every derived value of the state.
func (s State) Snapshot() (metrics.Snapshot, error) {
	return metrics.NewSnapshot(s.Inputs, s.Selection)
}
