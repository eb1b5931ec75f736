// Package metrics derives the cost and profit indicators of a production
// batch from its five inputs.
package metrics

import (
	"errors"
	"fmt"

	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/mathutil"
	"github.com/iwvelando/herd-cost/pkg/validation"
)

// ErrDivisionByZero is returned when herd size or revenue is zero.
var ErrDivisionByZero = errors.New("division by zero")

// CostInputs holds the user-adjustable parameters of a batch.
type CostInputs struct {
	HerdSize     int     `json:"herdSize" mapstructure:"herdSize" yaml:"herdSize"`
	UnitCost     float64 `json:"unitCost" mapstructure:"unitCost" yaml:"unitCost"`
	Revenue      float64 `json:"revenue" mapstructure:"revenue" yaml:"revenue"`
	VariableCost float64 `json:"variableCost" mapstructure:"variableCost" yaml:"variableCost"`
	FixedCost    float64 `json:"fixedCost" mapstructure:"fixedCost" yaml:"fixedCost"`
}

// DefaultInputs returns the values the dashboard starts with.
func DefaultInputs() CostInputs {
	return CostInputs{
		HerdSize:     constants.DefaultHerdSize,
		UnitCost:     constants.DefaultUnitCost,
		Revenue:      constants.DefaultRevenue,
		VariableCost: constants.DefaultVariableCost,
		FixedCost:    constants.DefaultFixedCost,
	}
}

// Field returns the value of the named input.
func (in CostInputs) Field(field string) (float64, error) {
	switch field {
	case constants.FieldHerdSize:
		return float64(in.HerdSize), nil
	case constants.FieldUnitCost:
		return in.UnitCost, nil
	case constants.FieldRevenue:
		return in.Revenue, nil
	case constants.FieldVariableCost:
		return in.VariableCost, nil
	case constants.FieldFixedCost:
		return in.FixedCost, nil
	}
	return 0, fmt.Errorf("%w: %s", validation.ErrUnknownField, field)
}

// With returns a copy of the inputs with the named field replaced. Herd size
// is truncated to a whole number of animals.
func (in CostInputs) With(field string, value float64) (CostInputs, error) {
	switch field {
	case constants.FieldHerdSize:
		in.HerdSize = int(value)
	case constants.FieldUnitCost:
		in.UnitCost = value
	case constants.FieldRevenue:
		in.Revenue = value
	case constants.FieldVariableCost:
		in.VariableCost = value
	case constants.FieldFixedCost:
		in.FixedCost = value
	default:
		return in, fmt.Errorf("%w: %s", validation.ErrUnknownField, field)
	}
	return in, nil
}

// Validate checks every field against its policy bounds and joins all
// failures.
func (in CostInputs) Validate() error {
	var errs []error
	for _, field := range constants.InputFields {
		value, err := in.Field(field)
		if err != nil {
			return err
		}
		result, err := validation.ValidateField(field, value)
		if err != nil {
			return err
		}
		if !result.Accepted {
			errs = append(errs, result.Err())
		}
	}
	return errors.Join(errs...)
}

// Derived holds the indicators computed from CostInputs.
type Derived struct {
	TotalCost      float64 `json:"totalCost"`
	CostPerAnimal  float64 `json:"costPerAnimal"`
	CostPerKg      float64 `json:"costPerKg"`
	GrossMarginPct float64 `json:"grossMarginPct"`
	Profit         float64 `json:"profit"`
}

// Compute derives all indicators from the inputs. It never returns
// non-finite values: a zero herd size or revenue yields ErrDivisionByZero.
func Compute(in CostInputs) (Derived, error) {
	if in.HerdSize == 0 {
		return Derived{}, fmt.Errorf("cost per animal: %s is zero: %w", constants.FieldHerdSize, ErrDivisionByZero)
	}
	if in.Revenue == 0 {
		return Derived{}, fmt.Errorf("gross margin: %s is zero: %w", constants.FieldRevenue, ErrDivisionByZero)
	}

	totalCost := in.VariableCost + in.FixedCost
	return Derived{
		TotalCost:      totalCost,
		CostPerAnimal:  totalCost / float64(in.HerdSize),
		CostPerKg:      totalCost / constants.AverageBatchWeightKg,
		GrossMarginPct: mathutil.CalculatePercentage(in.Revenue-in.VariableCost, in.Revenue),
		Profit:         in.Revenue - totalCost,
	}, nil
}

// Snapshot bundles the inputs with everything derived from them.
type Snapshot struct {
	Inputs    CostInputs           `json:"inputs"`
	Derived   Derived              `json:"derived"`
	Series    []MonthlyProfitPoint `json:"series"`
	Selected  []MonthlyProfitPoint `json:"selected"`
	Months    []string             `json:"months"`
	Selection selection.Selection  `json:"-"`
}

// TrendEmpty reports whether the month selection leaves nothing to plot.
func (s Snapshot) TrendEmpty() bool {
	return len(s.Selected) == 0
}

// NewSnapshot recomputes every derived value from scratch.
func NewSnapshot(in CostInputs, sel selection.Selection) (Snapshot, error) {
	derived, err := Compute(in)
	if err != nil {
		return Snapshot{}, err
	}
	series := Series(derived.Profit)
	return Snapshot{
		Inputs:    in,
		Derived:   derived,
		Series:    series,
		Selected:  Filter(series, sel),
		Months:    sel.Months(),
		Selection: sel,
	}, nil
}
