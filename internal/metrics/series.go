package metrics

import (
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/constants"
)

// MonthlyProfitPoint is one month of the synthetic profit trend.
type MonthlyProfitPoint struct {
	Month  string  `json:"month"`
	Factor float64 `json:"factor"`
	Profit float64 `json:"profit"`
}

// Series scales profit by the fixed monthly factors. It always returns one
// point per canonical month, in calendar order.
func Series(profit float64) []MonthlyProfitPoint {
	points := make([]MonthlyProfitPoint, constants.MonthsPerYear)
	for i, month := range constants.MonthLabels {
		factor := constants.MonthlyScaleFactors[i]
		points[i] = MonthlyProfitPoint{
			Month:  month,
			Factor: factor,
			Profit: profit * factor,
		}
	}
	return points
}

// Filter keeps the points whose month is selected, preserving order.
func Filter(series []MonthlyProfitPoint, sel selection.Selection) []MonthlyProfitPoint {
	filtered := make([]MonthlyProfitPoint, 0, sel.Len())
	for _, point := range series {
		if sel.Contains(point.Month) {
			filtered = append(filtered, point)
		}
	}
	return filtered
}
