package metrics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/constants"
)

func TestSeries(t *testing.T) {
	expectedFactors := []float64{0.80, 0.85, 0.90, 1.00, 1.10, 1.15, 1.20, 1.25, 1.30, 1.35, 1.40, 1.45}

	series := Series(15000)
	if len(series) != 12 {
		t.Fatalf("expected 12 points, got %d", len(series))
	}
	for i, point := range series {
		if point.Month != constants.MonthLabels[i] {
			t.Errorf("point %d month = %s, expected %s", i, point.Month, constants.MonthLabels[i])
		}
		if point.Factor != expectedFactors[i] {
			t.Errorf("point %d factor = %v, expected %v", i, point.Factor, expectedFactors[i])
		}
		if point.Profit != 15000*expectedFactors[i] {
			t.Errorf("point %d profit = %v, expected %v", i, point.Profit, 15000*expectedFactors[i])
		}
	}
}

func TestSeriesNegativeProfit(t *testing.T) {
	profit := -1000.0
	series := Series(profit)
	if series[0].Profit != profit*constants.MonthlyScaleFactors[0] || series[0].Profit >= 0 {
		t.Errorf("expected a negative Jan profit of ~-800, got %v", series[0].Profit)
	}
}

func TestFilter(t *testing.T) {
	series := Series(15000)

	tests := []struct {
		name   string
		months []string
		want   []string
	}{
		{"Default selection", []string{"Jan", "Fev", "Mar", "Abr", "Mai"}, []string{"Jan", "Fev", "Mar", "Abr", "Mai"}},
		{"Out of order input", []string{"Dez", "Jan"}, []string{"Jan", "Dez"}},
		{"All months", constants.MonthLabels[:], constants.MonthLabels[:]},
		{"Empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := selection.New(tt.months...)
			if err != nil {
				t.Fatalf("selection.New error = %v", err)
			}
			filtered := Filter(series, sel)
			if len(filtered) != sel.Len() {
				t.Errorf("filtered length %d != selection size %d", len(filtered), sel.Len())
			}
			got := make([]string, 0, len(filtered))
			for _, point := range filtered {
				got = append(got, point.Month)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() months mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
