// Package chart maps a metrics snapshot into chart-ready label/value series
// and formatted KPI cards for the dashboard front end.
package chart

import (
	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/format"
)

// Chart titles, as shown above each chart and used as export section names.
const (
	TitleCategories   = "Custos por Categoria"
	TitleDistribution = "Distribuição Custos"
	TitleTrend        = "Tendência Lucro"
)

// Series is the data contract consumed by the charting front end.
type Series struct {
	Title  string    `json:"title"`
	Name   string    `json:"name,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// Len returns the number of label/value pairs.
func (s Series) Len() int {
	return len(s.Labels)
}

// KPI is one summary card.
type KPI struct {
	Title string  `json:"title"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
	Color string  `json:"color"`
}

// Dashboard holds everything the front end renders.
type Dashboard struct {
	KPIs        []KPI   `json:"kpis"`
	TotalProfit string  `json:"totalProfit"`
	Bar         Series  `json:"bar"`
	Pie         Series  `json:"pie"`
	Trend       *Series `json:"trend,omitempty"`
	TrendEmpty  bool    `json:"trendEmpty"`
	TrendNotice string  `json:"trendNotice,omitempty"`
}

// Build assembles the dashboard from a snapshot. When no month is selected
// Trend is nil and TrendEmpty is set, so the caller shows the notice instead
// of an empty chart.
func Build(snap metrics.Snapshot) Dashboard {
	d := snap.Derived
	dash := Dashboard{
		KPIs:        KPIs(d),
		TotalProfit: format.Currency(d.Profit),
		Bar:         Categories(d),
		Pie:         Distribution(snap.Inputs),
	}

	trend, ok := Trend(snap)
	if !ok {
		dash.TrendEmpty = true
		dash.TrendNotice = constants.EmptySelectionNotice
		return dash
	}
	dash.Trend = &trend
	return dash
}

// KPIs returns the four summary cards.
func KPIs(d metrics.Derived) []KPI {
	return []KPI{
		{Title: "Custo Total", Value: format.Currency(d.TotalCost), Raw: d.TotalCost, Color: "#EF4444"},
		{Title: "Custo/Animal", Value: format.Currency(d.CostPerAnimal), Raw: d.CostPerAnimal, Color: "#F97316"},
		{Title: "Custo/kg", Value: format.Currency(d.CostPerKg), Raw: d.CostPerKg, Color: "#FBBF24"},
		{Title: "Margem Bruta", Value: format.Percent(d.GrossMarginPct), Raw: d.GrossMarginPct, Color: "#10B981"},
	}
}

// Categories returns the four-bar category chart. Total cost is expressed
// in thousands so it shares a scale with the per-unit values.
func Categories(d metrics.Derived) Series {
	return Series{
		Title:  TitleCategories,
		Name:   "Valores",
		Labels: []string{"Custo Total (k)", "Custo/Animal", "Custo/kg", "Margem Bruta %"},
		Values: []float64{d.TotalCost / constants.ThousandsDivisor, d.CostPerAnimal, d.CostPerKg, d.GrossMarginPct},
		Colors: []string{"#EF4444", "#F97316", "#FBBF24", "#10B981"},
	}
}

// Distribution returns the variable versus fixed cost proportion.
func Distribution(in metrics.CostInputs) Series {
	return Series{
		Title:  TitleDistribution,
		Labels: []string{"Variáveis", "Fixos"},
		Values: []float64{in.VariableCost, in.FixedCost},
		Colors: []string{"#3B82F6", "#6B7280"},
	}
}

// Trend returns the profit series of the selected months. ok is false when
// the selection is empty.
func Trend(snap metrics.Snapshot) (Series, bool) {
	if snap.TrendEmpty() {
		return Series{}, false
	}
	s := Series{
		Title:  TitleTrend,
		Name:   "Lucro Mensal",
		Labels: make([]string, 0, len(snap.Selected)),
		Values: make([]float64, 0, len(snap.Selected)),
		Colors: []string{"#8B5CF6"},
	}
	for _, point := range snap.Selected {
		s.Labels = append(s.Labels, point.Month)
		s.Values = append(s.Values, point.Profit)
	}
	return s, true
}
