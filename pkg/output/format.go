// Package output provides utilities for formatting and displaying dashboard results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/herd-cost/internal/chart"
	"github.com/iwvelando/herd-cost/internal/export"
	"github.com/iwvelando/herd-cost/internal/formulas"
	"github.com/iwvelando/herd-cost/internal/session"
	"github.com/iwvelando/herd-cost/pkg/datetime"
	"github.com/iwvelando/herd-cost/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(view session.View) {
	_ = WritePretty(os.Stdout, view)
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, view session.View) error {
	p := message.NewPrinter(language.BrazilianPortuguese)
	snap := view.Snapshot
	dash := view.Dashboard

	var b strings.Builder
	fmt.Fprintf(&b, "--- Dashboard de Custos - %s ---\n", datetime.FormatReportDate(view.ReportDate))
	fmt.Fprintf(&b, "Lucro Total: %s\n\n", dash.TotalProfit)

	b.WriteString("Parâmetros\n")
	_, _ = p.Fprintf(&b, "  Nº de Animais:  %d\n", snap.Inputs.HerdSize)
	fmt.Fprintf(&b, "  Custo Unitário: %s\n", format.Currency(snap.Inputs.UnitCost))
	fmt.Fprintf(&b, "  Receita Total:  %s\n", format.Currency(snap.Inputs.Revenue))
	fmt.Fprintf(&b, "  Custo Variável: %s\n", format.Currency(snap.Inputs.VariableCost))
	fmt.Fprintf(&b, "  Custo Fixo:     %s\n\n", format.Currency(snap.Inputs.FixedCost))

	b.WriteString("Indicador      | Valor\n")
	b.WriteString("_________      | _____\n")
	for _, kpi := range dash.KPIs {
		fmt.Fprintf(&b, "%-14s | %s\n", kpi.Title, kpi.Value)
	}
	b.WriteString("\n")

	writeSeries(&b, dash.Bar, format.NumericCurrency)
	writeSeries(&b, dash.Pie, format.Currency)

	fmt.Fprintf(&b, "%s\n", chart.TitleTrend)
	if dash.TrendEmpty {
		fmt.Fprintf(&b, "  %s\n", dash.TrendNotice)
	} else {
		for i, label := range dash.Trend.Labels {
			fmt.Fprintf(&b, "  %s | %s\n", label, format.Currency(dash.Trend.Values[i]))
		}
	}
	b.WriteString("\n")

	b.WriteString("Fórmulas dos Indicadores\n")
	b.WriteString(formulas.Markdown())

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSeries(b *strings.Builder, s chart.Series, render func(float64) string) {
	fmt.Fprintf(b, "%s\n", s.Title)
	for i, label := range s.Labels {
		fmt.Fprintf(b, "  %s | %s\n", label, render(s.Values[i]))
	}
	b.WriteString("\n")
}

// CsvFormat outputs the export document in comma-separated value format.
func CsvFormat(view session.View) {
	_ = export.WriteCSV(os.Stdout, export.Build(view.Snapshot))
}

// CsvString returns the export document as a string.
func CsvString(view session.View) string {
	return export.Build(view.Snapshot).String()
}

// JSONFormat outputs the chart-ready view as indented JSON.
func JSONFormat(view session.View) {
	_ = WriteJSON(os.Stdout, view)
}

// WriteJSON writes the chart-ready view as indented JSON to w.
func WriteJSON(w io.Writer, view session.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
