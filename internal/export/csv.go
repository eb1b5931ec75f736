// Package export serializes the dashboard into a downloadable CSV document.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/herd-cost/internal/chart"
	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/pkg/constants"
)

// HeaderRow opens every section of the document.
var HeaderRow = []string{"Indicador", "Valor"}

// Row is one label/value pair.
type Row struct {
	Label string
	Value float64
}

// Section is one blank-line-separated block of the document. An empty Title
// means the header row starts the section.
type Section struct {
	Title string
	Rows  []Row
}

// Document is the full export.
type Document struct {
	Sections []Section
}

// Build collects the indicators followed by one section per chart. The trend
// section is kept, without rows, when no month is selected.
func Build(snap metrics.Snapshot) Document {
	d := snap.Derived
	doc := Document{Sections: []Section{{
		Rows: []Row{
			{Label: "Custo Total", Value: d.TotalCost},
			{Label: "Custo/Animal", Value: d.CostPerAnimal},
			{Label: "Custo/kg", Value: d.CostPerKg},
			{Label: "Margem Bruta %", Value: d.GrossMarginPct},
			{Label: "Lucro", Value: d.Profit},
		},
	}}}

	doc.Sections = append(doc.Sections,
		fromSeries(chart.Categories(d)),
		fromSeries(chart.Distribution(snap.Inputs)),
	)

	trend, ok := chart.Trend(snap)
	if !ok {
		trend = chart.Series{Title: chart.TitleTrend}
	}
	doc.Sections = append(doc.Sections, fromSeries(trend))
	return doc
}

func fromSeries(s chart.Series) Section {
	section := Section{Title: s.Title, Rows: make([]Row, 0, s.Len())}
	for i, label := range s.Labels {
		section.Rows = append(section.Rows, Row{Label: label, Value: s.Values[i]})
	}
	return section
}

// WriteCSV writes the document as comma-separated text.
func WriteCSV(w io.Writer, doc Document) error {
	for i, section := range doc.Sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeSection(w, section); err != nil {
			return fmt.Errorf("failed to write section %d: %w", i, err)
		}
	}
	return nil
}

func writeSection(w io.Writer, section Section) error {
	cw := csv.NewWriter(w)
	if section.Title != "" {
		if err := cw.Write([]string{section.Title}); err != nil {
			return err
		}
	}
	if err := cw.Write(HeaderRow); err != nil {
		return err
	}
	for _, row := range section.Rows {
		if err := cw.Write([]string{row.Label, FormatValue(row.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// String renders the document to a string.
func (doc Document) String() string {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, doc); err != nil {
		return ""
	}
	return buf.String()
}

// FormatValue writes a number with two decimals and a '.' separator.
func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// FileName embeds the selected months and the report date,
// e.g. "dashboard-custos_Jan-Fev-Mar_2025-10-08.csv".
func FileName(sel selection.Selection, reportDate time.Time) string {
	months := constants.ExportNoMonthsToken
	if sel.Len() > 0 {
		months = strings.Join(sel.Months(), "-")
	}
	return fmt.Sprintf("%s_%s_%s.csv", constants.ExportFilePrefix, months, reportDate.Format(constants.FileDateLayout))
}
