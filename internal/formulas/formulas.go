// Package formulas holds the indicator reference table shown under the
// dashboard charts.
package formulas

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Entry is one row of the reference table.
type Entry struct {
	Indicator string `json:"indicator"`
	Formula   string `json:"formula"`
}

// Table lists the indicators in display order.
var Table = []Entry{
	{Indicator: "Custo Total Lote", Formula: "Soma de todos os custos associados (variável + fixo)"},
	{Indicator: "Custo por Animal", Formula: "Custo total / nº de animais"},
	{Indicator: "Custo por kg", Formula: "Custo total / 4000 kg (peso médio do lote)"},
	{Indicator: "Margem Bruta", Formula: "(Receita - custo variável) / receita × 100"},
	{Indicator: "Lucro", Formula: "Receita total - Custo total"},
}

var renderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders the table as a GitHub-flavoured Markdown table.
func Markdown() string {
	var b strings.Builder
	b.WriteString("| Indicador | Fórmula |\n")
	b.WriteString("| --- | --- |\n")
	for _, entry := range Table {
		fmt.Fprintf(&b, "| %s | %s |\n", escape(entry.Indicator), escape(entry.Formula))
	}
	return b.String()
}

// HTML renders the Markdown table to an HTML fragment.
func HTML() (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(Markdown()), &buf); err != nil {
		return "", fmt.Errorf("failed to render formula table: %w", err)
	}
	return buf.String(), nil
}

func escape(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}
