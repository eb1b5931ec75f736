// Package constants provides shared constants for the herd-cost application.
package constants

import "time"

// ReportDateLayout is the date format shown in the dashboard header.
const ReportDateLayout = "02/01/2006"

// FileDateLayout is the date format embedded in export file names.
const FileDateLayout = "2006-01-02"

// Production constants
const (
	// AverageBatchWeightKg is the fixed batch weight used for the cost per kilogram.
	AverageBatchWeightKg = 4000.0

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// ThousandsDivisor scales the total cost for the category bar chart.
	ThousandsDivisor = 1000.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// MonthLabels are the canonical month labels in display order.
var MonthLabels = [MonthsPerYear]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthlyScaleFactors are applied to the current profit to build the
// profit trend, one per entry of MonthLabels.
var MonthlyScaleFactors = [MonthsPerYear]float64{
	0.80, 0.85, 0.90, 1.00, 1.10, 1.15,
	1.20, 1.25, 1.30, 1.35, 1.40, 1.45,
}

// DefaultMonths is the month selection shown before any toggle.
var DefaultMonths = []string{"Jan", "Fev", "Mar", "Abr", "Mai"}

// Input field names, as used in configuration files and API payloads.
const (
	FieldHerdSize     = "herdSize"
	FieldUnitCost     = "unitCost"
	FieldRevenue      = "revenue"
	FieldVariableCost = "variableCost"
	FieldFixedCost    = "fixedCost"
)

// Bounds is an inclusive [Min, Max] policy range for one input.
type Bounds struct {
	Min   float64
	Max   float64
	Label string
}

// InputBounds holds the accepted range of every input field.
var InputBounds = map[string]Bounds{
	FieldHerdSize:     {Min: 500, Max: 2000, Label: "Nº de Animais"},
	FieldUnitCost:     {Min: 30, Max: 60, Label: "Custo Unitário (R$)"},
	FieldRevenue:      {Min: 50000, Max: 100000, Label: "Receita Total (R$)"},
	FieldVariableCost: {Min: 20000, Max: 50000, Label: "Custo Variável (R$)"},
	FieldFixedCost:    {Min: 10000, Max: 30000, Label: "Custo Fixo (R$)"},
}

// InputFields lists the input field names in display order.
var InputFields = []string{
	FieldHerdSize,
	FieldUnitCost,
	FieldRevenue,
	FieldVariableCost,
	FieldFixedCost,
}

// Default input values.
const (
	DefaultHerdSize     = 1000
	DefaultUnitCost     = 45.0
	DefaultRevenue      = 65000.0
	DefaultVariableCost = 30000.0
	DefaultFixedCost    = 20000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV export format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the chart-ready JSON format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. HERDCOST_INPUTS_REVENUE.
	EnvPrefix = "HERDCOST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultServerCommitDelay simulates latency before a change is committed.
	DefaultServerCommitDelay = 300 * time.Millisecond

	// DefaultServerExportDelay simulates latency before an export completes.
	DefaultServerExportDelay = 300 * time.Millisecond
)

// Export constants
const (
	// ExportFilePrefix starts every exported CSV file name.
	ExportFilePrefix = "dashboard-custos"

	// ExportNoMonthsToken replaces the month list when nothing is selected.
	ExportNoMonthsToken = "sem-meses"

	// EmptySelectionNotice is shown instead of the profit trend chart.
	EmptySelectionNotice = "Nenhum mês selecionado"
)
