package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/internal/session"
	"github.com/iwvelando/herd-cost/pkg/testutil"
)

func testView(t *testing.T, months ...string) session.View {
	t.Helper()
	sel, err := selection.New(months...)
	if err != nil {
		t.Fatalf("selection.New error = %v", err)
	}
	s := session.New(nil, session.NewState(metrics.DefaultInputs(), sel), session.Options{
		ReportDate: time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC),
	})
	view, err := s.View()
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	return view
}

func TestPrettyFormat(t *testing.T) {
	output := testutil.CaptureStdout(func() {
		PrettyFormat(testView(t, "Jan", "Fev"))
	})

	expected := []string{
		"--- Dashboard de Custos - 08/10/2025 ---",
		"Lucro Total: R$ 15.000,00",
		"Nº de Animais:",
		"Receita Total:  R$ 65.000,00",
		"Custo Total    | R$ 50.000,00",
		"Custo/Animal   | R$ 50,00",
		"Custo/kg       | R$ 12,50",
		"Margem Bruta   | 53,8%",
		"Custos por Categoria",
		"  Custo Total (k) | 50,00",
		"Distribuição Custos",
		"  Variáveis | R$ 30.000,00",
		"Tendência Lucro",
		"  Jan | R$ 12.000,00",
		"  Fev | R$ 12.750,00",
		"Fórmulas dos Indicadores",
		"| Indicador | Fórmula |",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q\n%s", fragment, output)
		}
	}
}

func TestPrettyFormatEmptySelection(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePretty(&buf, testView(t)); err != nil {
		t.Fatalf("WritePretty() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Tendência Lucro\n  Nenhum mês selecionado\n") {
		t.Errorf("expected empty-state notice, got:\n%s", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	view := testView(t, "Jan")
	output := testutil.CaptureStdout(func() {
		CsvFormat(view)
	})

	if output != CsvString(view) {
		t.Errorf("CsvFormat and CsvString disagree:\n%s\n---\n%s", output, CsvString(view))
	}
	if !strings.HasPrefix(output, "Indicador,Valor\n") {
		t.Errorf("CsvFormat missing header row:\n%s", output)
	}
	if strings.Count(output, "Indicador,Valor") != 4 {
		t.Errorf("expected 4 sections, got:\n%s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	output := testutil.CaptureStdout(func() {
		JSONFormat(testView(t))
	})

	var decoded struct {
		Snapshot struct {
			Derived metrics.Derived `json:"derived"`
		} `json:"snapshot"`
		Dashboard struct {
			TrendEmpty bool             `json:"trendEmpty"`
			Trend      *json.RawMessage `json:"trend"`
		} `json:"dashboard"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("JSONFormat output is not valid JSON: %v\n%s", err, output)
	}
	if decoded.Snapshot.Derived.TotalCost != 50000 {
		t.Errorf("TotalCost = %v", decoded.Snapshot.Derived.TotalCost)
	}
	if !decoded.Dashboard.TrendEmpty || decoded.Dashboard.Trend != nil {
		t.Errorf("expected empty trend in JSON output")
	}
}
