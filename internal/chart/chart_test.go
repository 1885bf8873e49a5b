package chart_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/plot"

	"boxoffice/internal/chart"
	"boxoffice/internal/money"
	"boxoffice/internal/services"
	"boxoffice/internal/table"
)

func revenueTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(table.Schema{Columns: []table.ColumnSchema{
		{Name: table.ColumnFilm, Kind: table.KindString},
		{Name: table.ColumnRevenue, Kind: table.KindInt},
		{Name: table.ColumnBudget, Kind: table.KindInt},
	}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	rows := []struct {
		film    string
		revenue int64
		budget  int64
	}{
		{"First", 10, -4},
		{"Second", 20, -5},
		{"Third", 30, -6},
	}
	for _, r := range rows {
		if err := tbl.Append(r.film, r.revenue, r.budget); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}
	return tbl
}

func usd(t *testing.T) money.Formatter {
	t.Helper()
	f, err := money.NewFormatter("en-US", "USD", "$")
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return f
}

func barSpec(t *testing.T) chart.Spec {
	t.Helper()
	return chart.Spec{
		Kind:      chart.Bar,
		Title:     "Revenue",
		XLabel:    "Revenue",
		YLabel:    "Film",
		Category:  table.ColumnFilm,
		Value:     table.ColumnRevenue,
		MeanLine:  true,
		Formatter: usd(t),
	}
}

func TestRenderBarComputesMean(t *testing.T) {
	c, err := chart.Render(revenueTable(t), barSpec(t))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !c.HasMean {
		t.Fatal("expected mean line")
	}
	if c.Mean.String() != "20" {
		t.Fatalf("expected mean 20, got %s", c.Mean)
	}
}

func TestRenderBarWithoutMeanLine(t *testing.T) {
	spec := barSpec(t)
	spec.MeanLine = false
	c, err := chart.Render(revenueTable(t), spec)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if c.HasMean {
		t.Fatal("did not expect a mean line")
	}
}

func TestRenderBarPutsFirstRowOnTop(t *testing.T) {
	c, err := chart.Render(revenueTable(t), barSpec(t))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	ticks := c.Plot.Y.Tick.Marker.Ticks(0, 2)
	labels := make(map[float64]string, len(ticks))
	for _, tick := range ticks {
		labels[tick.Value] = tick.Label
	}
	if labels[2] != "First" || labels[0] != "Third" {
		t.Fatalf("unexpected category order: %v", labels)
	}
}

func TestRenderBarFormatsValueAxisAsCurrency(t *testing.T) {
	c, err := chart.Render(revenueTable(t), barSpec(t))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	labelled := 0
	for _, tick := range c.Plot.X.Tick.Marker.Ticks(0, 3_000_000_000) {
		if tick.Label == "" {
			continue
		}
		labelled++
		if !strings.HasPrefix(tick.Label, "$") {
			t.Fatalf("expected currency label, got %q", tick.Label)
		}
	}
	if labelled == 0 {
		t.Fatal("expected labelled ticks")
	}
}

func TestRenderMissingColumnIsSchemaError(t *testing.T) {
	spec := barSpec(t)
	spec.Value = table.ColumnGross
	_, err := chart.Render(revenueTable(t), spec)
	if !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestRenderEmptyTableIsSchemaError(t *testing.T) {
	tbl, err := table.New(table.Schema{Columns: []table.ColumnSchema{
		{Name: table.ColumnFilm, Kind: table.KindString},
		{Name: table.ColumnRevenue, Kind: table.KindInt},
	}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := chart.Render(tbl, barSpec(t)); !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestRenderScatterFormatsBothAxes(t *testing.T) {
	spec := chart.Spec{
		Kind:      chart.Scatter,
		Title:     "Revenue vs gross",
		X:         table.ColumnRevenue,
		Y:         table.ColumnBudget,
		Formatter: usd(t),
	}
	c, err := chart.Render(revenueTable(t), spec)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for _, ticks := range [][]string{labels(c.Plot.X.Tick.Marker.Ticks(0, 1000)), labels(c.Plot.Y.Tick.Marker.Ticks(-1000, 0))} {
		for _, label := range ticks {
			if !strings.Contains(label, "$") {
				t.Fatalf("expected currency label, got %q", label)
			}
		}
	}
}

func TestEncodeFormats(t *testing.T) {
	c, err := chart.Render(revenueTable(t), barSpec(t))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	var png bytes.Buffer
	if err := c.Encode(&png, chart.FormatPNG, 4, 3); err != nil {
		t.Fatalf("Encode png returned error: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG signature")
	}
	var svg bytes.Buffer
	if err := c.Encode(&svg, chart.FormatSVG, 4, 3); err != nil {
		t.Fatalf("Encode svg returned error: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Fatal("expected svg document")
	}
	if err := c.Encode(&svg, "gif", 4, 3); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for gif, got %v", err)
	}
}

func TestParsePalette(t *testing.T) {
	colors, err := chart.ParsePalette([]string{"#1f77b4", "ff7f0e"})
	if err != nil {
		t.Fatalf("ParsePalette returned error: %v", err)
	}
	r, g, b, _ := colors[0].RGBA()
	if r>>8 != 0x1f || g>>8 != 0x77 || b>>8 != 0xb4 {
		t.Fatalf("unexpected color %v", colors[0])
	}
	if len(colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(colors))
	}
	if _, err := chart.ParsePalette([]string{"#12345"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	defaults, err := chart.ParsePalette(nil)
	if err != nil || len(defaults) == 0 {
		t.Fatalf("expected default palette, got %v (%v)", defaults, err)
	}
}

func labels(ticks []plot.Tick) []string {
	out := make([]string, 0, len(ticks))
	for _, tick := range ticks {
		if tick.Label != "" {
			out = append(out, tick.Label)
		}
	}
	return out
}
