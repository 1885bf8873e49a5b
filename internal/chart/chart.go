package chart

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"boxoffice/internal/money"
	"boxoffice/internal/services"
	"boxoffice/internal/table"
)

const stageChart = "chart"

// Kind selects the chart layout.
type Kind int

const (
	// Bar draws one horizontal bar per row.
	Bar Kind = iota
	// Scatter plots two numeric columns against each other.
	Scatter
)

func (k Kind) String() string {
	switch k {
	case Bar:
		return "bar"
	case Scatter:
		return "scatter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Image formats accepted by Encode.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Spec describes one chart.
type Spec struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Category and Value select the bar chart columns.
	Category string
	Value    string

	// X and Y select the scatter columns.
	X string
	Y string

	Palette   []color.Color
	MeanLine  bool
	Formatter money.Formatter
}

// Chart is a rendered plot ready to encode.
type Chart struct {
	Plot *plot.Plot
	// Mean is set when the spec asked for a mean line.
	Mean    decimal.Decimal
	HasMean bool
}

// Render builds a chart from the table according to spec. Missing or
// mistyped columns and empty tables are ErrSchema.
func Render(t *table.Table, spec Spec) (*Chart, error) {
	if t == nil || t.Len() == 0 {
		return nil, services.Wrap(services.ErrSchema, stageChart, "render", "no rows to plot", nil)
	}
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	switch spec.Kind {
	case Bar:
		return renderBar(p, t, spec)
	case Scatter:
		return renderScatter(p, t, spec)
	default:
		return nil, services.Wrap(services.ErrValidation, stageChart, "render", "unsupported chart kind "+spec.Kind.String(), nil)
	}
}

func renderBar(p *plot.Plot, t *table.Table, spec Spec) (*Chart, error) {
	names, err := t.Strings(spec.Category)
	if err != nil {
		return nil, err
	}
	values, err := t.Ints(spec.Value)
	if err != nil {
		return nil, err
	}

	n := len(values)
	labels := make([]string, n)
	for i, v := range values {
		// First row on top: row i sits at position n-1-i.
		pos := n - 1 - i
		bar, err := plotter.NewBarChart(plotter.Values{float64(v)}, vg.Points(14))
		if err != nil {
			return nil, services.Wrap(services.ErrSchema, stageChart, "bar", "build bar", err)
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.Color = pick(spec.Palette, i)
		bar.LineStyle.Width = 0
		p.Add(bar)
		labels[pos] = names[i]
	}
	p.NominalY(labels...)
	p.X.Tick.Marker = currencyTicks(spec.Formatter)

	out := &Chart{Plot: p}
	if spec.MeanLine {
		mean, err := table.Mean(t, spec.Value)
		if err != nil {
			return nil, err
		}
		m := mean.InexactFloat64()
		line, err := plotter.NewLine(plotter.XYs{{X: m, Y: -0.5}, {X: m, Y: float64(n) - 0.5}})
		if err != nil {
			return nil, services.Wrap(services.ErrSchema, stageChart, "mean", "build mean line", err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		line.LineStyle.Color = color.Black
		p.Add(line)
		p.Legend.Add("mean "+spec.Formatter.Format(m, 0), line)
		p.Legend.Top = true
		out.Mean = mean
		out.HasMean = true
	}
	return out, nil
}

func renderScatter(p *plot.Plot, t *table.Table, spec Spec) (*Chart, error) {
	xs, err := t.Ints(spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Ints(spec.Y)
	if err != nil {
		return nil, err
	}
	points := make(plotter.XYs, len(xs))
	for i := range xs {
		points[i].X = float64(xs[i])
		points[i].Y = float64(ys[i])
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, services.Wrap(services.ErrSchema, stageChart, "scatter", "build scatter", err)
	}
	palette := spec.Palette
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: pick(palette, i), Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	}
	p.Add(scatter, plotter.NewGrid())
	p.X.Tick.Marker = currencyTicks(spec.Formatter)
	p.Y.Tick.Marker = currencyTicks(spec.Formatter)
	return &Chart{Plot: p}, nil
}

// currencyTicks keeps gonum's default tick placement and relabels the major
// ticks through the formatter.
func currencyTicks(f money.Formatter) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i, tick := range ticks {
			if tick.Label == "" {
				continue
			}
			ticks[i].Label = f.Format(tick.Value, i)
		}
		return ticks
	})
}

// Encode writes the chart as png or svg at width x height inches.
func (c *Chart) Encode(w io.Writer, format string, width, height float64) error {
	if c == nil || c.Plot == nil {
		return services.Wrap(services.ErrValidation, stageChart, "encode", "nil chart", nil)
	}
	if width <= 0 || height <= 0 {
		return services.Wrap(services.ErrValidation, stageChart, "encode", fmt.Sprintf("invalid size %gx%g", width, height), nil)
	}
	wl := vg.Length(width) * vg.Inch
	hl := vg.Length(height) * vg.Inch

	var canvas vg.CanvasWriterTo
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPNG:
		canvas = vgimg.PngCanvas{Canvas: vgimg.New(wl, hl)}
	case FormatSVG:
		canvas = vgsvg.New(wl, hl)
	default:
		return services.Wrap(services.ErrValidation, stageChart, "encode", fmt.Sprintf("unsupported image format %q", format), nil)
	}
	c.Plot.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return services.Wrap(services.ErrTransport, stageChart, "encode", "write "+format, err)
	}
	return nil
}

// ContentType returns the MIME type for an image format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}
