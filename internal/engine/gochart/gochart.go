// Package gochart draws chart specs as static SVG or PNG images with
// wcharczuk/go-chart.
package gochart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"

	wchart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spese-charts/internal/chart"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

var ErrUnsupportedType = errors.New("unsupported chart type")

// singleDotWidth is the smallest dot drawn for a one-point line.
const singleDotWidth = 4.0

// Engine renders with go-chart. It is safe for concurrent use.
type Engine struct {
	format   string
	provider wchart.RendererProvider
}

// New returns an engine producing the given format (svg or png).
func New(format string) (*Engine, error) {
	switch format {
	case FormatSVG:
		return &Engine{format: format, provider: escapedSVG}, nil
	case FormatPNG:
		return &Engine{format: format, provider: wchart.PNG}, nil
	default:
		return nil, fmt.Errorf("unknown go-chart format %q", format)
	}
}

// Ext returns the file extension of the produced images.
func (e *Engine) Ext() string {
	return "." + e.format
}

// Construct implements chart.Engine.
func (e *Engine) Construct(ctx context.Context, s chart.Surface, spec chart.Spec) (chart.Instance, error) {
	if err := ctx.Err(); err != nil {
		return chart.Instance{}, err
	}
	w, h := s.Size()
	var buf bytes.Buffer
	var err error
	switch {
	case spec.Empty() || (total(spec) <= 0 && !spec.Type.Cartesian()):
		err = e.blank(&buf, w, h, spec.Options.Theme)
	case spec.Type == chart.TypePie:
		c := wchart.PieChart{Width: w, Height: h, Background: background(spec), Canvas: background(spec), Values: sliceValues(spec)}
		err = c.Render(e.provider, &buf)
	case spec.Type == chart.TypeDoughnut:
		c := wchart.DonutChart{Width: w, Height: h, Background: background(spec), Canvas: background(spec), Values: sliceValues(spec)}
		err = c.Render(e.provider, &buf)
	case spec.Type == chart.TypeBar:
		err = barChart(spec, w, h).Render(e.provider, &buf)
	case spec.Type == chart.TypeLine:
		err = lineChart(spec, w, h).Render(e.provider, &buf)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, spec.Type)
	}
	if err != nil {
		return chart.Instance{}, fmt.Errorf("render %s %s: %w", spec.Mount, spec.Type, err)
	}
	n, err := s.Write(buf.Bytes())
	if err != nil {
		return chart.Instance{}, fmt.Errorf("write %s: %w", spec.Mount, err)
	}
	return chart.Instance{Mount: s.Key(), Type: spec.Type, Bytes: n}, nil
}

// FillText implements chart.Engine by drawing the text on a blank canvas.
func (e *Engine) FillText(ctx context.Context, s chart.Surface, p chart.Placeholder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w, h := s.Size()
	r, err := e.canvas(w, h, p.Background)
	if err != nil {
		return err
	}
	font, err := wchart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	size := p.FontSize
	if size <= 0 {
		size = wchart.DefaultTitleFontSize
	}
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(colorOr(p.Color, wchart.DefaultTextColor))

	x, y := p.Origin(w, h)
	if p.Centered {
		box := r.MeasureText(p.Text)
		x -= box.Width() / 2
	}
	r.Text(p.Text, x, y)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return err
	}
	_, err = s.Write(buf.Bytes())
	return err
}

// escapedSVG is the go-chart SVG provider with text bodies escaped. go-chart
// writes <text> content verbatim, so a label such as "R&D" would otherwise
// produce a document that does not parse.
func escapedSVG(w, h int) (wchart.Renderer, error) {
	r, err := wchart.SVG(w, h)
	if err != nil {
		return nil, err
	}
	return escapingRenderer{r}, nil
}

type escapingRenderer struct {
	wchart.Renderer
}

// Text escapes body for the SVG document. MeasureText still sees the raw
// text, so layout is unaffected.
func (r escapingRenderer) Text(body string, x, y int) {
	r.Renderer.Text(template.HTMLEscapeString(body), x, y)
}

func (e *Engine) blank(buf *bytes.Buffer, w, h int, theme chart.Theme) error {
	r, err := e.canvas(w, h, theme.Background)
	if err != nil {
		return err
	}
	return r.Save(buf)
}

// canvas returns a renderer with the background painted, if any.
func (e *Engine) canvas(w, h int, bg string) (wchart.Renderer, error) {
	r, err := e.provider(w, h)
	if err != nil {
		return nil, err
	}
	if bg != "" {
		r.SetFillColor(colorOr(bg, drawing.ColorWhite))
		r.MoveTo(0, 0)
		r.LineTo(w, 0)
		r.LineTo(w, h)
		r.LineTo(0, h)
		r.Close()
		r.Fill()
	}
	return r, nil
}

func total(spec chart.Spec) float64 {
	var sum float64
	for _, ds := range spec.Datasets {
		for _, v := range ds.Data {
			if v > 0 {
				sum += v
			}
		}
	}
	return sum
}

func background(spec chart.Spec) wchart.Style {
	if spec.Options.Theme.Background == "" {
		return wchart.Style{}
	}
	return wchart.Style{FillColor: colorOr(spec.Options.Theme.Background, drawing.ColorWhite)}
}

func textColor(spec chart.Spec, c string) drawing.Color {
	if c == "" {
		c = spec.Options.Theme.Text
	}
	return colorOr(c, wchart.DefaultTextColor)
}

// sliceValues maps the first series to pie slices. Slices are labelled with
// the legend text; negative amounts cannot be drawn and become zero.
func sliceValues(spec chart.Spec) []wchart.Value {
	ds := spec.Datasets[0]
	values := make([]wchart.Value, len(ds.Data))
	for i, v := range ds.Data {
		label := spec.Labels[i]
		if i < len(spec.Options.Legend.Items) {
			label = spec.Options.Legend.Items[i]
		}
		style := wchart.Style{
			FontColor:   textColor(spec, spec.Options.Legend.Color),
			StrokeColor: colorOr(ds.BorderColor, drawing.ColorWhite),
			StrokeWidth: ds.BorderWidth,
		}
		if len(ds.Colors) > 0 {
			style.FillColor = colorOr(ds.Colors[i], wchart.DefaultFillColor)
		}
		if spec.Options.Legend.FontSize > 0 {
			style.FontSize = float64(spec.Options.Legend.FontSize)
		}
		values[i] = wchart.Value{Label: label, Value: math.Max(v, 0), Style: style}
	}
	return values
}

func yRange(spec chart.Spec) *wchart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range spec.Datasets[0].Data {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &wchart.ContinuousRange{Min: lo, Max: hi * 1.1}
}

func yAxis(spec chart.Spec) wchart.YAxis {
	ax := chart.Axis{}
	if spec.Options.Axes != nil {
		ax = spec.Options.Axes.Y
	}
	prefix := ax.TickPrefix
	return wchart.YAxis{
		Name:      ax.Title,
		NameStyle: wchart.Style{FontColor: textColor(spec, ax.TitleColor)},
		Style:     wchart.Style{FontColor: textColor(spec, ax.TickColor)},
		Range:     yRange(spec),
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return prefix + strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
			}
			return prefix + wchart.FloatValueFormatter(v)
		},
		GridMajorStyle: wchart.Style{StrokeColor: colorOr(ax.GridColor, wchart.DefaultAxisColor), StrokeWidth: 1},
	}
}

func barChart(spec chart.Spec, w, h int) wchart.BarChart {
	ds := spec.Datasets[0]
	bars := make([]wchart.Value, len(ds.Data))
	for i, v := range ds.Data {
		style := wchart.Style{StrokeWidth: ds.BorderWidth}
		if len(ds.Colors) > 0 {
			style.FillColor = colorOr(ds.Colors[i], wchart.DefaultFillColor)
			style.StrokeColor = style.FillColor
		}
		bars[i] = wchart.Value{Label: spec.Labels[i], Value: v, Style: style}
	}
	xColor := ""
	if spec.Options.Axes != nil {
		xColor = spec.Options.Axes.X.TickColor
	}
	bc := wchart.BarChart{
		Title:      ds.Label,
		TitleStyle: wchart.Style{FontColor: textColor(spec, spec.Options.Legend.Color)},
		Width:      w,
		Height:     h,
		Background: wchart.Style{Padding: wchart.Box{Top: 40}, FillColor: background(spec).FillColor},
		Canvas:     background(spec),
		XAxis:      wchart.Style{FontColor: textColor(spec, xColor)},
		YAxis:      yAxis(spec),
		Bars:       bars,
	}
	// Refunds hang below the zero line instead of rising from the floor.
	bc.UseBaseValue = yRange(spec).Min < 0
	return bc
}

func lineChart(spec chart.Spec, w, h int) wchart.Chart {
	ds := spec.Datasets[0]
	xs := make([]float64, len(ds.Data))
	ticks := make([]wchart.Tick, len(ds.Data))
	for i := range ds.Data {
		xs[i] = float64(i)
		ticks[i] = wchart.Tick{Value: float64(i), Label: spec.Labels[i]}
	}
	xMin, xMax := 0.0, float64(len(xs)-1)
	single := len(xs) == 1
	if single {
		// go-chart derives the x range from the ticks and rejects a zero
		// width one; a lone month sits centred between two unlabelled ticks.
		xMin, xMax = -1, 1
		ticks = []wchart.Tick{{Value: -1}, ticks[0], {Value: 1}}
	}

	line := colorOr(ds.BorderColor, wchart.DefaultStrokeColor)
	series := wchart.ContinuousSeries{
		Name:    ds.Label,
		XValues: xs,
		YValues: append([]float64(nil), ds.Data...),
		Style: wchart.Style{
			StrokeColor: line,
			StrokeWidth: ds.BorderWidth,
			DotColor:    colorOr(ds.Point.Color, line),
			DotWidth:    ds.Point.Radius,
		},
	}
	switch {
	case single:
		// A single value has no line to stroke or area to fill: draw the dot.
		series.Style.DotWidth = math.Max(ds.Point.Radius, singleDotWidth)
	case ds.Fill:
		series.Style.FillColor = colorOr(ds.FillColor, line.WithAlpha(51))
	}

	x := chart.Axis{}
	if spec.Options.Axes != nil {
		x = spec.Options.Axes.X
	}
	ch := wchart.Chart{
		Width:      w,
		Height:     h,
		Background: wchart.Style{Padding: wchart.Box{Top: 20, Left: 20}, FillColor: background(spec).FillColor},
		Canvas:     background(spec),
		XAxis: wchart.XAxis{
			Name:      x.Title,
			NameStyle: wchart.Style{FontColor: textColor(spec, x.TitleColor)},
			Style:     wchart.Style{FontColor: textColor(spec, x.TickColor)},
			Range:     &wchart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:     ticks,
		},
		YAxis:  yAxis(spec),
		Series: []wchart.Series{series},
	}
	if !spec.Options.Legend.Hidden && ds.Label != "" {
		ch.Elements = []wchart.Renderable{wchart.Legend(&ch, wchart.Style{
			FontColor: textColor(spec, spec.Options.Legend.Color),
			FillColor: background(spec).FillColor,
		})}
	}
	return ch
}
