// Package echarts renders chart specs as interactive HTML pages with
// go-echarts.
package echarts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"spese-charts/internal/chart"
	"spese-charts/internal/engine/htmldoc"
	"spese-charts/web"
)

// Engine implements chart.Engine on top of go-echarts.
type Engine struct {
	tmpl *template.Template
}

func New() *Engine {
	return &Engine{tmpl: web.Templates()}
}

func (e *Engine) Ext() string { return ".html" }

// Construct implements chart.Engine.
func (e *Engine) Construct(ctx context.Context, s chart.Surface, spec chart.Spec) (chart.Instance, error) {
	if err := ctx.Err(); err != nil {
		return chart.Instance{}, err
	}
	w, h := s.Size()
	r, err := build(spec, w, h)
	if err != nil {
		return chart.Instance{}, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return chart.Instance{}, fmt.Errorf("render %s: %w", spec.Mount, err)
	}
	n, err := s.Write(buf.Bytes())
	if err != nil {
		return chart.Instance{}, fmt.Errorf("write %s: %w", spec.Mount, err)
	}
	return chart.Instance{Mount: s.Key(), Type: spec.Type, Bytes: n}, nil
}

// FillText implements chart.Engine.
func (e *Engine) FillText(ctx context.Context, s chart.Surface, p chart.Placeholder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return htmldoc.Placeholder(e.tmpl, s, p)
}

// renderer is the part of a go-echarts chart the engine needs.
type renderer interface {
	Render(w io.Writer) error
}

func build(spec chart.Spec, w, h int) (renderer, error) {
	global := globalOpts(spec, w, h)
	var series chart.Series
	if len(spec.Datasets) > 0 {
		series = spec.Datasets[0]
	}

	switch spec.Type {
	case chart.TypePie, chart.TypeDoughnut:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		data := make([]opts.PieData, len(series.Data))
		for i, v := range series.Data {
			data[i] = opts.PieData{Name: legendName(spec, i), Value: v}
		}
		pieOpts := opts.PieChart{}
		if spec.Type == chart.TypeDoughnut {
			pieOpts.Radius = []string{"40%", "70%"}
		}
		pie.AddSeries(spec.Mount, data,
			charts.WithPieChartOpts(pieOpts),
			charts.WithItemStyleOpts(opts.ItemStyle{BorderColor: series.BorderColor}),
		)
		return pie, nil

	case chart.TypeLine:
		line := charts.NewLine()
		line.SetGlobalOptions(append(global, axisOpts(spec)...)...)
		data := make([]opts.LineData, len(series.Data))
		for i, v := range series.Data {
			data[i] = opts.LineData{Value: v}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(series.Tension > 0)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: series.BorderColor, Width: float32(series.BorderWidth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: series.Point.Color, BorderColor: series.Point.BorderColor}),
		}
		if series.Fill {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Color: series.FillColor}))
		}
		line.SetXAxis(spec.Labels).AddSeries(series.Label, data, seriesOpts...)
		return line, nil

	case chart.TypeBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(append(global, axisOpts(spec)...)...)
		data := make([]opts.BarData, len(series.Data))
		for i, v := range series.Data {
			data[i] = opts.BarData{Value: v}
		}
		bar.SetXAxis(spec.Labels).AddSeries(series.Label, data)
		return bar, nil

	default:
		return nil, fmt.Errorf("unsupported chart type %q", spec.Type)
	}
}

func legendName(spec chart.Spec, i int) string {
	if i < len(spec.Options.Legend.Items) {
		return spec.Options.Legend.Items[i]
	}
	return spec.Labels[i]
}

func globalOpts(spec chart.Spec, w, h int) []charts.GlobalOpts {
	lg := spec.Options.Legend
	legend := opts.Legend{Show: opts.Bool(!lg.Hidden)}
	if lg.Position == "bottom" {
		legend.Bottom = "0"
	}
	if lg.Color != "" || lg.FontSize > 0 {
		legend.TextStyle = &opts.TextStyle{Color: lg.Color, FontSize: lg.FontSize}
	}

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       spec.Mount,
			ChartID:         spec.Mount,
			Width:           strconv.Itoa(w) + "px",
			Height:          strconv.Itoa(h) + "px",
			BackgroundColor: spec.Options.Theme.Background,
		}),
		charts.WithTitleOpts(opts.Title{Show: opts.Bool(false)}),
		charts.WithLegendOpts(legend),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   trigger(spec.Type),
			Formatter: opts.FuncOpts(tooltipFunc(spec.Options.Tooltips)),
		}),
	}
	var palette []string
	if len(spec.Datasets) > 0 {
		palette = spec.Datasets[0].Colors
	}
	if len(palette) > 0 {
		global = append(global, charts.WithColorsOpts(opts.Colors(palette)))
	}
	return global
}

func axisOpts(spec chart.Spec) []charts.GlobalOpts {
	if spec.Options.Axes == nil {
		return nil
	}
	x, y := spec.Options.Axes.X, spec.Options.Axes.Y
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{
			Name:      x.Title,
			AxisLabel: &opts.AxisLabel{Color: x.TickColor},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: y.Title,
			AxisLabel: &opts.AxisLabel{
				Color:     y.TickColor,
				Formatter: opts.FuncOpts(prefixFunc(y.TickPrefix)),
			},
		}),
	}
}

func trigger(t chart.Type) string {
	if t.Cartesian() {
		return "axis"
	}
	return "item"
}

// tooltipFunc returns a JS formatter picking the precomputed tooltip of the
// hovered point.
func tooltipFunc(tooltips []string) string {
	if tooltips == nil {
		tooltips = []string{}
	}
	encoded, _ := json.Marshal(tooltips)
	return fmt.Sprintf(`function (params) {
  const tips = %s;
  const p = Array.isArray(params) ? params[0] : params;
  return tips[p.dataIndex];
}`, encoded)
}

func prefixFunc(prefix string) string {
	encoded, _ := json.Marshal(prefix)
	return fmt.Sprintf(`function (value) { return %s + value; }`, encoded)
}
