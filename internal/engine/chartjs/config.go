package chartjs

import (
	"spese-charts/internal/chart"
)

// Config is the constructor argument of a Chart.js chart:
// {type, data: {labels, datasets}, options}.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label                string    `json:"label,omitempty"`
	Data                 []float64 `json:"data"`
	BackgroundColor      any       `json:"backgroundColor,omitempty"`
	BorderColor          string    `json:"borderColor,omitempty"`
	BorderWidth          float64   `json:"borderWidth,omitempty"`
	Fill                 bool      `json:"fill,omitempty"`
	Tension              float64   `json:"tension,omitempty"`
	PointBackgroundColor string    `json:"pointBackgroundColor,omitempty"`
	PointBorderColor     string    `json:"pointBorderColor,omitempty"`
	PointBorderWidth     float64   `json:"pointBorderWidth,omitempty"`
	PointRadius          float64   `json:"pointRadius,omitempty"`
	PointHoverRadius     float64   `json:"pointHoverRadius,omitempty"`
}

type Options struct {
	Responsive bool             `json:"responsive"`
	Plugins    Plugins          `json:"plugins"`
	Scales     map[string]Scale `json:"scales,omitempty"`
}

type Plugins struct {
	Legend  Legend   `json:"legend"`
	Tooltip struct{} `json:"tooltip"`
}

type Legend struct {
	Display  bool         `json:"display"`
	Position string       `json:"position,omitempty"`
	Labels   LegendLabels `json:"labels"`
}

type LegendLabels struct {
	Color   string `json:"color,omitempty"`
	Font    *Font  `json:"font,omitempty"`
	Padding int    `json:"padding,omitempty"`
}

type Font struct {
	Size int `json:"size"`
}

type Scale struct {
	BeginAtZero bool        `json:"beginAtZero,omitempty"`
	Title       *ScaleTitle `json:"title,omitempty"`
	Grid        *Grid       `json:"grid,omitempty"`
	Ticks       Ticks       `json:"ticks"`
}

type ScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color,omitempty"`
}

type Grid struct {
	Color string `json:"color"`
}

type Ticks struct {
	Color string `json:"color,omitempty"`
}

// NewConfig converts a chart spec into the Chart.js configuration. Text
// callbacks (tooltips, legend items, tick prefix) are bound by the page
// script from the precomputed strings of the spec.
func NewConfig(spec chart.Spec) Config {
	cfg := Config{
		Type: string(spec.Type),
		Data: Data{Labels: nonNil(spec.Labels)},
		Options: Options{
			Responsive: spec.Options.Responsive,
			Plugins:    Plugins{Legend: legend(spec.Options.Legend)},
		},
	}
	for _, s := range spec.Datasets {
		cfg.Data.Datasets = append(cfg.Data.Datasets, dataset(spec.Type, s))
	}
	if spec.Options.Axes != nil {
		cfg.Options.Scales = map[string]Scale{
			"x": scale(spec.Options.Axes.X),
			"y": scale(spec.Options.Axes.Y),
		}
	}
	return cfg
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func dataset(t chart.Type, s chart.Series) Dataset {
	ds := Dataset{
		Label:       s.Label,
		Data:        nonNil(s.Data),
		BorderColor: s.BorderColor,
		BorderWidth: s.BorderWidth,
	}
	switch t {
	case chart.TypeLine:
		ds.BackgroundColor = s.FillColor
		ds.Fill = s.Fill
		ds.Tension = s.Tension
		ds.PointBackgroundColor = s.Point.Color
		ds.PointBorderColor = s.Point.BorderColor
		ds.PointBorderWidth = s.Point.BorderWidth
		ds.PointRadius = s.Point.Radius
		ds.PointHoverRadius = s.Point.HoverRadius
	case chart.TypeBar:
		if len(s.Colors) > 0 {
			ds.BackgroundColor = s.Colors[0]
		}
	default:
		if len(s.Colors) > 0 {
			ds.BackgroundColor = s.Colors
		}
	}
	return ds
}

func legend(l chart.Legend) Legend {
	out := Legend{
		Display:  !l.Hidden,
		Position: l.Position,
		Labels:   LegendLabels{Color: l.Color, Padding: l.Padding},
	}
	if l.FontSize > 0 {
		out.Labels.Font = &Font{Size: l.FontSize}
	}
	return out
}

func scale(a chart.Axis) Scale {
	s := Scale{BeginAtZero: a.BeginAtZero, Ticks: Ticks{Color: a.TickColor}}
	if a.Title != "" {
		s.Title = &ScaleTitle{Display: true, Text: a.Title, Color: a.TitleColor}
	}
	if a.GridColor != "" {
		s.Grid = &Grid{Color: a.GridColor}
	}
	return s
}
