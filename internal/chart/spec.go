// Package chart turns aggregate datasets into engine-agnostic chart specs and
// mounts them on page surfaces through a pluggable rendering engine.
package chart

// Kind identifies which dashboard view a chart belongs to.
type Kind string

const (
	KindCategory Kind = "category"
	KindMonthly  Kind = "monthly"
	KindPayment  Kind = "payment"
)

// Type is the visual chart type handed to the engine.
type Type string

const (
	TypePie      Type = "pie"
	TypeDoughnut Type = "doughnut"
	TypeLine     Type = "line"
	TypeBar      Type = "bar"
)

// IsValid reports whether t is a known chart type.
func (t Type) IsValid() bool {
	switch t {
	case TypePie, TypeDoughnut, TypeLine, TypeBar:
		return true
	default:
		return false
	}
}

// Cartesian reports whether the type is drawn on X/Y axes.
func (t Type) Cartesian() bool {
	return t == TypeLine || t == TypeBar
}

type (
	// Spec is the fully derived description of one chart. It carries data
	// only: every label, tooltip and legend string is already formatted.
	Spec struct {
		Mount    string
		Kind     Kind
		Type     Type
		Labels   []string
		Datasets []Series
		Options  Options
	}

	// Series is one plotted dataset. Data[i] is described by Spec.Labels[i].
	Series struct {
		Label       string
		Data        []float64
		Colors      []string // one per point, palette cycled
		BorderColor string
		BorderWidth float64
		Fill        bool
		FillColor   string
		Tension     float64
		Point       PointStyle
	}

	PointStyle struct {
		Color       string
		BorderColor string
		BorderWidth float64
		Radius      float64
		HoverRadius float64
	}

	Options struct {
		Responsive bool
		Theme      Theme
		Legend     Legend
		Tooltips   []string // one per point
		Axes       *Axes    // nil for pie and doughnut
	}

	Legend struct {
		Hidden   bool
		Position string
		Color    string
		FontSize int
		Padding  int
		Items    []string
	}

	Axes struct {
		X Axis
		Y Axis
	}

	Axis struct {
		Title       string
		TitleColor  string
		GridColor   string
		TickColor   string
		TickPrefix  string
		BeginAtZero bool
	}

	// Theme holds page-level colours. Empty fields mean engine defaults.
	Theme struct {
		Name       string
		Background string
		Text       string
	}
)

// Points returns the number of plotted points.
func (s Spec) Points() int {
	return len(s.Labels)
}

// Empty reports whether the spec has nothing to plot.
func (s Spec) Empty() bool {
	if len(s.Labels) == 0 {
		return true
	}
	for _, ds := range s.Datasets {
		if len(ds.Data) > 0 {
			return false
		}
	}
	return true
}

// Tooltip returns the formatted tooltip for point i, or "" when out of range.
func (s Spec) Tooltip(i int) string {
	if i < 0 || i >= len(s.Options.Tooltips) {
		return ""
	}
	return s.Options.Tooltips[i]
}

// Placeholder describes the static text drawn instead of a chart.
type Placeholder struct {
	Text       string
	Font       string // CSS font shorthand
	FontSize   float64
	Color      string // empty means engine default
	Background string
	Centered   bool
	X, Y       int // text origin when not centered
}

// Origin returns where the text is anchored on a w x h surface.
func (p Placeholder) Origin(w, h int) (int, int) {
	if p.Centered {
		return w / 2, h / 2
	}
	return p.X, p.Y
}
