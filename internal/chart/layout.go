package chart

import (
	"fmt"
	"strings"
)

// Mount keys the host page uses for its chart surfaces.
const (
	MountCategory = "categoryChart"
	MountMonth    = "monthChart"
	MountPayment  = "paymentChart"
)

// PlaceholderText is drawn on a surface whose dataset is empty.
const PlaceholderText = "No data to display"

// Layout names.
const (
	LayoutEnhanced = "enhanced"
	LayoutSimple   = "simple"
)

// EmptyPolicy decides which mounts draw a chart for an empty dataset.
type EmptyPolicy string

const (
	// EmptyPlaceholder shows the placeholder text for every empty dataset.
	EmptyPlaceholder EmptyPolicy = "placeholder"
	// EmptyLegacy keeps drawing the payment chart when its dataset is empty.
	EmptyLegacy EmptyPolicy = "legacy"
)

func (p EmptyPolicy) IsValid() bool {
	return p == EmptyPlaceholder || p == EmptyLegacy
}

func (p EmptyPolicy) String() string {
	return string(p)
}

type (
	// Layout is the configuration table driving a Renderer: one entry per
	// mount, rendered in slice order.
	Layout struct {
		Name        string
		Theme       Theme
		Placeholder Placeholder
		Mounts      []Mount
	}

	// Mount describes how one page surface is charted.
	Mount struct {
		Key     string
		Kind    Kind
		Type    Type
		Palette []string
		Labeler Labeler
		// SeriesLabel may contain {currency}.
		SeriesLabel string
		Style       Style
		// LegendValues appends the formatted amount to each legend item.
		LegendValues bool
		// DrawWhenEmpty builds a chart even when the dataset has no entries.
		DrawWhenEmpty bool
	}

	Style struct {
		BorderColor string
		BorderWidth float64
		Fill        bool
		FillColor   string
		Tension     float64
		Point       PointStyle
		Legend      Legend
		Axes        *Axes
	}
)

// Mount returns the layout entry for key.
func (l Layout) Mount(key string) (Mount, bool) {
	for _, m := range l.Mounts {
		if m.Key == key {
			return m, true
		}
	}
	return Mount{}, false
}

// Keys returns the mount keys in render order.
func (l Layout) Keys() []string {
	keys := make([]string, len(l.Mounts))
	for i, m := range l.Mounts {
		keys[i] = m.Key
	}
	return keys
}

// WithEmptyPolicy returns a copy of l with the policy applied to its mounts.
func (l Layout) WithEmptyPolicy(p EmptyPolicy) Layout {
	out := l
	out.Mounts = make([]Mount, len(l.Mounts))
	for i, m := range l.Mounts {
		m.DrawWhenEmpty = p == EmptyLegacy && m.Kind == KindPayment
		out.Mounts[i] = m
	}
	return out
}

// Validate checks that keys are unique and each mount can be built.
func (l Layout) Validate() error {
	var errs []string
	seen := make(map[string]bool, len(l.Mounts))
	for i, m := range l.Mounts {
		if m.Key == "" {
			errs = append(errs, fmt.Sprintf("mount %d: empty key", i))
		}
		if seen[m.Key] {
			errs = append(errs, fmt.Sprintf("mount %q: duplicate key", m.Key))
		}
		seen[m.Key] = true
		if !m.Type.IsValid() {
			errs = append(errs, fmt.Sprintf("mount %q: unknown chart type %q", m.Key, m.Type))
		}
		if len(m.Palette) == 0 && !m.Type.Cartesian() {
			errs = append(errs, fmt.Sprintf("mount %q: empty palette", m.Key))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("layout %q invalid:\n- %s", l.Name, strings.Join(errs, "\n- "))
	}
	return nil
}

var (
	enhancedTheme = Theme{Name: LayoutEnhanced, Background: "#1e293b", Text: "#f1f5f9"}

	enhancedCategoryPalette = []string{
		"#3b82f6", "#22c55e", "#f59e0b", "#ef4444", "#8b5cf6",
		"#14b8a6", "#ec4899", "#f97316", "#84cc16", "#06b6d4",
	}
	enhancedPaymentPalette = []string{"#10b981", "#6366f1", "#f59e0b", "#ec4899", "#8b5cf6"}
	simplePalette          = []string{"#5A31F4", "#34C759", "#FF9F0A", "#FF375F", "#64D2FF", "#AF52DE"}
)

func enhancedLegend() Legend {
	return Legend{Position: "bottom", Color: "#f1f5f9", FontSize: 12, Padding: 20}
}

func enhancedAxis(title string) Axis {
	return Axis{
		Title:      title,
		TitleColor: "#f1f5f9",
		GridColor:  "rgba(255, 255, 255, 0.1)",
		TickColor:  "#94a3b8",
	}
}

// Enhanced is the dark dashboard: category pie, monthly line and payment doughnut.
func Enhanced() Layout {
	y := enhancedAxis("Amount ({currency})")
	y.TickPrefix = "{currency}"
	y.BeginAtZero = true

	return Layout{
		Name:  LayoutEnhanced,
		Theme: enhancedTheme,
		Placeholder: Placeholder{
			Text:       PlaceholderText,
			Font:       "16px 'Segoe UI', Arial, sans-serif",
			FontSize:   16,
			Color:      "#ffffff",
			Background: enhancedTheme.Background,
			Centered:   true,
		},
		Mounts: []Mount{
			{
				Key:     MountCategory,
				Kind:    KindCategory,
				Type:    TypePie,
				Palette: enhancedCategoryPalette,
				Labeler: Verbatim,
				Style: Style{
					BorderColor: "#1e293b",
					BorderWidth: 2,
					Legend:      enhancedLegend(),
				},
			},
			{
				Key:         MountMonth,
				Kind:        KindMonthly,
				Type:        TypeLine,
				Palette:     []string{"#3b82f6"},
				Labeler:     Verbatim,
				SeriesLabel: "Monthly Spending ({currency})",
				Style: Style{
					BorderColor: "#3b82f6",
					BorderWidth: 3,
					Fill:        true,
					FillColor:   "rgba(59, 130, 246, 0.2)",
					Tension:     0.4,
					Point: PointStyle{
						Color:       "#3b82f6",
						BorderColor: "#ffffff",
						BorderWidth: 2,
						Radius:      4,
						HoverRadius: 6,
					},
					Legend: Legend{Color: "#f1f5f9"},
					Axes:   &Axes{X: enhancedAxis("Month"), Y: y},
				},
			},
			{
				Key:          MountPayment,
				Kind:         KindPayment,
				Type:         TypeDoughnut,
				Palette:      enhancedPaymentPalette,
				Labeler:      PaymentMethod,
				LegendValues: true,
				Style: Style{
					BorderColor: "#1e293b",
					BorderWidth: 2,
					Legend:      enhancedLegend(),
				},
			},
		},
	}
}

// Simple is the light dashboard on engine defaults: category pie and monthly bar.
func Simple() Layout {
	return Layout{
		Name: LayoutSimple,
		Placeholder: Placeholder{
			Text:     PlaceholderText,
			Font:     "16px Arial",
			FontSize: 16,
			X:        50,
			Y:        50,
		},
		Mounts: []Mount{
			{
				Key:     MountCategory,
				Kind:    KindCategory,
				Type:    TypePie,
				Palette: simplePalette,
				Labeler: Verbatim,
				Style: Style{
					BorderWidth: 1,
					Legend:      Legend{Position: "bottom"},
				},
			},
			{
				Key:         MountMonth,
				Kind:        KindMonthly,
				Type:        TypeBar,
				Palette:     []string{"#5A31F4"},
				Labeler:     Verbatim,
				SeriesLabel: "Amount ({currency})",
				Style: Style{
					Axes: &Axes{Y: Axis{BeginAtZero: true}},
				},
			},
		},
	}
}

// LayoutNames lists the built-in layouts.
func LayoutNames() []string {
	return []string{LayoutEnhanced, LayoutSimple}
}

// LayoutByName returns a built-in layout.
func LayoutByName(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LayoutEnhanced, "":
		return Enhanced(), nil
	case LayoutSimple:
		return Simple(), nil
	default:
		return Layout{}, fmt.Errorf("unknown layout %q (valid: %s)", name, strings.Join(LayoutNames(), ", "))
	}
}
