package chart

import (
	"spese-charts/internal/core"
)

// Build derives the Spec for mount m from dataset d. Labels and values keep
// the dataset order; colours cycle through the mount palette.
func Build(m Mount, d core.Dataset, cur core.Currency, theme Theme) Spec {
	keys := d.Labels()
	amounts := d.Amounts()

	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = m.Labeler.apply(k)
	}

	series := Series{
		Label:       cur.Label(m.SeriesLabel),
		Data:        amounts,
		Colors:      cycle(m.Palette, len(amounts)),
		BorderColor: m.Style.BorderColor,
		BorderWidth: m.Style.BorderWidth,
		Fill:        m.Style.Fill,
		FillColor:   m.Style.FillColor,
		Tension:     m.Style.Tension,
		Point:       m.Style.Point,
	}

	return Spec{
		Mount:    m.Key,
		Kind:     m.Kind,
		Type:     m.Type,
		Labels:   labels,
		Datasets: []Series{series},
		Options: Options{
			Responsive: true,
			Theme:      theme,
			Legend:     legend(m, labels, amounts, cur, series.Label),
			Tooltips:   tooltips(m.Kind, labels, amounts, cur),
			Axes:       axes(m, cur),
		},
	}
}

func cycle(palette []string, n int) []string {
	if len(palette) == 0 || n == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func tooltips(k Kind, labels []string, amounts []float64, cur core.Currency) []string {
	out := make([]string, len(amounts))
	for i, v := range amounts {
		if k == KindMonthly {
			out[i] = cur.Format(v)
			continue
		}
		out[i] = labels[i] + ": " + cur.Format(v)
	}
	return out
}

func legend(m Mount, labels []string, amounts []float64, cur core.Currency, seriesLabel string) Legend {
	lg := m.Style.Legend
	if m.Type.Cartesian() {
		if seriesLabel != "" {
			lg.Items = []string{seriesLabel}
		}
		return lg
	}
	lg.Items = make([]string, len(labels))
	for i, l := range labels {
		if m.LegendValues {
			lg.Items[i] = l + ": " + cur.Format(amounts[i])
			continue
		}
		lg.Items[i] = l
	}
	return lg
}

func axes(m Mount, cur core.Currency) *Axes {
	if !m.Type.Cartesian() {
		return nil
	}
	if m.Style.Axes == nil {
		return &Axes{}
	}
	a := *m.Style.Axes
	for _, ax := range []*Axis{&a.X, &a.Y} {
		ax.Title = cur.Label(ax.Title)
		ax.TickPrefix = cur.Label(ax.TickPrefix)
	}
	return &a
}
