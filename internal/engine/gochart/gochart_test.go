package gochart

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	wchart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spese-charts/internal/chart"
	"spese-charts/internal/core"
	"spese-charts/internal/engine/enginetest"
)

func TestRenderAllLayoutsAsSVG(t *testing.T) {
	eng, err := New(FormatSVG)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, layout := range []chart.Layout{chart.Enhanced(), chart.Simple()} {
		t.Run(layout.Name, func(t *testing.T) {
			p := enginetest.Page(t, layout.Keys()...)
			report, err := chart.NewRenderer(eng, layout).Init(context.Background(), p, enginetest.Inputs())
			if err != nil {
				t.Fatalf("Init: %v", err)
			}
			if err := report.Err(); err != nil {
				t.Fatalf("render errors: %v", err)
			}
			for _, key := range layout.Keys() {
				out := string(p.Bytes(key))
				if !strings.Contains(out, "<svg") {
					t.Fatalf("%s: expected svg output, got %.80q", key, out)
				}
			}
		})
	}
}

func TestPaymentSliceUsesLegendText(t *testing.T) {
	eng, _ := New(FormatSVG)
	p := enginetest.Page(t, chart.MountPayment)
	r := chart.NewRenderer(eng, chart.Enhanced())
	if _, err := r.Init(context.Background(), p, enginetest.Inputs()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if out := string(p.Bytes(chart.MountPayment)); !strings.Contains(out, "Bank transfer: ₹200.00") {
		t.Fatalf("legend text missing from output")
	}
}

func TestFillTextPlaceholder(t *testing.T) {
	eng, _ := New(FormatSVG)
	p := enginetest.Page(t, chart.MountMonth)
	s, _ := p.Lookup(chart.MountMonth)
	if err := eng.FillText(context.Background(), s, chart.Enhanced().Placeholder); err != nil {
		t.Fatalf("FillText: %v", err)
	}
	if out := string(p.Bytes(chart.MountMonth)); !strings.Contains(out, chart.PlaceholderText) {
		t.Fatalf("placeholder text missing: %.120q", out)
	}
}

func TestEmptySpecDrawsBlankCanvas(t *testing.T) {
	eng, _ := New(FormatSVG)
	p := enginetest.Page(t, chart.MountPayment)
	in := enginetest.Inputs()
	in.Payment = core.Dataset{}
	layout := chart.Enhanced().WithEmptyPolicy(chart.EmptyLegacy)
	report, _ := chart.NewRenderer(eng, layout).Init(context.Background(), p, in)
	if report.Outcome(chart.MountPayment) != chart.OutcomeDrawn {
		t.Fatalf("outcome = %s, err = %v", report.Outcome(chart.MountPayment), report.Err())
	}
	if !strings.Contains(string(p.Bytes(chart.MountPayment)), "<svg") {
		t.Fatalf("expected an svg canvas")
	}
}

func TestPNGOutput(t *testing.T) {
	eng, err := New(FormatPNG)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if eng.Ext() != ".png" {
		t.Fatalf("ext = %s", eng.Ext())
	}
	p := enginetest.Page(t, chart.MountCategory)
	report, _ := chart.NewRenderer(eng, chart.Enhanced()).Init(context.Background(), p, enginetest.Inputs())
	if report.Err() != nil {
		t.Fatalf("render: %v", report.Err())
	}
	if out := p.Bytes(chart.MountCategory); len(out) < 8 || string(out[1:4]) != "PNG" {
		t.Fatalf("expected png signature")
	}
}

func TestCancelledContext(t *testing.T) {
	eng, _ := New(FormatSVG)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := enginetest.Page(t, chart.MountCategory)
	s, _ := p.Lookup(chart.MountCategory)
	if _, err := eng.Construct(ctx, s, chart.Spec{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := New("gif"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want drawing.Color
		ok   bool
	}{
		{"#3b82f6", drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 255}, true},
		{"#FFF", drawing.Color{R: 255, G: 255, B: 255, A: 255}, true},
		{"rgba(59, 130, 246, 0.2)", drawing.Color{R: 59, G: 130, B: 246, A: 51}, true},
		{"rgb(1,2,3)", drawing.Color{R: 1, G: 2, B: 3, A: 255}, true},
		{"rgba(255, 255, 255, 0.1)", drawing.Color{R: 255, G: 255, B: 255, A: 26}, true},
		{"#12", drawing.Color{}, false},
		{"#zzzzzz", drawing.Color{}, false},
		{"rgba(300, 0, 0, 1)", drawing.Color{}, false},
		{"blue", drawing.Color{}, false},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseColor(%q) err = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

// wellFormedSVG fails the test unless data parses as a single XML document
// rooted at <svg>.
func wellFormedSVG(t *testing.T, name string, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	root := ""
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("%s: malformed svg: %v", name, err)
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root != "svg" {
		t.Fatalf("%s: root element = %q, want svg", name, root)
	}
}

func TestSingleMonthIsDrawn(t *testing.T) {
	eng, _ := New(FormatSVG)
	in := enginetest.Inputs()
	in.Month = core.MustDataset(core.Entry{Label: "2024-01", Amount: 10})

	for _, layout := range []chart.Layout{chart.Enhanced(), chart.Simple()} {
		t.Run(layout.Name, func(t *testing.T) {
			p := enginetest.Page(t, chart.MountMonth)
			report, _ := chart.NewRenderer(eng, layout).Init(context.Background(), p, in)
			if got := report.Outcome(chart.MountMonth); got != chart.OutcomeDrawn {
				t.Fatalf("outcome = %s, err = %v", got, report.Err())
			}
			out := p.Bytes(chart.MountMonth)
			wellFormedSVG(t, chart.MountMonth, out)
			if !strings.Contains(string(out), "2024-01") {
				t.Fatalf("month label missing from output")
			}
		})
	}
}

func TestMarkupLabelsAreEscaped(t *testing.T) {
	eng, _ := New(FormatSVG)
	in := enginetest.Inputs()
	in.Category = core.MustDataset(
		core.Entry{Label: "R&D <x>", Amount: 10},
		core.Entry{Label: "Food", Amount: 5},
	)
	in.Month = core.MustDataset(
		core.Entry{Label: "Q1 & Q2", Amount: 10},
		core.Entry{Label: "<Q3>", Amount: 20},
	)

	for _, layout := range []chart.Layout{chart.Enhanced(), chart.Simple()} {
		t.Run(layout.Name, func(t *testing.T) {
			p := enginetest.Page(t, layout.Keys()...)
			report, _ := chart.NewRenderer(eng, layout).Init(context.Background(), p, in)
			if err := report.Err(); err != nil {
				t.Fatalf("render errors: %v", err)
			}
			for _, key := range layout.Keys() {
				wellFormedSVG(t, key, p.Bytes(key))
			}
			if out := string(p.Bytes(chart.MountCategory)); !strings.Contains(out, "R&amp;D &lt;x&gt;") {
				t.Fatalf("escaped category label missing")
			}
		})
	}
}

func TestNegativeBarsUseZeroBase(t *testing.T) {
	spec := chart.Spec{
		Type:     chart.TypeBar,
		Labels:   []string{"2024-01", "2024-02"},
		Datasets: []chart.Series{{Data: []float64{-15, 30}}},
	}
	if !barChart(spec, 640, 360).UseBaseValue {
		t.Fatalf("negative values should hang from the zero line")
	}
	spec.Datasets[0].Data = []float64{15, 30}
	if barChart(spec, 640, 360).UseBaseValue {
		t.Fatalf("positive values should rise from the floor")
	}
}

func TestSingleMonthLineIsPadded(t *testing.T) {
	spec := chart.Spec{
		Type:     chart.TypeLine,
		Labels:   []string{"2024-01"},
		Datasets: []chart.Series{{Label: "Monthly", Data: []float64{10}, Fill: true}},
	}
	c := lineChart(spec, 640, 360)
	if len(c.XAxis.Ticks) != 3 || c.XAxis.Ticks[1].Label != "2024-01" {
		t.Fatalf("ticks = %+v", c.XAxis.Ticks)
	}
	series := c.Series[0].(wchart.ContinuousSeries)
	if series.Style.DotWidth < singleDotWidth || !series.Style.FillColor.IsZero() {
		t.Fatalf("single point style = %+v", series.Style)
	}
}
