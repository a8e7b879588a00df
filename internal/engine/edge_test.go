package engine

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"spese-charts/internal/chart"
	"spese-charts/internal/engine/enginetest"
)

// wellFormed checks the output of one mount for the engine's format.
func wellFormed(typ Type, data []byte) error {
	switch typ {
	case SVG:
		dec := xml.NewDecoder(bytes.NewReader(data))
		for {
			_, err := dec.Token()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	case PNG:
		_, err := png.Decode(bytes.NewReader(data))
		return err
	default:
		out := string(data)
		if !strings.Contains(out, "<html") || !strings.Contains(out, "</html>") {
			return errors.New("incomplete html document")
		}
		return nil
	}
}

func TestEnginesRenderEdgeCases(t *testing.T) {
	f := NewFactory(nil)
	layouts := []chart.Layout{
		chart.Enhanced(),
		chart.Simple(),
		chart.Enhanced().WithEmptyPolicy(chart.EmptyLegacy),
	}

	for _, typ := range Types() {
		res, err := f.Create(Config{Type: typ})
		if err != nil {
			t.Fatalf("Create(%s): %v", typ, err)
		}
		for _, tc := range enginetest.EdgeCases() {
			for _, layout := range layouts {
				t.Run(typ.String()+"/"+tc.Name+"/"+layout.Name, func(t *testing.T) {
					p := enginetest.Page(t, layout.Keys()...)
					report, err := chart.NewRenderer(res.Engine, layout).Init(context.Background(), p, tc.Inputs)
					if err != nil {
						t.Fatalf("Init: %v", err)
					}
					if err := report.Err(); err != nil {
						t.Fatalf("render errors: %v", err)
					}
					for _, key := range layout.Keys() {
						if report.Outcome(key) != chart.OutcomeDrawn {
							t.Fatalf("%s: outcome = %s", key, report.Outcome(key))
						}
						if err := wellFormed(typ, p.Bytes(key)); err != nil {
							t.Fatalf("%s: %v", key, err)
						}
					}
				})
			}
		}
	}
}

func TestChartJSKeepsMarkupOutOfTheDocument(t *testing.T) {
	var markup chart.Inputs
	for _, tc := range enginetest.EdgeCases() {
		if tc.Name == "markup labels" {
			markup = tc.Inputs
		}
	}

	res, err := NewFactory(nil).Create(Config{Type: ChartJS})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	layout := chart.Enhanced()
	p := enginetest.Page(t, layout.Keys()...)
	if _, err := chart.NewRenderer(res.Engine, layout).Init(context.Background(), p, markup); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, key := range layout.Keys() {
		if out := string(p.Bytes(key)); strings.Contains(out, "<x>") || strings.Contains(out, "<draft>") {
			t.Fatalf("%s: raw label markup leaked into the document", key)
		}
	}
}
