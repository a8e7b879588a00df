// Package chartjs emits standalone HTML documents that construct each chart
// in the browser with Chart.js.
package chartjs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"spese-charts/internal/chart"
	"spese-charts/internal/engine/htmldoc"
	"spese-charts/web"
)

// DefaultScriptURL is the Chart.js bundle referenced by generated pages.
const DefaultScriptURL = "https://cdn.jsdelivr.net/npm/chart.js"

// Engine implements chart.Engine.
type Engine struct {
	scriptURL string
	tmpl      *template.Template
}

// New returns an engine loading Chart.js from scriptURL.
func New(scriptURL string) *Engine {
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	return &Engine{scriptURL: scriptURL, tmpl: web.Templates()}
}

func (e *Engine) Ext() string { return ".html" }

type document struct {
	Key        string
	Width      int
	Height     int
	Background string
	ScriptURL  string
	Config     Config
	Tooltips   []string
	Legend     []string
	TickPrefix string
}

// Construct implements chart.Engine.
func (e *Engine) Construct(ctx context.Context, s chart.Surface, spec chart.Spec) (chart.Instance, error) {
	if err := ctx.Err(); err != nil {
		return chart.Instance{}, err
	}
	w, h := s.Size()
	doc := document{
		Key:        s.Key(),
		Width:      w,
		Height:     h,
		Background: spec.Options.Theme.Background,
		ScriptURL:  e.scriptURL,
		Config:     NewConfig(spec),
		Tooltips:   nonNil(spec.Options.Tooltips),
		Legend:     nonNil(spec.Options.Legend.Items),
	}
	if spec.Options.Axes != nil {
		doc.TickPrefix = spec.Options.Axes.Y.TickPrefix
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, web.ChartJSTemplate, doc); err != nil {
		return chart.Instance{}, fmt.Errorf("render %s: %w", spec.Mount, err)
	}
	n, err := s.Write(buf.Bytes())
	if err != nil {
		return chart.Instance{}, fmt.Errorf("write %s: %w", spec.Mount, err)
	}
	return chart.Instance{Mount: s.Key(), Type: spec.Type, Bytes: n}, nil
}

// FillText implements chart.Engine with a canvas fillText call.
func (e *Engine) FillText(ctx context.Context, s chart.Surface, p chart.Placeholder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return htmldoc.Placeholder(e.tmpl, s, p)
}
