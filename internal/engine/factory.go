// Package engine selects the rendering engine the chart renderer hands its
// specs to.
package engine

import (
	"fmt"
	"strings"

	"spese-charts/internal/chart"
	"spese-charts/internal/engine/chartjs"
	"spese-charts/internal/engine/echarts"
	"spese-charts/internal/engine/gochart"
	"spese-charts/internal/log"
)

// Type represents the rendering engine
type Type string

const (
	SVG     Type = "svg"
	PNG     Type = "png"
	ECharts Type = "echarts"
	ChartJS Type = "chartjs"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the engine type is valid
func (t Type) IsValid() bool {
	switch t {
	case SVG, PNG, ECharts, ChartJS:
		return true
	default:
		return false
	}
}

// Types lists every supported engine.
func Types() []Type {
	return []Type{SVG, PNG, ECharts, ChartJS}
}

// Config holds configuration for engine creation
type Config struct {
	Type Type

	// Chart.js specific
	ChartJSURL string
}

// Result contains the engine and the extension of the files it produces
type Result struct {
	Engine chart.Engine
	Ext    string
}

// Factory creates engines based on configuration
type Factory struct {
	logger *log.Logger
}

// NewFactory creates a new engine factory
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &Factory{logger: logger.WithComponent(log.ComponentEngine)}
}

// Create builds the engine selected by config
func (f *Factory) Create(config Config) (*Result, error) {
	t := Type(strings.ToLower(string(config.Type)))
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid engine type: %s", config.Type)
	}

	var res *Result
	switch t {
	case SVG, PNG:
		e, err := gochart.New(string(t))
		if err != nil {
			return nil, err
		}
		res = &Result{Engine: e, Ext: e.Ext()}
	case ECharts:
		e := echarts.New()
		res = &Result{Engine: e, Ext: e.Ext()}
	case ChartJS:
		e := chartjs.New(config.ChartJSURL)
		res = &Result{Engine: e, Ext: e.Ext()}
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", t)
	}

	f.logger.Debug("Initialized engine", log.FieldEngine, t.String(), "ext", res.Ext)
	return res, nil
}
