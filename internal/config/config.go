package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"spese-charts/internal/chart"
	"spese-charts/internal/engine"
	"spese-charts/internal/log"
)

type Config struct {
	// Output
	OutputDir string `envconfig:"CHARTS_OUTPUT_DIR" default:"./charts"`

	// Rendering
	Engine      string `envconfig:"CHARTS_ENGINE" default:"svg"`
	Layout      string `envconfig:"CHARTS_LAYOUT" default:"enhanced"`
	EmptyPolicy string `envconfig:"CHARTS_EMPTY_POLICY" default:"placeholder"`
	Width       int    `envconfig:"CHARTS_WIDTH" default:"800"`
	Height      int    `envconfig:"CHARTS_HEIGHT" default:"400"`
	ChartJSURL  string `envconfig:"CHARTS_CHARTJS_URL" default:"https://cdn.jsdelivr.net/npm/chart.js"`

	// Batch
	Concurrency  int      `envconfig:"CHARTS_CONCURRENCY" default:"4"`
	ContextFiles []string `envconfig:"CHARTS_CONTEXT_FILES"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate engine
	if !engine.Type(strings.ToLower(c.Engine)).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid engine '%s': must be one of %v", c.Engine, engine.Types()))
	}

	// Validate layout and empty policy
	if _, err := chart.LayoutByName(c.Layout); err != nil {
		errors = append(errors, fmt.Sprintf("invalid layout '%s': must be one of %v", c.Layout, chart.LayoutNames()))
	}
	if !chart.EmptyPolicy(c.EmptyPolicy).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid empty policy '%s': must be 'placeholder' or 'legacy'", c.EmptyPolicy))
	}

	// Validate surface size
	if c.Width < 50 || c.Width > 10000 {
		errors = append(errors, fmt.Sprintf("invalid width %d: must be between 50 and 10000", c.Width))
	}
	if c.Height < 50 || c.Height > 10000 {
		errors = append(errors, fmt.Sprintf("invalid height %d: must be between 50 and 10000", c.Height))
	}

	// Validate output directory
	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	} else if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
		errors = append(errors, fmt.Sprintf("output path '%s' is not a directory", c.OutputDir))
	}

	// Validate Chart.js URL when that engine is selected
	if strings.EqualFold(c.Engine, engine.ChartJS.String()) {
		if parsedURL, err := url.Parse(c.ChartJSURL); err != nil || c.ChartJSURL == "" {
			errors = append(errors, fmt.Sprintf("invalid Chart.js URL '%s'", c.ChartJSURL))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" && parsedURL.Scheme != "" {
			errors = append(errors, fmt.Sprintf("invalid Chart.js URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	// Validate batch configuration
	if c.Concurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid concurrency %d: must be at least 1", c.Concurrency))
	} else if c.Concurrency > 64 {
		errors = append(errors, fmt.Sprintf("invalid concurrency %d: must be at most 64", c.Concurrency))
	}
	for _, f := range c.ContextFiles {
		if ext := strings.ToLower(filepath.Ext(f)); ext != ".yaml" && ext != ".yml" && ext != ".json" {
			errors = append(errors, fmt.Sprintf("context file '%s' must be .yaml, .yml or .json", f))
		}
	}

	// Validate logging
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != log.FormatText && c.LogFormat != log.FormatJSON {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// EngineConfig converts the application config to engine config
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Type:       engine.Type(strings.ToLower(c.Engine)),
		ChartJSURL: c.ChartJSURL,
	}
}

// ChartLayout returns the configured layout with the empty policy applied.
func (c *Config) ChartLayout() (chart.Layout, error) {
	l, err := chart.LayoutByName(c.Layout)
	if err != nil {
		return chart.Layout{}, err
	}
	return l.WithEmptyPolicy(chart.EmptyPolicy(c.EmptyPolicy)), nil
}
