package main

import (
	"fmt"
	"os"
	"time"

	"spese-charts/internal/batch"
	"spese-charts/internal/chart"
	"spese-charts/internal/cli"
	"spese-charts/internal/engine"
	"spese-charts/internal/log"
)

const usage = `usage: spese-charts [context files...]

Renders the category, monthly and payment charts of each page context
(YAML or JSON) into <CHARTS_OUTPUT_DIR>/<context name>/. Files may also be
listed in CHARTS_CONTEXT_FILES.`

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Println(usage)
		return
	}

	cfg := cli.MustLoadConfig(os.Args[1:])
	logger := cli.SetupLogger(cfg).WithComponent(log.ComponentApp)

	if len(cfg.ContextFiles) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	layout, err := cfg.ChartLayout()
	if err != nil {
		logger.Error("Invalid layout", log.FieldLayout, cfg.Layout, log.FieldError, err)
		os.Exit(2)
	}
	if err := layout.Validate(); err != nil {
		logger.WithComponent(log.ComponentConfig).Error("Layout validation failed",
			log.FieldOperation, log.OpValidate,
			log.FieldLayout, layout.Name,
			log.FieldError, err)
		os.Exit(2)
	}

	eng, err := engine.NewFactory(logger).Create(cfg.EngineConfig())
	if err != nil {
		logger.Error("Failed to initialize engine", log.FieldEngine, cfg.Engine, log.FieldError, err)
		os.Exit(2)
	}

	// Setup graceful shutdown
	ctx, cancel := cli.GracefulShutdown(logger, 10*time.Second)
	defer cancel()

	logger.Info("Starting spese-charts",
		log.FieldOperation, log.OpStartup,
		log.FieldEngine, cfg.Engine,
		log.FieldLayout, layout.Name,
		"empty_policy", cfg.EmptyPolicy,
		"files", len(cfg.ContextFiles),
		log.FieldOutputDir, cfg.OutputDir)

	runner := batch.NewRunner(eng.Engine, layout, batch.Config{
		OutputDir:   cfg.OutputDir,
		Ext:         eng.Ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Concurrency: cfg.Concurrency,
	}, logger)

	results, err := runner.Run(ctx, cfg.ContextFiles)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		logger.Info("Rendered page",
			log.FieldContext, res.Source,
			log.FieldOutputDir, res.OutputDir,
			"drawn", res.Report.Count(chart.OutcomeDrawn),
			"placeholders", res.Report.Count(chart.OutcomePlaceholder),
			"failed", res.Report.Count(chart.OutcomeFailed))
	}
	if err != nil {
		logger.Error("Some context files could not be rendered", log.FieldOperation, log.OpShutdown, log.FieldError, err)
		cancel()
		os.Exit(1)
	}
	logger.Info("Done", log.FieldOperation, log.OpShutdown)
}
