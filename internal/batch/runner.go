// Package batch renders the dashboards of many page contexts, one output
// directory per context.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"spese-charts/internal/chart"
	"spese-charts/internal/log"
	"spese-charts/internal/page"
)

// DefaultConcurrency bounds how many pages render at the same time.
const DefaultConcurrency = 4

var ErrDuplicateName = errors.New("duplicate context name")

// Config holds runner settings.
type Config struct {
	OutputDir   string
	Ext         string
	Width       int
	Height      int
	Concurrency int
}

// Result is the outcome of one context file.
type Result struct {
	Source    string
	Name      string
	OutputDir string
	Report    chart.Report
	Files     []string
	Bytes     int
	Warnings  []string
	Err       error
}

// Runner renders context files with a shared engine and layout. Pages render
// in parallel; the mounts of one page always render in order.
type Runner struct {
	engine chart.Engine
	layout chart.Layout
	config Config
	logger *log.Logger
}

func NewRunner(engine chart.Engine, layout chart.Layout, config Config, logger *log.Logger) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Runner{
		engine: engine,
		layout: layout,
		config: config,
		logger: logger.WithComponent(log.ComponentBatch),
	}
}

// Run renders every path. A file that cannot be loaded or written does not
// stop the others; the returned error joins those failures. Cancelling ctx
// stops scheduling new files.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	if err := checkNames(paths); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = r.renderFile(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	failed := 0
	for i := range results {
		if results[i].Source == "" {
			results[i] = Result{Source: paths[i], Name: contextName(paths[i]), Err: ctx.Err()}
		}
		if results[i].Err != nil {
			failed++
			errs = append(errs, fmt.Errorf("%s: %w", results[i].Source, results[i].Err))
		}
	}

	r.logger.InfoContext(ctx, "Batch completed",
		"files", len(paths),
		"failed", failed,
		log.FieldSuccess, failed == 0,
		log.FieldOutputDir, r.config.OutputDir,
		log.FieldDuration, time.Since(start).Milliseconds())
	return results, errors.Join(errs...)
}

func (r *Runner) renderFile(ctx context.Context, path string) Result {
	res := Result{Source: path, Name: contextName(path)}
	pc, err := page.Load(path)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load page context",
			append(log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice(), log.FieldContext, path)...)
		res.Err = err
		return res
	}
	return r.Render(ctx, path, pc)
}

// Render draws the charts of one page context into <OutputDir>/<name>.
func (r *Runner) Render(ctx context.Context, source string, pc page.Context) Result {
	res := Result{
		Source:    source,
		Name:      pc.Name,
		OutputDir: filepath.Join(r.config.OutputDir, pc.Name),
		Warnings:  pc.Warnings,
	}
	logger := r.logger.With(log.FieldContext, source)
	ctx = log.NewContext(ctx, logger)
	for _, w := range pc.Warnings {
		logger.WarnContext(ctx, "Malformed dataset", log.FieldDataset, w)
	}

	pg, err := page.OpenDir(res.OutputDir, r.config.Ext, pc.Mounts, r.config.Width, r.config.Height)
	if err != nil {
		res.Err = err
		return res
	}

	renderer := chart.NewRenderer(r.engine, r.layout)
	res.Report, res.Err = renderer.Init(ctx, pg, pc.Inputs)
	if err := pg.Close(); err != nil {
		res.Err = errors.Join(res.Err, err)
	}
	res.Files = pg.Files()
	res.Bytes = pg.Written()
	logger.DebugContext(ctx, "Context rendered",
		log.FieldSuccess, res.Err == nil,
		log.FieldBytes, res.Bytes,
		"files", len(res.Files))
	return res
}

func contextName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func checkNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := contextName(p)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s and %s both render to %q", ErrDuplicateName, prev, p, name)
		}
		seen[name] = p
	}
	return nil
}
