package chart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"spese-charts/internal/core"
	"spese-charts/internal/log"
)

var (
	ErrAlreadyInitialized = errors.New("renderer already initialized")
	ErrAlreadyDrawn       = errors.New("mount already drawn")
	ErrEnginePanic        = errors.New("engine panicked")
)

// Outcome is what happened to a single mount.
type Outcome string

const (
	OutcomeSkipped     Outcome = "skipped"
	OutcomePlaceholder Outcome = "placeholder"
	OutcomeDrawn       Outcome = "drawn"
	OutcomeFailed      Outcome = "failed"
)

// Inputs are the page datasets and the currency resolved from page metadata.
type Inputs struct {
	Category core.Dataset
	Month    core.Dataset
	Payment  core.Dataset
	Currency core.Currency
}

// Dataset returns the input bound to charts of kind k.
func (in Inputs) Dataset(k Kind) core.Dataset {
	switch k {
	case KindCategory:
		return in.Category
	case KindMonthly:
		return in.Month
	case KindPayment:
		return in.Payment
	default:
		return core.Dataset{}
	}
}

// Result is the outcome of one mount during Init.
type Result struct {
	Mount   string
	Outcome Outcome
	Err     error
}

// Report lists one Result per layout mount, in render order.
type Report []Result

// Outcome returns the outcome recorded for key, or OutcomeSkipped.
func (r Report) Outcome(key string) Outcome {
	for _, res := range r {
		if res.Mount == key {
			return res.Outcome
		}
	}
	return OutcomeSkipped
}

// Err joins the errors of failed mounts.
func (r Report) Err() error {
	var errs []error
	for _, res := range r {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Mount, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Count returns how many mounts ended with outcome o.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Renderer maps page datasets onto chart mounts using a Layout and an Engine.
// A Renderer is bound to a single page: each mount is drawn at most once and
// Init runs once.
type Renderer struct {
	engine Engine
	layout Layout
	logger *log.Logger

	once  sync.Once
	mu    sync.Mutex
	drawn map[string]bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer logger. Without it the renderer logs through
// the logger carried by the context.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l.WithComponent(log.ComponentRenderer)
		}
	}
}

// NewRenderer creates a renderer for one page.
func NewRenderer(engine Engine, layout Layout, opts ...Option) *Renderer {
	r := &Renderer{
		engine: engine,
		layout: layout,
		drawn:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init renders every layout mount once, in order. A failing mount is logged
// and recorded in the report; it never stops the remaining mounts.
func (r *Renderer) Init(ctx context.Context, board Board, in Inputs) (Report, error) {
	err := ErrAlreadyInitialized
	var report Report
	r.once.Do(func() {
		err = nil
		start := time.Now()
		report = make(Report, 0, len(r.layout.Mounts))
		for _, m := range r.layout.Mounts {
			outcome, rerr := r.Render(ctx, board, m, in.Dataset(m.Kind), in.Currency)
			report = append(report, Result{Mount: m.Key, Outcome: outcome, Err: rerr})
		}
		r.loggerFor(ctx).InfoContext(ctx, "Page charts rendered",
			log.FieldOperation, log.OpRender,
			log.FieldLayout, r.layout.Name,
			log.FieldCurrency, in.Currency.Symbol(),
			"drawn", report.Count(OutcomeDrawn),
			"placeholders", report.Count(OutcomePlaceholder),
			"failed", report.Count(OutcomeFailed),
			log.FieldDuration, time.Since(start).Milliseconds())
	})
	return report, err
}

// Render draws a single mount. A mount missing from the board is skipped
// without logging. An empty dataset gets the layout placeholder unless the
// mount draws when empty.
func (r *Renderer) Render(ctx context.Context, board Board, m Mount, d core.Dataset, cur core.Currency) (Outcome, error) {
	surface, ok := board.Lookup(m.Key)
	if !ok {
		return OutcomeSkipped, nil
	}
	if !r.claim(m.Key) {
		return OutcomeSkipped, fmt.Errorf("%w: %s", ErrAlreadyDrawn, m.Key)
	}

	if d.IsEmpty() && !m.DrawWhenEmpty {
		if err := r.fillText(ctx, surface); err != nil {
			r.fail(ctx, m, log.OpPlaceholder, err)
			return OutcomeFailed, err
		}
		r.loggerFor(ctx).DebugContext(ctx, "Drawn placeholder",
			log.NewFields().WithOperation(log.OpPlaceholder).
				WithChart(m.Key, string(m.Kind), "").
				WithOutcome(string(OutcomePlaceholder)).ToSlice()...)
		return OutcomePlaceholder, nil
	}

	spec := Build(m, d, cur, r.layout.Theme)
	inst, err := r.construct(ctx, surface, spec)
	if err != nil {
		r.fail(ctx, m, log.OpConstruct, err)
		return OutcomeFailed, err
	}
	r.loggerFor(ctx).DebugContext(ctx, "Chart constructed",
		append(log.NewFields().WithOperation(log.OpConstruct).
			WithChart(m.Key, string(m.Kind), string(m.Type)).
			WithPoints(spec.Points()).
			WithOutcome(string(OutcomeDrawn)).ToSlice(),
			log.FieldBytes, inst.Bytes)...)
	return OutcomeDrawn, nil
}

func (r *Renderer) construct(ctx context.Context, s Surface, spec Spec) (inst Instance, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrEnginePanic, rec)
		}
	}()
	return r.engine.Construct(ctx, s, spec)
}

func (r *Renderer) fillText(ctx context.Context, s Surface) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrEnginePanic, rec)
		}
	}()
	return r.engine.FillText(ctx, s, r.layout.Placeholder)
}

func (r *Renderer) loggerFor(ctx context.Context) *log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.FromContext(ctx).WithComponent(log.ComponentRenderer)
}

func (r *Renderer) claim(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn[key] {
		return false
	}
	r.drawn[key] = true
	return true
}

func (r *Renderer) fail(ctx context.Context, m Mount, op string, err error) {
	r.loggerFor(ctx).ErrorContext(ctx, "Chart render failed",
		log.NewFields().WithOperation(op).
			WithChart(m.Key, string(m.Kind), string(m.Type)).
			WithOutcome(string(OutcomeFailed)).
			WithError(err).ToSlice()...)
}
