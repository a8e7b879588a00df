package chart

import (
	"context"
	"io"
)

// Engine is the external rendering collaborator. The renderer hands it a
// data-only Spec and never keeps the returned Instance beyond logging.
type Engine interface {
	// Construct builds a chart from spec and draws it on the surface.
	Construct(ctx context.Context, s Surface, spec Spec) (Instance, error)
	// FillText draws static text directly on the surface, without a chart.
	FillText(ctx context.Context, s Surface, p Placeholder) error
}

// Surface is a drawable page element identified by its mount key.
type Surface interface {
	io.Writer
	Key() string
	Size() (width, height int)
}

// Board resolves mount keys to surfaces. A missing key is not an error.
type Board interface {
	Lookup(key string) (Surface, bool)
}

// Instance is what an engine reports after constructing a chart.
type Instance struct {
	Mount string
	Type  Type
	Bytes int
}

// EngineFunc adapts a pair of functions to Engine.
type EngineFunc struct {
	ConstructFunc func(ctx context.Context, s Surface, spec Spec) (Instance, error)
	FillTextFunc  func(ctx context.Context, s Surface, p Placeholder) error
}

func (f EngineFunc) Construct(ctx context.Context, s Surface, spec Spec) (Instance, error) {
	if f.ConstructFunc == nil {
		return Instance{Mount: s.Key(), Type: spec.Type}, nil
	}
	return f.ConstructFunc(ctx, s, spec)
}

func (f EngineFunc) FillText(ctx context.Context, s Surface, p Placeholder) error {
	if f.FillTextFunc == nil {
		return nil
	}
	return f.FillTextFunc(ctx, s, p)
}
