package chart

import (
	"bytes"
	"context"
	"errors"
	"sync"
)

type fakeSurface struct {
	key string
	bytes.Buffer
}

func (s *fakeSurface) Key() string { return s.key }
func (s *fakeSurface) Size() (int, int) { return 400, 300 }

type fakeBoard map[string]*fakeSurface

func newBoard(keys ...string) fakeBoard {
	b := fakeBoard{}
	for _, k := range keys {
		b[k] = &fakeSurface{key: k}
	}
	return b
}

func (b fakeBoard) Lookup(key string) (Surface, bool) {
	s, ok := b[key]
	if !ok {
		return nil, false
	}
	return s, true
}

type fakeEngine struct {
	mu         sync.Mutex
	specs      []Spec
	texts      map[string]Placeholder
	failOn     string
	panicOn    string
	textFailOn string
}

func (e *fakeEngine) Construct(_ context.Context, s Surface, spec Spec) (Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.Key() == e.panicOn {
		panic("boom")
	}
	if s.Key() == e.failOn {
		return Instance{}, errors.New("construct failed")
	}
	e.specs = append(e.specs, spec)
	return Instance{Mount: s.Key(), Type: spec.Type}, nil
}

func (e *fakeEngine) FillText(_ context.Context, s Surface, p Placeholder) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.Key() == e.textFailOn {
		return errors.New("fill failed")
	}
	if e.texts == nil {
		e.texts = map[string]Placeholder{}
	}
	e.texts[s.Key()] = p
	return nil
}

func (e *fakeEngine) spec(mount string) (Spec, bool) {
	for _, s := range e.specs {
		if s.Mount == mount {
			return s, true
		}
	}
	return Spec{}, false
}
