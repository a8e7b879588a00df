package page

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"spese-charts/internal/chart"
)

// Default surface size when neither the context nor the caller sets one.
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Page is the set of mount surfaces of one rendered page. It implements
// chart.Board.
type Page struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
	order    []string
}

// Surface is one mount. Output goes to a file created on first write, or to
// an in-memory buffer.
type Surface struct {
	key    string
	width  int
	height int
	path   string

	file *os.File
	buf  *bytes.Buffer
	n    int
}

// OpenDir returns a page whose surfaces write to <dir>/<key><ext>. Files are
// only created for surfaces that actually get drawn.
func OpenDir(dir, ext string, mounts []MountSpec, width, height int) (*Page, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	p, err := newPage(mounts, width, height)
	if err != nil {
		return nil, err
	}
	for _, s := range p.surfaces {
		s.path = filepath.Join(dir, s.key+ext)
	}
	return p, nil
}

// NewMemory returns a page that keeps surface output in memory.
func NewMemory(mounts []MountSpec, width, height int) (*Page, error) {
	p, err := newPage(mounts, width, height)
	if err != nil {
		return nil, err
	}
	for _, s := range p.surfaces {
		s.buf = &bytes.Buffer{}
	}
	return p, nil
}

func newPage(mounts []MountSpec, width, height int) (*Page, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	p := &Page{surfaces: make(map[string]*Surface, len(mounts))}
	for _, m := range mounts {
		if m.Key == "" {
			return nil, errors.New("mount with empty key")
		}
		if _, dup := p.surfaces[m.Key]; dup {
			return nil, fmt.Errorf("duplicate mount %q", m.Key)
		}
		s := &Surface{key: m.Key, width: m.Width, height: m.Height}
		if s.width <= 0 {
			s.width = width
		}
		if s.height <= 0 {
			s.height = height
		}
		p.surfaces[m.Key] = s
		p.order = append(p.order, m.Key)
	}
	return p, nil
}

// Lookup implements chart.Board.
func (p *Page) Lookup(key string) (chart.Surface, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.surfaces[key]
	if !ok {
		return nil, false
	}
	return s, true
}

// Keys returns the mount keys in page order.
func (p *Page) Keys() []string {
	return append([]string(nil), p.order...)
}

// Bytes returns what was written to an in-memory surface.
func (p *Page) Bytes(key string) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.surfaces[key]
	if !ok || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// Files returns the paths of the files written so far, sorted.
func (p *Page) Files() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, s := range p.surfaces {
		if s.file != nil {
			out = append(out, s.path)
		}
	}
	sort.Strings(out)
	return out
}

// Written returns the number of bytes written across every surface.
func (p *Page) Written() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, s := range p.surfaces {
		total += s.n
	}
	return total
}

// Close closes every file opened by the page.
func (p *Page) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for _, s := range p.surfaces {
		if s.file == nil {
			continue
		}
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.path, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Surface) Key() string { return s.key }

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Write(b []byte) (int, error) {
	if s.buf != nil {
		n, err := s.buf.Write(b)
		s.n += n
		return n, err
	}
	if s.file == nil {
		if s.path == "" {
			return 0, fmt.Errorf("surface %s has no output", s.key)
		}
		f, err := os.Create(s.path)
		if err != nil {
			return 0, fmt.Errorf("create surface %s: %w", s.key, err)
		}
		s.file = f
	}
	n, err := s.file.Write(b)
	s.n += n
	return n, err
}
