// Package htmldoc holds the pieces shared by the engines that emit HTML.
package htmldoc

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"spese-charts/internal/chart"
	"spese-charts/web"
)

type placeholder struct {
	Key        string
	Width      int
	Height     int
	Background string
	Font       string
	Color      string
	Centered   bool
	Text       string
	X, Y       int
}

// Placeholder writes a page that draws p with a single canvas fillText call.
func Placeholder(tmpl *template.Template, s chart.Surface, p chart.Placeholder) error {
	w, h := s.Size()
	x, y := p.Origin(w, h)
	data := placeholder{
		Key:        s.Key(),
		Width:      w,
		Height:     h,
		Background: p.Background,
		Font:       p.Font,
		Color:      p.Color,
		Centered:   p.Centered,
		Text:       p.Text,
		X:          x,
		Y:          y,
	}
	return Write(s, tmpl, web.PlaceholderTemplate, data)
}

// Write executes the named template into a buffer first so a failing
// template never leaves a partial document on the surface.
func Write(w io.Writer, tmpl *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
