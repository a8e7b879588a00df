package web

import (
	"embed"
	"html/template"
)

// TemplatesFS embeds the HTML templates used by the browser engines.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// Template names.
const (
	ChartJSTemplate     = "chartjs.html"
	PlaceholderTemplate = "placeholder.html"
)

// Templates parses every embedded template. It panics on a malformed
// template since they are compiled into the binary.
func Templates() *template.Template {
	return template.Must(template.ParseFS(TemplatesFS, "templates/*.html"))
}
