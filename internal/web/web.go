package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded views. Embedding keeps the binary
// self-contained and lets tests build a router from any directory.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}
