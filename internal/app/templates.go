package app

import (
	"embed"
	"fmt"
	"html/template"
)

// templateFS contains the HTML templates bundled with the binary.
//
//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	homeTemplate     = "home.gohtml"
	toolTemplate     = "tool.gohtml"
	notFoundTemplate = "notfound.gohtml"
)

// parseTemplates pairs the shared layout with each page template.
func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, 3)
	for _, name := range []string{homeTemplate, toolTemplate, notFoundTemplate} {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}
