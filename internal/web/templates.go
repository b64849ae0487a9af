package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Ecclesia-Lucis/LightPath/internal/query"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names, one per content template
const (
	PageHome  = "home"
	PageEmpty = "empty"
)

// PageData is what the layout renders
type PageData struct {
	Title       string
	QueryConfig query.PageConfig
}

// TemplateRenderer holds one parsed layout+content set per page
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer parses the embedded layout and every page template
func NewTemplateRenderer() (*TemplateRenderer, error) {
	layout, err := template.ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout template: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{PageHome, PageEmpty} {
		page, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := page.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to load %s template: %w", name, err)
		}
		pages[name] = page
	}

	return &TemplateRenderer{pages: pages}, nil
}

// Render executes the named page inside the layout
func (r *TemplateRenderer) Render(page string, data PageData) ([]byte, error) {
	tmpl, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render %s page: %w", page, err)
	}
	return buf.Bytes(), nil
}
