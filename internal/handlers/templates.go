package handlers

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gridatek/go-seo-toolkit/internal/format"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"price":   format.Price,
		"date":    format.Date,
		"isoDate": format.ISODate,
	}
	tmpl, err := template.New("_root").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("handlers: parse templates: %w", err)
	}
	return tmpl, nil
}
