package handlers

import (
	"github.com/gridatek/go-seo-toolkit/internal/content"
	"github.com/gridatek/go-seo-toolkit/internal/nav"
	"github.com/gridatek/go-seo-toolkit/internal/routes"
)

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Lang     string
	SiteName string
	Path     string

	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	Heading string
	Body    string
	Hero    *routes.Image

	// Optional per-page payloads
	Product *routes.Product
	Post    *content.Page
	Posts   []content.Page
}
