// Package handlers renders the demo site: every page runs through the
// template, a parsed document, and the seo service before it is written.
package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/content"
	"github.com/gridatek/go-seo-toolkit/internal/dom"
	"github.com/gridatek/go-seo-toolkit/internal/nav"
	"github.com/gridatek/go-seo-toolkit/internal/observability"
	"github.com/gridatek/go-seo-toolkit/internal/routes"
	"github.com/gridatek/go-seo-toolkit/internal/seo"
)

const heroSelector = "img[data-seo-image]"

// Site serves the pages of a route table.
type Site struct {
	routes   *routes.Table
	pages    *content.Store
	tmpl     *template.Template
	defaults seo.Defaults
	baseURL  string
	now      func() time.Time
}

// Option customises a Site.
type Option func(*Site)

// WithBaseURL pins the public origin. Without it each request's own origin
// is used.
func WithBaseURL(baseURL string) Option {
	return func(s *Site) {
		s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithClock overrides the clock used for sitemap dates.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSite returns a Site rendering table with tmpl.
func NewSite(table *routes.Table, pages *content.Store, tmpl *template.Template, defaults seo.Defaults, opts ...Option) *Site {
	s := &Site{
		routes:   table,
		pages:    pages,
		tmpl:     tmpl,
		defaults: defaults.Clone(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts every route plus /sitemap.xml and /robots.txt on r.
func (s *Site) Register(r chi.Router) {
	for _, route := range s.routes.Routes {
		r.Get(route.Path, s.page(route.Path))
	}
	r.Get("/sitemap.xml", s.Sitemap)
	r.Get("/robots.txt", s.Robots)
}

// page serves the route registered under pattern, resolving it from the
// table on every request.
func (s *Site) page(pattern string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := observability.FromContext(r.Context())

		route, err := s.routes.Lookup(pattern)
		if errors.Is(err, routes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}

		data, err := s.pageData(route, r)
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			logger.Error("load page", zap.String("route", route.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
			logger.Error("execute template", zap.String("route", route.Path), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		doc, err := dom.Parse(&buf)
		if err != nil {
			logger.Error("parse rendered page", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		s.applySEO(doc, route, data, s.origin(r), logger)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := doc.Render(w); err != nil {
			logger.Warn("write page", zap.Error(err))
		}
	}
}

func (s *Site) pageData(route routes.Route, r *http.Request) (PageData, error) {
	path := r.URL.Path
	items := s.routes.NavItems()
	data := PageData{
		Lang:        lang(s.defaults.DefaultLocale),
		SiteName:    s.defaults.SiteName,
		Path:        path,
		Nav:         nav.Build(items, path),
		Breadcrumbs: nav.Breadcrumbs(items, path),
		Heading:     route.Heading,
		Body:        route.Body,
		Hero:        route.Hero,
		Product:     route.Product,
	}

	if route.Content {
		post, err := s.pages.Get(chi.URLParam(r, routes.SlugParam))
		if err != nil {
			return PageData{}, err
		}
		data.Post = &post
		if n := len(data.Breadcrumbs); n > 0 {
			data.Breadcrumbs[n-1].Label = post.Title
		}
	}
	if route.Listing {
		posts, err := s.pages.List()
		if err != nil {
			return PageData{}, err
		}
		data.Posts = posts
	}
	return data, nil
}

// applySEO drives one seo.Service over doc the way a client router would:
// the navigation completes, the route activates, then page content refines
// the metadata and registers its structured data.
func (s *Site) applySEO(doc *dom.HTML, route routes.Route, data PageData, origin string, logger *zap.Logger) {
	router := nav.NewRouter()
	svc := seo.New(doc, s.defaults,
		seo.WithNavigation(router),
		seo.WithLocation(seo.NewRouterLocation(origin, router)),
		seo.WithLogger(logger),
		seo.WithClock(s.now),
	)
	defer svc.Close()

	url := origin + data.Path
	router.Navigate(data.Path)
	svc.Activate(route.Meta(), url)
	if data.Post != nil {
		cfg := data.Post.SEO()
		cfg.URL = url
		svc.UpdateSeo(cfg)
	}

	for _, decl := range route.Schemas {
		schema, ok := s.buildSchema(decl, route, data, origin)
		if !ok {
			continue
		}
		svc.AddStructuredData(decl.ID, schema)
	}

	var hints seo.ImageHints
	if route.Hero != nil {
		hints = route.Hero.Hints()
	}
	seo.ApplyImageHints(doc.Find(heroSelector), hints)
}

func (s *Site) buildSchema(decl routes.Schema, route routes.Route, data PageData, origin string) (seo.Schema, bool) {
	switch decl.Type {
	case routes.SchemaWebsite:
		in := decl.Website.Input()
		if in.URL == "" {
			in.URL = origin
		}
		return seo.BuildWebsiteSchema(in), true
	case routes.SchemaOrganization:
		in := decl.Organization.Input()
		if in.URL == "" {
			in.URL = origin
		}
		return seo.BuildOrganizationSchema(in), true
	case routes.SchemaProduct:
		return seo.BuildProductSchema(route.Product.Input()), true
	case routes.SchemaArticle:
		if data.Post == nil {
			return nil, false
		}
		return seo.BuildArticleSchema(data.Post.Article(origin + data.Path)), true
	case routes.SchemaBreadcrumb:
		items := make([]seo.BreadcrumbItem, 0, len(data.Breadcrumbs))
		for _, c := range data.Breadcrumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, URL: origin + c.Href})
		}
		return seo.BuildBreadcrumbSchema(items), true
	}
	return nil, false
}

// origin returns the configured base URL or the request's own origin.
func (s *Site) origin(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// lang maps a locale such as en_US to its language tag.
func lang(locale string) string {
	if i := strings.IndexAny(locale, "_-"); i > 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return "en"
	}
	return strings.ToLower(locale)
}
