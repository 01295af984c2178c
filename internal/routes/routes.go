// Package routes loads the site's route table: per-route SEO fragments,
// hero images and structured-data declarations.
package routes

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridatek/go-seo-toolkit/internal/nav"
	"github.com/gridatek/go-seo-toolkit/internal/seo"
)

// ErrNotFound is returned when no route matches a path.
var ErrNotFound = errors.New("routes: not found")

// Schema kinds a route may declare.
const (
	SchemaWebsite      = "website"
	SchemaOrganization = "organization"
	SchemaBreadcrumb   = "breadcrumb"
	SchemaProduct      = "product"
	SchemaArticle      = "article"
)

// SlugParam is the path parameter that selects a content page.
const SlugParam = "slug"

// Table is an ordered list of routes.
type Table struct {
	Routes []Route `yaml:"routes"`
}

// Route describes one page.
type Route struct {
	Path    string      `yaml:"path"`
	Label   string      `yaml:"label"`
	Heading string      `yaml:"heading"`
	Body    string      `yaml:"body"`
	Content bool        `yaml:"content"`
	Listing bool        `yaml:"listing"`
	SEO     *seo.Config `yaml:"seo"`
	Hero    *Image      `yaml:"hero"`
	Product *Product    `yaml:"product"`
	Schemas []Schema    `yaml:"schemas"`
}

// Image is a hero image with its loading hints.
type Image struct {
	Src           string `yaml:"src"`
	Alt           string `yaml:"alt"`
	Loading       string `yaml:"loading"`
	FetchPriority string `yaml:"fetchPriority"`
}

// Hints returns the image's loading hints.
func (i Image) Hints() seo.ImageHints {
	return seo.ImageHints{Alt: i.Alt, Loading: i.Loading, FetchPriority: i.FetchPriority}
}

// Product is a product page's catalogue entry. It feeds both the visible
// markup and the Product schema.
type Product struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description"`
	Image        string  `yaml:"image"`
	Price        float64 `yaml:"price"`
	Currency     string  `yaml:"currency"`
	Availability string  `yaml:"availability"`
	Brand        string  `yaml:"brand"`
	SKU          string  `yaml:"sku"`
}

// Input converts p to schema builder input.
func (p Product) Input() seo.ProductInput {
	return seo.ProductInput{
		Name:         p.Name,
		Description:  p.Description,
		Image:        p.Image,
		Price:        p.Price,
		Currency:     p.Currency,
		Availability: p.Availability,
		Brand:        p.Brand,
		SKU:          p.SKU,
	}
}

// Schema declares a structured-data block. Website and Organization carry
// their own inputs; product, article and breadcrumb blocks are derived from
// the route and its content.
type Schema struct {
	ID           string        `yaml:"id"`
	Type         string        `yaml:"type"`
	Website      *Website      `yaml:"website"`
	Organization *Organization `yaml:"organization"`
}

// Website feeds a WebSite schema.
type Website struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	Description  string `yaml:"description"`
	SearchTarget string `yaml:"searchTarget"`
	QueryInput   string `yaml:"queryInput"`
}

// Input converts w to schema builder input.
func (w Website) Input() seo.WebsiteInput {
	in := seo.WebsiteInput{Name: w.Name, URL: w.URL, Description: w.Description}
	if w.SearchTarget != "" {
		in.SearchAction = &seo.SearchAction{Target: w.SearchTarget, QueryInput: w.QueryInput}
	}
	return in
}

// Organization feeds an Organization schema.
type Organization struct {
	Name         string             `yaml:"name"`
	URL          string             `yaml:"url"`
	Logo         string             `yaml:"logo"`
	Description  string             `yaml:"description"`
	Address      *seo.PostalAddress `yaml:"address"`
	ContactPoint *seo.ContactPoint  `yaml:"contactPoint"`
	SameAs       []string           `yaml:"sameAs"`
}

// Input converts o to schema builder input.
func (o Organization) Input() seo.OrganizationInput {
	return seo.OrganizationInput{
		Name:         o.Name,
		URL:          o.URL,
		Logo:         o.Logo,
		Description:  o.Description,
		Address:      o.Address,
		ContactPoint: o.ContactPoint,
		SameAs:       o.SameAs,
	}
}

// Meta returns what the route contributes on activation.
func (r Route) Meta() seo.RouteMeta {
	meta := seo.RouteMeta{Path: r.Path}
	if r.SEO != nil {
		cfg := r.SEO.Clone()
		meta.SEO = &cfg
	}
	return meta
}

// Static reports whether the route has no path parameters.
func (r Route) Static() bool {
	return !strings.Contains(r.Path, "{")
}

// Load decodes and validates a route table.
func Load(r io.Reader) (*Table, error) {
	var table Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("routes: decode: %w", err)
	}
	if err := table.normalize(); err != nil {
		return nil, err
	}
	return &table, nil
}

// LoadFS reads and validates the route table at name in fsys.
func LoadFS(fsys fs.FS, name string) (*Table, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("routes: open %s: %w", name, err)
	}
	defer f.Close()
	return Load(f)
}

// Lookup returns the route registered under pattern.
func (t *Table) Lookup(pattern string) (Route, error) {
	for _, r := range t.Routes {
		if r.Path == pattern {
			return r, nil
		}
	}
	return Route{}, ErrNotFound
}

// NavItems lists labelled static routes in table order.
func (t *Table) NavItems() []nav.Item {
	items := make([]nav.Item, 0, len(t.Routes))
	for _, r := range t.Routes {
		if r.Label == "" || !r.Static() {
			continue
		}
		items = append(items, nav.Item{Path: r.Path, Label: r.Label})
	}
	return items
}

// ContentRoute returns the route serving content pages, if any.
func (t *Table) ContentRoute() (Route, bool) {
	for _, r := range t.Routes {
		if r.Content {
			return r, true
		}
	}
	return Route{}, false
}

// ContentPath resolves a content route pattern for slug.
func (r Route) ContentPath(slug string) string {
	return strings.Replace(r.Path, "{"+SlugParam+"}", slug, 1)
}

// StaticPaths lists the paths of every static route in table order.
func (t *Table) StaticPaths() []string {
	paths := make([]string, 0, len(t.Routes))
	for _, r := range t.Routes {
		if r.Static() {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func (t *Table) normalize() error {
	if len(t.Routes) == 0 {
		return errors.New("routes: table is empty")
	}
	seen := make(map[string]struct{}, len(t.Routes))
	for i := range t.Routes {
		r := &t.Routes[i]
		r.Path = strings.TrimSpace(r.Path)
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("routes: route %d: path %q must start with /", i, r.Path)
		}
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("routes: duplicate path %q", r.Path)
		}
		seen[r.Path] = struct{}{}
		if r.Content && !strings.Contains(r.Path, "{"+SlugParam+"}") {
			return fmt.Errorf("routes: %s: content routes need a {%s} parameter", r.Path, SlugParam)
		}

		ids := make(map[string]struct{}, len(r.Schemas))
		for j := range r.Schemas {
			s := &r.Schemas[j]
			s.Type = strings.ToLower(strings.TrimSpace(s.Type))
			if err := s.validate(*r); err != nil {
				return fmt.Errorf("routes: %s: schema %d: %w", r.Path, j, err)
			}
			if s.ID == "" {
				s.ID = s.Type
			}
			if _, dup := ids[s.ID]; dup {
				return fmt.Errorf("routes: %s: duplicate schema id %q", r.Path, s.ID)
			}
			ids[s.ID] = struct{}{}
		}
	}
	return nil
}

func (s Schema) validate(r Route) error {
	switch s.Type {
	case SchemaWebsite:
		if s.Website == nil {
			return errors.New("website schema needs a website block")
		}
	case SchemaOrganization:
		if s.Organization == nil {
			return errors.New("organization schema needs an organization block")
		}
	case SchemaProduct:
		if r.Product == nil {
			return errors.New("product schema needs a product on the route")
		}
	case SchemaArticle:
		if !r.Content {
			return errors.New("article schema needs a content route")
		}
	case SchemaBreadcrumb:
	default:
		return fmt.Errorf("unknown schema type %q", s.Type)
	}
	return nil
}
