// Package seo reconciles a document's head metadata (title, meta tags,
// canonical link, JSON-LD blocks) with the current route.
package seo

import (
	"time"

	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
	"github.com/gridatek/go-seo-toolkit/internal/nav"
)

// RouteMeta is what a route definition contributes on activation.
type RouteMeta struct {
	Path string
	SEO  *Config
}

// Service coordinates title, tag and structured-data updates for one
// document. It owns every node it writes. A Service is not safe for
// concurrent use; hosts rendering concurrently create one per document.
type Service struct {
	doc      dom.Document
	defaults Defaults
	tags     *TagReconciler
	data     *StructuredDataRegistry
	location Location
	stream   nav.Stream
	watcher  *navigationWatcher
	logger   *zap.Logger
	now      func() time.Time
	closed   bool
}

// Option customises a Service.
type Option func(*Service)

// WithNavigation recomputes the canonical link on every completed
// navigation of stream until Close.
func WithNavigation(stream nav.Stream) Option {
	return func(s *Service) {
		s.stream = stream
	}
}

// WithLocation marks the host as having an addressable location. Without it
// canonical links are only written when supplied explicitly.
func WithLocation(loc Location) Option {
	return func(s *Service) {
		s.location = loc
	}
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for sitemap dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Service writing into doc with a private copy of defaults.
func New(doc dom.Document, defaults Defaults, opts ...Option) *Service {
	s := &Service{
		doc:      doc,
		defaults: defaults.Clone(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tags = NewTagReconciler(doc, s.logger)
	s.data = NewStructuredDataRegistry(doc, s.logger)
	if s.stream != nil {
		s.watcher = watchNavigation(s.stream, s.onNavigationEnd)
	}
	return s
}

// Defaults returns a copy of the defaults the Service was built with.
func (s *Service) Defaults() Defaults { return s.defaults.Clone() }

// Tags exposes the tag reconciler for direct reads.
func (s *Service) Tags() *TagReconciler { return s.tags }

// UpdateSeo merges request over the defaults and writes the title, the
// derived meta tags and the canonical link.
func (s *Service) UpdateSeo(request Config) {
	cfg := Merge(s.defaults, request)

	if cfg.Title != "" {
		s.SetTitle(cfg.Title, true)
	}

	MetaFromConfig(cfg).apply(s.tags)

	switch {
	case cfg.Canonical != "":
		s.SetCanonicalURL(cfg.Canonical)
	case s.location != nil:
		s.SetCanonicalURL(s.location.Href())
	default:
		s.logger.Debug("seo: canonical skipped, no addressable location")
	}
}

// SetTitle writes the document title, applying the title template unless
// useTemplate is false.
func (s *Service) SetTitle(title string, useTemplate bool) {
	final := FormatTitle(title, s.defaults.TitleTemplate, useTemplate)
	node := s.doc.Find("head > title")
	if node == nil {
		node = s.doc.Create("title")
		s.doc.AppendToHead(node)
	}
	node.SetText(final)
}

// SetCanonicalURL upserts the canonical link. Empty urls are skipped.
func (s *Service) SetCanonicalURL(url string) {
	s.tags.Upsert(CanonicalKey, url)
}

// RemoveTag removes the tag under key if present.
func (s *Service) RemoveTag(key TagKey) {
	s.tags.Remove(key)
}

// AddStructuredData registers schema under id, replacing any previous block
// with that id, and returns the id in use.
func (s *Service) AddStructuredData(id string, schema Schema) string {
	return s.data.Register(id, schema)
}

// RemoveStructuredData removes the block under id if present.
func (s *Service) RemoveStructuredData(id string) {
	s.data.Unregister(id)
}

// Activate applies a route's SEO fragment with URL set to resolvedURL.
// Routes without a fragment leave the document untouched.
func (s *Service) Activate(route RouteMeta, resolvedURL string) {
	if route.SEO == nil {
		return
	}
	cfg := route.SEO.Clone()
	cfg.URL = resolvedURL
	s.UpdateSeo(cfg)
}

// GenerateSitemap renders a sitemap for paths. An empty baseURL falls back to
// the location origin, if any.
func (s *Service) GenerateSitemap(paths []string, baseURL string) string {
	if baseURL == "" && s.location != nil {
		baseURL = s.location.Origin()
	}
	return GenerateSitemap(paths, baseURL, s.now())
}

// Close ends the navigation subscription. It is safe to call more than once.
func (s *Service) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.watcher != nil {
		s.watcher.stop()
	}
}

func (s *Service) onNavigationEnd(url string) {
	if s.location == nil {
		s.logger.Debug("seo: navigation canonical skipped, no addressable location", zap.String("url", url))
		return
	}
	s.SetCanonicalURL(s.location.Origin() + url)
}
