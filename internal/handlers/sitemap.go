package handlers

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
	"github.com/gridatek/go-seo-toolkit/internal/observability"
	"github.com/gridatek/go-seo-toolkit/internal/seo"
)

// Sitemap lists every static route and every content page.
func (s *Site) Sitemap(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())

	paths := s.routes.StaticPaths()
	if route, ok := s.routes.ContentRoute(); ok {
		posts, err := s.pages.List()
		if err != nil {
			logger.Error("list content", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		for _, p := range posts {
			paths = append(paths, route.ContentPath(p.Slug))
		}
	}

	opts := []seo.Option{seo.WithClock(s.now), seo.WithLogger(logger)}
	if loc, ok := seo.NewStaticLocation(s.origin(r)); ok {
		opts = append(opts, seo.WithLocation(loc))
	}
	svc := seo.New(dom.NewHTML(), s.defaults, opts...)
	defer svc.Close()

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = io.WriteString(w, svc.GenerateSitemap(paths, s.baseURL))
}

// Robots allows every crawler and points at the sitemap.
func (s *Site) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", s.origin(r))
}
