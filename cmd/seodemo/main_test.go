package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/config"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	missing := t.TempDir()
	cfg, err := config.Load(
		config.WithEnvFile(""),
		config.WithoutSystemEnv(),
		config.WithEnvMap(map[string]string{
			"SEO_BASE_URL":            "https://mywebsite.com",
			"SEO_TITLE_TEMPLATE":      "%s | My Website",
			"SEO_SITE_NAME":           "My Website",
			"SEO_DEFAULT_DESCRIPTION": "The best website for all your needs",
			"SEO_DEFAULT_AUTHOR":      "John Doe",
			"SEO_ROUTES_FILE":         filepath.Join(missing, "routes.yaml"),
			"SEO_CONTENT_DIR":         filepath.Join(missing, "content"),
		}),
	)
	require.NoError(t, err)

	logger := zap.NewNop()
	src, err := loadSite(cfg, logger)
	require.NoError(t, err)
	handler, err := newRouter(cfg, src, logger)
	require.NoError(t, err)
	return handler
}

func fetch(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func fetchDoc(t *testing.T, h http.Handler, target string) *goquery.Document {
	t.Helper()
	rec := fetch(t, h, target)
	require.Equal(t, http.StatusOK, rec.Code, target)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func schemaTypes(t *testing.T, doc *goquery.Document) []string {
	t.Helper()
	var types []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload struct {
			Type string `json:"@type"`
		}
		require.NoError(t, json.Unmarshal([]byte(s.Text()), &payload))
		types = append(types, payload.Type)
	})
	return types
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).Attr("content")
	return v
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := fetch(t, newTestHandler(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestEmbeddedHomePage(t *testing.T) {
	t.Parallel()

	doc := fetchDoc(t, newTestHandler(t), "/")

	require.Equal(t, "Welcome Home | My Website", doc.Find("head > title").Text())
	require.Equal(t, 1, doc.Find("head > title").Length())
	require.Equal(t, "The best website for all your needs", metaContent(doc, `meta[name="description"]`))
	require.Equal(t, "website", metaContent(doc, `meta[property="og:type"]`))
	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://mywebsite.com/", href)
	require.Equal(t, []string{"WebSite"}, schemaTypes(t, doc))

	hero := doc.Find("img[data-seo-image]")
	loading, _ := hero.Attr("loading")
	priority, _ := hero.Attr("fetchpriority")
	require.Equal(t, "eager", loading)
	require.Equal(t, "high", priority)
}

func TestEmbeddedAboutPage(t *testing.T) {
	t.Parallel()

	doc := fetchDoc(t, newTestHandler(t), "/about")

	require.Equal(t, "About Us | My Website", doc.Find("head > title").Text())
	require.ElementsMatch(t, []string{"Organization", "BreadcrumbList"}, schemaTypes(t, doc))
}

func TestEmbeddedProductPage(t *testing.T) {
	t.Parallel()

	doc := fetchDoc(t, newTestHandler(t), "/product")

	require.Equal(t, "Amazing Product - Buy Online | My Website", doc.Find("head > title").Text())
	require.Equal(t, "product", metaContent(doc, `meta[property="og:type"]`))
	require.Equal(t, []string{"Product"}, schemaTypes(t, doc))
	require.Equal(t, "$99.99", strings.TrimSpace(doc.Find(".price").Text()))
}

func TestEmbeddedBlogPost(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	doc := fetchDoc(t, h, "/blog/structured-data-basics")

	require.Equal(t, "Structured Data Basics | My Website", doc.Find("head > title").Text())
	require.Equal(t, "article", metaContent(doc, `meta[property="og:type"]`))
	require.Equal(t, "Jane Doe", metaContent(doc, `meta[name="author"]`))
	require.ElementsMatch(t, []string{"Article", "BreadcrumbList"}, schemaTypes(t, doc))

	require.Equal(t, http.StatusNotFound, fetch(t, h, "/blog/missing").Code)
}

func TestEmbeddedSitemap(t *testing.T) {
	t.Parallel()

	rec := fetch(t, newTestHandler(t), "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, loc := range []string{
		"https://mywebsite.com/",
		"https://mywebsite.com/about",
		"https://mywebsite.com/product",
		"https://mywebsite.com/blog",
		"https://mywebsite.com/blog/structured-data-basics",
		"https://mywebsite.com/blog/writing-good-titles",
	} {
		require.Contains(t, body, "<loc>"+loc+"</loc>")
	}
	require.NotContains(t, body, "{slug}")
}

func TestEmbeddedAssets(t *testing.T) {
	t.Parallel()

	rec := fetch(t, newTestHandler(t), "/assets/hero.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
	require.Contains(t, rec.Body.String(), "<svg")
}

func TestLoadSiteFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	routesFile := filepath.Join(dir, "routes.yaml")
	require.NoError(t, os.WriteFile(routesFile, []byte("routes:\n  - path: /\n    label: Home\n    seo:\n      title: Disk\n"), 0o600))

	cfg, err := config.Load(
		config.WithEnvFile(""),
		config.WithoutSystemEnv(),
		config.WithEnvMap(map[string]string{
			"SEO_ROUTES_FILE": routesFile,
			"SEO_CONTENT_DIR": dir,
		}),
	)
	require.NoError(t, err)

	src, err := loadSite(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, src.table.Routes, 1)

	handler, err := newRouter(cfg, src, zap.NewNop())
	require.NoError(t, err)
	doc := fetchDoc(t, handler, "/")
	require.Equal(t, "Disk", doc.Find("head > title").Text())
}
