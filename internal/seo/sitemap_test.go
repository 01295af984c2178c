package seo

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jacoelho/xsd"
	"github.com/stretchr/testify/require"
)

func TestGenerateSitemapValidatesAgainstSchema(t *testing.T) {
	t.Parallel()

	schema, err := xsd.Load(os.DirFS("testdata"), "sitemap.xsd")
	require.NoError(t, err)

	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	out := GenerateSitemap([]string{"/", "/about", "/blog/hello"}, "https://mywebsite.com", now)

	require.NoError(t, schema.Validate(strings.NewReader(out)))
	require.Equal(t, 3, strings.Count(out, "<url>"))
	require.Contains(t, out, "<loc>https://mywebsite.com/blog/hello</loc>")
	require.Contains(t, out, "<changefreq>weekly</changefreq>")
	require.Contains(t, out, "<priority>0.8</priority>")
	require.Contains(t, out, "<lastmod>2025-01-31</lastmod>")
}

func TestGenerateSitemapEscapesLocations(t *testing.T) {
	t.Parallel()

	out := GenerateSitemap([]string{"/search?a=1&b=2"}, "https://example.com", time.Now())
	require.Contains(t, out, "<loc>https://example.com/search?a=1&amp;b=2</loc>")
}

func TestGenerateSitemapEmpty(t *testing.T) {
	t.Parallel()

	out := GenerateSitemap(nil, "", time.Now())
	require.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	require.NotContains(t, out, "<url>")
}
