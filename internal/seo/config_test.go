package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		raw         string
		template    string
		useTemplate bool
		want        string
	}{
		{"template applied", "Home", "%s | My Website", true, "Home | My Website"},
		{"template bypassed", "Home", "%s | My Website", false, "Home"},
		{"empty template", "Home", "", true, "Home"},
		{"first placeholder only", "A", "%s - %s", true, "A - %s"},
		{"no placeholder", "Home", "Static", true, "Static"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, FormatTitle(tc.raw, tc.template, tc.useTemplate))
		})
	}
}

func TestMergeRequestWins(t *testing.T) {
	t.Parallel()

	defaults := Defaults{
		DefaultTitle:       "Site",
		DefaultDescription: "Default description",
		DefaultKeywords:    []string{"go", "seo"},
		DefaultType:        "website",
		SiteName:           "My Website",
		DefaultLocale:      "en_US",
		DefaultRobots:      "index,follow",
		TwitterSite:        "@site",
	}
	got := Merge(defaults, Config{
		Title:    "Post",
		Keywords: []string{"news"},
		Type:     "article",
	})

	require.Equal(t, "Post", got.Title)
	require.Equal(t, "Default description", got.Description)
	require.Equal(t, []string{"news"}, got.Keywords)
	require.Equal(t, "article", got.Type)
	require.Equal(t, "My Website", got.SiteName)
	require.Equal(t, "en_US", got.Locale)
	require.Equal(t, "@site", got.TwitterSite)
	require.Empty(t, got.Canonical)
	require.Empty(t, got.Author, "absent in both stays absent")
}

func TestMergeDoesNotAlias(t *testing.T) {
	t.Parallel()

	defaults := Defaults{DefaultKeywords: []string{"a", "b"}}
	got := Merge(defaults, Config{})
	got.Keywords[0] = "changed"

	require.Equal(t, []string{"a", "b"}, defaults.DefaultKeywords)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	d := NewDefaults()
	require.Equal(t, "%s", d.TitleTemplate)
	require.Equal(t, "website", d.DefaultType)
	require.Equal(t, "en_US", d.DefaultLocale)
	require.Equal(t, "index,follow", d.DefaultRobots)
}

func TestMetaFromConfigDefaults(t *testing.T) {
	t.Parallel()

	meta := MetaFromConfig(Config{Keywords: []string{"a", "b"}})

	require.Equal(t, "index,follow", meta.Robots)
	require.Equal(t, "summary", meta.Twitter.Card)
	require.Equal(t, "a, b", meta.Keywords)
	require.Equal(t, viewportContent, meta.Viewport)
	require.Empty(t, meta.OG.Locale)
	require.Len(t, meta.entries(), 18)
}
