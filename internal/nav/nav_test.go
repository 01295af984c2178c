package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testItems = []Item{
	{Path: "/about", Label: "About Us"},
	{Path: "/blog", Label: "Blog"},
}

func TestBuildMarksActiveItem(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current string
		active  []bool
	}{
		{name: "root", current: "", active: []bool{false, false}},
		{name: "exact", current: "/about", active: []bool{true, false}},
		{name: "prefix boundary", current: "/blog/first-post", active: []bool{false, true}},
		{name: "no partial segment", current: "/blogger", active: []bool{false, false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			items := Build(testItems, tc.current)
			require.Len(t, items, len(tc.active))
			for i, want := range tc.active {
				require.Equal(t, want, items[i].Active, "item %s", items[i].Href)
			}
		})
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs(testItems, "/blog/my-first_post?ref=home")
	require.Equal(t, []Crumb{
		{Href: "/", Label: "Home"},
		{Href: "/blog", Label: "Blog"},
		{Href: "/blog/my-first_post", Label: "My first post", Active: true},
	}, crumbs)

	home := Breadcrumbs(testItems, "/")
	require.Equal(t, []Crumb{{Href: "/", Label: "Home", Active: true}}, home)

	unknown := Breadcrumbs(nil, "/products")
	require.Equal(t, "Products", unknown[1].Label)
	require.True(t, unknown[1].Active)
}
