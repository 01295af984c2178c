package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
)

const ldSelector = `script[type="application/ld+json"]`

func TestRegisterReplacesByID(t *testing.T) {
	t.Parallel()

	doc := dom.NewHTML()
	reg := NewStructuredDataRegistry(doc, nil)

	reg.Register("main", Schema{"@context": schemaContext, "@type": "Thing", "name": "A"})
	reg.Register("main", Schema{"@context": schemaContext, "@type": "Thing", "name": "B"})

	require.Equal(t, 1, doc.Count(ldSelector))
	payload, ok := reg.Payload("main")
	require.True(t, ok)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	require.Equal(t, "B", got["name"])
	require.NotContains(t, payload, `"A"`)

	want, err := MarshalSchema(Schema{"@context": schemaContext, "@type": "Thing", "name": "B"})
	require.NoError(t, err)
	require.Equal(t, want, payload)
}

func TestRegisterKeepsDistinctIDs(t *testing.T) {
	t.Parallel()

	doc := dom.NewHTML()
	reg := NewStructuredDataRegistry(doc, nil)

	reg.Register("website", BuildWebsiteSchema(WebsiteInput{Name: "Site", URL: "https://example.com"}))
	reg.Register("org", BuildOrganizationSchema(OrganizationInput{Name: "Org", URL: "https://example.com"}))

	require.Equal(t, 2, doc.Count(ldSelector))
	require.Equal(t, []string{"org", "website"}, reg.IDs())
}

func TestRegisterGeneratesID(t *testing.T) {
	t.Parallel()

	doc := dom.NewHTML()
	reg := NewStructuredDataRegistry(doc, nil)

	id := reg.Register("", newSchema("Thing"))
	require.True(t, strings.HasPrefix(id, "ld-"), id)
	require.NotNil(t, doc.Find(`script[id="`+id+`"]`))
}

func TestRegisterUnencodableKeepsPrevious(t *testing.T) {
	t.Parallel()

	doc := dom.NewHTML()
	reg := NewStructuredDataRegistry(doc, nil)

	reg.Register("main", Schema{"@context": schemaContext, "@type": "Thing", "name": "ok"})
	reg.Register("main", Schema{"@type": "Thing", "bad": make(chan int)})

	payload, ok := reg.Payload("main")
	require.True(t, ok)
	require.Contains(t, payload, `"ok"`)
}

func TestUnregister(t *testing.T) {
	t.Parallel()

	doc := dom.NewHTML()
	reg := NewStructuredDataRegistry(doc, nil)

	reg.Unregister("missing")
	reg.Register("main", newSchema("Thing"))
	reg.Unregister("main")

	require.Zero(t, doc.Count(ldSelector))
	require.Empty(t, reg.IDs())
}

func TestRegisterAdoptsRenderedBlock(t *testing.T) {
	t.Parallel()

	doc, err := dom.Parse(strings.NewReader(`<html><head>
<script type="application/ld+json" id="website">{"@type":"WebSite"}</script>
</head></html>`))
	require.NoError(t, err)

	reg := NewStructuredDataRegistry(doc, nil)
	reg.Register("website", BuildWebsiteSchema(WebsiteInput{Name: "Site", URL: "https://example.com"}))

	require.Equal(t, 1, doc.Count(ldSelector))
	payload, _ := reg.Payload("website")
	require.Contains(t, payload, `"name": "Site"`)
}
