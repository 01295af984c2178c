package seo

import (
	"encoding/json"
)

const (
	schemaContext = "https://schema.org"
	// AvailabilityInStock is the schema.org default offer availability.
	AvailabilityInStock = "https://schema.org/InStock"
)

// Schema is a schema.org JSON-LD payload. It always carries @context and
// @type.
type Schema map[string]any

// Type returns the @type of the schema.
func (s Schema) Type() string {
	t, _ := s["@type"].(string)
	return t
}

func newSchema(typ string) Schema {
	return Schema{
		"@context": schemaContext,
		"@type":    typ,
	}
}

// setIf stores value under key unless value is empty.
func (s Schema) setIf(key, value string) {
	if value != "" {
		s[key] = value
	}
}

// MarshalSchema renders s as the two-space indented JSON written into
// ld+json script blocks.
func MarshalSchema(s Schema) (string, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SearchAction describes a site search endpoint. Target contains the
// placeholder named in QueryInput, e.g. "https://x/?q={term}" and
// "required name=term".
type SearchAction struct {
	Target     string
	QueryInput string
}

// WebsiteInput feeds BuildWebsiteSchema.
type WebsiteInput struct {
	Name         string
	URL          string
	Description  string
	SearchAction *SearchAction
}

// BuildWebsiteSchema returns a WebSite schema with an optional SearchAction.
func BuildWebsiteSchema(in WebsiteInput) Schema {
	s := newSchema("WebSite")
	s["name"] = in.Name
	s["url"] = in.URL
	s.setIf("description", in.Description)
	if in.SearchAction != nil {
		s["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      in.SearchAction.Target,
			"query-input": in.SearchAction.QueryInput,
		}
	}
	return s
}

// Review is a product review.
type Review struct {
	Author string
	Rating float64
	Body   string
}

// ProductInput feeds BuildProductSchema.
type ProductInput struct {
	Name         string
	Description  string
	Image        string
	Price        float64
	Currency     string
	Availability string
	Brand        string
	SKU          string
	Reviews      []Review
}

// BuildProductSchema returns a Product schema. The offer availability
// defaults to in stock.
func BuildProductSchema(in ProductInput) Schema {
	s := newSchema("Product")
	s["name"] = in.Name
	s["description"] = in.Description
	s["image"] = in.Image
	s["offers"] = map[string]any{
		"@type":         "Offer",
		"price":         in.Price,
		"priceCurrency": in.Currency,
		"availability":  firstNonEmpty(in.Availability, AvailabilityInStock),
	}
	if in.Brand != "" {
		s["brand"] = map[string]any{"@type": "Brand", "name": in.Brand}
	}
	s.setIf("sku", in.SKU)
	if len(in.Reviews) > 0 {
		reviews := make([]map[string]any, 0, len(in.Reviews))
		for _, r := range in.Reviews {
			review := map[string]any{
				"@type":  "Review",
				"author": map[string]any{"@type": "Person", "name": r.Author},
				"reviewRating": map[string]any{
					"@type":       "Rating",
					"ratingValue": r.Rating,
				},
			}
			if r.Body != "" {
				review["reviewBody"] = r.Body
			}
			reviews = append(reviews, review)
		}
		s["review"] = reviews
	}
	return s
}

// ArticleInput feeds BuildArticleSchema.
type ArticleInput struct {
	Headline      string
	Author        string
	DatePublished string
	DateModified  string
	Image         string
	Description   string
	URL           string
}

// BuildArticleSchema returns an Article schema. DateModified falls back to
// DatePublished.
func BuildArticleSchema(in ArticleInput) Schema {
	s := newSchema("Article")
	s["headline"] = in.Headline
	s["author"] = map[string]any{"@type": "Person", "name": in.Author}
	s["datePublished"] = in.DatePublished
	s["dateModified"] = firstNonEmpty(in.DateModified, in.DatePublished)
	s.setIf("image", in.Image)
	s.setIf("description", in.Description)
	s.setIf("url", in.URL)
	return s
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	StreetAddress   string `yaml:"streetAddress" json:"streetAddress,omitempty"`
	AddressLocality string `yaml:"addressLocality" json:"addressLocality,omitempty"`
	AddressRegion   string `yaml:"addressRegion" json:"addressRegion,omitempty"`
	PostalCode      string `yaml:"postalCode" json:"postalCode,omitempty"`
	AddressCountry  string `yaml:"addressCountry" json:"addressCountry,omitempty"`
}

// ContactPoint is a schema.org ContactPoint.
type ContactPoint struct {
	Telephone   string `yaml:"telephone" json:"telephone,omitempty"`
	ContactType string `yaml:"contactType" json:"contactType,omitempty"`
	Email       string `yaml:"email" json:"email,omitempty"`
}

// OrganizationInput feeds BuildOrganizationSchema.
type OrganizationInput struct {
	Name         string
	URL          string
	Logo         string
	Description  string
	Address      *PostalAddress
	ContactPoint *ContactPoint
	SameAs       []string
}

// BuildOrganizationSchema returns an Organization schema.
func BuildOrganizationSchema(in OrganizationInput) Schema {
	s := newSchema("Organization")
	s["name"] = in.Name
	s["url"] = in.URL
	s.setIf("logo", in.Logo)
	s.setIf("description", in.Description)
	if in.Address != nil {
		s["address"] = typed("PostalAddress", *in.Address)
	}
	if in.ContactPoint != nil {
		s["contactPoint"] = typed("ContactPoint", *in.ContactPoint)
	}
	if len(in.SameAs) > 0 {
		s["sameAs"] = cloneStrings(in.SameAs)
	}
	return s
}

// typed flattens v into a map and tags it with @type. v must marshal to a
// JSON object.
func typed(typ string, v any) map[string]any {
	out := map[string]any{}
	if b, err := json.Marshal(v); err == nil {
		_ = json.Unmarshal(b, &out)
	}
	out["@type"] = typ
	return out
}

// BreadcrumbItem maps a display name to an absolute URL.
type BreadcrumbItem struct {
	Name string
	URL  string
}

// BuildBreadcrumbSchema returns a BreadcrumbList with 1-based positions.
func BuildBreadcrumbSchema(items []BreadcrumbItem) Schema {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.URL,
		})
	}
	s := newSchema("BreadcrumbList")
	s["itemListElement"] = el
	return s
}
