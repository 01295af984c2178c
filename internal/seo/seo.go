package seo

import "strings"

const (
	viewportContent    = "width=device-width, initial-scale=1"
	defaultTwitterCard = "summary"
)

// OpenGraph holds the og:* values derived from a merged Config.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	URL         string
	Type        string
	SiteName    string
	Locale      string
}

// Twitter holds the twitter:* values derived from a merged Config.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Image       string
	Site        string
	Creator     string
}

// Meta is the full tag set one update writes.
type Meta struct {
	Description string
	Keywords    string
	Author      string
	Robots      string
	Viewport    string
	OG          OpenGraph
	Twitter     Twitter
}

type tagEntry struct {
	key   TagKey
	value string
}

// MetaFromConfig derives the tag values for cfg. Robots and twitter:card
// always carry a value; everything else is left empty when its source is.
func MetaFromConfig(cfg Config) Meta {
	return Meta{
		Description: cfg.Description,
		Keywords:    strings.Join(cfg.Keywords, ", "),
		Author:      cfg.Author,
		Robots:      firstNonEmpty(cfg.Robots, defaultRobots),
		Viewport:    viewportContent,
		OG: OpenGraph{
			Title:       cfg.Title,
			Description: cfg.Description,
			Image:       cfg.Image,
			URL:         cfg.URL,
			Type:        cfg.Type,
			SiteName:    cfg.SiteName,
			Locale:      cfg.Locale,
		},
		Twitter: Twitter{
			Card:        firstNonEmpty(cfg.TwitterCard, defaultTwitterCard),
			Title:       cfg.Title,
			Description: cfg.Description,
			Image:       cfg.Image,
			Site:        cfg.TwitterSite,
			Creator:     cfg.TwitterCreator,
		},
	}
}

// entries lists every tag in write order.
func (m Meta) entries() []tagEntry {
	return []tagEntry{
		{NameKey("description"), m.Description},
		{NameKey("keywords"), m.Keywords},
		{NameKey("author"), m.Author},
		{NameKey("robots"), m.Robots},
		{NameKey("viewport"), m.Viewport},

		{PropertyKey("og:title"), m.OG.Title},
		{PropertyKey("og:description"), m.OG.Description},
		{PropertyKey("og:image"), m.OG.Image},
		{PropertyKey("og:url"), m.OG.URL},
		{PropertyKey("og:type"), m.OG.Type},
		{PropertyKey("og:site_name"), m.OG.SiteName},
		{PropertyKey("og:locale"), m.OG.Locale},

		{NameKey("twitter:card"), m.Twitter.Card},
		{NameKey("twitter:title"), m.Twitter.Title},
		{NameKey("twitter:description"), m.Twitter.Description},
		{NameKey("twitter:image"), m.Twitter.Image},
		{NameKey("twitter:site"), m.Twitter.Site},
		{NameKey("twitter:creator"), m.Twitter.Creator},
	}
}

// apply upserts every entry; empty values are skipped by the reconciler.
func (m Meta) apply(tags *TagReconciler) {
	for _, e := range m.entries() {
		tags.Upsert(e.key, e.value)
	}
}
