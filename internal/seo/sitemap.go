package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

const (
	sitemapNamespace  = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapChangeFreq = "weekly"
	sitemapPriority   = "0.8"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// GenerateSitemap renders a urlset with one entry per path. Every entry is
// weekly, priority 0.8, and last modified on now's date.
func GenerateSitemap(paths []string, baseURL string, now time.Time) string {
	lastmod := now.Format("2006-01-02")
	set := sitemapURLSet{
		Xmlns: sitemapNamespace,
		URLs:  make([]sitemapURL, 0, len(paths)),
	}
	for _, p := range paths {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + p,
			LastMod:    lastmod,
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		})
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		// strings.Builder never fails and every field is a plain string.
		return ""
	}
	b.WriteString("\n")
	return b.String()
}
