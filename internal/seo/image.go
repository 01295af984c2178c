package seo

import "github.com/gridatek/go-seo-toolkit/internal/dom"

// ImageHints are search-friendly attributes for content images.
type ImageHints struct {
	Alt           string
	Loading       string // "lazy" (default) or "eager"
	FetchPriority string // "high", "low" or "auto" (default)
}

// ApplyImageHints decorates an <img> node: alt when given, loading, a
// fetchpriority unless auto, itemprop=image and async decoding.
func ApplyImageHints(img dom.Node, hints ImageHints) {
	if img == nil {
		return
	}
	if hints.Alt != "" {
		img.SetAttr("alt", hints.Alt)
	}
	img.SetAttr("loading", firstNonEmpty(hints.Loading, "lazy"))
	if p := hints.FetchPriority; p != "" && p != "auto" {
		img.SetAttr("fetchpriority", p)
	}
	img.SetAttr("itemprop", "image")
	img.SetAttr("decoding", "async")
}
