package seo

import (
	"net/url"
	"strings"
)

// Location is an addressable current location. Hosts that cannot address
// one (for example a batch pre-render without a known origin) pass none, and
// canonical links are then only written when given explicitly.
type Location interface {
	// Origin returns scheme://host[:port] without a trailing slash.
	Origin() string
	// Href returns the absolute URL of the current page.
	Href() string
}

// StaticLocation is a fixed Location.
type StaticLocation struct {
	origin string
	href   string
}

// NewStaticLocation parses rawURL. It returns false when rawURL is not an
// absolute URL with a host.
func NewStaticLocation(rawURL string) (StaticLocation, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return StaticLocation{}, false
	}
	origin := u.Scheme + "://" + u.Host
	u.Fragment = ""
	return StaticLocation{origin: origin, href: u.String()}, true
}

// Origin implements Location.
func (l StaticLocation) Origin() string { return l.origin }

// Href implements Location.
func (l StaticLocation) Href() string { return l.href }

// URLSource reports the current path of a navigation host, such as
// *nav.Router.
type URLSource interface {
	URL() string
}

// RouterLocation tracks the URL of the last completed navigation under a
// fixed origin.
type RouterLocation struct {
	origin string
	src    URLSource
}

// NewRouterLocation returns a Location whose Href follows src.
func NewRouterLocation(origin string, src URLSource) RouterLocation {
	return RouterLocation{origin: strings.TrimRight(origin, "/"), src: src}
}

// Origin implements Location.
func (l RouterLocation) Origin() string { return l.origin }

// Href implements Location.
func (l RouterLocation) Href() string {
	path := ""
	if l.src != nil {
		path = l.src.URL()
	}
	if path == "" {
		path = "/"
	}
	return l.origin + path
}
