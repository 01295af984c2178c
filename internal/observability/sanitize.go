package observability

import (
	"strings"
	"unicode"
)

const (
	defaultStringLimit = 256
	maxRouteLength     = 180
	maxQueryLength     = 64
	truncatedMarker    = "..."
)

// sanitizeString drops control characters and caps the result at limit runes.
func sanitizeString(value string, limit int) string {
	if limit <= 0 {
		limit = defaultStringLimit
	}

	cleaned := make([]rune, 0, len(value))
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		cleaned = append(cleaned, r)
	}
	if len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	return string(cleaned)
}

// SanitizeRoute removes control characters and enforces length constraints on routes.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return sanitizeString(route, maxRouteLength)
}

// SanitizePath prepares a request URI for the path log field. The fragment
// is dropped and the query string is kept up to maxQueryLength runes, with
// a trailing marker when it was cut.
func SanitizePath(uri string) string {
	uri, _, _ = strings.Cut(uri, "#")
	path, query, _ := strings.Cut(uri, "?")
	path = SanitizeRoute(path)
	if query == "" {
		return path
	}

	q := []rune(sanitizeString(query, len(query)))
	if len(q) > maxQueryLength {
		return path + "?" + string(q[:maxQueryLength]) + truncatedMarker
	}
	return path + "?" + string(q)
}

// SanitizeMethod removes control characters in HTTP methods.
func SanitizeMethod(method string) string {
	return sanitizeString(method, 10)
}
