package seo

import "strings"

const titlePlaceholder = "%s"

// FormatTitle applies template to raw. Only the first placeholder is
// substituted; a template without one is returned verbatim. An empty template
// behaves like "%s".
func FormatTitle(raw, template string, useTemplate bool) string {
	if !useTemplate {
		return raw
	}
	if template == "" {
		template = titlePlaceholder
	}
	return strings.Replace(template, titlePlaceholder, raw, 1)
}
