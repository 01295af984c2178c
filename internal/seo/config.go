package seo

import "strings"

// Config is the per-update SEO intent. An empty field means "leave this
// dimension alone on this update".
type Config struct {
	Title          string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
	Keywords       []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Author         string   `yaml:"author,omitempty" json:"author,omitempty"`
	Image          string   `yaml:"image,omitempty" json:"image,omitempty"`
	URL            string   `yaml:"url,omitempty" json:"url,omitempty"`
	Type           string   `yaml:"type,omitempty" json:"type,omitempty"`
	SiteName       string   `yaml:"siteName,omitempty" json:"siteName,omitempty"`
	Locale         string   `yaml:"locale,omitempty" json:"locale,omitempty"`
	Robots         string   `yaml:"robots,omitempty" json:"robots,omitempty"`
	Canonical      string   `yaml:"canonical,omitempty" json:"canonical,omitempty"`
	TwitterCard    string   `yaml:"twitterCard,omitempty" json:"twitterCard,omitempty"`
	TwitterSite    string   `yaml:"twitterSite,omitempty" json:"twitterSite,omitempty"`
	TwitterCreator string   `yaml:"twitterCreator,omitempty" json:"twitterCreator,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	c.Keywords = cloneStrings(c.Keywords)
	return c
}

// Defaults holds the site-wide fallbacks. Construct once at start-up and
// hand it to New by value; replace it rather than mutating it.
type Defaults struct {
	TitleTemplate      string   `yaml:"titleTemplate,omitempty" json:"titleTemplate,omitempty"`
	DefaultTitle       string   `yaml:"defaultTitle,omitempty" json:"defaultTitle,omitempty"`
	DefaultDescription string   `yaml:"defaultDescription,omitempty" json:"defaultDescription,omitempty"`
	DefaultKeywords    []string `yaml:"defaultKeywords,omitempty" json:"defaultKeywords,omitempty"`
	DefaultAuthor      string   `yaml:"defaultAuthor,omitempty" json:"defaultAuthor,omitempty"`
	DefaultImage       string   `yaml:"defaultImage,omitempty" json:"defaultImage,omitempty"`
	DefaultType        string   `yaml:"defaultType,omitempty" json:"defaultType,omitempty"`
	SiteName           string   `yaml:"siteName,omitempty" json:"siteName,omitempty"`
	DefaultLocale      string   `yaml:"defaultLocale,omitempty" json:"defaultLocale,omitempty"`
	DefaultRobots      string   `yaml:"defaultRobots,omitempty" json:"defaultRobots,omitempty"`
	TwitterSite        string   `yaml:"twitterSite,omitempty" json:"twitterSite,omitempty"`
}

const (
	defaultTitleTemplate = titlePlaceholder
	defaultType          = "website"
	defaultLocale        = "en_US"
	defaultRobots        = "index,follow"
)

// NewDefaults returns the built-in defaults.
func NewDefaults() Defaults {
	return Defaults{
		TitleTemplate: defaultTitleTemplate,
		DefaultType:   defaultType,
		DefaultLocale: defaultLocale,
		DefaultRobots: defaultRobots,
	}
}

// Clone returns a copy that shares no slices with d.
func (d Defaults) Clone() Defaults {
	d.DefaultKeywords = cloneStrings(d.DefaultKeywords)
	return d
}

// Merge overlays request on defaults. Fields present in request win, absent
// ones fall through to the matching default, and fields absent in both stay
// empty. Neither argument is modified.
func Merge(defaults Defaults, request Config) Config {
	keywords := request.Keywords
	if len(keywords) == 0 {
		keywords = defaults.DefaultKeywords
	}
	return Config{
		Title:          firstNonEmpty(request.Title, defaults.DefaultTitle),
		Description:    firstNonEmpty(request.Description, defaults.DefaultDescription),
		Keywords:       cloneStrings(keywords),
		Author:         firstNonEmpty(request.Author, defaults.DefaultAuthor),
		Image:          firstNonEmpty(request.Image, defaults.DefaultImage),
		URL:            request.URL,
		Type:           firstNonEmpty(request.Type, defaults.DefaultType),
		SiteName:       firstNonEmpty(request.SiteName, defaults.SiteName),
		Locale:         firstNonEmpty(request.Locale, defaults.DefaultLocale),
		Robots:         firstNonEmpty(request.Robots, defaults.DefaultRobots),
		Canonical:      request.Canonical,
		TwitterCard:    request.TwitterCard,
		TwitterSite:    firstNonEmpty(request.TwitterSite, defaults.TwitterSite),
		TwitterCreator: request.TwitterCreator,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
