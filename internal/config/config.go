package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gridatek/go-seo-toolkit/internal/seo"
)

const (
	defaultEnvFile      = ".env"
	defaultAddr         = ":8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultRoutesFile   = "routes.yaml"
	defaultContentDir   = "content"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Content ContentConfig
	SEO     seo.Defaults
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// SiteConfig describes where the site is served from. An empty BaseURL
// means each request's own origin is used.
type SiteConfig struct {
	BaseURL string
}

// ContentConfig points at the route table and markdown sources. Empty paths
// select the embedded defaults.
type ContentConfig struct {
	RoutesFile string
	Dir        string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and
// environment variables (explicit map > OS env > .env).
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	builtin := seo.NewDefaults()
	cfg := Config{
		Server: ServerConfig{
			Addr:         stringWithDefault(lookup, "SEO_SERVER_ADDR", defaultAddr),
			ReadTimeout:  durationWithDefault(lookup, "SEO_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SEO_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SEO_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: SiteConfig{
			BaseURL: strings.TrimRight(stringWithDefault(lookup, "SEO_BASE_URL", ""), "/"),
		},
		Content: ContentConfig{
			RoutesFile: stringWithDefault(lookup, "SEO_ROUTES_FILE", defaultRoutesFile),
			Dir:        stringWithDefault(lookup, "SEO_CONTENT_DIR", defaultContentDir),
		},
		SEO: seo.Defaults{
			TitleTemplate:      stringWithDefault(lookup, "SEO_TITLE_TEMPLATE", builtin.TitleTemplate),
			DefaultTitle:       stringWithDefault(lookup, "SEO_DEFAULT_TITLE", ""),
			DefaultDescription: stringWithDefault(lookup, "SEO_DEFAULT_DESCRIPTION", ""),
			DefaultKeywords:    csvWithDefault(lookup, "SEO_DEFAULT_KEYWORDS"),
			DefaultAuthor:      stringWithDefault(lookup, "SEO_DEFAULT_AUTHOR", ""),
			DefaultImage:       stringWithDefault(lookup, "SEO_DEFAULT_IMAGE", ""),
			DefaultType:        stringWithDefault(lookup, "SEO_DEFAULT_TYPE", builtin.DefaultType),
			SiteName:           stringWithDefault(lookup, "SEO_SITE_NAME", ""),
			DefaultLocale:      stringWithDefault(lookup, "SEO_DEFAULT_LOCALE", builtin.DefaultLocale),
			DefaultRobots:      stringWithDefault(lookup, "SEO_DEFAULT_ROBOTS", builtin.DefaultRobots),
			TwitterSite:        stringWithDefault(lookup, "SEO_TWITTER_SITE", ""),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		invalid = append(invalid, "Server.Addr")
	}
	if cfg.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		invalid = append(invalid, "Server.IdleTimeout")
	}
	if cfg.Site.BaseURL != "" && !isAbsoluteHTTPURL(cfg.Site.BaseURL) {
		invalid = append(invalid, "Site.BaseURL")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

// durationWithDefault keeps unparseable values so validation can report them.
func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0
		}
		return d
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
