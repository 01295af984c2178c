// Package content loads markdown pages with YAML front matter and renders
// them to sanitised HTML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/gridatek/go-seo-toolkit/internal/seo"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("content: not found")

// Page is a rendered markdown page.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Author    string
	Tags      []string
	Image     string
	Published time.Time
	Updated   time.Time
	HTML      template.HTML
}

// SEO returns the page's metadata intent for an update.
func (p Page) SEO() seo.Config {
	return seo.Config{
		Title:       p.Title,
		Description: p.Summary,
		Keywords:    append([]string(nil), p.Tags...),
		Author:      p.Author,
		Image:       p.Image,
		Type:        "article",
	}
}

// Article returns the Article schema inputs for the page served at url.
func (p Page) Article(url string) seo.ArticleInput {
	return seo.ArticleInput{
		Headline:      p.Title,
		Author:        p.Author,
		DatePublished: formatDate(p.Published),
		DateModified:  formatDate(p.Updated),
		Image:         p.Image,
		Description:   p.Summary,
		URL:           url,
	}
}

type frontMatter struct {
	Title     string   `yaml:"title"`
	Summary   string   `yaml:"summary"`
	Author    string   `yaml:"author"`
	Tags      []string `yaml:"tags"`
	Image     string   `yaml:"image"`
	Published string   `yaml:"published"`
	Updated   string   `yaml:"updated"`
}

// Store reads pages from fsys, one "<slug>.md" file per page. Rendered pages
// are cached for the life of the Store.
type Store struct {
	fsys   fs.FS
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	pages map[string]Page
}

// NewStore returns a Store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:   fsys,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: newHTMLPolicy(),
		pages:  make(map[string]Page),
	}
}

// Get returns the page for slug.
func (s *Store) Get(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}

	s.mu.RLock()
	page, ok := s.pages[slug]
	s.mu.RUnlock()
	if ok {
		return clonePage(page), nil
	}

	page, err := s.read(slug)
	if err != nil {
		return Page{}, err
	}
	s.mu.Lock()
	s.pages[slug] = page
	s.mu.Unlock()
	return clonePage(page), nil
}

// List returns every page sorted by publication date, newest first.
func (s *Store) List() ([]Page, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("content: list: %w", err)
	}
	pages := make([]Page, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		slug := sanitizeSlug(strings.TrimSuffix(entry.Name(), ".md"))
		if slug == "" {
			continue
		}
		page, err := s.Get(slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if !pages[i].Published.Equal(pages[j].Published) {
			return pages[i].Published.After(pages[j].Published)
		}
		return pages[i].Slug < pages[j].Slug
	})
	return pages, nil
}

func (s *Store) read(slug string) (Page, error) {
	name := slug + ".md"
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, fmt.Errorf("content: read %s: %w", name, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", name, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", name, err)
	}

	page := Page{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Author:    strings.TrimSpace(front.Author),
		Tags:      trimAll(front.Tags),
		Image:     strings.TrimSpace(front.Image),
		Published: parseDate(front.Published),
		Updated:   parseDate(front.Updated),
		HTML:      template.HTML(s.policy.SanitizeBytes(buf.Bytes())),
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func newHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func clonePage(p Page) Page {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}
