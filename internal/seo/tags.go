package seo

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
)

// TagKind selects which attribute identifies a head tag.
type TagKind int

const (
	// KindName identifies <meta name="...">.
	KindName TagKind = iota + 1
	// KindProperty identifies <meta property="..."> (Open Graph).
	KindProperty
	// KindLink identifies <link rel="...">.
	KindLink
)

// TagKey is the identity of a reconciled head tag.
type TagKey struct {
	Kind TagKind
	Name string
}

// NameKey returns the key for <meta name=name>.
func NameKey(name string) TagKey { return TagKey{Kind: KindName, Name: name} }

// PropertyKey returns the key for <meta property=property>.
func PropertyKey(property string) TagKey { return TagKey{Kind: KindProperty, Name: property} }

// LinkKey returns the key for <link rel=rel>.
func LinkKey(rel string) TagKey { return TagKey{Kind: KindLink, Name: rel} }

// CanonicalKey identifies the canonical link.
var CanonicalKey = LinkKey("canonical")

// String renders the key as e.g. "meta:name=description" or
// "link:rel=canonical".
func (k TagKey) String() string {
	return k.tag() + ":" + k.attr() + "=" + k.Name
}

func (k TagKey) tag() string {
	if k.Kind == KindLink {
		return "link"
	}
	return "meta"
}

func (k TagKey) attr() string {
	switch k.Kind {
	case KindProperty:
		return "property"
	case KindLink:
		return "rel"
	default:
		return "name"
	}
}

// valueAttr is the attribute carrying the tag's value.
func (k TagKey) valueAttr() string {
	if k.Kind == KindLink {
		return "href"
	}
	return "content"
}

func (k TagKey) selector() string {
	return attrSelector(k.tag(), k.attr(), k.Name)
}

// attrSelector builds tag[k1="v1"][k2="v2"] with quoted, escaped values.
func attrSelector(tag string, pairs ...string) string {
	var b strings.Builder
	b.WriteString(tag)
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString("[")
		b.WriteString(pairs[i])
		b.WriteString(`="`)
		b.WriteString(cssEscaper.Replace(pairs[i+1]))
		b.WriteString(`"]`)
	}
	return b.String()
}

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// TagReconciler keeps at most one live node per TagKey in a document.
type TagReconciler struct {
	doc    dom.Document
	nodes  map[TagKey]dom.Node
	logger *zap.Logger
}

// NewTagReconciler returns a reconciler writing into doc.
func NewTagReconciler(doc dom.Document, logger *zap.Logger) *TagReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagReconciler{
		doc:    doc,
		nodes:  make(map[TagKey]dom.Node),
		logger: logger,
	}
}

// Upsert sets the value attribute (content, or href for links) of the tag
// under key. An empty value is skipped: it neither creates nor clears a tag.
func (r *TagReconciler) Upsert(key TagKey, value string) {
	r.UpsertAttrs(key, map[string]string{key.valueAttr(): value})
}

// UpsertAttrs creates or updates the node under key with attrs. Empty values
// are skipped individually; when every value is empty nothing happens.
// A node already present in the document (for example from a server
// template) is adopted instead of duplicated.
func (r *TagReconciler) UpsertAttrs(key TagKey, attrs map[string]string) {
	names := make([]string, 0, len(attrs))
	for name, value := range attrs {
		if value == "" || name == key.attr() {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		r.logger.Debug("seo: tag skipped", zap.String("key", key.String()))
		return
	}
	sort.Strings(names)

	node, ok := r.nodes[key]
	if !ok {
		node = r.adopt(key)
	}
	if node == nil {
		node = r.doc.Create(key.tag())
		node.SetAttr(key.attr(), key.Name)
		r.doc.AppendToHead(node)
		r.logger.Debug("seo: tag created", zap.String("key", key.String()))
	}
	for _, name := range names {
		node.SetAttr(name, attrs[name])
	}
	r.nodes[key] = node
}

// Remove deletes the tag under key from the document, including duplicates
// left by a template. Missing keys are a no-op.
func (r *TagReconciler) Remove(key TagKey) {
	removed := 0
	if node, ok := r.nodes[key]; ok {
		r.doc.Remove(node)
		delete(r.nodes, key)
		removed++
	}
	for _, node := range r.doc.FindAll(key.selector()) {
		r.doc.Remove(node)
		removed++
	}
	if removed > 0 {
		r.logger.Debug("seo: tag removed", zap.String("key", key.String()), zap.Int("nodes", removed))
	}
}

// Node returns the live node under key, if any.
func (r *TagReconciler) Node(key TagKey) dom.Node {
	return r.lookup(key)
}

// Value returns the value attribute of the tag under key.
func (r *TagReconciler) Value(key TagKey) (string, bool) {
	node := r.lookup(key)
	if node == nil {
		return "", false
	}
	return node.Attr(key.valueAttr())
}

// Has reports whether a node exists for key, registered or in the document.
func (r *TagReconciler) Has(key TagKey) bool { return r.lookup(key) != nil }

// Len reports how many keys are registered.
func (r *TagReconciler) Len() int { return len(r.nodes) }

// adopt returns the first document node matching key and drops any further
// matches, so a template with repeated tags converges to one node.
func (r *TagReconciler) adopt(key TagKey) dom.Node {
	matches := r.doc.FindAll(key.selector())
	if len(matches) == 0 {
		return nil
	}
	for _, extra := range matches[1:] {
		r.doc.Remove(extra)
	}
	if len(matches) > 1 {
		r.logger.Debug("seo: duplicate tags dropped", zap.String("key", key.String()), zap.Int("dropped", len(matches)-1))
	}
	return matches[0]
}

func (r *TagReconciler) lookup(key TagKey) dom.Node {
	if node, ok := r.nodes[key]; ok {
		return node
	}
	return r.doc.Find(key.selector())
}
