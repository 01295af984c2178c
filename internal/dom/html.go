package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// HTML is a Document over a parsed x/net/html tree. It is not safe for
// concurrent use; callers own one document per render.
type HTML struct {
	root *html.Node
}

// NewHTML returns an empty document with html, head and body elements.
func NewHTML() *HTML {
	doc, err := Parse(strings.NewReader(emptyDocument))
	if err != nil {
		// html.Parse only fails on reader errors.
		panic(fmt.Sprintf("dom: parse empty document: %v", err))
	}
	return doc
}

// Parse reads a full HTML document. The parser always synthesises the head
// and body elements, so AppendToHead has a target even for fragments.
func Parse(r io.Reader) (*HTML, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	return &HTML{root: root}, nil
}

// Root exposes the underlying document node.
func (d *HTML) Root() *html.Node { return d.root }

// Selection wraps the document in a goquery document for read-only queries.
func (d *HTML) Selection() *goquery.Document {
	return goquery.NewDocumentFromNode(d.root)
}

// Find implements Document. Invalid selectors match nothing.
func (d *HTML) Find(selector string) Node {
	sel := d.Selection().Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return &element{n: sel.Get(0)}
}

// FindAll implements Document. Invalid selectors match nothing.
func (d *HTML) FindAll(selector string) []Node {
	sel := d.Selection().Find(selector)
	out := make([]Node, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, &element{n: n})
	}
	return out
}

// Count returns how many nodes match selector.
func (d *HTML) Count(selector string) int {
	return d.Selection().Find(selector).Length()
}

// Create implements Document. The node is detached until appended.
func (d *HTML) Create(tag string) Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &element{n: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// AppendToHead implements Document. Nodes from other Document
// implementations are ignored.
func (d *HTML) AppendToHead(n Node) {
	el, ok := n.(*element)
	if !ok || el == nil {
		return
	}
	head := d.head()
	if head == nil {
		return
	}
	if el.n.Parent != nil {
		el.n.Parent.RemoveChild(el.n)
	}
	head.AppendChild(el.n)
}

// Remove implements Document. Detached nodes are left alone.
func (d *HTML) Remove(n Node) {
	el, ok := n.(*element)
	if !ok || el == nil || el.n.Parent == nil {
		return
	}
	el.n.Parent.RemoveChild(el.n)
}

// Render writes the document as HTML.
func (d *HTML) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *HTML) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *HTML) head() *html.Node {
	var walk func(*html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Head {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(d.root)
}

// Underlying returns the x/net/html node behind n, or nil when n was not
// produced by an HTML document.
func Underlying(n Node) *html.Node {
	el, ok := n.(*element)
	if !ok || el == nil {
		return nil
	}
	return el.n
}

type element struct {
	n *html.Node
}

func (e *element) Tag() string { return e.n.Data }

func (e *element) Attr(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e *element) SetAttr(key, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == key {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: value})
}

func (e *element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// SetText replaces all children with a single text node. Script and style
// contents are rendered raw by x/net/html, so JSON payloads survive intact.
func (e *element) SetText(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
