// Package dom defines the minimal document-tree capabilities the metadata
// engine depends on, together with an implementation backed by
// golang.org/x/net/html.
package dom

// Node is a single element of a document tree.
type Node interface {
	Tag() string
	Attr(key string) (string, bool)
	SetAttr(key, value string)
	Text() string
	SetText(text string)
}

// Document is the node-manipulation surface used by the reconcilers: find a
// node by selector, create a node, append it to the head and remove it.
type Document interface {
	// Find returns the first node matching the CSS selector, or nil.
	Find(selector string) Node
	// FindAll returns every node matching the CSS selector in document order.
	FindAll(selector string) []Node
	Create(tag string) Node
	AppendToHead(n Node)
	Remove(n Node)
}
