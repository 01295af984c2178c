package seo

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridatek/go-seo-toolkit/internal/dom"
)

const ldJSONType = "application/ld+json"

// StructuredDataRegistry keeps at most one JSON-LD script per id.
// Registering an id again replaces the previous block wholesale.
type StructuredDataRegistry struct {
	doc    dom.Document
	nodes  map[string]dom.Node
	logger *zap.Logger
	newID  func() string
}

// NewStructuredDataRegistry returns a registry writing into doc.
func NewStructuredDataRegistry(doc dom.Document, logger *zap.Logger) *StructuredDataRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructuredDataRegistry{
		doc:    doc,
		nodes:  make(map[string]dom.Node),
		logger: logger,
		newID:  func() string { return "ld-" + uuid.NewString() },
	}
}

// Register writes schema under id and returns the id. An empty id is
// replaced by a generated one. If the schema cannot be encoded the existing
// block is kept and the failure is logged.
func (r *StructuredDataRegistry) Register(id string, schema Schema) string {
	if id == "" {
		id = r.newID()
	}
	payload, err := MarshalSchema(schema)
	if err != nil {
		r.logger.Warn("seo: structured data not encodable",
			zap.String("id", id),
			zap.String("type", schema.Type()),
			zap.Error(err),
		)
		return id
	}

	r.Unregister(id)

	node := r.doc.Create("script")
	node.SetAttr("type", ldJSONType)
	node.SetAttr("id", id)
	node.SetText(payload)
	r.doc.AppendToHead(node)
	r.nodes[id] = node
	r.logger.Debug("seo: structured data registered", zap.String("id", id), zap.String("type", schema.Type()))
	return id
}

// Unregister removes the block under id. Unknown ids are a no-op.
func (r *StructuredDataRegistry) Unregister(id string) {
	node := r.lookup(id)
	if node == nil {
		return
	}
	r.doc.Remove(node)
	delete(r.nodes, id)
}

// Payload returns the serialized JSON of the block under id.
func (r *StructuredDataRegistry) Payload(id string) (string, bool) {
	node := r.lookup(id)
	if node == nil {
		return "", false
	}
	return node.Text(), true
}

// IDs lists registered ids in sorted order.
func (r *StructuredDataRegistry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *StructuredDataRegistry) lookup(id string) dom.Node {
	if id == "" {
		return nil
	}
	if node, ok := r.nodes[id]; ok {
		return node
	}
	return r.doc.Find(attrSelector("script", "type", ldJSONType, "id", id))
}
