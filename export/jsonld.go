package export

import (
	"encoding/json"
	"io"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/vocabulary/rdf"
)

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// NewJSONLDDocument builds a flattened JSON-LD document from g. IRIs are
// compacted with the graph's prefixes, which also form the @context.
func NewJSONLDDocument(g *graph.Graph) *JSONLDDocument {
	names := compactor{prefixes: g.Prefixes()}
	doc := &JSONLDDocument{
		Context: make(map[string]any, len(names.prefixes)),
		Graph:   make([]JSONLDNode, 0),
	}
	for prefix, ns := range names.prefixes {
		doc.Context[prefix] = ns
	}

	iri := func(s string) string {
		if name, ok := names.compact(s); ok {
			return name
		}
		return s
	}

	for _, s := range g.Subjects() {
		node := JSONLDNode{ID: nodeID(s, iri), Properties: make(map[string]any)}
		for _, t := range g.Match(s, nil, nil) {
			if t.Predicate == rdf.Type {
				if typ, ok := t.Object.(quad.IRI); ok {
					node.Type = append(node.Type, iri(string(typ)))
					continue
				}
			}
			key := iri(string(t.Predicate))
			values, _ := node.Properties[key].([]any)
			node.Properties[key] = append(values, jsonldValue(t.Object, iri))
		}
		doc.Graph = append(doc.Graph, node)
	}
	return doc
}

func nodeID(v quad.Value, iri func(string) string) string {
	switch v := v.(type) {
	case quad.IRI:
		return iri(string(v))
	case quad.BNode:
		return "_:" + string(v)
	}
	return v.String()
}

func jsonldValue(v quad.Value, iri func(string) string) map[string]any {
	switch v := v.(type) {
	case quad.IRI, quad.BNode:
		return map[string]any{"@id": nodeID(v, iri)}
	case quad.String:
		return map[string]any{"@value": string(v)}
	case quad.LangString:
		return map[string]any{"@value": string(v.Value), "@language": v.Lang}
	case quad.TypedString:
		return map[string]any{"@value": string(v.Value), "@type": iri(string(v.Type))}
	}
	return map[string]any{"@value": v.String()}
}

func writeJSONLD(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONLDDocument(g))
}
