// Package graph provides the in-memory RDF graph that model lowering writes to.
//
// A Graph is an append-only multiset of triples plus a blank-node allocator.
// Terms are github.com/cayleygraph/quad values, so a graph can be handed
// directly to quad-based writers. Blank-node labels carry a random per-graph
// prefix; graphs built by independent operations can therefore be merged by
// plain union without relabelling.
package graph

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// Triple is a single RDF statement. Subject is a quad.IRI or quad.BNode.
type Triple struct {
	Subject   quad.Value
	Predicate quad.IRI
	Object    quad.Value
}

// Quad returns the triple as a quad in the default graph.
func (t Triple) Quad() quad.Quad {
	return quad.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Graph is a mutable set of triples owned by a single writer. It is not safe
// for concurrent use.
type Graph struct {
	prefix   string
	next     uint64
	triples  []Triple
	prefixes map[string]string
}

// New returns an empty graph with a fresh blank-node prefix.
func New() *Graph {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Graph{
		prefix:   "b" + id[:12],
		prefixes: make(map[string]string),
	}
}

// NewBlankNode allocates a blank node that is unique within this graph and
// does not collide with nodes of other graphs.
func (g *Graph) NewBlankNode() quad.BNode {
	g.next++
	return quad.BNode(fmt.Sprintf("%s_%d", g.prefix, g.next))
}

// Insert appends a triple. Duplicates are kept.
func (g *Graph) Insert(subject quad.Value, predicate quad.IRI, object quad.Value) {
	g.triples = append(g.triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order. The slice must not be modified.
func (g *Graph) Triples() []Triple { return g.triples }

// Match returns triples matching the pattern; a nil term is a wildcard.
func (g *Graph) Match(subject quad.Value, predicate quad.Value, object quad.Value) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if subject != nil && t.Subject != subject {
			continue
		}
		if predicate != nil && quad.Value(t.Predicate) != predicate {
			continue
		}
		if object != nil && t.Object != object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Objects returns the objects of all triples with the given subject and predicate.
func (g *Graph) Objects(subject quad.Value, predicate quad.IRI) []quad.Value {
	var out []quad.Value
	for _, t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// Object returns the single object for subject and predicate.
func (g *Graph) Object(subject quad.Value, predicate quad.IRI) (quad.Value, bool) {
	objs := g.Objects(subject, predicate)
	if len(objs) != 1 {
		return nil, false
	}
	return objs[0], true
}

// Contains reports whether the exact triple is present.
func (g *Graph) Contains(subject quad.Value, predicate quad.IRI, object quad.Value) bool {
	return len(g.Match(subject, predicate, object)) > 0
}

// Subjects returns each distinct subject in first-seen order.
func (g *Graph) Subjects() []quad.Value {
	seen := make(map[quad.Value]bool)
	var out []quad.Value
	for _, t := range g.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// Merge appends all triples and prefixes of other. Blank nodes of independent
// graphs never collide, so the result is their disjoint union.
func (g *Graph) Merge(other *Graph) {
	g.triples = append(g.triples, other.triples...)
	for p, ns := range other.prefixes {
		if _, ok := g.prefixes[p]; !ok {
			g.prefixes[p] = ns
		}
	}
}

// SetPrefix records a namespace prefix for serializers.
func (g *Graph) SetPrefix(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefixes returns a copy of the recorded namespace prefixes.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for p, ns := range g.prefixes {
		out[p] = ns
	}
	return out
}
