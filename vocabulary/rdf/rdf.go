// Package rdf holds the RDF core vocabulary terms used when lowering models.
package rdf

import "strconv"

// Namespace is the RDF syntax namespace.
const Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// Prefix is the conventional prefix for Namespace.
const Prefix = "rdf"

const (
	// Type relates a resource to its class.
	Type = Namespace + "type"

	// Value is the principal value of a structured resource.
	Value = Namespace + "value"

	// First is the head of an RDF collection cell.
	First = Namespace + "first"

	// Rest is the tail of an RDF collection cell.
	Rest = Namespace + "rest"

	// Nil terminates an RDF collection.
	Nil = Namespace + "nil"

	// LangString is the datatype of language-tagged strings.
	LangString = Namespace + "langString"
)

// Member returns the container membership property rdf:_i. Indexes are 1-based.
func Member(i int) string {
	return Namespace + "_" + strconv.Itoa(i)
}
