// Package rdfs holds the RDF Schema vocabulary terms used when lowering models.
package rdfs

// Namespace is the RDF Schema namespace.
const Namespace = "http://www.w3.org/2000/01/rdf-schema#"

// Prefix is the conventional prefix for Namespace.
const Prefix = "rdfs"

const (
	// Datatype is the class of datatypes.
	Datatype = Namespace + "Datatype"

	// Label is a human-readable name.
	Label = Namespace + "label"

	// Comment is a human-readable description.
	Comment = Namespace + "comment"
)
