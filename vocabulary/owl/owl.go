// Package owl holds the OWL 2 vocabulary terms used when lowering models.
package owl

// Namespace is the OWL namespace.
const Namespace = "http://www.w3.org/2002/07/owl#"

// Prefix is the conventional prefix for Namespace.
const Prefix = "owl"

const (
	// Ontology is the class of ontologies; every lowered module is one.
	Ontology = Namespace + "Ontology"

	// Imports links an ontology to another it depends on.
	Imports = Namespace + "imports"

	// VersionIRI identifies a specific version of an ontology.
	VersionIRI = Namespace + "versionIRI"

	// VersionInfo is a free-text version annotation.
	VersionInfo = Namespace + "versionInfo"

	// OnDatatype names the base of a datatype restriction.
	OnDatatype = Namespace + "onDatatype"
)
