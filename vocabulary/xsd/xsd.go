// Package xsd holds XML Schema datatype and facet IRIs.
package xsd

// Namespace is the XML Schema datatypes namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

// Prefix is the conventional prefix for Namespace.
const Prefix = "xsd"

// Datatypes used for literal values.
const (
	Boolean            = Namespace + "boolean"
	Double             = Namespace + "double"
	Decimal            = Namespace + "decimal"
	Integer            = Namespace + "integer"
	NonNegativeInteger = Namespace + "nonNegativeInteger"
	String             = Namespace + "string"
	AnyURI             = Namespace + "anyURI"
	HexBinary          = Namespace + "hexBinary"
)

// Term returns the IRI of a facet or datatype local name, e.g. Term("maxLength").
func Term(local string) string {
	return Namespace + local
}
