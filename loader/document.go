package loader

import "gopkg.in/yaml.v3"

// moduleDoc is the YAML form of a module.
//
//	module: people
//	base: http://example.com/people#
//	imports: [xsd, {module: skos, version: http://www.w3.org/2004/02/skos/core}]
//	definitions:
//	  - entity: Person
//	    identity: {name: id, type: xsd:string}
//	    members:
//	      - {name: age, type: xsd:integer, cardinality: "0..1"}
type moduleDoc struct {
	Module      string       `yaml:"module"`
	Base        string       `yaml:"base"`
	Version     versionDoc   `yaml:"version"`
	Imports     []yaml.Node  `yaml:"imports"`
	Annotations []annotation `yaml:"annotations"`
	Definitions []yaml.Node  `yaml:"definitions"`
}

type versionDoc struct {
	Info string `yaml:"info"`
	URI  string `yaml:"uri"`
}

// importDoc is the mapping form of an import; a bare scalar is either a
// module name or a qualified member name.
type importDoc struct {
	Module  string `yaml:"module"`
	Member  string `yaml:"member"`
	Version string `yaml:"version"`
	As      string `yaml:"as"`
}

// annotation is either a property (property + value) or a constraint
// (constraint + informal text).
type annotation struct {
	Property   string    `yaml:"property"`
	Value      yaml.Node `yaml:"value"`
	Constraint string    `yaml:"constraint"`
	Informal   string    `yaml:"informal"`
	Language   string    `yaml:"language"`
}

// definitionDoc carries exactly one kind key naming the definition.
type definitionDoc struct {
	Datatype  string `yaml:"datatype"`
	Dimension string `yaml:"dimension"`
	Entity    string `yaml:"entity"`
	Enum      string `yaml:"enum"`
	Event     string `yaml:"event"`
	Property  string `yaml:"property"`
	Rdf       string `yaml:"rdf"`
	Structure string `yaml:"structure"`
	Class     string `yaml:"class"`
	Union     string `yaml:"union"`

	// datatype
	Base   string     `yaml:"base"`
	Opaque bool       `yaml:"opaque"`
	Facets []facetDoc `yaml:"facets"`

	// body items
	Identity *memberDoc   `yaml:"identity"`
	Source   *sourceDoc   `yaml:"source"`
	Parents  []parentDoc  `yaml:"parents"`
	Members  []memberDoc  `yaml:"members"`
	Member   *memberDoc   `yaml:"member"`
	Variants []yaml.Node  `yaml:"variants"`
	Vars     []typeVarDoc `yaml:"variables"`
	Methods  []methodDoc  `yaml:"methods"`

	Annotations []annotation `yaml:"annotations"`
}

type facetDoc struct {
	Facet string    `yaml:"facet"`
	Value yaml.Node `yaml:"value"`
	Fixed bool      `yaml:"fixed"`
}

// memberDoc is an inline member definition, or a reference to a property
// when Ref is set.
type memberDoc struct {
	Name        string       `yaml:"name"`
	Ref         string       `yaml:"ref"`
	Type        yaml.Node    `yaml:"type"`
	Cardinality string       `yaml:"cardinality"`
	Annotations []annotation `yaml:"annotations"`
}

type sourceDoc struct {
	Entity string   `yaml:"entity"`
	With   []string `yaml:"with"`
}

type parentDoc struct {
	Name        string       `yaml:"name"`
	Entity      string       `yaml:"entity"`
	Annotations []annotation `yaml:"annotations"`
}

// variantDoc is the mapping form of an enum or union variant.
type variantDoc struct {
	Name        string       `yaml:"name"`
	Value       *uint32      `yaml:"value"`
	Type        string       `yaml:"type"`
	Rename      string       `yaml:"rename"`
	Annotations []annotation `yaml:"annotations"`
}

type typeVarDoc struct {
	Name         string   `yaml:"name"`
	Restrictions []string `yaml:"restrictions"`
}

type methodDoc struct {
	Name        string       `yaml:"name"`
	Annotations []annotation `yaml:"annotations"`
}
