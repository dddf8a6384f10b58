package sdml

// Namespace is the base IRI for all SDML ontology terms.
const Namespace = "http://sdml.io/sdml-owl.ttl#"

// Prefix is the conventional prefix for Namespace.
const Prefix = "sdml"

// Definition classes, one per definition kind.
const (
	// Module is the class of lowered modules.
	Module = Namespace + "Module"

	Datatype    = Namespace + "Datatype"
	Dimension   = Namespace + "Dimension"
	Entity      = Namespace + "Entity"
	Enumeration = Namespace + "Enumeration"
	Event       = Namespace + "Event"
	Property    = Namespace + "Property"
	Rdf         = Namespace + "Rdf"
	Structure   = Namespace + "Structure"
	TypeClass   = Namespace + "TypeClass"
	Union       = Namespace + "Union"
)

// Classes of nested items.
const (
	// Member is an inline member definition.
	Member = Namespace + "Member"

	// PropertyRef is a member that references a standalone property.
	PropertyRef = Namespace + "PropertyRef"

	// ValueVariant is an enum variant.
	ValueVariant = Namespace + "ValueVariant"

	// TypeVariant is a union variant.
	TypeVariant = Namespace + "TypeVariant"

	// DimensionParent links a dimension to a parent entity.
	DimensionParent = Namespace + "DimensionParent"

	// SourceEntity ties an event or dimension to an entity.
	SourceEntity = Namespace + "SourceEntity"

	// Method is a type class method.
	Method = Namespace + "Method"

	// TypeVariable is a type class parameter.
	TypeVariable = Namespace + "TypeVariable"

	// Facet is a datatype facet restriction.
	Facet = Namespace + "Facet"
)

// Classes of anonymous structure.
const (
	Cardinality        = Namespace + "Cardinality"
	Sequence           = Namespace + "Sequence"
	MapType            = Namespace + "MapType"
	Constraint         = Namespace + "Constraint"
	InformalConstraint = Namespace + "InformalConstraint"
	FormalConstraint   = Namespace + "FormalConstraint"
	EnvironmentDef     = Namespace + "EnvironmentDef"
)

// Individuals.
const (
	// Unknown is the target type of members typed "unknown".
	Unknown = Namespace + "Unknown"

	Ordered   = Namespace + "ordered"
	Unordered = Namespace + "unordered"
	Unique    = Namespace + "unique"
	Nonunique = Namespace + "nonunique"
)
