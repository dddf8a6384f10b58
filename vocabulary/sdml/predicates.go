package sdml

import (
	"strings"
	"sync"

	"github.com/c360studio/semstreams/vocabulary"
)

// Structural predicates link a subject to the items it owns.
const (
	HasDefinition     = Namespace + "hasDefinition"
	HasMember         = Namespace + "hasMember"
	HasIdentity       = Namespace + "hasIdentity"
	HasValueVariant   = Namespace + "hasValueVariant"
	HasTypeVariant    = Namespace + "hasTypeVariant"
	HasParent         = Namespace + "hasParent"
	HasSourceEntity   = Namespace + "hasSourceEntity"
	HasMethod         = Namespace + "hasMethod"
	HasTypeVariable   = Namespace + "hasTypeVariable"
	HasRestriction    = Namespace + "hasRestriction"
	HasConstraint     = Namespace + "hasConstraint"
	HasEnvironmentDef = Namespace + "hasEnvironmentDef"
	HasCardinality    = Namespace + "hasCardinality"
	HasType           = Namespace + "hasType"
)

// Label predicates carry names and text.
const (
	SrcLabel            = Namespace + "srcLabel"
	IdentifierReference = Namespace + "identifierReference"
	Rename              = Namespace + "rename"
	ControlledLanguage  = Namespace + "controlledLanguage"
	Sentence            = Namespace + "sentence"
	TargetEntity        = Namespace + "targetEntity"
	WithMember          = Namespace + "withMember"
	TypeRestriction     = Namespace + "restriction"
)

// Cardinality predicates describe occurrence and collection semantics.
const (
	ElementOrdering   = Namespace + "elementOrdering"
	ElementUniqueness = Namespace + "elementUniqueness"
	MinOccurs         = Namespace + "minOccurs"
	MaxOccurs         = Namespace + "maxOccurs"
)

// Value predicates decompose mappings and mapping types.
const (
	DomainValue = Namespace + "domainValue"
	RangeValue  = Namespace + "rangeValue"
	DomainType  = Namespace + "domainType"
	RangeType   = Namespace + "rangeType"
)

// Datatype predicates describe facet restrictions.
const (
	FacetName = Namespace + "facet"
	IsFixed   = Namespace + "isFixed"
	IsOpaque  = Namespace + "isOpaque"
)

// Source predicates locate an element in its module text.
const (
	HasSourceLocation = Namespace + "sourceLocation"
	StartByte         = Namespace + "startByte"
	EndByte           = Namespace + "endByte"
)

// Dotted predicate names for the semstreams registry.
const (
	PredicateHasDefinition     = "sdml.structure.has_definition"
	PredicateHasMember         = "sdml.structure.has_member"
	PredicateHasIdentity       = "sdml.structure.has_identity"
	PredicateHasValueVariant   = "sdml.structure.has_value_variant"
	PredicateHasTypeVariant    = "sdml.structure.has_type_variant"
	PredicateHasParent         = "sdml.structure.has_parent"
	PredicateHasSourceEntity   = "sdml.structure.has_source_entity"
	PredicateHasMethod         = "sdml.structure.has_method"
	PredicateHasTypeVariable   = "sdml.structure.has_type_variable"
	PredicateHasRestriction    = "sdml.structure.has_restriction"
	PredicateHasConstraint     = "sdml.structure.has_constraint"
	PredicateHasEnvironmentDef = "sdml.structure.has_environment_def"
	PredicateHasCardinality    = "sdml.structure.has_cardinality"
	PredicateHasType           = "sdml.structure.has_type"

	PredicateSrcLabel            = "sdml.label.src_label"
	PredicateIdentifierReference = "sdml.label.identifier_reference"
	PredicateRename              = "sdml.label.rename"
	PredicateControlledLanguage  = "sdml.label.controlled_language"
	PredicateSentence            = "sdml.label.sentence"
	PredicateTargetEntity        = "sdml.label.target_entity"
	PredicateWithMember          = "sdml.label.with_member"
	PredicateTypeRestriction     = "sdml.label.restriction"

	PredicateElementOrdering   = "sdml.cardinality.element_ordering"
	PredicateElementUniqueness = "sdml.cardinality.element_uniqueness"
	PredicateMinOccurs         = "sdml.cardinality.min_occurs"
	PredicateMaxOccurs         = "sdml.cardinality.max_occurs"

	PredicateDomainValue = "sdml.value.domain_value"
	PredicateRangeValue  = "sdml.value.range_value"
	PredicateDomainType  = "sdml.value.domain_type"
	PredicateRangeType   = "sdml.value.range_type"

	PredicateFacetName = "sdml.datatype.facet"
	PredicateIsFixed   = "sdml.datatype.is_fixed"
	PredicateIsOpaque  = "sdml.datatype.is_opaque"

	PredicateHasSourceLocation = "sdml.source.source_location"
	PredicateStartByte         = "sdml.source.start_byte"
	PredicateEndByte           = "sdml.source.end_byte"
)

func init() {
	registerStructurePredicates()
	registerLabelPredicates()
	registerCardinalityPredicates()
	registerValuePredicates()
	registerDatatypePredicates()
	registerSourcePredicates()
}

func registerStructurePredicates() {
	vocabulary.Register(PredicateHasDefinition,
		vocabulary.WithDescription("Module owns a top-level definition"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasDefinition))

	vocabulary.Register(PredicateHasMember,
		vocabulary.WithDescription("Definition owns a member"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasMember))

	vocabulary.Register(PredicateHasIdentity,
		vocabulary.WithDescription("Entity or dimension owns its identity member"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasIdentity))

	vocabulary.Register(PredicateHasValueVariant,
		vocabulary.WithDescription("Enum owns a value variant"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasValueVariant))

	vocabulary.Register(PredicateHasTypeVariant,
		vocabulary.WithDescription("Union owns a type variant"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasTypeVariant))

	vocabulary.Register(PredicateHasParent,
		vocabulary.WithDescription("Dimension owns a parent link"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasParent))

	vocabulary.Register(PredicateHasSourceEntity,
		vocabulary.WithDescription("Event or dimension names its source entity"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasSourceEntity))

	vocabulary.Register(PredicateHasMethod,
		vocabulary.WithDescription("Type class owns a method"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasMethod))

	vocabulary.Register(PredicateHasTypeVariable,
		vocabulary.WithDescription("Type class owns a type variable"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasTypeVariable))

	vocabulary.Register(PredicateHasRestriction,
		vocabulary.WithDescription("Datatype owns a facet restriction"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasRestriction))

	vocabulary.Register(PredicateHasConstraint,
		vocabulary.WithDescription("Element carries a constraint"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasConstraint))

	vocabulary.Register(PredicateHasEnvironmentDef,
		vocabulary.WithDescription("Formal constraint owns an environment definition"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasEnvironmentDef))

	vocabulary.Register(PredicateHasCardinality,
		vocabulary.WithDescription("Member has a non-default cardinality"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasCardinality))

	vocabulary.Register(PredicateHasType,
		vocabulary.WithDescription("Member has a target type"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasType))
}

func registerLabelPredicates() {
	vocabulary.Register(PredicateSrcLabel,
		vocabulary.WithDescription("Name of the element as written in source"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SrcLabel))

	vocabulary.Register(PredicateIdentifierReference,
		vocabulary.WithDescription("Property referenced by a member"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(IdentifierReference))

	vocabulary.Register(PredicateRename,
		vocabulary.WithDescription("Local name given to a union variant"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Rename))

	vocabulary.Register(PredicateControlledLanguage,
		vocabulary.WithDescription("Language of an informal constraint"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ControlledLanguage))

	vocabulary.Register(PredicateSentence,
		vocabulary.WithDescription("Surface form of a formal constraint sentence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Sentence))

	vocabulary.Register(PredicateTargetEntity,
		vocabulary.WithDescription("Entity named by a source entity or dimension parent"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(TargetEntity))

	vocabulary.Register(PredicateWithMember,
		vocabulary.WithDescription("Member copied from a source entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(WithMember))

	vocabulary.Register(PredicateTypeRestriction,
		vocabulary.WithDescription("Type class a type variable is restricted to"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(TypeRestriction))
}

func registerCardinalityPredicates() {
	vocabulary.Register(PredicateElementOrdering,
		vocabulary.WithDescription("Whether elements are ordered"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(ElementOrdering))

	vocabulary.Register(PredicateElementUniqueness,
		vocabulary.WithDescription("Whether elements are unique"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(ElementUniqueness))

	vocabulary.Register(PredicateMinOccurs,
		vocabulary.WithDescription("Minimum number of values"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(MinOccurs))

	vocabulary.Register(PredicateMaxOccurs,
		vocabulary.WithDescription("Maximum number of values"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(MaxOccurs))
}

func registerValuePredicates() {
	vocabulary.Register(PredicateDomainValue,
		vocabulary.WithDescription("Domain of a mapping value"),
		vocabulary.WithDataType("any"),
		vocabulary.WithIRI(DomainValue))

	vocabulary.Register(PredicateRangeValue,
		vocabulary.WithDescription("Range of a mapping value"),
		vocabulary.WithDataType("any"),
		vocabulary.WithIRI(RangeValue))

	vocabulary.Register(PredicateDomainType,
		vocabulary.WithDescription("Domain of a mapping type"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(DomainType))

	vocabulary.Register(PredicateRangeType,
		vocabulary.WithDescription("Range of a mapping type"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(RangeType))
}

func registerDatatypePredicates() {
	vocabulary.Register(PredicateFacetName,
		vocabulary.WithDescription("XML Schema facet being restricted"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(FacetName))

	vocabulary.Register(PredicateIsFixed,
		vocabulary.WithDescription("Facet may not be further restricted"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(IsFixed))

	vocabulary.Register(PredicateIsOpaque,
		vocabulary.WithDescription("Datatype hides its base type's operations"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(IsOpaque))
}

func registerSourcePredicates() {
	vocabulary.Register(PredicateHasSourceLocation,
		vocabulary.WithDescription("Byte span of the element in source"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(HasSourceLocation))

	vocabulary.Register(PredicateStartByte,
		vocabulary.WithDescription("First byte of the span"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(StartByte))

	vocabulary.Register(PredicateEndByte,
		vocabulary.WithDescription("Byte after the end of the span"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(EndByte))
}

var (
	reverseOnce  sync.Once
	reverseIndex map[string]string
)

// DottedName returns the registered dotted predicate name for an sdml IRI.
func DottedName(iri string) (string, bool) {
	reverseOnce.Do(func() {
		reverseIndex = make(map[string]string)
		for _, name := range vocabulary.ListRegisteredPredicates() {
			if !strings.HasPrefix(name, Prefix+".") {
				continue
			}
			if meta := vocabulary.GetPredicateMetadata(name); meta != nil && meta.StandardIRI != "" {
				reverseIndex[meta.StandardIRI] = name
			}
		}
	})
	name, ok := reverseIndex[iri]
	return name, ok
}
