package model

import "fmt"

// Definition is one of the ten top-level definition kinds of a module.
type Definition interface {
	DefinitionName() Identifier
	DefinitionSpan() *Span
	Annotated
	isDefinition()
}

// Facet names an XML Schema constraining facet that a datatype may restrict.
type Facet int

const (
	FacetLength Facet = iota
	FacetMinLength
	FacetMaxLength
	FacetPattern
	FacetMinInclusive
	FacetMaxInclusive
	FacetMinExclusive
	FacetMaxExclusive
	FacetTotalDigits
	FacetFractionDigits
	FacetExplicitTimezone
)

var facetNames = [...]string{
	FacetLength:           "length",
	FacetMinLength:        "minLength",
	FacetMaxLength:        "maxLength",
	FacetPattern:          "pattern",
	FacetMinInclusive:     "minInclusive",
	FacetMaxInclusive:     "maxInclusive",
	FacetMinExclusive:     "minExclusive",
	FacetMaxExclusive:     "maxExclusive",
	FacetTotalDigits:      "totalDigits",
	FacetFractionDigits:   "fractionDigits",
	FacetExplicitTimezone: "explicitTimezone",
}

// String returns the XML Schema local name of the facet.
func (f Facet) String() string {
	if int(f) < 0 || int(f) >= len(facetNames) {
		return fmt.Sprintf("Facet(%d)", int(f))
	}
	return facetNames[f]
}

// ParseFacet maps an XML Schema facet name to a Facet.
func ParseFacet(s string) (Facet, bool) {
	for i, name := range facetNames {
		if name == s {
			return Facet(i), true
		}
	}
	return 0, false
}

// FacetRestriction restricts a datatype facet to a value. Fixed facets may not
// be further restricted by derived datatypes.
type FacetRestriction struct {
	Facet Facet
	Value SimpleValue
	Fixed bool
}

// DatatypeDef derives a datatype from a base type.
type DatatypeDef struct {
	Name         Identifier
	Opaque       bool
	BaseType     IdentifierReference
	Restrictions []FacetRestriction
	Body         *AnnotationOnlyBody
	Span         *Span
}

// DimensionDef is an analytic dimension with an identity, optional parents and members.
type DimensionDef struct {
	Name Identifier
	Body *DimensionBody
	Span *Span
}

// DimensionBody holds the content of a dimension.
type DimensionBody struct {
	Annotations []Annotation
	Identity    DimensionIdentity
	Parents     []*DimensionParent
	Members     []Member
	Span        *Span
}

// DimensionIdentity is a *SourceEntity or an *IdentityMember.
type DimensionIdentity interface {
	isDimensionIdentity()
}

// IdentityMember is a plain member used as a dimension's identity.
type IdentityMember struct {
	Member Member
}

// SourceEntity ties an event or dimension to an entity, optionally copying members from it.
type SourceEntity struct {
	Entity IdentifierReference
	With   []Identifier
	Span   *Span
}

func (*IdentityMember) isDimensionIdentity() {}
func (*SourceEntity) isDimensionIdentity()   {}

// DimensionParent links a dimension to a parent entity.
type DimensionParent struct {
	Name   Identifier
	Entity IdentifierReference
	Body   *AnnotationOnlyBody
	Span   *Span
}

// AnnotationList returns the parent's annotations.
func (p *DimensionParent) AnnotationList() []Annotation { return p.Body.AnnotationList() }

// EntityDef is a thing with identity.
type EntityDef struct {
	Name Identifier
	Body *EntityBody
	Span *Span
}

// EntityBody holds an entity's identity member and other members.
type EntityBody struct {
	Annotations []Annotation
	Identity    Member
	Members     []Member
	Span        *Span
}

// EnumDef is a closed set of named variants.
type EnumDef struct {
	Name Identifier
	Body *EnumBody
	Span *Span
}

// EnumBody holds the variants of an enum.
type EnumBody struct {
	Annotations []Annotation
	Variants    []*ValueVariant
	Span        *Span
}

// ValueVariant is one enum variant. Value is the optional explicit integer
// assigned to the variant.
type ValueVariant struct {
	Name  Identifier
	Value *uint32
	Body  *AnnotationOnlyBody
	Span  *Span
}

// AnnotationList returns the variant's annotations.
func (v *ValueVariant) AnnotationList() []Annotation { return v.Body.AnnotationList() }

// EventDef is something that happens to a source entity.
type EventDef struct {
	Name Identifier
	Body *EventBody
	Span *Span
}

// EventBody holds an event's source entity and members.
type EventBody struct {
	Annotations []Annotation
	Source      *SourceEntity
	Members     []Member
	Span        *Span
}

// PropertyDef is a standalone member that other definitions may reference.
type PropertyDef struct {
	Name   Identifier
	Member *MemberDef
	Span   *Span
}

// RdfDef passes RDF annotations through unchanged.
type RdfDef struct {
	Name Identifier
	Body *AnnotationOnlyBody
	Span *Span
}

// StructureDef is a value type without identity.
type StructureDef struct {
	Name Identifier
	Body *StructureBody
	Span *Span
}

// StructureBody holds the members of a structure.
type StructureBody struct {
	Annotations []Annotation
	Members     []Member
	Span        *Span
}

// TypeClassDef is a parameterised type class with method signatures.
type TypeClassDef struct {
	Name      Identifier
	Variables []*TypeVariable
	Body      *TypeClassBody
	Span      *Span
}

// TypeVariable is a class parameter optionally restricted to other classes.
type TypeVariable struct {
	Name         Identifier
	Restrictions []IdentifierReference
	Span         *Span
}

// TypeClassBody holds the methods of a type class.
type TypeClassBody struct {
	Annotations []Annotation
	Methods     []*MethodDef
	Span        *Span
}

// MethodDef is a type class method with an optional defining sentence.
type MethodDef struct {
	Name      Identifier
	Signature FunctionSignature
	Body      ConstraintSentence
	Span      *Span
	// Annotations are attached to the method itself.
	Annotations []Annotation
}

// AnnotationList returns the method's annotations.
func (m *MethodDef) AnnotationList() []Annotation { return m.Annotations }

// UnionDef is a discriminated union over other types.
type UnionDef struct {
	Name Identifier
	Body *UnionBody
	Span *Span
}

// UnionBody holds the variants of a union.
type UnionBody struct {
	Annotations []Annotation
	Variants    []*TypeVariant
	Span        *Span
}

// TypeVariant names a member type of a union, optionally renamed.
type TypeVariant struct {
	Name   IdentifierReference
	Rename Identifier
	Body   *AnnotationOnlyBody
	Span   *Span
}

// VariantName is the rename if given, otherwise the referenced member name.
func (v *TypeVariant) VariantName() Identifier {
	if !v.Rename.IsZero() {
		return v.Rename
	}
	if v.Name == nil {
		return Identifier{}
	}
	return v.Name.Member()
}

// AnnotationList returns the variant's annotations.
func (v *TypeVariant) AnnotationList() []Annotation { return v.Body.AnnotationList() }

func (d *DatatypeDef) DefinitionName() Identifier  { return d.Name }
func (d *DimensionDef) DefinitionName() Identifier { return d.Name }
func (d *EntityDef) DefinitionName() Identifier    { return d.Name }
func (d *EnumDef) DefinitionName() Identifier      { return d.Name }
func (d *EventDef) DefinitionName() Identifier     { return d.Name }
func (d *PropertyDef) DefinitionName() Identifier  { return d.Name }
func (d *RdfDef) DefinitionName() Identifier       { return d.Name }
func (d *StructureDef) DefinitionName() Identifier { return d.Name }
func (d *TypeClassDef) DefinitionName() Identifier { return d.Name }
func (d *UnionDef) DefinitionName() Identifier     { return d.Name }

func (d *DatatypeDef) DefinitionSpan() *Span  { return d.Span }
func (d *DimensionDef) DefinitionSpan() *Span { return d.Span }
func (d *EntityDef) DefinitionSpan() *Span    { return d.Span }
func (d *EnumDef) DefinitionSpan() *Span      { return d.Span }
func (d *EventDef) DefinitionSpan() *Span     { return d.Span }
func (d *PropertyDef) DefinitionSpan() *Span  { return d.Span }
func (d *RdfDef) DefinitionSpan() *Span       { return d.Span }
func (d *StructureDef) DefinitionSpan() *Span { return d.Span }
func (d *TypeClassDef) DefinitionSpan() *Span { return d.Span }
func (d *UnionDef) DefinitionSpan() *Span     { return d.Span }

func (d *DatatypeDef) AnnotationList() []Annotation { return d.Body.AnnotationList() }
func (d *RdfDef) AnnotationList() []Annotation      { return d.Body.AnnotationList() }

func (d *DimensionDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (d *EntityDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (d *EnumDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (d *EventDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

// AnnotationList returns the annotations of the property's member definition.
func (d *PropertyDef) AnnotationList() []Annotation {
	if d.Member == nil {
		return nil
	}
	return d.Member.AnnotationList()
}

func (d *StructureDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (d *TypeClassDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (d *UnionDef) AnnotationList() []Annotation {
	if d.Body == nil {
		return nil
	}
	return d.Body.Annotations
}

func (*DatatypeDef) isDefinition()  {}
func (*DimensionDef) isDefinition() {}
func (*EntityDef) isDefinition()    {}
func (*EnumDef) isDefinition()      {}
func (*EventDef) isDefinition()     {}
func (*PropertyDef) isDefinition()  {}
func (*RdfDef) isDefinition()       {}
func (*StructureDef) isDefinition() {}
func (*TypeClassDef) isDefinition() {}
func (*UnionDef) isDefinition()     {}

// DefinitionKind returns a lower-case keyword naming the kind of d.
func DefinitionKind(d Definition) string {
	switch d.(type) {
	case *DatatypeDef:
		return "datatype"
	case *DimensionDef:
		return "dimension"
	case *EntityDef:
		return "entity"
	case *EnumDef:
		return "enum"
	case *EventDef:
		return "event"
	case *PropertyDef:
		return "property"
	case *RdfDef:
		return "rdf"
	case *StructureDef:
		return "structure"
	case *TypeClassDef:
		return "class"
	case *UnionDef:
		return "union"
	}
	return "unknown"
}
