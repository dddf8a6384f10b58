package model

import "fmt"

// TypeReference is the target type of a member: Unknown, a named type, or a mapping.
type TypeReference interface {
	fmt.Stringer
	isTypeReference()
}

// UnknownType is the placeholder written as "unknown".
type UnknownType struct{}

// NamedType refers to a type definition by name.
type NamedType struct {
	Reference IdentifierReference
}

// MappingType is a map from a domain type to a range type.
type MappingType struct {
	Domain TypeReference
	Range  TypeReference
	Span   *Span
}

func (UnknownType) String() string   { return "unknown" }
func (t NamedType) String() string   { return t.Reference.String() }
func (t MappingType) String() string { return fmt.Sprintf("(%s -> %s)", t.Domain, t.Range) }

func (UnknownType) isTypeReference() {}
func (NamedType) isTypeReference()   {}
func (MappingType) isTypeReference() {}

// Member is a field of a structure-like definition: either a reference to a
// standalone property or an inline definition.
type Member interface {
	// MemberName is the local name used to form the member's subject IRI.
	MemberName() Identifier
	MemberSpan() *Span
	isMember()
}

// MemberReference includes a property defined elsewhere.
type MemberReference struct {
	Reference IdentifierReference
	Span      *Span
}

func (m *MemberReference) MemberName() Identifier {
	if m.Reference == nil {
		return Identifier{}
	}
	return m.Reference.Member()
}
func (m *MemberReference) MemberSpan() *Span      { return m.Span }
func (*MemberReference) isMember()                {}

// MemberDef defines a member inline.
type MemberDef struct {
	Name              Identifier
	TargetType        TypeReference
	TargetCardinality Cardinality
	Body              *AnnotationOnlyBody
	Span              *Span
}

// NewMemberDef returns a member of the given type with default cardinality.
func NewMemberDef(name Identifier, target TypeReference) *MemberDef {
	return &MemberDef{Name: name, TargetType: target, TargetCardinality: DefaultCardinality()}
}

func (m *MemberDef) MemberName() Identifier       { return m.Name }
func (m *MemberDef) MemberSpan() *Span            { return m.Span }
func (m *MemberDef) AnnotationList() []Annotation { return m.Body.AnnotationList() }
func (*MemberDef) isMember()                      {}
