package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is returned when a string is not a legal SDML identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[\p{Lu}\p{Ll}][\p{Lu}\p{Ll}\p{Nd}]*(?:_+[\p{Lu}\p{Ll}\p{Nd}]+)*$`)

// reservedKeywords may not be used as identifiers. The "rdf" keyword is
// deliberately absent so that the standard rdf module can be named.
var reservedKeywords = map[string]struct{}{
	"as": {}, "assert": {}, "class": {}, "datatype": {}, "def": {},
	"dimension": {}, "end": {}, "entity": {}, "enum": {}, "event": {},
	"false": {}, "fixed": {}, "from": {}, "identity": {}, "import": {},
	"is": {}, "module": {}, "nonunique": {}, "of": {}, "opaque": {},
	"ordered": {}, "parent": {}, "property": {}, "ref": {}, "self": {},
	"source": {}, "structure": {}, "true": {}, "union": {}, "unique": {},
	"unknown": {}, "unordered": {}, "version": {}, "with": {},
}

// IsKeyword reports whether s is a reserved word of the surface language.
func IsKeyword(s string) bool {
	_, ok := reservedKeywords[s]
	return ok
}

// IsValidIdentifier reports whether s may be used as an Identifier.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s) && !IsKeyword(s)
}

// Identifier is a validated local name. The zero value is not a valid
// identifier and renders as the empty string.
type Identifier struct {
	value string
}

// NewIdentifier validates s and returns it as an Identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !IsValidIdentifier(s) {
		return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return Identifier{value: s}, nil
}

// MustIdentifier is like NewIdentifier but panics on invalid input. It is
// intended for constants and tests.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id Identifier) String() string { return id.value }

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool { return id.value == "" }

// Member returns the identifier itself; an unqualified reference names its member directly.
func (id Identifier) Member() Identifier { return id }

// Qualified reports false for a bare identifier.
func (id Identifier) Qualified() bool { return false }

func (Identifier) isIdentifierReference() {}

// QualifiedIdentifier names a member of another module, written module:member.
type QualifiedIdentifier struct {
	Module Identifier
	Name   Identifier
}

// NewQualifiedIdentifier joins a module and member name.
func NewQualifiedIdentifier(module, member Identifier) QualifiedIdentifier {
	return QualifiedIdentifier{Module: module, Name: member}
}

// ParseQualifiedIdentifier parses the "module:member" form.
func ParseQualifiedIdentifier(s string) (QualifiedIdentifier, error) {
	module, member, ok := strings.Cut(s, ":")
	if !ok {
		return QualifiedIdentifier{}, fmt.Errorf("%w: %q is not qualified", ErrInvalidIdentifier, s)
	}
	m, err := NewIdentifier(module)
	if err != nil {
		return QualifiedIdentifier{}, err
	}
	n, err := NewIdentifier(member)
	if err != nil {
		return QualifiedIdentifier{}, err
	}
	return QualifiedIdentifier{Module: m, Name: n}, nil
}

func (q QualifiedIdentifier) String() string {
	return q.Module.String() + ":" + q.Name.String()
}

// Member returns the member part of the qualified name.
func (q QualifiedIdentifier) Member() Identifier { return q.Name }

// Qualified reports true.
func (q QualifiedIdentifier) Qualified() bool { return true }

func (QualifiedIdentifier) isIdentifierReference() {}

// IdentifierReference is either an Identifier or a QualifiedIdentifier.
// Both implementations are comparable, so references can be tested with ==.
type IdentifierReference interface {
	fmt.Stringer
	Member() Identifier
	Qualified() bool
	isIdentifierReference()
}

// ParseIdentifierReference parses either form, choosing by the presence of ':'.
func ParseIdentifierReference(s string) (IdentifierReference, error) {
	if strings.Contains(s, ":") {
		return ParseQualifiedIdentifier(s)
	}
	return NewIdentifier(s)
}

// MustReference is like ParseIdentifierReference but panics on invalid input.
func MustReference(s string) IdentifierReference {
	ref, err := ParseIdentifierReference(s)
	if err != nil {
		panic(err)
	}
	return ref
}
