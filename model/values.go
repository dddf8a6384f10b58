package model

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidLanguageTag is returned when a string is not a well-formed BCP-47 tag.
var ErrInvalidLanguageTag = errors.New("invalid language tag")

// ErrInvalidValue is returned when a literal cannot be represented.
var ErrInvalidValue = errors.New("invalid value")

// LanguageTag is a validated BCP-47 language tag.
type LanguageTag struct {
	tag language.Tag
	raw string
}

// NewLanguageTag parses s as a BCP-47 tag.
func NewLanguageTag(s string) (LanguageTag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return LanguageTag{}, fmt.Errorf("%w: %q: %v", ErrInvalidLanguageTag, s, err)
	}
	return LanguageTag{tag: tag, raw: s}, nil
}

// MustLanguageTag is like NewLanguageTag but panics on invalid input.
func MustLanguageTag(s string) LanguageTag {
	t, err := NewLanguageTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the tag as written.
func (l LanguageTag) String() string { return l.raw }

// Tag returns the parsed form.
func (l LanguageTag) Tag() language.Tag { return l.tag }

// IsZero reports whether no tag is present.
func (l LanguageTag) IsZero() bool { return l.raw == "" }

// Value is any value that may appear as an annotation property value or a
// sequence element: simple values, constructors, mappings, references and sequences.
type Value interface {
	isValue()
}

// SequenceMember is a Value that may appear inside a SequenceOfValues.
// Sequences do not implement it, so nesting is rejected at compile time.
type SequenceMember interface {
	Value
	isSequenceMember()
}

// SimpleValue is a literal value.
type SimpleValue interface {
	SequenceMember
	fmt.Stringer
	// LexicalForm is the literal text without quoting or datatype markup.
	LexicalForm() string
	isSimpleValue()
}

type (
	// Boolean is a true/false literal.
	Boolean bool
	// Double is an IEEE-754 64-bit literal.
	Double float64
	// Integer is a signed 64-bit literal.
	Integer int64
	// Unsigned is an unsigned 64-bit literal.
	Unsigned uint64
	// Binary is an octet sequence, written in hex.
	Binary []byte
)

// Decimal is an exact decimal literal held in its lexical form.
type Decimal struct {
	lexical string
}

var decimalPattern = regexp.MustCompile(`^[+-]?(?:\d+\.\d*|\.\d+|\d+)$`)

// NewDecimal validates s as a decimal literal.
func NewDecimal(s string) (Decimal, error) {
	if !decimalPattern.MatchString(s) {
		return Decimal{}, fmt.Errorf("%w: %q is not a decimal", ErrInvalidValue, s)
	}
	return Decimal{lexical: s}, nil
}

// LanguageString is a string literal with an optional language tag.
type LanguageString struct {
	Value    string
	Language LanguageTag
}

// IRIReference is an absolute IRI used as a literal value.
type IRIReference struct {
	URI *URI
}

// NewIRIReference parses s as an IRI.
func NewIRIReference(s string) (IRIReference, error) {
	u, err := ParseURI(s)
	if err != nil {
		return IRIReference{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return IRIReference{URI: u}, nil
}

func (v Boolean) String() string { return v.LexicalForm() }
func (v Boolean) LexicalForm() string { return strconv.FormatBool(bool(v)) }
func (v Double) String() string { return v.LexicalForm() }
func (v Integer) String() string { return v.LexicalForm() }
func (v Integer) LexicalForm() string { return strconv.FormatInt(int64(v), 10) }
func (v Unsigned) String() string { return v.LexicalForm() }
func (v Unsigned) LexicalForm() string { return strconv.FormatUint(uint64(v), 10) }
func (v Decimal) String() string { return v.lexical }
func (v Decimal) LexicalForm() string { return v.lexical }
func (v Binary) String() string { return "#[" + v.LexicalForm() + "]" }
func (v Binary) LexicalForm() string { return strings.ToUpper(hex.EncodeToString(v)) }
func (v IRIReference) String() string { return "<" + v.LexicalForm() + ">" }
func (v LanguageString) LexicalForm() string { return v.Value }

// LexicalForm follows the XML Schema canonical spellings for special values.
func (v Double) LexicalForm() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEN") {
		s += ".0"
	}
	return s
}

func (v IRIReference) LexicalForm() string {
	return v.URI.String()
}

func (v LanguageString) String() string {
	s := strconv.Quote(v.Value)
	if !v.Language.IsZero() {
		s += "@" + v.Language.String()
	}
	return s
}

func (Boolean) isValue() {}
func (Double) isValue() {}
func (Decimal) isValue() {}
func (Integer) isValue() {}
func (Unsigned) isValue() {}
func (LanguageString) isValue() {}
func (IRIReference) isValue() {}
func (Binary) isValue() {}
func (Boolean) isSequenceMember() {}
func (Double) isSequenceMember() {}
func (Decimal) isSequenceMember() {}
func (Integer) isSequenceMember() {}
func (Unsigned) isSequenceMember() {}
func (LanguageString) isSequenceMember() {}
func (IRIReference) isSequenceMember() {}
func (Binary) isSequenceMember() {}
func (Boolean) isSimpleValue() {}
func (Double) isSimpleValue() {}
func (Decimal) isSimpleValue() {}
func (Integer) isSimpleValue() {}
func (Unsigned) isSimpleValue() {}
func (LanguageString) isSimpleValue() {}
func (IRIReference) isSimpleValue() {}
func (Binary) isSimpleValue() {}

// ValueConstructor is a simple value typed by a named datatype, e.g. xsd:date("2024-01-01").
type ValueConstructor struct {
	TypeName IdentifierReference
	Value    SimpleValue
	Span     *Span
}

func (v ValueConstructor) String() string {
	return fmt.Sprintf("%s(%s)", v.TypeName, v.Value)
}

// MappingValue pairs a simple domain value with a range value.
type MappingValue struct {
	Domain SimpleValue
	Range  Value
	Span   *Span
}

func (v MappingValue) String() string {
	return fmt.Sprintf("%s -> %v", v.Domain, v.Range)
}

// ReferenceValue is a value that names another model element.
type ReferenceValue struct {
	Reference IdentifierReference
	Span      *Span
}

func (v ReferenceValue) String() string { return v.Reference.String() }

// SequenceOfValues is a bracketed list of values with optional element constraints.
type SequenceOfValues struct {
	Ordering   Ordering
	Uniqueness Uniqueness
	Members    []SequenceMember
	Span       *Span
}

func (v SequenceOfValues) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, m := range v.Members {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprint(&b, m)
	}
	b.WriteString("]")
	return b.String()
}

func (ValueConstructor) isValue() {}
func (MappingValue) isValue() {}
func (ReferenceValue) isValue() {}
func (SequenceOfValues) isValue() {}
func (ValueConstructor) isSequenceMember() {}
func (MappingValue) isSequenceMember() {}
func (ReferenceValue) isSequenceMember() {}
