package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Constraint is a named rule attached to a model element. Its body is either
// informal prose or a formal sentence in the constraint language.
type Constraint struct {
	Name Identifier
	Body ConstraintBody
	Span *Span
}

func (*Constraint) isAnnotation() {}

// ConstraintBody is an InformalConstraint or a FormalConstraint.
type ConstraintBody interface {
	isConstraintBody()
}

// InformalConstraint is natural or controlled-natural language text.
type InformalConstraint struct {
	Value    string
	Language ControlledLanguageTag
	Span     *Span
}

// ControlledLanguageTag names the language of an informal constraint: a
// two or three letter language code optionally followed by a controlled
// language name, e.g. "en" or "en-ACE". The zero value means unspecified.
type ControlledLanguageTag struct {
	value string
}

var controlledLanguagePattern = regexp.MustCompile(`^[a-z]{2,3}(?:-[A-Z][A-Za-z]{1,9})?$`)

// NewControlledLanguageTag validates s.
func NewControlledLanguageTag(s string) (ControlledLanguageTag, error) {
	if !controlledLanguagePattern.MatchString(s) {
		return ControlledLanguageTag{}, fmt.Errorf("%w: %q", ErrInvalidLanguageTag, s)
	}
	return ControlledLanguageTag{value: s}, nil
}

// IsZero reports whether no language was given.
func (t ControlledLanguageTag) IsZero() bool { return t.value == "" }

func (t ControlledLanguageTag) String() string { return t.value }

// FormalConstraint is a sentence with an optional environment of local definitions.
type FormalConstraint struct {
	Environment []*EnvironmentDef
	Body        ConstraintSentence
	Span        *Span
}

func (*InformalConstraint) isConstraintBody() {}
func (*FormalConstraint) isConstraintBody()   {}

// EnvironmentDef binds a name for use within a formal constraint.
type EnvironmentDef struct {
	Name Identifier
	Body EnvironmentDefBody
	Span *Span
}

func (d *EnvironmentDef) String() string {
	return fmt.Sprintf("def %s %s", d.Name, d.Body)
}

// EnvironmentDefBody is a function, a value or a sentence.
type EnvironmentDefBody interface {
	fmt.Stringer
	isEnvironmentDefBody()
}

// FunctionDef is a named function with a signature and a defining sentence.
type FunctionDef struct {
	Signature FunctionSignature
	Body      ConstraintSentence
}

// FunctionSignature lists parameters and the result type.
type FunctionSignature struct {
	Parameters []FunctionParameter
	Result     FunctionType
}

// FunctionParameter is a named, typed parameter.
type FunctionParameter struct {
	Name Identifier
	Type FunctionType
}

// FunctionType is a possibly optional, possibly wildcard type with a cardinality.
type FunctionType struct {
	Cardinality Cardinality
	Optional    bool
	Wildcard    bool
	Type        TypeReference
}

// ValueDef binds a predicate value.
type ValueDef struct {
	Value PredicateValue
}

// SentenceDef binds a sentence.
type SentenceDef struct {
	Sentence ConstraintSentence
}

func (t FunctionType) String() string {
	var b strings.Builder
	if !t.Cardinality.IsDefault() {
		b.WriteString(t.Cardinality.String())
		b.WriteString(" ")
	}
	if t.Optional {
		b.WriteString("?")
	}
	switch {
	case t.Wildcard:
		b.WriteString("_")
	case t.Type != nil:
		b.WriteString(t.Type.String())
	default:
		b.WriteString("unknown")
	}
	return b.String()
}

func (s FunctionSignature) String() string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.Name.String() + " -> " + p.Type.String()
	}
	return "(" + strings.Join(params, " ") + ") -> " + s.Result.String()
}

func (d *FunctionDef) String() string { return d.Signature.String() + " := " + d.Body.String() }
func (d *ValueDef) String() string    { return ":= " + d.Value.String() }
func (d *SentenceDef) String() string { return ":= " + d.Sentence.String() }

func (*FunctionDef) isEnvironmentDefBody() {}
func (*ValueDef) isEnvironmentDefBody()    {}
func (*SentenceDef) isEnvironmentDefBody() {}

// ConstraintSentence is a formula of the constraint language. String returns
// its surface form.
type ConstraintSentence interface {
	fmt.Stringer
	isConstraintSentence()
}

// SimpleSentence is an atomic sentence, an equation or an inequation.
type SimpleSentence interface {
	ConstraintSentence
	isSimpleSentence()
}

// BooleanSentence is a negation or a binary connective.
type BooleanSentence interface {
	ConstraintSentence
	isBooleanSentence()
}

// AtomicSentence applies a predicate to arguments.
type AtomicSentence struct {
	Predicate Term
	Arguments []Term
}

// Equation asserts two terms are equal.
type Equation struct {
	Left  Term
	Right Term
}

// InequalityRelation is one of ≠ < <= > >=.
type InequalityRelation int

const (
	NotEqual InequalityRelation = iota
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

func (r InequalityRelation) String() string {
	switch r {
	case NotEqual:
		return "/="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	}
	return "?"
}

// Inequation relates two terms with an inequality.
type Inequation struct {
	Left     Term
	Relation InequalityRelation
	Right    Term
}

// UnaryBooleanSentence is a negation.
type UnaryBooleanSentence struct {
	Operand ConstraintSentence
}

// ConnectiveOperator joins two sentences.
type ConnectiveOperator int

const (
	Conjunction ConnectiveOperator = iota
	Disjunction
	ExclusiveDisjunction
	Implication
	Biconditional
)

func (op ConnectiveOperator) String() string {
	switch op {
	case Conjunction:
		return "and"
	case Disjunction:
		return "or"
	case ExclusiveDisjunction:
		return "xor"
	case Implication:
		return "implies"
	case Biconditional:
		return "iff"
	}
	return "?"
}

// BinaryBooleanSentence joins two sentences with a connective.
type BinaryBooleanSentence struct {
	Left     ConstraintSentence
	Operator ConnectiveOperator
	Right    ConstraintSentence
}

// Quantifier is forall or exists.
type Quantifier int

const (
	Universal Quantifier = iota
	Existential
)

func (q Quantifier) String() string {
	if q == Existential {
		return "exists"
	}
	return "forall"
}

// QuantifiedVariable binds a name to each element of a source term.
type QuantifiedVariable struct {
	Name   Identifier
	Source Term
}

// QuantifiedVariableBinding is a quantifier over an optional variable; a nil
// Variable is the "self" binding.
type QuantifiedVariableBinding struct {
	Quantifier Quantifier
	Variable   *QuantifiedVariable
}

func (b QuantifiedVariableBinding) String() string {
	if b.Variable == nil {
		return b.Quantifier.String() + " self"
	}
	return fmt.Sprintf("%s %s in %s", b.Quantifier, b.Variable.Name, b.Variable.Source)
}

// QuantifiedSentence is a sentence under a quantifier binding.
type QuantifiedSentence struct {
	Binding QuantifiedVariableBinding
	Body    ConstraintSentence
}

func (s *AtomicSentence) String() string {
	return s.Predicate.String() + "(" + joinTerms(s.Arguments) + ")"
}

func (s *Equation) String() string   { return s.Left.String() + " = " + s.Right.String() }
func (s *Inequation) String() string { return fmt.Sprintf("%s %s %s", s.Left, s.Relation, s.Right) }

func (s *UnaryBooleanSentence) String() string { return "not " + s.Operand.String() }

func (s *BinaryBooleanSentence) String() string {
	return fmt.Sprintf("(%s %s %s)", s.Left, s.Operator, s.Right)
}

func (s *QuantifiedSentence) String() string {
	return s.Binding.String() + ", " + s.Body.String()
}

func (*AtomicSentence) isConstraintSentence()        {}
func (*Equation) isConstraintSentence()              {}
func (*Inequation) isConstraintSentence()            {}
func (*UnaryBooleanSentence) isConstraintSentence()  {}
func (*BinaryBooleanSentence) isConstraintSentence() {}
func (*QuantifiedSentence) isConstraintSentence()    {}
func (*AtomicSentence) isSimpleSentence()            {}
func (*Equation) isSimpleSentence()                  {}
func (*Inequation) isSimpleSentence()                {}
func (*UnaryBooleanSentence) isBooleanSentence()     {}
func (*BinaryBooleanSentence) isBooleanSentence()    {}

// Term is an expression of the constraint language.
type Term interface {
	fmt.Stringer
	isTerm()
}

// SequenceBuilder is set-builder notation: {vars | body}.
type SequenceBuilder struct {
	Variables []Identifier
	// MappingRange, when non-zero, makes the variables a domain -> range pair.
	MappingRange Identifier
	Body         *QuantifiedSentence
}

// FunctionalTerm applies a function term to arguments.
type FunctionalTerm struct {
	Function  Term
	Arguments []Term
}

// FunctionComposition is a dotted path from self or a named subject, e.g. self.name.length.
type FunctionComposition struct {
	// Subject is empty for self.
	Subject   Identifier
	Functions []Identifier
}

// IdentifierTerm refers to a named element or variable.
type IdentifierTerm struct {
	Reference IdentifierReference
}

// ReservedSelf is the term "self".
type ReservedSelf struct{}

// ValueTerm wraps a predicate value.
type ValueTerm struct {
	Value PredicateValue
}

func (t *SequenceBuilder) String() string {
	vars := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		vars[i] = v.String()
	}
	head := strings.Join(vars, " ")
	if !t.MappingRange.IsZero() {
		head += " -> " + t.MappingRange.String()
	}
	body := ""
	if t.Body != nil {
		body = t.Body.String()
	}
	return "{" + head + " | " + body + "}"
}

func (t *FunctionalTerm) String() string {
	return t.Function.String() + "(" + joinTerms(t.Arguments) + ")"
}

func (t *FunctionComposition) String() string {
	parts := make([]string, 0, len(t.Functions)+1)
	if t.Subject.IsZero() {
		parts = append(parts, "self")
	} else {
		parts = append(parts, t.Subject.String())
	}
	for _, f := range t.Functions {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ".")
}

func (t *IdentifierTerm) String() string { return t.Reference.String() }
func (ReservedSelf) String() string      { return "self" }
func (t *ValueTerm) String() string      { return t.Value.String() }

func (*SequenceBuilder) isTerm()     {}
func (*FunctionalTerm) isTerm()      {}
func (*FunctionComposition) isTerm() {}
func (*IdentifierTerm) isTerm()      {}
func (ReservedSelf) isTerm()         {}
func (*ValueTerm) isTerm()           {}

// PredicateValue is a simple value or a sequence of simple values and references.
type PredicateValue interface {
	fmt.Stringer
	isPredicateValue()
}

// PredicateSimpleValue wraps a single literal.
type PredicateSimpleValue struct {
	Value SimpleValue
}

// PredicateSequence is a bracketed list whose members are simple values or
// ReferenceValue.
type PredicateSequence struct {
	Members []SequenceMember
}

func (v PredicateSimpleValue) String() string { return v.Value.String() }

func (v PredicateSequence) String() string {
	parts := make([]string, len(v.Members))
	for i, m := range v.Members {
		parts[i] = fmt.Sprint(m)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (PredicateSimpleValue) isPredicateValue() {}
func (PredicateSequence) isPredicateValue()    {}

func joinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// QuoteInformal renders an informal constraint body in surface syntax.
func QuoteInformal(c *InformalConstraint) string {
	s := strconv.Quote(c.Value)
	if !c.Language.IsZero() {
		s += "@" + c.Language.String()
	}
	return s
}
