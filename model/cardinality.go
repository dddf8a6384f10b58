package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCardinality is returned when a range has max < min.
var ErrInvalidCardinality = errors.New("invalid cardinality")

// Ordering constrains whether elements of a collection are ordered. The zero
// value means the constraint was not stated.
type Ordering int

const (
	OrderingUnspecified Ordering = iota
	Ordered
	Unordered
)

func (o Ordering) String() string {
	switch o {
	case Ordered:
		return "ordered"
	case Unordered:
		return "unordered"
	default:
		return ""
	}
}

// ParseOrdering accepts "ordered", "unordered" or the empty string.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "":
		return OrderingUnspecified, nil
	case "ordered":
		return Ordered, nil
	case "unordered":
		return Unordered, nil
	}
	return OrderingUnspecified, fmt.Errorf("%w: unknown ordering %q", ErrInvalidCardinality, s)
}

// Uniqueness constrains whether elements of a collection are unique. The zero
// value means the constraint was not stated.
type Uniqueness int

const (
	UniquenessUnspecified Uniqueness = iota
	Unique
	Nonunique
)

func (u Uniqueness) String() string {
	switch u {
	case Unique:
		return "unique"
	case Nonunique:
		return "nonunique"
	default:
		return ""
	}
}

// ParseUniqueness accepts "unique", "nonunique" or the empty string.
func ParseUniqueness(s string) (Uniqueness, error) {
	switch s {
	case "":
		return UniquenessUnspecified, nil
	case "unique":
		return Unique, nil
	case "nonunique":
		return Nonunique, nil
	}
	return UniquenessUnspecified, fmt.Errorf("%w: unknown uniqueness %q", ErrInvalidCardinality, s)
}

// CardinalityRange is a min..max occurrence range where max may be unbounded.
type CardinalityRange struct {
	min     uint64
	max     uint64
	bounded bool
}

// NewRange returns the bounded range min..max.
func NewRange(min, max uint64) (CardinalityRange, error) {
	if max < min {
		return CardinalityRange{}, fmt.Errorf("%w: max %d is less than min %d", ErrInvalidCardinality, max, min)
	}
	return CardinalityRange{min: min, max: max, bounded: true}, nil
}

// NewUnboundedRange returns the range min..*.
func NewUnboundedRange(min uint64) CardinalityRange {
	return CardinalityRange{min: min}
}

// ExactRange returns n..n.
func ExactRange(n uint64) CardinalityRange {
	return CardinalityRange{min: n, max: n, bounded: true}
}

// MinOccurs returns the lower bound.
func (r CardinalityRange) MinOccurs() uint64 { return r.min }

// MaxOccurs returns the upper bound and whether one exists.
func (r CardinalityRange) MaxOccurs() (uint64, bool) { return r.max, r.bounded }

func (r CardinalityRange) String() string {
	switch {
	case !r.bounded:
		return fmt.Sprintf("%d..", r.min)
	case r.min == r.max:
		return fmt.Sprintf("%d", r.min)
	default:
		return fmt.Sprintf("%d..%d", r.min, r.max)
	}
}

// Cardinality describes how many values a member may take and how the
// resulting collection behaves.
type Cardinality struct {
	Ordering   Ordering
	Uniqueness Uniqueness
	Range      CardinalityRange
	Span       *Span
}

// DefaultCardinality is exactly one value with no ordering or uniqueness stated.
func DefaultCardinality() Cardinality {
	return Cardinality{Range: ExactRange(1)}
}

// NewCardinality builds a cardinality from its parts.
func NewCardinality(ordering Ordering, uniqueness Uniqueness, r CardinalityRange) Cardinality {
	return Cardinality{Ordering: ordering, Uniqueness: uniqueness, Range: r}
}

// IsDefault reports whether c equals DefaultCardinality, ignoring span.
func (c Cardinality) IsDefault() bool {
	return c.Ordering == OrderingUnspecified &&
		c.Uniqueness == UniquenessUnspecified &&
		c.Range == ExactRange(1)
}

// MinOccurs returns the lower bound.
func (c Cardinality) MinOccurs() uint64 { return c.Range.MinOccurs() }

// MaxOccurs returns the upper bound and whether one exists.
func (c Cardinality) MaxOccurs() (uint64, bool) { return c.Range.MaxOccurs() }

// IsOptional reports a lower bound of zero.
func (c Cardinality) IsOptional() bool { return c.Range.min == 0 }

// IsRequired reports a lower bound of at least one.
func (c Cardinality) IsRequired() bool { return !c.IsOptional() }

// IsExactlyOne reports the range 1..1.
func (c Cardinality) IsExactlyOne() bool { return c.Range == ExactRange(1) }

// IsUnbounded reports a missing upper bound.
func (c Cardinality) IsUnbounded() bool { return !c.Range.bounded }

// String renders the cardinality in surface syntax, e.g. "{ordered unique 0..1}".
func (c Cardinality) String() string {
	parts := make([]string, 0, 3)
	if c.Ordering != OrderingUnspecified {
		parts = append(parts, c.Ordering.String())
	}
	if c.Uniqueness != UniquenessUnspecified {
		parts = append(parts, c.Uniqueness.String())
	}
	parts = append(parts, c.Range.String())
	return "{" + strings.Join(parts, " ") + "}"
}

// ParseCardinality parses the surface form written by String. Braces are
// optional and the empty string is the default cardinality.
func ParseCardinality(s string) (Cardinality, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCardinality(), nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 3 {
		return Cardinality{}, fmt.Errorf("%w: %q", ErrInvalidCardinality, s)
	}

	var c Cardinality
	for _, word := range fields[:len(fields)-1] {
		if o, err := ParseOrdering(word); err == nil && c.Ordering == OrderingUnspecified {
			c.Ordering = o
			continue
		}
		u, err := ParseUniqueness(word)
		if err != nil || c.Uniqueness != UniquenessUnspecified {
			return Cardinality{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidCardinality, word, s)
		}
		c.Uniqueness = u
	}

	r, err := parseRange(fields[len(fields)-1])
	if err != nil {
		return Cardinality{}, err
	}
	c.Range = r
	return c, nil
}

func parseRange(s string) (CardinalityRange, error) {
	lo, hi, ranged := strings.Cut(s, "..")
	min, err := strconv.ParseUint(lo, 10, 64)
	if err != nil {
		return CardinalityRange{}, fmt.Errorf("%w: bad lower bound in %q", ErrInvalidCardinality, s)
	}
	if !ranged {
		return ExactRange(min), nil
	}
	if hi == "" {
		return NewUnboundedRange(min), nil
	}
	max, err := strconv.ParseUint(hi, 10, 64)
	if err != nil {
		return CardinalityRange{}, fmt.Errorf("%w: bad upper bound in %q", ErrInvalidCardinality, s)
	}
	return NewRange(min, max)
}

// PseudoSequenceType names the collection kind implied by a cardinality.
type PseudoSequenceType int

const (
	// Maybe is 0..1.
	Maybe PseudoSequenceType = iota
	// Bag is unordered and nonunique.
	Bag
	// List is ordered and nonunique.
	List
	// Set is unordered and unique.
	Set
	// OrderedSet is ordered and unique.
	OrderedSet
)

func (p PseudoSequenceType) String() string {
	switch p {
	case Maybe:
		return "maybe"
	case Bag:
		return "bag"
	case List:
		return "list"
	case Set:
		return "set"
	case OrderedSet:
		return "ordered set"
	}
	return ""
}

// SequenceType classifies c. Exactly-one cardinalities are not sequences.
func (c Cardinality) SequenceType() (PseudoSequenceType, bool) {
	if c.IsExactlyOne() {
		return 0, false
	}
	if max, ok := c.MaxOccurs(); ok && c.MinOccurs() == 0 && max == 1 {
		return Maybe, true
	}
	ordered := c.Ordering == Ordered
	unique := c.Uniqueness == Unique
	switch {
	case ordered && unique:
		return OrderedSet, true
	case ordered:
		return List, true
	case unique:
		return Set, true
	default:
		return Bag, true
	}
}
