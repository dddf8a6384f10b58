package model

import "fmt"

// Span is a half-open byte range [Start, End) within a module's source text.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span covering [start, end).
func NewSpan(start, end int) *Span {
	return &Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }
