package generate

import (
	"fmt"
	"log/slog"
)

// SequenceEncoding selects how the members of a sequence value are written.
type SequenceEncoding int

const (
	// Positional writes members under rdf:_1 .. rdf:_n on the sequence node.
	Positional SequenceEncoding = iota
	// List writes members as an rdf:first/rdf:rest collection under rdf:value.
	List
)

func (e SequenceEncoding) String() string {
	if e == List {
		return "list"
	}
	return "positional"
}

// ParseSequenceEncoding accepts "positional", "list" or the empty string.
func ParseSequenceEncoding(s string) (SequenceEncoding, error) {
	switch s {
	case "", "positional":
		return Positional, nil
	case "list":
		return List, nil
	}
	return Positional, fmt.Errorf("unknown sequence encoding %q (valid: positional, list)", s)
}

// Options controls a lowering run.
type Options struct {
	// IncludeSourceLocation emits sdml:sourceLocation spans for elements that have them.
	IncludeSourceLocation bool
	SequenceEncoding      SequenceEncoding
	Logger                *slog.Logger
	Metrics               *Metrics
}

// Option configures Options.
type Option func(*Options)

// WithSourceLocation enables or disables source span triples.
func WithSourceLocation(enabled bool) Option {
	return func(o *Options) { o.IncludeSourceLocation = enabled }
}

// WithSequenceEncoding selects the sequence encoding.
func WithSequenceEncoding(e SequenceEncoding) Option {
	return func(o *Options) { o.SequenceEncoding = e }
}

// WithLogger sets the logger; nil selects slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMetrics records lowering metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
