// Package export serializes lowered graphs as Turtle, N-Triples or JSON-LD.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/c360studio/sdml/generate"
	"github.com/c360studio/sdml/graph"
)

// Options controls serialization.
type Options struct {
	// Color adds ANSI terminal colors to Turtle output.
	Color bool
}

// Option configures Options.
type Option func(*Options)

// WithColor enables or disables ANSI colors.
func WithColor(enabled bool) Option {
	return func(o *Options) { o.Color = enabled }
}

// Serialize writes g to w in the given format. Writer failures are returned
// as *generate.GeneratorError.
func Serialize(w io.Writer, g *graph.Graph, format Format, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	switch format {
	case FormatTurtle:
		err = writeTurtle(w, g, o.Color)
	case FormatNTriples:
		err = writeNTriples(w, g)
	case FormatJSONLD:
		err = writeJSONLD(w, g)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return generate.NewGeneratorError(string(format), "serialize graph", err)
	}
	return nil
}

// String serializes g to a string.
func String(g *graph.Graph, format Format, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Serialize(&sb, g, format, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeNTriples(w io.Writer, g *graph.Graph) error {
	qw := nquads.NewWriter(w)
	for _, t := range g.Triples() {
		if err := qw.WriteQuad(t.Quad()); err != nil {
			return err
		}
	}
	return qw.Close()
}

// objectCounts counts how often each blank node appears as an object.
func objectCounts(g *graph.Graph) map[quad.BNode]int {
	counts := make(map[quad.BNode]int)
	for _, t := range g.Triples() {
		if b, ok := t.Object.(quad.BNode); ok {
			counts[b]++
		}
	}
	return counts
}

// compactor shortens IRIs using a prefix table. The longest matching
// namespace wins.
type compactor struct {
	prefixes map[string]string
}

func (c compactor) compact(iri string) (string, bool) {
	best, bestNS := "", ""
	for prefix, ns := range c.prefixes {
		if ns == "" || !strings.HasPrefix(iri, ns) || len(ns) <= len(bestNS) {
			continue
		}
		local := iri[len(ns):]
		if !isLocalName(local) {
			continue
		}
		best, bestNS = prefix+":"+local, ns
	}
	return best, bestNS != ""
}

// isLocalName is a conservative subset of the Turtle PN_LOCAL production.
func isLocalName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
