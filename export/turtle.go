package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/vocabulary/rdf"
)

const (
	ansiReset   = "\x1b[0m"
	ansiBlue    = "\x1b[34m"
	ansiGreen   = "\x1b[32m"
	ansiMagenta = "\x1b[35m"
	ansiBold    = "\x1b[1m"
)

// TurtleWriter writes a graph in Turtle. Blank nodes used exactly once as an
// object are nested inline as [ ... ] property lists.
type TurtleWriter struct {
	g       *graph.Graph
	names   compactor
	color   bool
	inline  map[quad.BNode]bool
	written map[quad.BNode]bool
	sb      strings.Builder
}

// NewTurtleWriter creates a Turtle writer for g.
func NewTurtleWriter(g *graph.Graph, color bool) *TurtleWriter {
	w := &TurtleWriter{
		g:       g,
		names:   compactor{prefixes: g.Prefixes()},
		color:   color,
		inline:  make(map[quad.BNode]bool),
		written: make(map[quad.BNode]bool),
	}
	for b, n := range objectCounts(g) {
		if n == 1 && len(g.Match(b, nil, nil)) > 0 {
			w.inline[b] = true
		}
	}
	return w
}

func writeTurtle(out io.Writer, g *graph.Graph, color bool) error {
	w := NewTurtleWriter(g, color)
	w.WritePrefixes()
	w.WriteSubjects()
	_, err := io.WriteString(out, w.String())
	return err
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	prefixes := w.names.prefixes
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("%s %s: <%s> .\n", w.paint(ansiBold, "@prefix"), prefix, prefixes[prefix]))
	}
	if len(keys) > 0 {
		w.sb.WriteString("\n")
	}
}

// WriteSubjects writes one block per subject in first-seen order.
func (w *TurtleWriter) WriteSubjects() {
	for _, s := range w.g.Subjects() {
		if b, ok := s.(quad.BNode); ok && w.inline[b] {
			continue
		}
		w.sb.WriteString(w.term(s))
		w.sb.WriteString("\n")
		w.properties(s, 1)
		w.sb.WriteString(" .\n\n")
	}
}

// properties writes the predicate-object list of s, rdf:type first.
func (w *TurtleWriter) properties(s quad.Value, depth int) {
	if b, ok := s.(quad.BNode); ok {
		w.written[b] = true
	}
	indent := strings.Repeat("    ", depth)

	var order []quad.IRI
	objects := make(map[quad.IRI][]quad.Value)
	for _, t := range w.g.Match(s, nil, nil) {
		if _, seen := objects[t.Predicate]; !seen {
			order = append(order, t.Predicate)
		}
		objects[t.Predicate] = append(objects[t.Predicate], t.Object)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i] == rdf.Type && order[j] != rdf.Type
	})

	for i, p := range order {
		if i > 0 {
			w.sb.WriteString(" ;\n")
		}
		w.sb.WriteString(indent)
		if p == rdf.Type {
			w.sb.WriteString(w.paint(ansiBold, "a"))
		} else {
			w.sb.WriteString(w.term(p))
		}
		w.sb.WriteString(" ")
		for j, o := range objects[p] {
			if j > 0 {
				w.sb.WriteString(", ")
			}
			w.object(o, depth)
		}
	}
}

func (w *TurtleWriter) object(o quad.Value, depth int) {
	b, ok := o.(quad.BNode)
	if !ok || !w.inline[b] || w.written[b] {
		w.sb.WriteString(w.term(o))
		return
	}
	w.sb.WriteString("[\n")
	w.properties(b, depth+1)
	w.sb.WriteString("\n" + strings.Repeat("    ", depth) + "]")
}

func (w *TurtleWriter) term(v quad.Value) string {
	switch v := v.(type) {
	case quad.IRI:
		if name, ok := w.names.compact(string(v)); ok {
			return w.paint(ansiBlue, name)
		}
		return w.paint(ansiBlue, "<"+string(v)+">")
	case quad.BNode:
		return w.paint(ansiMagenta, "_:"+string(v))
	case quad.String:
		return w.paint(ansiGreen, `"`+escapeString(string(v))+`"`)
	case quad.LangString:
		return w.paint(ansiGreen, `"`+escapeString(string(v.Value))+`"@`+v.Lang)
	case quad.TypedString:
		datatype := "<" + string(v.Type) + ">"
		if name, ok := w.names.compact(string(v.Type)); ok {
			datatype = name
		}
		return w.paint(ansiGreen, `"`+escapeString(string(v.Value))+`"^^`) + w.paint(ansiBlue, datatype)
	}
	return fmt.Sprintf("%q", v.String())
}

func (w *TurtleWriter) paint(code, s string) string {
	if !w.color {
		return s
	}
	return code + s + ansiReset
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}
