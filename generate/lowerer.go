package generate

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

// lowerer walks one module and writes its triples to a graph it exclusively owns.
type lowerer struct {
	ctx   *Context
	cache cache.ModuleCache
	graph *graph.Graph
	opts  Options
}

func newLowerer(m *model.Module, c cache.ModuleCache, g *graph.Graph, opts Options) *lowerer {
	return &lowerer{ctx: NewContext(m), cache: c, graph: g, opts: opts}
}

func (l *lowerer) emit(subject quad.Value, predicate string, object quad.Value) {
	l.graph.Insert(subject, quad.IRI(predicate), object)
}

func (l *lowerer) emitType(subject quad.Value, class string) {
	l.emit(subject, rdf.Type, quad.IRI(class))
}

func (l *lowerer) resolve(ref model.IdentifierReference) (quad.IRI, error) {
	return Resolve(ref, l.ctx.Module(), l.cache)
}

// definitionIRI is the subject of a top-level definition: base + name.
func (l *lowerer) definitionIRI(name model.Identifier) (quad.IRI, error) {
	return l.resolve(name)
}

// itemIRI is the subject of an item nested in a definition: base + parent + "__" + item.
func (l *lowerer) itemIRI(parent, item model.Identifier) (quad.IRI, error) {
	m := l.ctx.Module()
	if m.BaseURI == nil {
		return "", &MissingBaseURIError{Module: m.Name}
	}
	return joinName(m.BaseURI, parent.String()+"__"+item.String())
}

// named links subject from the current subject under relation, then makes it
// current while emitting its type, label and span and running body.
func (l *lowerer) named(subject quad.IRI, relation, class string, name fmt.Stringer, span *model.Span, body func(quad.IRI) error) error {
	if parent := l.ctx.Subject(); parent != nil {
		l.emit(parent, relation, subject)
	}
	return l.ctx.Within(subject, func() error {
		l.emitType(subject, class)
		l.emit(subject, sdml.SrcLabel, quad.String(name.String()))
		l.sourceSpan(subject, span)
		if body == nil {
			return nil
		}
		return body(subject)
	})
}

// sourceSpan emits the byte span of an element when enabled.
func (l *lowerer) sourceSpan(subject quad.Value, span *model.Span) {
	if !l.opts.IncludeSourceLocation || span == nil {
		return
	}
	b := l.graph.NewBlankNode()
	l.emit(subject, sdml.HasSourceLocation, b)
	l.emit(b, sdml.StartByte, countLiteral(uint64(span.Start)))
	l.emit(b, sdml.EndByte, countLiteral(uint64(span.End)))
}

// collectionSemantics emits element ordering and uniqueness when stated.
func (l *lowerer) collectionSemantics(subject quad.Value, ordering model.Ordering, uniqueness model.Uniqueness) {
	switch ordering {
	case model.Ordered:
		l.emit(subject, sdml.ElementOrdering, quad.IRI(sdml.Ordered))
	case model.Unordered:
		l.emit(subject, sdml.ElementOrdering, quad.IRI(sdml.Unordered))
	}
	switch uniqueness {
	case model.Unique:
		l.emit(subject, sdml.ElementUniqueness, quad.IRI(sdml.Unique))
	case model.Nonunique:
		l.emit(subject, sdml.ElementUniqueness, quad.IRI(sdml.Nonunique))
	}
}

// cardinality emits a cardinality node for owner unless c is the default.
func (l *lowerer) cardinality(owner quad.Value, c model.Cardinality) {
	if c.IsDefault() {
		return
	}
	b := l.graph.NewBlankNode()
	l.emit(owner, sdml.HasCardinality, b)
	l.emitType(b, sdml.Cardinality)
	l.collectionSemantics(b, c.Ordering, c.Uniqueness)
	l.emit(b, sdml.MinOccurs, countLiteral(c.MinOccurs()))
	if max, ok := c.MaxOccurs(); ok {
		l.emit(b, sdml.MaxOccurs, countLiteral(max))
	}
}
