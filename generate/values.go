package generate

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

// value lowers v as the object of subject/predicate. Compound values get a
// fresh blank node and recurse.
func (l *lowerer) value(subject quad.Value, predicate quad.IRI, v model.Value) error {
	p := string(predicate)
	switch v := v.(type) {
	case model.ValueConstructor:
		datatype, err := l.resolve(v.TypeName)
		if err != nil {
			return err
		}
		l.emit(subject, p, quad.TypedString{Value: quad.String(v.Value.LexicalForm()), Type: datatype})
	case model.ReferenceValue:
		target, err := l.resolve(v.Reference)
		if err != nil {
			return err
		}
		l.emit(subject, p, target)
	case model.MappingValue:
		b := l.graph.NewBlankNode()
		l.emit(subject, p, b)
		l.emitType(b, sdml.MapType)
		if err := l.value(b, sdml.DomainValue, v.Domain); err != nil {
			return err
		}
		return l.value(b, sdml.RangeValue, v.Range)
	case model.SequenceOfValues:
		return l.sequence(subject, p, v)
	case model.SimpleValue:
		l.emit(subject, p, literal(v))
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

func (l *lowerer) sequence(subject quad.Value, predicate string, seq model.SequenceOfValues) error {
	s := l.graph.NewBlankNode()
	l.emit(subject, predicate, s)
	l.emitType(s, sdml.Sequence)
	l.collectionSemantics(s, seq.Ordering, seq.Uniqueness)

	if l.opts.SequenceEncoding == List {
		return l.list(s, seq.Members)
	}
	for i, member := range seq.Members {
		if err := l.value(s, quad.IRI(rdf.Member(i+1)), member); err != nil {
			return err
		}
	}
	return nil
}

// list writes members as an rdf:first/rdf:rest chain hung from rdf:value.
func (l *lowerer) list(s quad.Value, members []model.SequenceMember) error {
	if len(members) == 0 {
		l.emit(s, rdf.Value, quad.IRI(rdf.Nil))
		return nil
	}
	cell := l.graph.NewBlankNode()
	l.emit(s, rdf.Value, cell)
	for i, member := range members {
		if err := l.value(cell, rdf.First, member); err != nil {
			return err
		}
		if i == len(members)-1 {
			l.emit(cell, rdf.Rest, quad.IRI(rdf.Nil))
			break
		}
		next := l.graph.NewBlankNode()
		l.emit(cell, rdf.Rest, next)
		cell = next
	}
	return nil
}
