package generate

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

// member lowers m as an item of the definition named owner, linked from the
// current subject by relation.
func (l *lowerer) member(owner model.Identifier, relation string, m model.Member) error {
	if ref, ok := m.(*model.MemberReference); ok && ref.Reference == nil {
		return missingReference()
	}
	subject, err := l.itemIRI(owner, m.MemberName())
	if err != nil {
		return err
	}
	switch m := m.(type) {
	case *model.MemberReference:
		return l.named(subject, relation, sdml.PropertyRef, m.MemberName(), m.Span, func(s quad.IRI) error {
			target, err := l.resolve(m.Reference)
			if err != nil {
				return err
			}
			l.emit(s, sdml.IdentifierReference, target)
			return nil
		})
	case *model.MemberDef:
		return l.named(subject, relation, sdml.Member, m.Name, m.Span, func(s quad.IRI) error {
			return l.memberDef(s, m)
		})
	}
	return fmt.Errorf("unsupported member %T", m)
}

func (l *lowerer) members(owner model.Identifier, members []model.Member) error {
	for _, m := range members {
		if err := l.member(owner, sdml.HasMember, m); err != nil {
			return err
		}
	}
	return nil
}

// memberDef lowers the cardinality, target type and annotations of m onto subject.
func (l *lowerer) memberDef(subject quad.IRI, m *model.MemberDef) error {
	l.cardinality(subject, m.TargetCardinality)
	if err := l.targetType(subject, sdml.HasType, m.TargetType); err != nil {
		return err
	}
	return l.annotations(m.Body)
}

func (l *lowerer) targetType(subject quad.Value, predicate string, t model.TypeReference) error {
	switch t := t.(type) {
	case nil, model.UnknownType:
		l.emit(subject, predicate, quad.IRI(sdml.Unknown))
	case model.NamedType:
		target, err := l.resolve(t.Reference)
		if err != nil {
			return err
		}
		l.emit(subject, predicate, target)
	case model.MappingType:
		b := l.graph.NewBlankNode()
		l.emit(subject, predicate, b)
		l.emitType(b, sdml.MapType)
		if err := l.targetType(b, sdml.DomainType, t.Domain); err != nil {
			return err
		}
		return l.targetType(b, sdml.RangeType, t.Range)
	default:
		return fmt.Errorf("unsupported type reference %T", t)
	}
	return nil
}
