package generate

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/owl"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/rdfs"
	"github.com/c360studio/sdml/vocabulary/sdml"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

// definition lowers one top-level definition under the module subject.
func (l *lowerer) definition(d model.Definition) error {
	subject, err := l.definitionIRI(d.DefinitionName())
	if err != nil {
		return err
	}
	name := d.DefinitionName()
	span := d.DefinitionSpan()

	switch d := d.(type) {
	case *model.DatatypeDef:
		return l.named(subject, sdml.HasDefinition, sdml.Datatype, name, span, func(s quad.IRI) error {
			return l.datatype(s, d)
		})
	case *model.DimensionDef:
		return l.named(subject, sdml.HasDefinition, sdml.Dimension, name, span, func(s quad.IRI) error {
			return l.dimension(s, d)
		})
	case *model.EntityDef:
		return l.named(subject, sdml.HasDefinition, sdml.Entity, name, span, func(quad.IRI) error {
			return l.entity(d)
		})
	case *model.EnumDef:
		return l.named(subject, sdml.HasDefinition, sdml.Enumeration, name, span, func(quad.IRI) error {
			return l.enum(d)
		})
	case *model.EventDef:
		return l.named(subject, sdml.HasDefinition, sdml.Event, name, span, func(s quad.IRI) error {
			return l.event(s, d)
		})
	case *model.PropertyDef:
		return l.named(subject, sdml.HasDefinition, sdml.Property, name, span, func(s quad.IRI) error {
			if d.Member == nil {
				return nil
			}
			l.emitType(s, sdml.Member)
			return l.memberDef(s, d.Member)
		})
	case *model.RdfDef:
		return l.named(subject, sdml.HasDefinition, sdml.Rdf, name, span, func(quad.IRI) error {
			return l.annotations(d.Body)
		})
	case *model.StructureDef:
		return l.named(subject, sdml.HasDefinition, sdml.Structure, name, span, func(quad.IRI) error {
			if d.Body == nil {
				return nil
			}
			if err := l.annotations(d); err != nil {
				return err
			}
			return l.members(d.Name, d.Body.Members)
		})
	case *model.TypeClassDef:
		return l.named(subject, sdml.HasDefinition, sdml.TypeClass, name, span, func(s quad.IRI) error {
			return l.typeClass(s, d)
		})
	case *model.UnionDef:
		return l.named(subject, sdml.HasDefinition, sdml.Union, name, span, func(quad.IRI) error {
			return l.union(d)
		})
	}
	return fmt.Errorf("unsupported definition %T", d)
}

func (l *lowerer) datatype(s quad.IRI, d *model.DatatypeDef) error {
	l.emitType(s, rdfs.Datatype)
	if d.BaseType != nil {
		base, err := l.resolve(d.BaseType)
		if err != nil {
			return err
		}
		l.emit(s, owl.OnDatatype, base)
	}
	if d.Opaque {
		l.emit(s, sdml.IsOpaque, boolLiteral(true))
	}
	for _, r := range d.Restrictions {
		f := l.graph.NewBlankNode()
		l.emit(s, sdml.HasRestriction, f)
		l.emitType(f, sdml.Facet)
		l.emit(f, sdml.FacetName, quad.IRI(xsd.Term(r.Facet.String())))
		if r.Value != nil {
			l.emit(f, rdf.Value, literal(r.Value))
		}
		l.emit(f, sdml.IsFixed, boolLiteral(r.Fixed))
	}
	return l.annotations(d.Body)
}

func (l *lowerer) dimension(s quad.IRI, d *model.DimensionDef) error {
	body := d.Body
	if body == nil {
		return nil
	}
	switch identity := body.Identity.(type) {
	case *model.SourceEntity:
		if err := l.sourceEntity(s, identity); err != nil {
			return err
		}
	case *model.IdentityMember:
		if err := l.member(d.Name, sdml.HasIdentity, identity.Member); err != nil {
			return err
		}
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	for _, parent := range body.Parents {
		subject, err := l.itemIRI(d.Name, parent.Name)
		if err != nil {
			return err
		}
		err = l.named(subject, sdml.HasParent, sdml.DimensionParent, parent.Name, parent.Span, func(p quad.IRI) error {
			target, err := l.resolve(parent.Entity)
			if err != nil {
				return err
			}
			l.emit(p, sdml.TargetEntity, target)
			return l.annotations(parent)
		})
		if err != nil {
			return err
		}
	}
	return l.members(d.Name, body.Members)
}

func (l *lowerer) sourceEntity(s quad.IRI, src *model.SourceEntity) error {
	target, err := l.resolve(src.Entity)
	if err != nil {
		return err
	}
	b := l.graph.NewBlankNode()
	l.emit(s, sdml.HasSourceEntity, b)
	l.emitType(b, sdml.SourceEntity)
	l.emit(b, sdml.TargetEntity, target)
	for _, name := range src.With {
		l.emit(b, sdml.WithMember, label(name))
	}
	l.sourceSpan(b, src.Span)
	return nil
}

func (l *lowerer) entity(d *model.EntityDef) error {
	if d.Body == nil {
		return nil
	}
	if d.Body.Identity != nil {
		if err := l.member(d.Name, sdml.HasIdentity, d.Body.Identity); err != nil {
			return err
		}
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	return l.members(d.Name, d.Body.Members)
}

func (l *lowerer) enum(d *model.EnumDef) error {
	if d.Body == nil {
		return nil
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	for _, v := range d.Body.Variants {
		subject, err := l.itemIRI(d.Name, v.Name)
		if err != nil {
			return err
		}
		err = l.named(subject, sdml.HasValueVariant, sdml.ValueVariant, v.Name, v.Span, func(s quad.IRI) error {
			if v.Value != nil {
				l.emit(s, rdf.Value, literal(model.Unsigned(*v.Value)))
			}
			return l.annotations(v)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) event(s quad.IRI, d *model.EventDef) error {
	if d.Body == nil {
		return nil
	}
	if d.Body.Source != nil {
		if err := l.sourceEntity(s, d.Body.Source); err != nil {
			return err
		}
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	return l.members(d.Name, d.Body.Members)
}

func (l *lowerer) typeClass(s quad.IRI, d *model.TypeClassDef) error {
	for _, v := range d.Variables {
		b := l.graph.NewBlankNode()
		l.emit(s, sdml.HasTypeVariable, b)
		l.emitType(b, sdml.TypeVariable)
		l.emit(b, sdml.SrcLabel, label(v.Name))
		for _, r := range v.Restrictions {
			target, err := l.resolve(r)
			if err != nil {
				return err
			}
			l.emit(b, sdml.TypeRestriction, target)
		}
		l.sourceSpan(b, v.Span)
	}
	if d.Body == nil {
		return nil
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	for _, m := range d.Body.Methods {
		subject, err := l.itemIRI(d.Name, m.Name)
		if err != nil {
			return err
		}
		err = l.named(subject, sdml.HasMethod, sdml.Method, m.Name, m.Span, func(ms quad.IRI) error {
			if m.Body != nil {
				l.emit(ms, sdml.Sentence, quad.String(m.Body.String()))
			}
			return l.annotations(m)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) union(d *model.UnionDef) error {
	if d.Body == nil {
		return nil
	}
	if err := l.annotations(d); err != nil {
		return err
	}
	for _, v := range d.Body.Variants {
		if v.Name == nil {
			return missingReference()
		}
		subject, err := l.itemIRI(d.Name, v.VariantName())
		if err != nil {
			return err
		}
		err = l.named(subject, sdml.HasTypeVariant, sdml.TypeVariant, v.Name, v.Span, func(s quad.IRI) error {
			target, err := l.resolve(v.Name)
			if err != nil {
				return err
			}
			l.emit(s, sdml.HasType, target)
			if !v.Rename.IsZero() {
				l.emit(s, sdml.Rename, label(v.Rename))
			}
			return l.annotations(v)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
