package generate

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/sdml"
)

// annotations lowers every annotation of a against the current subject, in order.
func (l *lowerer) annotations(a model.Annotated) error {
	if a == nil {
		return nil
	}
	for _, ann := range a.AnnotationList() {
		var err error
		switch ann := ann.(type) {
		case *model.AnnotationProperty:
			err = l.annotationProperty(ann)
		case *model.Constraint:
			err = l.constraint(ann)
		default:
			err = fmt.Errorf("unsupported annotation %T", ann)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) annotationProperty(p *model.AnnotationProperty) error {
	predicate, err := l.resolve(p.NameReference)
	if err != nil {
		return err
	}
	return l.value(l.ctx.Subject(), predicate, p.Value)
}

func (l *lowerer) constraint(c *model.Constraint) error {
	k := l.graph.NewBlankNode()
	l.emit(l.ctx.Subject(), sdml.HasConstraint, k)
	return l.ctx.Within(k, func() error {
		l.emit(k, sdml.SrcLabel, label(c.Name))
		l.sourceSpan(k, c.Span)
		l.emitType(k, sdml.Constraint)

		switch body := c.Body.(type) {
		case *model.InformalConstraint:
			l.emitType(k, sdml.InformalConstraint)
			l.emit(k, rdf.Value, quad.String(body.Value))
			if !body.Language.IsZero() {
				l.emit(k, sdml.ControlledLanguage, quad.String(body.Language.String()))
			}
		case *model.FormalConstraint:
			l.emitType(k, sdml.FormalConstraint)
			for _, def := range body.Environment {
				l.environmentDef(k, def)
			}
			if body.Body != nil {
				l.emit(k, sdml.Sentence, quad.String(body.Body.String()))
			}
		default:
			return fmt.Errorf("constraint %s: unsupported body %T", c.Name, c.Body)
		}
		return nil
	})
}

func (l *lowerer) environmentDef(k quad.Value, def *model.EnvironmentDef) {
	e := l.graph.NewBlankNode()
	l.emit(k, sdml.HasEnvironmentDef, e)
	l.emitType(e, sdml.EnvironmentDef)
	l.emit(e, sdml.SrcLabel, label(def.Name))
	if def.Body != nil {
		l.emit(e, rdf.Value, quad.String(def.Body.String()))
	}
	l.sourceSpan(e, def.Span)
}
