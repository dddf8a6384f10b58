package model

// Annotation is either an AnnotationProperty or a Constraint.
type Annotation interface {
	isAnnotation()
}

// AnnotationProperty attaches a value to an element under a named property,
// for example skos:prefLabel = "Person"@en.
type AnnotationProperty struct {
	NameReference IdentifierReference
	Value         Value
	Span          *Span
}

func (*AnnotationProperty) isAnnotation() {}

// Annotated is implemented by every body that can carry annotations.
type Annotated interface {
	AnnotationList() []Annotation
}

// AnnotationOnlyBody is a body whose only content is annotations.
type AnnotationOnlyBody struct {
	Annotations []Annotation
	Span        *Span
}

// AnnotationList returns the annotations; it is safe on a nil body.
func (b *AnnotationOnlyBody) AnnotationList() []Annotation {
	if b == nil {
		return nil
	}
	return b.Annotations
}

// AnnotationProperties returns only the property annotations of a.
func AnnotationProperties(a Annotated) []*AnnotationProperty {
	var out []*AnnotationProperty
	for _, ann := range a.AnnotationList() {
		if p, ok := ann.(*AnnotationProperty); ok {
			out = append(out, p)
		}
	}
	return out
}

// Constraints returns only the constraint annotations of a.
func Constraints(a Annotated) []*Constraint {
	var out []*Constraint
	for _, ann := range a.AnnotationList() {
		if c, ok := ann.(*Constraint); ok {
			out = append(out, c)
		}
	}
	return out
}
