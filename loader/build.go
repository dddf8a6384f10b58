package loader

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sdml/model"
)

func buildDefinition(n *yaml.Node) (model.Definition, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: definition must be a mapping", ErrInvalidDocument)
	}
	var doc definitionDoc
	if err := n.Decode(&doc); err != nil {
		return nil, err
	}
	kind, rawName, err := doc.kind()
	if err != nil {
		return nil, err
	}
	name, err := model.NewIdentifier(rawName)
	if err != nil {
		return nil, err
	}
	anns, err := buildAnnotations(doc.Annotations)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "datatype":
		return buildDatatype(name, &doc, anns)
	case "dimension":
		return buildDimension(name, &doc, anns)
	case "entity":
		body := &model.EntityBody{Annotations: anns}
		if doc.Identity != nil {
			if body.Identity, err = buildMember(doc.Identity); err != nil {
				return nil, fmt.Errorf("identity: %w", err)
			}
		}
		if body.Members, err = buildMembers(doc.Members); err != nil {
			return nil, err
		}
		return &model.EntityDef{Name: name, Body: body}, nil
	case "enum":
		body := &model.EnumBody{Annotations: anns}
		for i := range doc.Variants {
			v, err := buildValueVariant(&doc.Variants[i])
			if err != nil {
				return nil, err
			}
			body.Variants = append(body.Variants, v)
		}
		return &model.EnumDef{Name: name, Body: body}, nil
	case "event":
		body := &model.EventBody{Annotations: anns}
		if doc.Source != nil {
			if body.Source, err = buildSource(doc.Source); err != nil {
				return nil, err
			}
		}
		if body.Members, err = buildMembers(doc.Members); err != nil {
			return nil, err
		}
		return &model.EventDef{Name: name, Body: body}, nil
	case "property":
		member := &memberDoc{Name: rawName}
		if doc.Member != nil {
			member = doc.Member
			member.Name = rawName
		}
		def, err := buildMemberDef(name, member)
		if err != nil {
			return nil, err
		}
		def.Body.Annotations = append(anns, def.Body.Annotations...)
		return &model.PropertyDef{Name: name, Member: def}, nil
	case "rdf":
		return &model.RdfDef{Name: name, Body: &model.AnnotationOnlyBody{Annotations: anns}}, nil
	case "structure":
		members, err := buildMembers(doc.Members)
		if err != nil {
			return nil, err
		}
		return &model.StructureDef{Name: name, Body: &model.StructureBody{Annotations: anns, Members: members}}, nil
	case "class":
		return buildTypeClass(name, &doc, anns)
	case "union":
		body := &model.UnionBody{Annotations: anns}
		for i := range doc.Variants {
			v, err := buildTypeVariant(&doc.Variants[i])
			if err != nil {
				return nil, err
			}
			body.Variants = append(body.Variants, v)
		}
		return &model.UnionDef{Name: name, Body: body}, nil
	}
	return nil, fmt.Errorf("%w: unknown definition kind %q", ErrInvalidDocument, kind)
}

// kind returns the single definition kind key that is set and its name.
func (d *definitionDoc) kind() (string, string, error) {
	candidates := []struct{ kind, name string }{
		{"datatype", d.Datatype},
		{"dimension", d.Dimension},
		{"entity", d.Entity},
		{"enum", d.Enum},
		{"event", d.Event},
		{"property", d.Property},
		{"rdf", d.Rdf},
		{"structure", d.Structure},
		{"class", d.Class},
		{"union", d.Union},
	}
	var kinds []string
	var kind, name string
	for _, c := range candidates {
		if c.name != "" {
			kinds = append(kinds, c.kind)
			kind, name = c.kind, c.name
		}
	}
	switch len(kinds) {
	case 0:
		return "", "", fmt.Errorf("%w: definition has no kind", ErrInvalidDocument)
	case 1:
		return kind, name, nil
	}
	return "", "", fmt.Errorf("%w: definition has several kinds: %s", ErrInvalidDocument, strings.Join(kinds, ", "))
}

func buildDatatype(name model.Identifier, doc *definitionDoc, anns []model.Annotation) (model.Definition, error) {
	if doc.Base == "" {
		return nil, fmt.Errorf("%w: datatype %s has no base", ErrInvalidDocument, name)
	}
	base, err := model.ParseIdentifierReference(doc.Base)
	if err != nil {
		return nil, err
	}
	def := &model.DatatypeDef{
		Name:     name,
		Opaque:   doc.Opaque,
		BaseType: base,
		Body:     &model.AnnotationOnlyBody{Annotations: anns},
	}
	for _, f := range doc.Facets {
		facet, ok := model.ParseFacet(f.Facet)
		if !ok {
			return nil, fmt.Errorf("%w: unknown facet %q", ErrInvalidDocument, f.Facet)
		}
		v, err := decodeSimple(&f.Value)
		if err != nil {
			return nil, fmt.Errorf("facet %s: %w", f.Facet, err)
		}
		def.Restrictions = append(def.Restrictions, model.FacetRestriction{Facet: facet, Value: v, Fixed: f.Fixed})
	}
	return def, nil
}

func buildDimension(name model.Identifier, doc *definitionDoc, anns []model.Annotation) (model.Definition, error) {
	body := &model.DimensionBody{Annotations: anns}
	switch {
	case doc.Source != nil && doc.Identity != nil:
		return nil, fmt.Errorf("%w: dimension %s has both source and identity", ErrInvalidDocument, name)
	case doc.Source != nil:
		src, err := buildSource(doc.Source)
		if err != nil {
			return nil, err
		}
		body.Identity = src
	case doc.Identity != nil:
		m, err := buildMember(doc.Identity)
		if err != nil {
			return nil, fmt.Errorf("identity: %w", err)
		}
		body.Identity = &model.IdentityMember{Member: m}
	}
	for _, p := range doc.Parents {
		parentName, err := model.NewIdentifier(p.Name)
		if err != nil {
			return nil, err
		}
		entity, err := model.ParseIdentifierReference(p.Entity)
		if err != nil {
			return nil, fmt.Errorf("parent %s: %w", p.Name, err)
		}
		pAnns, err := buildAnnotations(p.Annotations)
		if err != nil {
			return nil, err
		}
		body.Parents = append(body.Parents, &model.DimensionParent{
			Name:   parentName,
			Entity: entity,
			Body:   &model.AnnotationOnlyBody{Annotations: pAnns},
		})
	}
	members, err := buildMembers(doc.Members)
	if err != nil {
		return nil, err
	}
	body.Members = members
	return &model.DimensionDef{Name: name, Body: body}, nil
}

func buildTypeClass(name model.Identifier, doc *definitionDoc, anns []model.Annotation) (model.Definition, error) {
	def := &model.TypeClassDef{Name: name, Body: &model.TypeClassBody{Annotations: anns}}
	for _, v := range doc.Vars {
		varName, err := model.NewIdentifier(v.Name)
		if err != nil {
			return nil, err
		}
		tv := &model.TypeVariable{Name: varName}
		for _, r := range v.Restrictions {
			ref, err := model.ParseIdentifierReference(r)
			if err != nil {
				return nil, err
			}
			tv.Restrictions = append(tv.Restrictions, ref)
		}
		def.Variables = append(def.Variables, tv)
	}
	for _, m := range doc.Methods {
		methodName, err := model.NewIdentifier(m.Name)
		if err != nil {
			return nil, err
		}
		mAnns, err := buildAnnotations(m.Annotations)
		if err != nil {
			return nil, err
		}
		def.Body.Methods = append(def.Body.Methods, &model.MethodDef{Name: methodName, Annotations: mAnns})
	}
	return def, nil
}

func buildSource(doc *sourceDoc) (*model.SourceEntity, error) {
	entity, err := model.ParseIdentifierReference(doc.Entity)
	if err != nil {
		return nil, fmt.Errorf("source entity: %w", err)
	}
	src := &model.SourceEntity{Entity: entity}
	for _, w := range doc.With {
		id, err := model.NewIdentifier(w)
		if err != nil {
			return nil, err
		}
		src.With = append(src.With, id)
	}
	return src, nil
}

func buildMembers(docs []memberDoc) ([]model.Member, error) {
	members := make([]model.Member, 0, len(docs))
	for i := range docs {
		m, err := buildMember(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i+1, err)
		}
		members = append(members, m)
	}
	return members, nil
}

func buildMember(doc *memberDoc) (model.Member, error) {
	if doc.Ref != "" {
		ref, err := model.ParseIdentifierReference(doc.Ref)
		if err != nil {
			return nil, err
		}
		return &model.MemberReference{Reference: ref}, nil
	}
	name, err := model.NewIdentifier(doc.Name)
	if err != nil {
		return nil, err
	}
	return buildMemberDef(name, doc)
}

func buildMemberDef(name model.Identifier, doc *memberDoc) (*model.MemberDef, error) {
	target, err := decodeType(&doc.Type)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	card, err := model.ParseCardinality(doc.Cardinality)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	anns, err := buildAnnotations(doc.Annotations)
	if err != nil {
		return nil, err
	}
	def := model.NewMemberDef(name, target)
	def.TargetCardinality = card
	def.Body = &model.AnnotationOnlyBody{Annotations: anns}
	return def, nil
}

func buildValueVariant(n *yaml.Node) (*model.ValueVariant, error) {
	doc, err := variant(n)
	if err != nil {
		return nil, err
	}
	name, err := model.NewIdentifier(doc.Name)
	if err != nil {
		return nil, err
	}
	anns, err := buildAnnotations(doc.Annotations)
	if err != nil {
		return nil, err
	}
	return &model.ValueVariant{Name: name, Value: doc.Value, Body: &model.AnnotationOnlyBody{Annotations: anns}}, nil
}

func buildTypeVariant(n *yaml.Node) (*model.TypeVariant, error) {
	doc, err := variant(n)
	if err != nil {
		return nil, err
	}
	typeName := doc.Type
	if typeName == "" {
		typeName = doc.Name
	}
	ref, err := model.ParseIdentifierReference(typeName)
	if err != nil {
		return nil, err
	}
	v := &model.TypeVariant{Name: ref}
	if doc.Rename != "" {
		if v.Rename, err = model.NewIdentifier(doc.Rename); err != nil {
			return nil, err
		}
	}
	anns, err := buildAnnotations(doc.Annotations)
	if err != nil {
		return nil, err
	}
	v.Body = &model.AnnotationOnlyBody{Annotations: anns}
	return v, nil
}

// variant accepts a bare name or the mapping form.
func variant(n *yaml.Node) (variantDoc, error) {
	var doc variantDoc
	switch n.Kind {
	case yaml.ScalarNode:
		doc.Name = n.Value
	case yaml.MappingNode:
		if err := n.Decode(&doc); err != nil {
			return doc, err
		}
	default:
		return doc, fmt.Errorf("%w: line %d: invalid variant", ErrInvalidDocument, n.Line)
	}
	return doc, nil
}

func buildAnnotations(docs []annotation) ([]model.Annotation, error) {
	var out []model.Annotation
	for i := range docs {
		a, err := buildAnnotation(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func buildAnnotation(doc *annotation) (model.Annotation, error) {
	switch {
	case doc.Property != "" && doc.Constraint != "":
		return nil, fmt.Errorf("%w: annotation is both property and constraint", ErrInvalidDocument)
	case doc.Property != "":
		ref, err := model.ParseIdentifierReference(doc.Property)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(&doc.Value)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", doc.Property, err)
		}
		return &model.AnnotationProperty{NameReference: ref, Value: v}, nil
	case doc.Constraint != "":
		name, err := model.NewIdentifier(doc.Constraint)
		if err != nil {
			return nil, err
		}
		body := &model.InformalConstraint{Value: doc.Informal}
		if doc.Language != "" {
			if body.Language, err = model.NewControlledLanguageTag(doc.Language); err != nil {
				return nil, err
			}
		}
		return &model.Constraint{Name: name, Body: body}, nil
	}
	return nil, fmt.Errorf("%w: annotation needs a property or a constraint", ErrInvalidDocument)
}

func setSpan(d model.Definition, span *model.Span) {
	switch d := d.(type) {
	case *model.DatatypeDef:
		d.Span = span
	case *model.DimensionDef:
		d.Span = span
	case *model.EntityDef:
		d.Span = span
	case *model.EnumDef:
		d.Span = span
	case *model.EventDef:
		d.Span = span
	case *model.PropertyDef:
		d.Span = span
	case *model.RdfDef:
		d.Span = span
	case *model.StructureDef:
		d.Span = span
	case *model.TypeClassDef:
		d.Span = span
	case *model.UnionDef:
		d.Span = span
	}
}
