package generate_test

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sdml/generate"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/owl"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/sdml"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

const skosNS = "http://www.w3.org/2004/02/skos/core#"

// annotatedThing lowers an rdf definition Thing carrying annotations.
func annotatedThing(t *testing.T, opts []generate.Option, annotations ...model.Annotation) *graph.Graph {
	t.Helper()
	m := newTestModule(t).AddDefinition(&model.RdfDef{
		Name: id("Thing"),
		Body: &model.AnnotationOnlyBody{Annotations: annotations},
	})
	return lower(t, m, opts...)
}

// noteOf lowers v as the value of the note property on Thing and returns its object.
func noteOf(t *testing.T, v model.Value, opts ...generate.Option) (*graph.Graph, quad.Value) {
	t.Helper()
	g := annotatedThing(t, opts, &model.AnnotationProperty{NameReference: ref(t, "note"), Value: v})
	return g, only(t, g, iri("Thing"), testBase+"note")
}

func typedLit(lexical, datatype string) quad.Value {
	return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(datatype)}
}

func TestSimpleValueLiterals(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		want  quad.Value
	}{
		{name: "plain string", value: model.LanguageString{Value: "Person"}, want: quad.String("Person")},
		{
			name:  "language tagged string",
			value: model.LanguageString{Value: "Personne", Language: model.MustLanguageTag("fr")},
			want:  quad.LangString{Value: "Personne", Lang: "fr"},
		},
		{name: "hex binary", value: model.Binary{0xca, 0xfe, 0x01}, want: typedLit("CAFE01", xsd.HexBinary)},
		{
			name:  "iri with fragment",
			value: model.IRIReference{URI: model.MustURI("http://ex/onto#")},
			want:  typedLit("http://ex/onto#", xsd.AnyURI),
		},
		{name: "boolean", value: model.Boolean(true), want: typedLit("true", xsd.Boolean)},
		{name: "integer", value: model.Integer(-4), want: typedLit("-4", xsd.Integer)},
		{name: "unsigned", value: model.Unsigned(4), want: typedLit("4", xsd.NonNegativeInteger)},
		{name: "double", value: model.Double(2), want: typedLit("2.0", xsd.Double)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := noteOf(t, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompoundValues(t *testing.T) {
	tests := []struct {
		name  string
		value model.Value
		check func(t *testing.T, g *graph.Graph, object quad.Value)
	}{
		{
			name:  "value constructor takes the resolved datatype",
			value: model.ValueConstructor{TypeName: ref(t, "xsd:date"), Value: model.LanguageString{Value: "2024-01-01"}},
			check: func(t *testing.T, _ *graph.Graph, object quad.Value) {
				assert.Equal(t, typedLit("2024-01-01", xsd.Namespace+"date"), object)
			},
		},
		{
			name:  "value constructor with local datatype",
			value: model.ValueConstructor{TypeName: ref(t, "Code"), Value: model.Unsigned(7)},
			check: func(t *testing.T, _ *graph.Graph, object quad.Value) {
				assert.Equal(t, typedLit("7", testBase+"Code"), object)
			},
		},
		{
			name:  "reference",
			value: model.ReferenceValue{Reference: ref(t, "skos:Concept")},
			check: func(t *testing.T, _ *graph.Graph, object quad.Value) {
				assert.Equal(t, quad.IRI(skosNS+"Concept"), object)
			},
		},
		{
			name:  "mapping",
			value: model.MappingValue{Domain: model.LanguageString{Value: "en"}, Range: model.Unsigned(1)},
			check: func(t *testing.T, g *graph.Graph, object quad.Value) {
				require.IsType(t, quad.BNode(""), object)
				assert.Len(t, g.Match(object, nil, nil), 3)
				assert.True(t, g.Contains(object, rdf.Type, quad.IRI(sdml.MapType)))
				assert.Equal(t, quad.String("en"), only(t, g, object, sdml.DomainValue))
				assert.Equal(t, typedLit("1", xsd.NonNegativeInteger), only(t, g, object, sdml.RangeValue))
			},
		},
		{
			name: "nested mapping",
			value: model.MappingValue{
				Domain: model.Integer(1),
				Range:  model.MappingValue{Domain: model.Boolean(false), Range: model.ReferenceValue{Reference: ref(t, "Other")}},
			},
			check: func(t *testing.T, g *graph.Graph, object quad.Value) {
				assert.Equal(t, typedLit("1", xsd.Integer), only(t, g, object, sdml.DomainValue))
				inner := only(t, g, object, sdml.RangeValue)
				assert.True(t, g.Contains(inner, rdf.Type, quad.IRI(sdml.MapType)))
				assert.Equal(t, typedLit("false", xsd.Boolean), only(t, g, inner, sdml.DomainValue))
				assert.Equal(t, iri("Other"), only(t, g, inner, sdml.RangeValue))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, object := noteOf(t, tt.value)
			tt.check(t, g, object)
		})
	}
}

func TestSequencePositionalEncoding(t *testing.T) {
	tests := []struct {
		name       string
		seq        model.SequenceOfValues
		wantExtras map[string]quad.Value
	}{
		{
			name: "empty",
			seq:  model.SequenceOfValues{},
		},
		{
			name: "unflagged",
			seq: model.SequenceOfValues{Members: []model.SequenceMember{
				model.LanguageString{Value: "a"},
				model.LanguageString{Value: "b"},
				model.LanguageString{Value: "c"},
			}},
		},
		{
			name: "ordered",
			seq: model.SequenceOfValues{Ordering: model.Ordered, Members: []model.SequenceMember{
				model.Integer(1),
			}},
			wantExtras: map[string]quad.Value{sdml.ElementOrdering: quad.IRI(sdml.Ordered)},
		},
		{
			name: "unordered nonunique",
			seq: model.SequenceOfValues{Ordering: model.Unordered, Uniqueness: model.Nonunique, Members: []model.SequenceMember{
				model.Integer(1),
				model.Integer(1),
			}},
			wantExtras: map[string]quad.Value{
				sdml.ElementOrdering:   quad.IRI(sdml.Unordered),
				sdml.ElementUniqueness: quad.IRI(sdml.Nonunique),
			},
		},
		{
			name: "unique only",
			seq: model.SequenceOfValues{Uniqueness: model.Unique, Members: []model.SequenceMember{
				model.Boolean(true),
			}},
			wantExtras: map[string]quad.Value{sdml.ElementUniqueness: quad.IRI(sdml.Unique)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, s := noteOf(t, tt.seq)
			n := len(tt.seq.Members)

			assert.True(t, g.Contains(s, rdf.Type, quad.IRI(sdml.Sequence)))
			assert.Len(t, g.Match(s, nil, nil), 1+n+len(tt.wantExtras))
			for i, member := range tt.seq.Members {
				assert.Equal(t, literalOf(t, member), only(t, g, s, rdf.Member(i+1)))
			}
			assert.Empty(t, g.Objects(s, quad.IRI(rdf.Member(n+1))))
			assert.Empty(t, g.Objects(s, rdf.First))
			for p, o := range tt.wantExtras {
				assert.True(t, g.Contains(s, quad.IRI(p), o), "missing %s", p)
			}
		})
	}
}

// literalOf lowers a simple sequence member on its own for comparison.
func literalOf(t *testing.T, v model.SequenceMember) quad.Value {
	t.Helper()
	_, got := noteOf(t, v)
	return got
}

func TestSequenceCompoundMembers(t *testing.T) {
	seq := model.SequenceOfValues{Members: []model.SequenceMember{
		model.ValueConstructor{TypeName: ref(t, "xsd:date"), Value: model.LanguageString{Value: "2024-01-01"}},
		model.ReferenceValue{Reference: ref(t, "Other")},
		model.MappingValue{Domain: model.Integer(1), Range: model.Boolean(true)},
	}}
	g, s := noteOf(t, seq)

	assert.Equal(t, typedLit("2024-01-01", xsd.Namespace+"date"), only(t, g, s, rdf.Member(1)))
	assert.Equal(t, iri("Other"), only(t, g, s, rdf.Member(2)))
	mapping := only(t, g, s, rdf.Member(3))
	assert.True(t, g.Contains(mapping, rdf.Type, quad.IRI(sdml.MapType)))
}

func TestSequenceListEncoding(t *testing.T) {
	tests := []struct {
		name    string
		members []model.SequenceMember
	}{
		{name: "empty"},
		{name: "single", members: []model.SequenceMember{model.Integer(1)}},
		{name: "several", members: []model.SequenceMember{model.Integer(1), model.Integer(2), model.Integer(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := model.SequenceOfValues{Ordering: model.Ordered, Members: tt.members}
			g, s := noteOf(t, seq, generate.WithSequenceEncoding(generate.List))

			assert.True(t, g.Contains(s, rdf.Type, quad.IRI(sdml.Sequence)))
			assert.True(t, g.Contains(s, sdml.ElementOrdering, quad.IRI(sdml.Ordered)))
			assert.Empty(t, g.Objects(s, quad.IRI(rdf.Member(1))))

			cell := only(t, g, s, rdf.Value)
			var got []quad.Value
			for cell != quad.IRI(rdf.Nil) {
				got = append(got, only(t, g, cell, rdf.First))
				cell = only(t, g, cell, rdf.Rest)
				require.LessOrEqual(t, len(got), len(tt.members), "list does not terminate")
			}
			require.Len(t, got, len(tt.members))
			for i, v := range got {
				assert.Equal(t, typedLit(tt.members[i].(model.Integer).LexicalForm(), xsd.Integer), v)
			}
		})
	}
}

func TestAnnotationPropertyResolvesName(t *testing.T) {
	g := annotatedThing(t, nil,
		&model.AnnotationProperty{NameReference: ref(t, "skos:prefLabel"), Value: model.LanguageString{Value: "Thing", Language: model.MustLanguageTag("en")}},
		&model.AnnotationProperty{NameReference: ref(t, "skos:altLabel"), Value: model.LanguageString{Value: "Item"}},
	)

	thing := iri("Thing")
	assert.Equal(t, quad.LangString{Value: "Thing", Lang: "en"}, only(t, g, thing, skosNS+"prefLabel"))
	assert.Equal(t, quad.String("Item"), only(t, g, thing, skosNS+"altLabel"))
}

func TestConstraintLowering(t *testing.T) {
	english, err := model.NewControlledLanguageTag("en")
	require.NoError(t, err)
	formal := &model.FormalConstraint{
		Environment: []*model.EnvironmentDef{{
			Name: id("limit"),
			Body: &model.ValueDef{Value: model.PredicateSimpleValue{Value: model.Unsigned(0)}},
		}},
		Body: &model.Equation{Left: model.ReservedSelf{}, Right: &model.IdentifierTerm{Reference: ref(t, "limit")}},
	}

	tests := []struct {
		name  string
		body  model.ConstraintBody
		class string
		want  map[string]quad.Value
		none  []string
	}{
		{
			name:  "informal",
			body:  &model.InformalConstraint{Value: "must be positive"},
			class: sdml.InformalConstraint,
			want:  map[string]quad.Value{rdf.Value: quad.String("must be positive")},
			none:  []string{sdml.ControlledLanguage, sdml.Sentence},
		},
		{
			name:  "informal with language",
			body:  &model.InformalConstraint{Value: "must be positive", Language: english},
			class: sdml.InformalConstraint,
			want: map[string]quad.Value{
				rdf.Value:               quad.String("must be positive"),
				sdml.ControlledLanguage: quad.String("en"),
			},
			none: []string{sdml.Sentence, sdml.HasEnvironmentDef},
		},
		{
			name:  "formal",
			body:  formal,
			class: sdml.FormalConstraint,
			want:  map[string]quad.Value{sdml.Sentence: quad.String("self = limit")},
			none:  []string{rdf.Value, sdml.ControlledLanguage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := annotatedThing(t, nil, &model.Constraint{Name: id("positive"), Body: tt.body})

			k := only(t, g, iri("Thing"), sdml.HasConstraint)
			assert.True(t, g.Contains(k, rdf.Type, quad.IRI(sdml.Constraint)))
			assert.True(t, g.Contains(k, rdf.Type, quad.IRI(tt.class)))
			assert.Equal(t, quad.String("positive"), only(t, g, k, sdml.SrcLabel))
			for p, o := range tt.want {
				assert.Equal(t, o, only(t, g, k, p), p)
			}
			for _, p := range tt.none {
				assert.Empty(t, g.Objects(k, quad.IRI(p)), p)
			}
		})
	}
}

func TestFormalConstraintEnvironment(t *testing.T) {
	formal := &model.FormalConstraint{
		Environment: []*model.EnvironmentDef{
			{Name: id("low"), Body: &model.ValueDef{Value: model.PredicateSimpleValue{Value: model.Unsigned(0)}}},
			{Name: id("high"), Body: &model.ValueDef{Value: model.PredicateSimpleValue{Value: model.Unsigned(9)}}},
		},
		Body: &model.Equation{Left: model.ReservedSelf{}, Right: &model.IdentifierTerm{Reference: ref(t, "low")}},
	}
	g := annotatedThing(t, nil, &model.Constraint{Name: id("bounded"), Body: formal})

	k := only(t, g, iri("Thing"), sdml.HasConstraint)
	defs := g.Objects(k, sdml.HasEnvironmentDef)
	require.Len(t, defs, 2)
	for i, want := range []struct{ name, body string }{{"low", ":= 0"}, {"high", ":= 9"}} {
		assert.True(t, g.Contains(defs[i], rdf.Type, quad.IRI(sdml.EnvironmentDef)))
		assert.Equal(t, quad.String(want.name), only(t, g, defs[i], sdml.SrcLabel))
		assert.Equal(t, quad.String(want.body), only(t, g, defs[i], rdf.Value))
	}
}

func TestMissingReferencesAreErrors(t *testing.T) {
	tests := []struct {
		name       string
		definition func(t *testing.T) model.Definition
	}{
		{
			name: "reference value",
			definition: func(t *testing.T) model.Definition {
				return &model.RdfDef{Name: id("Thing"), Body: &model.AnnotationOnlyBody{Annotations: []model.Annotation{
					&model.AnnotationProperty{NameReference: ref(t, "note"), Value: model.ReferenceValue{}},
				}}}
			},
		},
		{
			name: "annotation property name",
			definition: func(t *testing.T) model.Definition {
				return &model.RdfDef{Name: id("Thing"), Body: &model.AnnotationOnlyBody{Annotations: []model.Annotation{
					&model.AnnotationProperty{Value: model.Boolean(true)},
				}}}
			},
		},
		{
			name: "value constructor type",
			definition: func(t *testing.T) model.Definition {
				return &model.RdfDef{Name: id("Thing"), Body: &model.AnnotationOnlyBody{Annotations: []model.Annotation{
					&model.AnnotationProperty{NameReference: ref(t, "note"), Value: model.ValueConstructor{Value: model.Integer(1)}},
				}}}
			},
		},
		{
			name: "named member type",
			definition: func(t *testing.T) model.Definition {
				return &model.StructureDef{Name: id("S"), Body: &model.StructureBody{
					Members: []model.Member{model.NewMemberDef(id("x"), model.NamedType{})},
				}}
			},
		},
		{
			name: "member reference",
			definition: func(t *testing.T) model.Definition {
				return &model.StructureDef{Name: id("S"), Body: &model.StructureBody{
					Members: []model.Member{&model.MemberReference{}},
				}}
			},
		},
		{
			name: "dimension parent entity",
			definition: func(t *testing.T) model.Definition {
				return &model.DimensionDef{Name: id("Region"), Body: &model.DimensionBody{
					Parents: []*model.DimensionParent{{Name: id("country")}},
				}}
			},
		},
		{
			name: "union variant",
			definition: func(t *testing.T) model.Definition {
				return &model.UnionDef{Name: id("U"), Body: &model.UnionBody{Variants: []*model.TypeVariant{{}}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(t).AddDefinition(tt.definition(t))

			var (
				g   *graph.Graph
				err error
			)
			require.NotPanics(t, func() { g, err = generate.ToGraph(m, testCache(t)) })
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, generate.ErrURIParse)
			assert.Contains(t, err.Error(), "missing identifier reference")
		})
	}
}

func TestFragmentBaseModule(t *testing.T) {
	const base = "http://example.com/onto#"
	m := model.NewModule(id("onto"), mustURL(t, base)).
		AddImport(&model.ModuleImport{Name: id("xsd")}).
		AddDefinition(&model.DatatypeDef{Name: id("Name"), BaseType: ref(t, "xsd:string")}).
		AddDefinition(&model.EntityDef{Name: id("Person"), Body: &model.EntityBody{
			Identity: model.NewMemberDef(id("id"), model.NamedType{Reference: ref(t, "Name")}),
		}})
	g := lower(t, m)

	module := quad.IRI(base)
	assert.True(t, g.Contains(module, rdf.Type, quad.IRI(sdml.Module)))
	assert.Equal(t, []quad.Value{quad.IRI(xsd.Namespace)}, g.Objects(module, owl.Imports))
	assert.Equal(t, []quad.Value{quad.IRI(base + "Name"), quad.IRI(base + "Person")}, g.Objects(module, sdml.HasDefinition))
	assert.True(t, g.Contains(quad.IRI(base+"Name"), owl.OnDatatype, quad.IRI(xsd.String)))
	assert.True(t, g.Contains(quad.IRI(base+"Person"), sdml.HasIdentity, quad.IRI(base+"Person__id")))
	assert.True(t, g.Contains(quad.IRI(base+"Person__id"), sdml.HasType, quad.IRI(base+"Name")))

	prefixes := g.Prefixes()
	assert.Equal(t, base, prefixes["onto"])
	assert.Equal(t, xsd.Namespace, prefixes["xsd"])
}
