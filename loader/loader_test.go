package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sdml/cache"
	"github.com/c360studio/sdml/loader"
	"github.com/c360studio/sdml/model"
)

func id(s string) model.Identifier { return model.MustIdentifier(s) }

func TestLoadFilePeople(t *testing.T) {
	m, err := loader.New(nil).LoadFile(filepath.Join("testdata", "modules", "people.yaml"))
	require.NoError(t, err)

	assert.Equal(t, id("people"), m.Name)
	assert.Equal(t, "http://example.com/people#", m.BaseURI.String())
	assert.Equal(t, "2024-06", m.VersionInfo)
	assert.Equal(t, "http://example.com/people/v1", m.VersionURI.String())

	imported := m.ImportedModules()
	require.Len(t, imported, 3)
	assert.Equal(t, id("xsd"), imported[0].Name)
	assert.Equal(t, id("skos"), imported[1].Name)
	assert.Equal(t, "http://www.w3.org/2004/02/skos/core", imported[1].VersionURI.String())
	assert.Equal(t, id("dc"), imported[2].Name)

	props := model.AnnotationProperties(m)
	require.Len(t, props, 1)
	assert.Equal(t, "skos:prefLabel", props[0].NameReference.String())
	label, ok := props[0].Value.(model.LanguageString)
	require.True(t, ok)
	assert.Equal(t, "People", label.Value)
	assert.Equal(t, "en", label.Language.String())

	require.Len(t, m.Body.Definitions, 4)
	for _, d := range m.Body.Definitions {
		require.NotNil(t, d.DefinitionSpan(), d.DefinitionName().String())
		assert.Positive(t, d.DefinitionSpan().Len())
	}
}

func TestLoadFileDefinitions(t *testing.T) {
	m, err := loader.New(nil).LoadFile(filepath.Join("testdata", "modules", "people.yaml"))
	require.NoError(t, err)

	d, ok := m.Definition(id("Name"))
	require.True(t, ok)
	datatype := d.(*model.DatatypeDef)
	assert.Equal(t, "xsd:string", datatype.BaseType.String())
	require.Len(t, datatype.Restrictions, 1)
	assert.Equal(t, model.FacetMaxLength, datatype.Restrictions[0].Facet)
	assert.Equal(t, model.Unsigned(64), datatype.Restrictions[0].Value)
	assert.True(t, datatype.Restrictions[0].Fixed)

	d, ok = m.Definition(id("Status"))
	require.True(t, ok)
	enum := d.(*model.EnumDef)
	require.Len(t, enum.Body.Variants, 2)
	assert.Nil(t, enum.Body.Variants[0].Value)
	require.NotNil(t, enum.Body.Variants[1].Value)
	assert.Equal(t, uint32(2), *enum.Body.Variants[1].Value)

	d, ok = m.Definition(id("Person"))
	require.True(t, ok)
	person := d.(*model.EntityDef)
	assert.Equal(t, id("id"), person.Body.Identity.MemberName())
	require.Len(t, person.Body.Members, 4)

	age := person.Body.Members[1].(*model.MemberDef)
	assert.Equal(t, "{0..1}", age.TargetCardinality.String())
	assert.Equal(t, model.NamedType{Reference: model.MustReference("xsd:integer")}, age.TargetType)

	tags := person.Body.Members[2].(*model.MemberDef)
	assert.Equal(t, "{unordered unique 0..}", tags.TargetCardinality.String())

	email, ok := person.Body.Members[3].(*model.MemberReference)
	require.True(t, ok)
	assert.Equal(t, id("email"), email.MemberName())

	constraints := model.Constraints(person)
	require.Len(t, constraints, 1)
	informal := constraints[0].Body.(*model.InformalConstraint)
	assert.Equal(t, "en", informal.Language.String())

	d, ok = m.Definition(id("email"))
	require.True(t, ok)
	property := d.(*model.PropertyDef)
	assert.Equal(t, id("email"), property.Member.Name)
}

func TestParseValues(t *testing.T) {
	doc := `
module: values
annotations:
  - {property: a, value: true}
  - {property: b, value: -3}
  - {property: c, value: 3}
  - {property: d, value: 1.5}
  - {property: e, value: !decimal "10.25"}
  - {property: f, value: !iri "http://example.com/x"}
  - {property: g, value: !hex "0aff"}
  - {property: h, value: !ref "skos:Concept"}
  - {property: i, value: {type: "xsd:date", value: "2024-01-01"}}
  - {property: j, value: {domain: 1, range: [x, y]}}
  - {property: k, value: {ordering: ordered, uniqueness: unique, members: [1, 2]}}
`
	m, err := loader.Parse([]byte(doc))
	require.NoError(t, err)
	props := model.AnnotationProperties(m)
	require.Len(t, props, 11)

	decimal, err := model.NewDecimal("10.25")
	require.NoError(t, err)
	iri, err := model.NewIRIReference("http://example.com/x")
	require.NoError(t, err)

	assert.Equal(t, model.Boolean(true), props[0].Value)
	assert.Equal(t, model.Integer(-3), props[1].Value)
	assert.Equal(t, model.Unsigned(3), props[2].Value)
	assert.Equal(t, model.Double(1.5), props[3].Value)
	assert.Equal(t, decimal, props[4].Value)
	assert.Equal(t, iri.String(), props[5].Value.(model.IRIReference).String())
	assert.Equal(t, model.Binary{0x0a, 0xff}, props[6].Value)
	assert.Equal(t, model.ReferenceValue{Reference: model.MustReference("skos:Concept")}, props[7].Value)
	assert.Equal(t, model.ValueConstructor{
		TypeName: model.MustReference("xsd:date"),
		Value:    model.LanguageString{Value: "2024-01-01"},
	}, props[8].Value)
	assert.Equal(t, model.MappingValue{
		Domain: model.Unsigned(1),
		Range: model.SequenceOfValues{Members: []model.SequenceMember{
			model.LanguageString{Value: "x"}, model.LanguageString{Value: "y"},
		}},
	}, props[9].Value)
	assert.Equal(t, model.SequenceOfValues{
		Ordering:   model.Ordered,
		Uniqueness: model.Unique,
		Members:    []model.SequenceMember{model.Unsigned(1), model.Unsigned(2)},
	}, props[10].Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "module: [unclosed"},
		{name: "missing module", doc: "base: http://x/"},
		{name: "no kind", doc: "module: m\ndefinitions:\n  - members: []\n"},
		{name: "two kinds", doc: "module: m\ndefinitions:\n  - {entity: A, structure: A}\n"},
		{name: "datatype without base", doc: "module: m\ndefinitions:\n  - datatype: D\n"},
		{name: "unknown facet", doc: "module: m\ndefinitions:\n  - {datatype: D, base: xsd:string, facets: [{facet: size, value: 1}]}\n"},
		{name: "nested sequence", doc: "module: m\nannotations:\n  - {property: p, value: [[1]]}\n"},
		{name: "null value", doc: "module: m\nannotations:\n  - {property: p, value: null}\n"},
		{name: "empty annotation", doc: "module: m\nannotations:\n  - {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, loader.ErrInvalidDocument)
		})
	}
}

func TestParseRejectsInvalidNames(t *testing.T) {
	_, err := loader.Parse([]byte("module: 9lives\n"))
	assert.ErrorIs(t, err, model.ErrInvalidIdentifier)

	_, err = loader.Parse([]byte("module: m\ndefinitions:\n  - {entity: A, members: [{name: x, cardinality: \"3..1\"}]}\n"))
	assert.ErrorIs(t, err, model.ErrInvalidCardinality)
}

func TestDiscover(t *testing.T) {
	files, err := loader.Discover([]string{"testdata/modules/**/*.yaml", "testdata/modules/people.yaml"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "events.yaml", filepath.Base(files[0]))
	assert.Equal(t, "people.yaml", filepath.Base(files[1]))

	_, err = loader.Discover([]string{"testdata/missing.yaml"})
	assert.Error(t, err)
}

func TestLoadInto(t *testing.T) {
	store := cache.NewStore()
	names, err := loader.New(nil).LoadInto(store, []string{"testdata/modules/**/*.yaml"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []model.Identifier{id("events"), id("people")}, names)
	assert.Equal(t, 2, store.Len())

	events, ok := store.Get(id("events"))
	require.True(t, ok)
	assert.Empty(t, store.MissingImports(events))
}

func TestLoadIntoRejectsDuplicateModules(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("module: dup\n"), 0o644))
	}

	_, err := loader.New(nil).LoadInto(cache.NewStore(), []string{filepath.Join(dir, "*.yaml")})
	assert.ErrorIs(t, err, loader.ErrInvalidDocument)
}

func TestParseSpansCountBytes(t *testing.T) {
	doc := "module: spans\ndefinitions: [{rdf: Größe}, {rdf: Zählung}, {rdf: Last}]\n"
	m, err := loader.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, m.Body.Definitions, 3)

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "Größe", prefix: "{rdf: Größe}"},
		{name: "Zählung", prefix: "{rdf: Zählung}"},
		{name: "Last", prefix: "{rdf: Last}"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := m.Body.Definitions[i].DefinitionSpan()
			require.NotNil(t, span)
			assert.True(t, strings.HasPrefix(doc[span.Start:], tt.prefix), "span %s starts at %q", span, doc[span.Start:])
			assert.LessOrEqual(t, span.End, len(doc))
		})
	}
}
