package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sdml/export"
	"github.com/c360studio/sdml/generate"
	"github.com/c360studio/sdml/graph"
	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/rdf"
	"github.com/c360studio/sdml/vocabulary/sdml"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

const base = "http://ex/test/"

func sampleGraph() *graph.Graph {
	g := graph.New()
	g.SetPrefix("test", base)
	g.SetPrefix(sdml.Prefix, sdml.Namespace)
	g.SetPrefix(xsd.Prefix, xsd.Namespace)

	person := quad.IRI(base + "Person")
	card := g.NewBlankNode()
	g.Insert(person, quad.IRI(rdf.Type), quad.IRI(sdml.Entity))
	g.Insert(person, quad.IRI(sdml.SrcLabel), quad.String("Per\"son"))
	g.Insert(person, quad.IRI(sdml.HasCardinality), card)
	g.Insert(card, quad.IRI(rdf.Type), quad.IRI(sdml.Cardinality))
	g.Insert(card, quad.IRI(sdml.MinOccurs), quad.TypedString{Value: "0", Type: quad.IRI(xsd.NonNegativeInteger)})
	g.Insert(person, quad.IRI("http://www.w3.org/2004/02/skos/core#prefLabel"), quad.LangString{Value: "Person", Lang: "en"})
	return g
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"", export.FormatTurtle},
		{"ttl", export.FormatTurtle},
		{"N-Triples", export.FormatNTriples},
		{"json-ld", export.FormatJSONLD},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := export.ParseFormat("rdfxml")
	assert.Error(t, err)
}

func TestFormatRegistry(t *testing.T) {
	for _, name := range export.FormatNames() {
		info, ok := export.GetFormatInfo(export.Format(name))
		require.True(t, ok, name)

		format, ok := export.FormatForPath("out" + info.Extension)
		require.True(t, ok)
		assert.Equal(t, info.Name, format)
	}

	_, ok := export.FormatForPath("out.txt")
	assert.False(t, ok)
}

func TestSerializeTurtle(t *testing.T) {
	out, err := export.String(sampleGraph(), export.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, out, "@prefix sdml: <"+sdml.Namespace+"> .")
	assert.Contains(t, out, "test:Person\n    a sdml:Entity ;")
	assert.Contains(t, out, `sdml:srcLabel "Per\"son"`)
	assert.Contains(t, out, "sdml:hasCardinality [\n        a sdml:Cardinality ;\n        sdml:minOccurs \"0\"^^xsd:nonNegativeInteger\n    ]")
	assert.Contains(t, out, `<http://www.w3.org/2004/02/skos/core#prefLabel> "Person"@en .`)
	assert.NotContains(t, out, "_:")
	assert.NotContains(t, out, "\x1b[")
}

func TestSerializeTurtleColor(t *testing.T) {
	out, err := export.String(sampleGraph(), export.FormatTurtle, export.WithColor(true))
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[34mtest:Person\x1b[0m")
}

func TestSerializeNTriples(t *testing.T) {
	g := sampleGraph()
	out, err := export.String(g, export.FormatNTriples)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, g.Len())
	assert.Contains(t, out, "<"+base+"Person> <"+rdf.Type+"> <"+sdml.Entity+"> .")
	assert.Contains(t, out, `"Person"@en .`)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
}

func TestSerializeJSONLD(t *testing.T) {
	out, err := export.String(sampleGraph(), export.FormatJSONLD)
	require.NoError(t, err)

	var doc struct {
		Context map[string]string `json:"@context"`
		Graph   []map[string]any  `json:"@graph"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, base, doc.Context["test"])
	require.Len(t, doc.Graph, 2)

	person := doc.Graph[0]
	assert.Equal(t, "test:Person", person["@id"])
	assert.Equal(t, []any{"sdml:Entity"}, person["@type"])
	assert.Equal(t, []any{map[string]any{"@value": "Per\"son"}}, person["sdml:srcLabel"])
	assert.Equal(t, []any{map[string]any{"@value": "Person", "@language": "en"}},
		person["http://www.w3.org/2004/02/skos/core#prefLabel"])

	card := doc.Graph[1]
	assert.Equal(t, []any{map[string]any{"@id": card["@id"]}}, person["sdml:hasCardinality"])
	assert.Equal(t, []any{map[string]any{"@value": "0", "@type": "xsd:nonNegativeInteger"}}, card["sdml:minOccurs"])
}

func TestSerializeUnsupportedFormat(t *testing.T) {
	err := export.Serialize(&bytes.Buffer{}, sampleGraph(), export.Format("rdfxml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, generate.ErrGenerator)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSerializeWriterFailure(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples, export.FormatJSONLD} {
		t.Run(string(format), func(t *testing.T) {
			err := export.Serialize(failingWriter{}, sampleGraph(), format)

			var genErr *generate.GeneratorError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, string(format), genErr.Name)
		})
	}
}

func TestSerializeLoweredModule(t *testing.T) {
	u, err := model.ParseURI(base)
	require.NoError(t, err)
	m := model.NewModule(model.MustIdentifier("test"), u).
		AddDefinition(&model.RdfDef{Name: model.MustIdentifier("Thing")})

	g, err := generate.ToGraph(m, nil)
	require.NoError(t, err)

	out, err := export.String(g, export.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, out, "test:\n    a owl:Ontology, sdml:Module ;")
	assert.Contains(t, out, "sdml:hasDefinition test:Thing")
}
