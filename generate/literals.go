package generate

import (
	"strconv"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
	"github.com/c360studio/sdml/vocabulary/xsd"
)

func typed(lexical, datatype string) quad.TypedString {
	return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(datatype)}
}

func boolLiteral(b bool) quad.Value {
	return typed(strconv.FormatBool(b), xsd.Boolean)
}

func countLiteral(n uint64) quad.Value {
	return typed(strconv.FormatUint(n, 10), xsd.NonNegativeInteger)
}

func label(id model.Identifier) quad.Value {
	return quad.String(id.String())
}

// literal maps a simple value to its RDF literal: strings are plain or
// language-tagged, everything else is typed with its XML Schema datatype.
func literal(v model.SimpleValue) quad.Value {
	switch v := v.(type) {
	case model.LanguageString:
		if v.Language.IsZero() {
			return quad.String(v.Value)
		}
		return quad.LangString{Value: quad.String(v.Value), Lang: v.Language.String()}
	case model.Boolean:
		return typed(v.LexicalForm(), xsd.Boolean)
	case model.Double:
		return typed(v.LexicalForm(), xsd.Double)
	case model.Decimal:
		return typed(v.LexicalForm(), xsd.Decimal)
	case model.Integer:
		return typed(v.LexicalForm(), xsd.Integer)
	case model.Unsigned:
		return typed(v.LexicalForm(), xsd.NonNegativeInteger)
	case model.IRIReference:
		return typed(v.LexicalForm(), xsd.AnyURI)
	case model.Binary:
		return typed(v.LexicalForm(), xsd.HexBinary)
	}
	return quad.String(v.LexicalForm())
}
