package loader

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sdml/model"
)

// Local tags for literals YAML has no core type for.
const (
	tagDecimal   = "!decimal"
	tagIRI       = "!iri"
	tagHex       = "!hex"
	tagReference = "!ref"
)

// valueDoc is the mapping form of a value. Which keys are present decides
// the kind: text for language strings, type for constructors, domain/range
// for mappings, members for sequences with ordering or uniqueness.
type valueDoc struct {
	Text       *string     `yaml:"text"`
	Lang       string      `yaml:"lang"`
	Type       string      `yaml:"type"`
	Value      yaml.Node   `yaml:"value"`
	Domain     yaml.Node   `yaml:"domain"`
	Range      yaml.Node   `yaml:"range"`
	Ordering   string      `yaml:"ordering"`
	Uniqueness string      `yaml:"uniqueness"`
	Members    []yaml.Node `yaml:"members"`
}

func decodeValue(n *yaml.Node) (model.Value, error) {
	switch n.Kind {
	case 0:
		return nil, fmt.Errorf("%w: missing value", ErrInvalidDocument)
	case yaml.AliasNode:
		return decodeValue(n.Alias)
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		return decodeSequence(n.Content, "", "")
	case yaml.MappingNode:
		return decodeMapping(n)
	}
	return nil, fmt.Errorf("%w: line %d: unsupported value", ErrInvalidDocument, n.Line)
}

func decodeScalar(n *yaml.Node) (model.Value, error) {
	switch n.Tag {
	case "!!str":
		return model.LanguageString{Value: n.Value}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return model.Boolean(b), nil
	case "!!int":
		if strings.HasPrefix(n.Value, "-") {
			var i int64
			if err := n.Decode(&i); err != nil {
				return nil, err
			}
			return model.Integer(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, err
		}
		return model.Unsigned(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return model.Double(f), nil
	case tagDecimal:
		return model.NewDecimal(n.Value)
	case tagIRI:
		return model.NewIRIReference(n.Value)
	case tagHex:
		b, err := hex.DecodeString(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, n.Line, err)
		}
		return model.Binary(b), nil
	case tagReference:
		ref, err := model.ParseIdentifierReference(n.Value)
		if err != nil {
			return nil, err
		}
		return model.ReferenceValue{Reference: ref}, nil
	}
	return nil, fmt.Errorf("%w: line %d: unsupported scalar tag %s", ErrInvalidDocument, n.Line, n.Tag)
}

func decodeMapping(n *yaml.Node) (model.Value, error) {
	var doc valueDoc
	if err := n.Decode(&doc); err != nil {
		return nil, err
	}
	switch {
	case doc.Text != nil:
		s := model.LanguageString{Value: *doc.Text}
		if doc.Lang != "" {
			tag, err := model.NewLanguageTag(doc.Lang)
			if err != nil {
				return nil, err
			}
			s.Language = tag
		}
		return s, nil
	case doc.Type != "":
		typeName, err := model.ParseIdentifierReference(doc.Type)
		if err != nil {
			return nil, err
		}
		v, err := decodeSimple(&doc.Value)
		if err != nil {
			return nil, err
		}
		return model.ValueConstructor{TypeName: typeName, Value: v}, nil
	case doc.Domain.Kind != 0:
		domain, err := decodeSimple(&doc.Domain)
		if err != nil {
			return nil, err
		}
		rng, err := decodeValue(&doc.Range)
		if err != nil {
			return nil, err
		}
		return model.MappingValue{Domain: domain, Range: rng}, nil
	case doc.Members != nil:
		members := make([]*yaml.Node, len(doc.Members))
		for i := range doc.Members {
			members[i] = &doc.Members[i]
		}
		return decodeSequence(members, doc.Ordering, doc.Uniqueness)
	}
	return nil, fmt.Errorf("%w: line %d: mapping is not a value", ErrInvalidDocument, n.Line)
}

func decodeSequence(nodes []*yaml.Node, ordering, uniqueness string) (model.Value, error) {
	o, err := model.ParseOrdering(ordering)
	if err != nil {
		return nil, err
	}
	u, err := model.ParseUniqueness(uniqueness)
	if err != nil {
		return nil, err
	}
	seq := model.SequenceOfValues{Ordering: o, Uniqueness: u}
	for _, n := range nodes {
		v, err := decodeValue(n)
		if err != nil {
			return nil, err
		}
		member, ok := v.(model.SequenceMember)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: sequences cannot be nested", ErrInvalidDocument, n.Line)
		}
		seq.Members = append(seq.Members, member)
	}
	return seq, nil
}

func decodeSimple(n *yaml.Node) (model.SimpleValue, error) {
	v, err := decodeValue(n)
	if err != nil {
		return nil, err
	}
	simple, ok := v.(model.SimpleValue)
	if !ok {
		return nil, fmt.Errorf("%w: line %d: expected a literal, got %s", ErrInvalidDocument, n.Line, v)
	}
	return simple, nil
}

// decodeType reads a member's target type: absent or "unknown", a type
// reference, or a {domain, range} mapping type.
func decodeType(n *yaml.Node) (model.TypeReference, error) {
	switch n.Kind {
	case 0:
		return model.UnknownType{}, nil
	case yaml.ScalarNode:
		if n.Value == "" || n.Value == "unknown" {
			return model.UnknownType{}, nil
		}
		ref, err := model.ParseIdentifierReference(n.Value)
		if err != nil {
			return nil, err
		}
		return model.NamedType{Reference: ref}, nil
	case yaml.MappingNode:
		var doc struct {
			Domain yaml.Node `yaml:"domain"`
			Range  yaml.Node `yaml:"range"`
		}
		if err := n.Decode(&doc); err != nil {
			return nil, err
		}
		domain, err := decodeType(&doc.Domain)
		if err != nil {
			return nil, err
		}
		rng, err := decodeType(&doc.Range)
		if err != nil {
			return nil, err
		}
		return model.MappingType{Domain: domain, Range: rng}, nil
	}
	return nil, fmt.Errorf("%w: line %d: invalid type", ErrInvalidDocument, n.Line)
}
