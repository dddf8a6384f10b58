package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sdml/model"
)

func id(s string) model.Identifier { return model.MustIdentifier(s) }

func TestConstraintSentenceString(t *testing.T) {
	name := &model.FunctionComposition{Functions: []model.Identifier{id("name")}}
	length := &model.FunctionalTerm{
		Function:  &model.IdentifierTerm{Reference: model.MustReference("length")},
		Arguments: []model.Term{name},
	}
	zero := &model.ValueTerm{Value: model.PredicateSimpleValue{Value: model.Unsigned(0)}}

	tests := []struct {
		name     string
		sentence model.ConstraintSentence
		want     string
	}{
		{
			name:     "inequation",
			sentence: &model.Inequation{Left: length, Relation: model.GreaterThan, Right: zero},
			want:     "length(self.name) > 0",
		},
		{
			name:     "equation",
			sentence: &model.Equation{Left: model.ReservedSelf{}, Right: &model.IdentifierTerm{Reference: model.MustReference("x")}},
			want:     "self = x",
		},
		{
			name: "negated atomic",
			sentence: &model.UnaryBooleanSentence{Operand: &model.AtomicSentence{
				Predicate: &model.IdentifierTerm{Reference: model.MustReference("is_empty")},
				Arguments: []model.Term{name},
			}},
			want: "not is_empty(self.name)",
		},
		{
			name: "binary",
			sentence: &model.BinaryBooleanSentence{
				Left:     &model.Equation{Left: zero, Right: zero},
				Operator: model.Implication,
				Right:    &model.Inequation{Left: zero, Relation: model.NotEqual, Right: length},
			},
			want: "(0 = 0 implies 0 /= length(self.name))",
		},
		{
			name: "quantified",
			sentence: &model.QuantifiedSentence{
				Binding: model.QuantifiedVariableBinding{
					Quantifier: model.Universal,
					Variable: &model.QuantifiedVariable{
						Name:   id("m"),
						Source: &model.FunctionComposition{Subject: id("order"), Functions: []model.Identifier{id("items")}},
					},
				},
				Body: &model.Inequation{Left: &model.IdentifierTerm{Reference: model.MustReference("m")}, Relation: model.GreaterThanOrEqual, Right: zero},
			},
			want: "forall m in order.items, m >= 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sentence.String())
		})
	}
}

func TestSequenceBuilderString(t *testing.T) {
	builder := &model.SequenceBuilder{
		Variables: []model.Identifier{id("x")},
		Body: &model.QuantifiedSentence{
			Binding: model.QuantifiedVariableBinding{Quantifier: model.Existential},
			Body:    &model.Equation{Left: &model.IdentifierTerm{Reference: model.MustReference("x")}, Right: model.ReservedSelf{}},
		},
	}
	assert.Equal(t, "{x | exists self, x = self}", builder.String())
}

func TestControlledLanguageTag(t *testing.T) {
	tag, err := model.NewControlledLanguageTag("en-ACE")
	require.NoError(t, err)
	assert.Equal(t, "en-ACE", tag.String())

	informal := &model.InformalConstraint{Value: "must be positive", Language: tag}
	assert.Equal(t, `"must be positive"@en-ACE`, model.QuoteInformal(informal))

	_, err = model.NewControlledLanguageTag("EN")
	assert.ErrorIs(t, err, model.ErrInvalidLanguageTag)
}

func TestAnnotationFilters(t *testing.T) {
	body := &model.AnnotationOnlyBody{Annotations: []model.Annotation{
		&model.AnnotationProperty{NameReference: model.MustReference("dc:description"), Value: model.LanguageString{Value: "d"}},
		&model.Constraint{Name: id("c1"), Body: &model.InformalConstraint{Value: "x"}},
	}}
	assert.Len(t, model.AnnotationProperties(body), 1)
	assert.Len(t, model.Constraints(body), 1)

	var empty *model.AnnotationOnlyBody
	assert.Empty(t, empty.AnnotationList())
}
