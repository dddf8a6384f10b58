package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/sdml/model"
)

func mustRange(t *testing.T, min, max uint64) model.CardinalityRange {
	t.Helper()
	r, err := model.NewRange(min, max)
	require.NoError(t, err)
	return r
}

func TestCardinalityIsDefault(t *testing.T) {
	assert.True(t, model.DefaultCardinality().IsDefault())

	withSpan := model.DefaultCardinality()
	withSpan.Span = model.NewSpan(3, 9)
	assert.True(t, withSpan.IsDefault(), "span should not affect default detection")

	tests := []struct {
		name string
		card model.Cardinality
	}{
		{"optional", model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, mustRange(t, 0, 1))},
		{"unbounded", model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, model.NewUnboundedRange(1))},
		{"ordered", model.NewCardinality(model.Ordered, model.UniquenessUnspecified, model.ExactRange(1))},
		{"unique", model.NewCardinality(model.OrderingUnspecified, model.Unique, model.ExactRange(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.card.IsDefault())
		})
	}
}

func TestNewRangeRejectsInverted(t *testing.T) {
	_, err := model.NewRange(3, 1)
	assert.ErrorIs(t, err, model.ErrInvalidCardinality)
}

func TestCardinalityString(t *testing.T) {
	tests := []struct {
		card model.Cardinality
		want string
	}{
		{model.DefaultCardinality(), "{1}"},
		{model.NewCardinality(model.Ordered, model.Unique, mustRange(t, 0, 1)), "{ordered unique 0..1}"},
		{model.NewCardinality(model.OrderingUnspecified, model.Nonunique, model.NewUnboundedRange(0)), "{nonunique 0..}"},
		{model.NewCardinality(model.Unordered, model.UniquenessUnspecified, mustRange(t, 2, 5)), "{unordered 2..5}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.String())
		})
	}
}

func TestCardinalitySequenceType(t *testing.T) {
	tests := []struct {
		name string
		card model.Cardinality
		want model.PseudoSequenceType
		ok   bool
	}{
		{"exactly one", model.DefaultCardinality(), 0, false},
		{"maybe", model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, mustRange(t, 0, 1)), model.Maybe, true},
		{"bag", model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, model.NewUnboundedRange(0)), model.Bag, true},
		{"list", model.NewCardinality(model.Ordered, model.Nonunique, model.NewUnboundedRange(0)), model.List, true},
		{"set", model.NewCardinality(model.Unordered, model.Unique, model.NewUnboundedRange(1)), model.Set, true},
		{"ordered set", model.NewCardinality(model.Ordered, model.Unique, model.NewUnboundedRange(1)), model.OrderedSet, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.card.SequenceType()
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseOrderingAndUniqueness(t *testing.T) {
	o, err := model.ParseOrdering("ordered")
	require.NoError(t, err)
	assert.Equal(t, model.Ordered, o)

	u, err := model.ParseUniqueness("nonunique")
	require.NoError(t, err)
	assert.Equal(t, model.Nonunique, u)

	_, err = model.ParseOrdering("sorted")
	assert.ErrorIs(t, err, model.ErrInvalidCardinality)
}

func TestCardinalityBounds(t *testing.T) {
	c := model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, model.NewUnboundedRange(0))
	assert.True(t, c.IsOptional())
	assert.True(t, c.IsUnbounded())
	_, bounded := c.MaxOccurs()
	assert.False(t, bounded)

	max, bounded := model.DefaultCardinality().MaxOccurs()
	assert.True(t, bounded)
	assert.Equal(t, uint64(1), max)
}

func TestParseCardinality(t *testing.T) {
	tests := []struct {
		in   string
		want model.Cardinality
	}{
		{"", model.DefaultCardinality()},
		{"1", model.DefaultCardinality()},
		{"0..1", model.NewCardinality(model.OrderingUnspecified, model.UniquenessUnspecified, mustRange(t, 0, 1))},
		{"{ordered unique 0..1}", model.NewCardinality(model.Ordered, model.Unique, mustRange(t, 0, 1))},
		{"{unique ordered 1..}", model.NewCardinality(model.Ordered, model.Unique, model.NewUnboundedRange(1))},
		{"nonunique 2..5", model.NewCardinality(model.OrderingUnspecified, model.Nonunique, mustRange(t, 2, 5))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseCardinality(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"{}", "3..1", "x..2", "ordered ordered 1", "sorted 1", "a b c d"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := model.ParseCardinality(bad)
			assert.ErrorIs(t, err, model.ErrInvalidCardinality)
		})
	}
}
