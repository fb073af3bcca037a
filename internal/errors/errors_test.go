package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	base := fmt.Errorf("series is empty")

	err := New(base).
		Component("audibility").
		Category(CategoryValidation).
		Context("length", 0).
		Build()

	require.NotNil(t, err)
	assert.Equal(t, "series is empty", err.Error())
	assert.Equal(t, "audibility", err.Component)
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, 0, err.GetContext()["length"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestBuilderDefaults(t *testing.T) {
	err := Newf("something went wrong").Build()

	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestUnwrap(t *testing.T) {
	base := NewStd("zero denominator")
	err := New(base).Category(CategoryUndefinedMetric).Build()

	assert.True(t, Is(err, base))
}

func TestIsMatchesByCategory(t *testing.T) {
	a := Newf("precision undefined").Category(CategoryUndefinedMetric).Build()
	b := Newf("recall undefined").Category(CategoryUndefinedMetric).Build()
	c := Newf("empty interval set").Category(CategoryValidation).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}

func TestIsCategory(t *testing.T) {
	err := Newf("no noise-free intervals").Category(CategoryEmptyComplement).Build()

	assert.True(t, IsCategory(err, CategoryEmptyComplement))
	assert.False(t, IsCategory(err, CategoryValidation))

	// Category matching survives wrapping.
	wrapped := fmt.Errorf("segmenting failed: %w", err)
	assert.True(t, IsCategory(wrapped, CategoryEmptyComplement))

	assert.False(t, IsCategory(NewStd("plain"), CategoryEmptyComplement))
}

func TestGetContextReturnsCopy(t *testing.T) {
	err := Newf("boom").Context("key", "value").Build()

	ctx := err.GetContext()
	ctx["key"] = "mutated"

	assert.Equal(t, "value", err.GetContext()["key"])
}
