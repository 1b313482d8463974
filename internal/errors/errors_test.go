package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")
	ee := New(err).Build()

	assert.Equal(t, "boom", ee.Error())
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.False(t, ee.Timestamp.IsZero())
}

func TestBuilderMetadata(t *testing.T) {
	t.Parallel()

	ee := Newf("state %s has no election summary", "GUAM").
		Component("enrich").
		Category(CategoryJoin).
		Context("location", "GUAM").
		Build()

	assert.Equal(t, "enrich", ee.Component)
	assert.Equal(t, CategoryJoin, ee.Category)
	assert.Equal(t, "GUAM", ee.Context["location"])
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	a := Newf("a").Category(CategoryDataQuality).Build()
	b := Newf("b").Category(CategoryDataQuality).Build()
	c := Newf("c").Category(CategoryFileIO).Build()

	assert.True(t, Is(a, b), "same category should match")
	assert.False(t, Is(a, c), "different category should not match")
}

func TestUnwrapPreservesSentinel(t *testing.T) {
	t.Parallel()

	sentinel := fmt.Errorf("sentinel")
	wrapped := fmt.Errorf("outer: %w", sentinel)
	ee := New(wrapped).Category(CategoryFileParsing).Build()

	require.ErrorIs(t, ee, sentinel)
}

func TestContextIsCopied(t *testing.T) {
	t.Parallel()

	eb := Newf("x").Context("k", "v")
	ee := eb.Build()
	eb.Context("k", "mutated")

	assert.Equal(t, "v", ee.Context["k"])
}
