package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	t.Run("Identical strings", func(t *testing.T) {
		assert.Equal(t, 100.0, Ratio("alaric", "alaric"))
		assert.Equal(t, 100.0, Ratio("", ""), "Expected two empty strings to be identical")
	})

	t.Run("Disjoint strings", func(t *testing.T) {
		assert.Equal(t, 0.0, Ratio("abc", "xyz"))
		assert.Equal(t, 0.0, Ratio("abc", ""))
	})

	t.Run("Partial overlap", func(t *testing.T) {
		assert.InDelta(t, 61.538, Ratio("kitten", "sitting"), 0.001)
		assert.InDelta(t, 92.308, Ratio("alaricc", "alaric"), 0.001)
	})

	t.Run("Counts characters not bytes", func(t *testing.T) {
		assert.InDelta(t, 66.667, Ratio("zoë", "zoe"), 0.001)
	})

	t.Run("Is symmetric", func(t *testing.T) {
		assert.Equal(t, Ratio("great hall", "grand hall"), Ratio("grand hall", "great hall"))
	})
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100.0, TokenSortRatio("thorne alaric", "alaric thorne"), "Expected word order to be ignored")
	assert.Equal(t, 100.0, TokenSortRatio(" alaric   thorne ", "alaric thorne"), "Expected whitespace to be ignored")
	assert.Less(t, TokenSortRatio("alaric", "alaric thorne"), 100.0)
}

func TestPartialRatio(t *testing.T) {
	t.Run("Substring scores 100", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("hall", "great hall"))
		assert.Equal(t, 100.0, PartialRatio("great hall", "hall"), "Expected argument order to not matter")
	})

	t.Run("Empty strings", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("", ""))
		assert.Equal(t, 0.0, PartialRatio("", "hall"))
	})

	t.Run("Windows overlapping the edge count", func(t *testing.T) {
		assert.InDelta(t, 88.889, PartialRatio("brynx", "brynn"), 0.001)
	})

	t.Run("Is never below Ratio for equal lengths", func(t *testing.T) {
		assert.GreaterOrEqual(t, PartialRatio("kitten", "sittin"), Ratio("kitten", "sittin"))
	})
}
