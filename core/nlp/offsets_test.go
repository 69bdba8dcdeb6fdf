package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneOffset(t *testing.T) {
	text := "Über Zoë"

	assert.Equal(t, 0, runeOffset(text, 0))
	assert.Equal(t, 0, runeOffset(text, -3))
	assert.Equal(t, 4, runeOffset(text, len("Über")), "Expected multi-byte runes to count once")
	assert.Equal(t, 8, runeOffset(text, len(text)))
	assert.Equal(t, 8, runeOffset(text, len(text)+10))
}

func TestLocate(t *testing.T) {
	t.Run("Matching hint wins", func(t *testing.T) {
		start, end, ok := locate("Hi Brynn", "brynn", 3, 8, 0)
		assert.True(t, ok)
		assert.Equal(t, 3, start)
		assert.Equal(t, 8, end)
	})

	t.Run("Word is searched from cursor", func(t *testing.T) {
		start, end, ok := locate("Alaric met Alaric", "Alaric", -1, -1, 7)
		assert.True(t, ok)
		assert.Equal(t, 11, start)
		assert.Equal(t, 17, end)
	})

	t.Run("Word before cursor is found from the start", func(t *testing.T) {
		start, end, ok := locate("Alaric met Brynn", "Alaric", -1, -1, 12)
		assert.True(t, ok)
		assert.Equal(t, 0, start)
		assert.Equal(t, 6, end)
	})

	t.Run("Wrong hint falls back to word", func(t *testing.T) {
		start, end, ok := locate("Alaric met Brynn", "Brynn", 0, 6, 0)
		assert.True(t, ok)
		assert.Equal(t, 11, start)
		assert.Equal(t, 16, end)
	})

	t.Run("Hint is trimmed without word", func(t *testing.T) {
		start, end, ok := locate("Hi Brynn", "", 2, 8, 0)
		assert.True(t, ok)
		assert.Equal(t, 3, start)
		assert.Equal(t, 8, end)
	})

	t.Run("Hint splitting a rune is ignored", func(t *testing.T) {
		_, _, ok := locate("Zoë", "", 0, 3, 0)
		assert.False(t, ok)
	})

	t.Run("Unknown word without hint", func(t *testing.T) {
		_, _, ok := locate("abc", "xyz", -1, -1, 0)
		assert.False(t, ok)
	})
}
