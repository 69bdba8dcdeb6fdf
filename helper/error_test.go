package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Nil error stays nil", func(t *testing.T) {
		assert.NoError(t, NewError("insert mention", nil))
	})

	t.Run("Wraps error with trace", func(t *testing.T) {
		original := errors.New("connection refused")
		err := NewError("insert mention", original)

		require.Error(t, err)
		assert.ErrorIs(t, err, original, "Expected original error to be unwrappable")
		assert.Contains(t, err.Error(), "connection refused")
		assert.Contains(t, err.Error(), "insert mention")
	})

	t.Run("Wrapping twice appends to the trace", func(t *testing.T) {
		original := errors.New("connection refused")
		inner := NewError("scan", original)
		outer := NewError("select mentions", inner)

		var e Error
		require.True(t, errors.As(outer, &e))
		assert.Equal(t, []string{"scan", "select mentions"}, e.Trace)
		assert.ErrorIs(t, outer, original)

		var first Error
		require.True(t, errors.As(inner, &first))
		assert.Equal(t, []string{"scan"}, first.Trace, "Expected the inner trace to be unchanged")
	})
}
