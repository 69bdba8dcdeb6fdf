package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionMetadata() Metadata {
	id := int64(1)
	return NewMentionFromSuggestion(7, MatchSuggestion{
		MentionText: "Alaric",
		MatchedName: "Alaric Thorne",
		MatchedID:   &id,
		EntityType:  LabelPerson,
		Score:       95,
		Start:       0,
		End:         6,
	}).Metadata
}

func TestMetadata_Value(t *testing.T) {
	t.Run("Stores the accepted suggestion as JSON", func(t *testing.T) {
		value, err := suggestionMetadata().Value()
		require.NoError(t, err)

		bytes, ok := value.([]byte)
		require.True(t, ok, "Expected Value to return JSON bytes")
		assert.JSONEq(t, `{"score":95,"start":0,"end":6}`, string(bytes))
	})

	t.Run("Nil metadata is stored as an empty object", func(t *testing.T) {
		var m Metadata

		value, err := m.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), value)
	})

	t.Run("Marshal keeps nil as null", func(t *testing.T) {
		var m Metadata

		bytes, err := m.Marshal()
		require.NoError(t, err)
		assert.Equal(t, []byte("null"), bytes)
	})
}

func TestMetadata_Scan(t *testing.T) {
	t.Run("Scan the column written for a mention", func(t *testing.T) {
		value, err := suggestionMetadata().Value()
		require.NoError(t, err)

		var m Metadata
		require.NoError(t, m.Scan(value))

		score, ok := m.Int("score")
		require.True(t, ok)
		assert.Equal(t, 95, score)
		end, ok := m.Int("end")
		require.True(t, ok)
		assert.Equal(t, 6, end)
	})

	t.Run("Scan a JSON string", func(t *testing.T) {
		var m Metadata
		require.NoError(t, m.Scan(`{"score":100,"source":"exact"}`))
		assert.Equal(t, "exact", m["source"])
	})

	t.Run("Scan NULL into empty metadata", func(t *testing.T) {
		var m Metadata
		require.NoError(t, m.Scan(nil))
		assert.NotNil(t, m)
		assert.Empty(t, m)
	})

	t.Run("Scan from Metadata", func(t *testing.T) {
		var m Metadata
		require.NoError(t, m.Scan(Metadata{"score": 92}))
		assert.Equal(t, 92, m["score"])
	})

	t.Run("Scan rejects malformed JSON", func(t *testing.T) {
		var m Metadata
		assert.Error(t, m.Scan([]byte(`{"score":`)))
	})

	t.Run("Scan rejects unsupported types", func(t *testing.T) {
		var m Metadata
		err := m.Scan(95)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type assertion")
	})
}

func TestMetadata_Mention(t *testing.T) {
	t.Run("Metadata serializes inside the mention", func(t *testing.T) {
		id := int64(5)
		mention := NewMentionFromSuggestion(7, MatchSuggestion{
			MentionText: "Great Hall",
			MatchedName: "Great Hall",
			MatchedID:   &id,
			EntityType:  LabelLocation,
			Score:       100,
			Start:       23,
			End:         33,
		})

		data, err := json.Marshal(mention)
		require.NoError(t, err)

		var decoded struct {
			Metadata map[string]int `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, map[string]int{"score": 100, "start": 23, "end": 33}, decoded.Metadata)
	})
}

func TestMetadata_Int(t *testing.T) {
	t.Run("Reads numbers of every stored kind", func(t *testing.T) {
		m := Metadata{"score": 95, "start": int64(12), "end": float64(17)}

		for key, expected := range map[string]int{"score": 95, "start": 12, "end": 17} {
			value, ok := m.Int(key)
			assert.True(t, ok, "Expected %s to be readable", key)
			assert.Equal(t, expected, value)
		}
	})

	t.Run("Missing or non-numeric keys", func(t *testing.T) {
		m := Metadata{"source": "partial"}

		_, ok := m.Int("source")
		assert.False(t, ok)
		_, ok = m.Int("score")
		assert.False(t, ok)
	})
}
