package analysis

import (
	"testing"

	"github.com/siherrmann/mentioner/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLinkedMentions(t *testing.T) {
	characterID := int64(1)
	alaric := &model.Mention{
		ID:          9,
		Text:        "Alaric",
		EntityType:  model.LabelPerson,
		CharacterID: &characterID,
		EntityName:  "Alaric Thorne",
	}
	text := "Alaric met alaric and Brynn."
	entities := []model.Entity{
		{Text: "Alaric", Label: model.LabelPerson, Start: 0, End: 6},
		{Text: "Brynn", Label: model.LabelPerson, Start: 22, End: 27},
	}

	t.Run("Marks every occurrence of a linked mention", func(t *testing.T) {
		merged := MergeLinkedMentions(text, []*model.Mention{alaric}, entities)
		require.Len(t, merged, 3)

		assert.True(t, merged[0].IsLinked)
		assert.Equal(t, 0, merged[0].Start)
		assert.Equal(t, "Alaric Thorne", merged[0].LinkedName)
		require.NotNil(t, merged[0].MentionID)
		assert.Equal(t, int64(9), *merged[0].MentionID)
		require.NotNil(t, merged[0].LinkedID)
		assert.Equal(t, int64(1), *merged[0].LinkedID)

		assert.True(t, merged[1].IsLinked)
		assert.Equal(t, "alaric", merged[1].Text, "Expected the text's own spelling")
		assert.Equal(t, 11, merged[1].Start)
		assert.Equal(t, 17, merged[1].End)

		assert.False(t, merged[2].IsLinked)
		assert.Equal(t, "Brynn", merged[2].Text)
	})

	t.Run("Without linked mentions entities pass through", func(t *testing.T) {
		merged := MergeLinkedMentions(text, nil, entities)
		require.Len(t, merged, 2)
		assert.Equal(t, entities[0], merged[0].Entity)
		assert.Equal(t, entities[1], merged[1].Entity)
	})

	t.Run("Unlinked and duplicate mentions are skipped", func(t *testing.T) {
		unlinked := &model.Mention{ID: 10, Text: "Brynn", EntityType: model.LabelPerson}
		duplicate := &model.Mention{ID: 11, Text: "ALARIC", EntityType: model.LabelPerson, CharacterID: &characterID}

		merged := MergeLinkedMentions(text, []*model.Mention{alaric, unlinked, duplicate, nil}, entities)
		require.Len(t, merged, 3)
		assert.Equal(t, int64(9), *merged[1].MentionID)
		assert.False(t, merged[2].IsLinked)
	})

	t.Run("Offsets are counted in characters", func(t *testing.T) {
		nodeID := int64(5)
		hall := &model.Mention{ID: 12, Text: "Große Halle", EntityType: model.LabelLocation, WorldNodeID: &nodeID}

		merged := MergeLinkedMentions("Über die große Halle", []*model.Mention{hall}, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, 9, merged[0].Start)
		assert.Equal(t, 20, merged[0].End)
		assert.Equal(t, "große Halle", merged[0].Text)
		require.NotNil(t, merged[0].WorldNodeID)
		assert.Nil(t, merged[0].CharacterID)
	})

	t.Run("Empty input gives an empty list", func(t *testing.T) {
		merged := MergeLinkedMentions("", nil, nil)
		assert.NotNil(t, merged)
		assert.Empty(t, merged)
	})
}
