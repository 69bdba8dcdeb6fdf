package model

import (
	"time"

	"github.com/google/uuid"
)

// Mention links a piece of scene text to a character or world node.
type Mention struct {
	ID          int64     `json:"id"`
	RID         uuid.UUID `json:"rid"`
	SceneID     int64     `json:"scene_id"`
	Text        string    `json:"text"`
	EntityType  Label     `json:"entity_type"`
	CharacterID *int64    `json:"character_id,omitempty"`
	WorldNodeID *int64    `json:"worldnode_id,omitempty"`
	EntityName  string    `json:"entity_name"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LinkedID returns the id of the character or world node the mention points to.
func (m *Mention) LinkedID() *int64 {
	if m.CharacterID != nil {
		return m.CharacterID
	}
	return m.WorldNodeID
}

// NewMentionFromSuggestion creates an unsaved mention accepting s.
func NewMentionFromSuggestion(sceneID int64, s MatchSuggestion) *Mention {
	m := &Mention{
		SceneID:    sceneID,
		Text:       s.MentionText,
		EntityType: s.EntityType,
		EntityName: s.MatchedName,
		Metadata: Metadata{
			"score": s.Score,
			"start": s.Start,
			"end":   s.End,
		},
	}
	if s.MatchedID != nil {
		id := *s.MatchedID
		if s.EntityType == LabelPerson {
			m.CharacterID = &id
		} else {
			m.WorldNodeID = &id
		}
	}
	return m
}
