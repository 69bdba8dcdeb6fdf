package model

import "strings"

// Label is the normalized type of an extracted entity.
type Label string

const (
	LabelPerson Label = "PERSON"
	// LabelLocation serializes as "LOC" to keep the existing API contract.
	LabelLocation Label = "LOC"
)

// NormalizeLabel maps raw tagger labels onto a Label.
// Person-like tags (PERSON, PER) become LabelPerson, place-like tags
// (LOC, GPE, LOCATION) become LabelLocation. BIO prefixes are ignored.
func NormalizeLabel(raw string) (Label, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "B-"), "I-")

	switch raw {
	case "PERSON", "PER":
		return LabelPerson, true
	case "LOC", "GPE", "LOCATION":
		return LabelLocation, true
	}
	return "", false
}

// Span is a contiguous region of a paragraph.
// Start and End are character (code point) offsets, End exclusive.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Entity is an extracted, filtered mention with a normalized label.
type Entity struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Span returns the region the entity covers.
func (e Entity) Span() Span {
	return Span{Text: e.Text, Start: e.Start, End: e.End}
}

// Overlaps reports whether the entity shares at least one character with s.
func (e Entity) Overlaps(s Span) bool {
	return e.Start < s.End && s.Start < e.End
}

// LinkedEntity is an entity that may already be linked to a stored mention.
type LinkedEntity struct {
	Entity
	IsLinked    bool   `json:"isLinked"`
	LinkedName  string `json:"linkedName,omitempty"`
	LinkedID    *int64 `json:"linkedId,omitempty"`
	CharacterID *int64 `json:"linkedCharacterId,omitempty"`
	WorldNodeID *int64 `json:"linkedWorldnodeId,omitempty"`
	MentionID   *int64 `json:"mentionId,omitempty"`
}
