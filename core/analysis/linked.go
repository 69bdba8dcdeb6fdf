package analysis

import (
	"sort"
	"unicode"

	"github.com/siherrmann/mentioner/model"
)

// MergeLinkedMentions marks every occurrence of an already linked mention in
// text and adds the extracted entities that do not overlap one of them.
// Occurrences are found case-insensitively; the result is sorted by start.
func MergeLinkedMentions(text string, linked []*model.Mention, entities []model.Entity) []model.LinkedEntity {
	merged := []model.LinkedEntity{}
	textRunes := []rune(text)
	lowerText := lowerRunes(textRunes)

	seenTexts := map[string]struct{}{}
	for _, mention := range linked {
		if mention == nil || mention.LinkedID() == nil {
			continue
		}
		needle := lowerRunes([]rune(mention.Text))
		if len(needle) == 0 {
			continue
		}
		if _, ok := seenTexts[string(needle)]; ok {
			continue
		}
		seenTexts[string(needle)] = struct{}{}

		for _, start := range occurrences(lowerText, needle) {
			end := start + len(needle)
			mentionID := mention.ID
			merged = append(merged, model.LinkedEntity{
				Entity: model.Entity{
					Text:  string(textRunes[start:end]),
					Label: mention.EntityType,
					Start: start,
					End:   end,
				},
				IsLinked:    true,
				LinkedName:  mention.EntityName,
				LinkedID:    mention.LinkedID(),
				CharacterID: mention.CharacterID,
				WorldNodeID: mention.WorldNodeID,
				MentionID:   &mentionID,
			})
		}
	}

	linkedCount := len(merged)
	for _, entity := range entities {
		overlaps := false
		for _, l := range merged[:linkedCount] {
			if entity.Overlaps(l.Span()) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			merged = append(merged, model.LinkedEntity{Entity: entity})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start < merged[j].Start
	})

	return merged
}

// occurrences returns the start offsets of the non-overlapping occurrences of
// needle in haystack.
func occurrences(haystack, needle []rune) []int {
	var starts []int
	for i := 0; i+len(needle) <= len(haystack); {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			starts = append(starts, i)
			i += len(needle)
			continue
		}
		i++
	}
	return starts
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// lowerRunes lowercases rune by rune so offsets stay aligned with the input.
func lowerRunes(runes []rune) []rune {
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}
	return lower
}
