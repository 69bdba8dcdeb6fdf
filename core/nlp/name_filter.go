package nlp

import (
	"unicode"
	"unicode/utf8"

	"github.com/siherrmann/mentioner/model"
)

// Capitalized words taggers commonly flag as names although they are not.
// Matching is exact and case-sensitive.
var (
	denylistGerman = []string{
		// articles, pronouns
		"Der", "Die", "Das", "Den", "Dem", "Des", "Ein", "Eine", "Einen", "Einem",
		"Einer", "Sein", "Seine", "Ihr", "Ihre", "Mein", "Dein", "Unser",
		"Sie", "Er", "Es", "Ich", "Du", "Wir",
		// time
		"Zeit", "Ort", "Tag", "Nacht", "Morgen", "Abend",
		"Jahr", "Monat", "Woche", "Stunde", "Minute",
		// people
		"Mann", "Frau", "Kind", "Leute", "Menschen",
		// house
		"Haus", "Tür", "Fenster", "Wand", "Boden", "Decke",
		// body
		"Kopf", "Hand", "Auge", "Ohr", "Mund", "Nase",
		"Arm", "Bein", "Fuß", "Finger", "Schulter", "Schultern",
		"Herz", "Seele", "Geist", "Körper",
		// places, abstract
		"Weg", "Straße", "Platz", "Stadt", "Dorf", "Land",
		"Welt", "Leben", "Tod", "Liebe", "Hass",
	}

	denylistEnglish = []string{
		"The", "A", "An", "He", "She", "It", "I", "You", "We", "They",
		"His", "Her", "My", "Your", "Our", "Their",
		"Time", "Place", "Day", "Night", "Morning", "Evening",
		"Year", "Month", "Week", "Hour", "Minute",
		"Man", "Woman", "Child", "People",
		"House", "Door", "Window", "Wall", "Floor", "Ceiling",
		"Head", "Hand", "Eye", "Ear", "Mouth", "Nose",
		"Arm", "Leg", "Foot", "Finger", "Shoulder", "Shoulders",
		"Heart", "Soul", "Spirit", "Body",
		"Way", "Street", "Square", "City", "Village", "Country",
		"World", "Life", "Death", "Love", "Hate",
	}
)

var defaultNameFilter = NewNameFilter()

// NameFilter decides whether a flagged span is plausibly a proper name.
// It is read-only after construction.
type NameFilter struct {
	denylist map[string]struct{}
}

// NewNameFilter returns a filter over the built-in German and English
// denylists extended by extra.
func NewNameFilter(extra ...string) *NameFilter {
	denylist := make(map[string]struct{}, len(denylistGerman)+len(denylistEnglish)+len(extra))
	for _, list := range [][]string{denylistGerman, denylistEnglish, extra} {
		for _, w := range list {
			denylist[w] = struct{}{}
		}
	}
	return &NameFilter{denylist: denylist}
}

// IsPlausibleName reports whether text looks like a proper name.
// A pos hint other than POSNone must be a proper noun or unknown.
func (f *NameFilter) IsPlausibleName(text string, pos model.PartOfSpeech) bool {
	if utf8.RuneCountInString(text) < 2 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(first) {
		return false
	}

	// German capitalizes every noun, the tag separates names from nouns
	if pos != model.POSNone && pos != model.POSProperNoun && pos != model.POSUnknown {
		return false
	}

	if _, ok := f.denylist[text]; ok {
		return false
	}

	return true
}

// IsPlausibleName checks text against the default name filter.
func IsPlausibleName(text string, pos model.PartOfSpeech) bool {
	return defaultNameFilter.IsPlausibleName(text, pos)
}
