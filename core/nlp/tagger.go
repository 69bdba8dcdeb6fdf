package nlp

import "github.com/siherrmann/mentioner/model"

// TaggedSpan is a raw named-entity span reported by a Tagger.
// Start and End are character (code point) offsets into the tagged text.
type TaggedSpan struct {
	Text  string
	Label string
	Start int
	End   int
	// POS is the part of speech of the span's first token, POSNone if the
	// tagger has no part-of-speech model.
	POS model.PartOfSpeech
}

// Tagger is a loaded language model able to find named entities.
// Implementations must be safe for concurrent use after construction.
type Tagger interface {
	Available() bool
	Tag(text string) ([]TaggedSpan, error)
}

// UnavailableTagger stands in for a language without a loaded model.
type UnavailableTagger struct{}

func (UnavailableTagger) Available() bool { return false }

func (UnavailableTagger) Tag(string) ([]TaggedSpan, error) { return nil, nil }

// TagFunc adapts a function to a Tagger that is always available.
type TagFunc func(text string) ([]TaggedSpan, error)

func (f TagFunc) Available() bool { return f != nil }

func (f TagFunc) Tag(text string) ([]TaggedSpan, error) {
	if f == nil {
		return nil, nil
	}
	return f(text)
}
