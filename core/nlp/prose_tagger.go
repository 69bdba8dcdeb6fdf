package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/siherrmann/mentioner/model"
)

// ProseTagger tags English text with prose's averaged perceptron POS tagger
// and its named-entity classifier. It needs no external model files.
// The model is built once and only read afterwards, so a tagger can be
// shared between goroutines.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger creates the English tagger and builds its model.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{model: prose.ModelFromData("en")}
}

func (t *ProseTagger) Available() bool {
	return t != nil && t.model != nil
}

// proseToken is a prose token located in the source text (byte offsets).
type proseToken struct {
	prose.Token
	start int
	end   int
}

// Tag returns the entity spans chunked by prose, located in text.
func (t *ProseTagger) Tag(text string) ([]TaggedSpan, error) {
	if !t.Available() {
		return nil, fmt.Errorf("prose model is not loaded")
	}

	doc, err := prose.NewDocument(
		text,
		prose.UsingModel(t.model),
		prose.WithSegmentation(false),
		prose.WithTagging(true),
		prose.WithExtraction(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run prose: %w", err)
	}

	return locateProseEntities(text, locateProseTokens(text, doc.Tokens()), doc.Entities()), nil
}

// locateProseTokens assigns byte offsets to tokens by scanning text left to
// right. Tokens that cannot be found are dropped.
func locateProseTokens(text string, tokens []prose.Token) []proseToken {
	located := make([]proseToken, 0, len(tokens))
	cursor := 0
	for _, tok := range tokens {
		if tok.Text == "" {
			continue
		}
		i := strings.Index(text[cursor:], tok.Text)
		if i < 0 {
			continue
		}
		start := cursor + i
		end := start + len(tok.Text)
		located = append(located, proseToken{Token: tok, start: start, end: end})
		cursor = end
	}
	return located
}

// locateProseEntities maps prose's entities back onto the source text.
// prose joins an entity's tokens with single spaces, so each entity is
// matched against the located token sequence first, which keeps the
// original spacing and punctuation. Entities that do not line up with the
// tokens fall back to a plain text search. Both searches only move forward.
func locateProseEntities(text string, tokens []proseToken, entities []prose.Entity) []TaggedSpan {
	spans := make([]TaggedSpan, 0, len(entities))
	tokenCursor := 0
	byteCursor := 0

	for _, ent := range entities {
		if strings.TrimSpace(ent.Text) == "" {
			continue
		}

		start, end, pos, next, ok := matchTokenRun(tokens, tokenCursor, strings.Fields(ent.Text))
		if ok {
			tokenCursor = next
		} else {
			i := strings.Index(text[byteCursor:], ent.Text)
			if i < 0 {
				continue
			}
			start = byteCursor + i
			end = start + len(ent.Text)
			pos = model.POSNone
			for tokenCursor < len(tokens) && tokens[tokenCursor].start < start {
				tokenCursor++
			}
			if tokenCursor < len(tokens) && tokens[tokenCursor].start == start {
				pos = model.PartOfSpeechFromPenn(tokens[tokenCursor].Tag)
			}
		}
		if start < byteCursor {
			continue
		}
		byteCursor = end

		spans = append(spans, TaggedSpan{
			Text:  text[start:end],
			Label: normalizeEntityType(strings.ToUpper(ent.Label)),
			Start: runeOffset(text, start),
			End:   runeOffset(text, end),
			POS:   pos,
		})
	}

	return spans
}

// matchTokenRun finds the first run of consecutive tokens at or after from
// whose texts equal parts. It returns the run's byte range, the POS hint of
// its first token and the index after the run.
func matchTokenRun(tokens []proseToken, from int, parts []string) (int, int, model.PartOfSpeech, int, bool) {
	if len(parts) == 0 {
		return 0, 0, model.POSNone, from, false
	}
	for i := from; i+len(parts) <= len(tokens); i++ {
		matched := true
		for j, part := range parts {
			if tokens[i+j].Text != part {
				matched = false
				break
			}
		}
		if matched {
			last := tokens[i+len(parts)-1]
			return tokens[i].start, last.end, model.PartOfSpeechFromPenn(tokens[i].Tag), i + len(parts), true
		}
	}
	return 0, 0, model.POSNone, from, false
}

// normalizeEntityType removes B- and I- prefixes from NER labels
func normalizeEntityType(label string) string {
	if strings.HasPrefix(label, "B-") || strings.HasPrefix(label, "I-") {
		return label[2:]
	}
	return label
}
