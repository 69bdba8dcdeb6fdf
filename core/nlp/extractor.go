package nlp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siherrmann/mentioner/model"
)

// Extractor finds person and location entities in a paragraph.
type Extractor struct {
	registry *Registry
	filter   *NameFilter
}

// NewExtractor creates an extractor over the registry's taggers.
// A nil filter uses the default denylist.
func NewExtractor(registry *Registry, filter *NameFilter) *Extractor {
	if filter == nil {
		filter = defaultNameFilter
	}
	return &Extractor{
		registry: registry,
		filter:   filter,
	}
}

// Extract returns the plausible PERSON and LOC entities of text, ordered by
// start offset. Without a tagger for lang, or for blank text, the result is
// empty. ignoredWords are compared case-insensitively against span texts.
func (e *Extractor) Extract(text string, lang model.Language, ignoredWords []string) ([]model.Entity, error) {
	entities := []model.Entity{}

	tagger := e.registry.Tagger(lang)
	if !tagger.Available() {
		return entities, nil
	}

	if strings.TrimSpace(text) == "" {
		return entities, nil
	}

	ignored := make(map[string]struct{}, len(ignoredWords))
	for _, w := range ignoredWords {
		ignored[strings.ToLower(w)] = struct{}{}
	}

	spans, err := tagger.Tag(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	type position struct{ start, end int }
	seen := make(map[position]struct{}, len(spans))

	for _, span := range spans {
		label, ok := model.NormalizeLabel(span.Label)
		if !ok {
			continue
		}

		if _, ok := ignored[strings.ToLower(span.Text)]; ok {
			continue
		}

		if !e.filter.IsPlausibleName(span.Text, span.POS) {
			continue
		}

		if span.Start < 0 || span.End <= span.Start {
			continue
		}

		pos := position{span.Start, span.End}
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}

		entities = append(entities, model.Entity{
			Text:  span.Text,
			Label: label,
			Start: span.Start,
			End:   span.End,
		})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})

	return entities, nil
}
