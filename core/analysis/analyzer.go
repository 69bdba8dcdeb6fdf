package analysis

import (
	"fmt"

	"github.com/siherrmann/mentioner/core/fuzzy"
	"github.com/siherrmann/mentioner/core/nlp"
	"github.com/siherrmann/mentioner/model"
)

// Analyzer combines entity extraction and fuzzy resolution over a paragraph.
// It holds no per-call state and may be shared between goroutines.
type Analyzer struct {
	Extractor ExtractFunc
	Resolver  ResolveFunc
	Threshold int
}

// NewAnalyzer creates an analyzer with the given extraction and resolution
// functions. A nil resolver uses fuzzy.Resolve.
func NewAnalyzer(extractor ExtractFunc, resolver ResolveFunc, threshold int) *Analyzer {
	if resolver == nil {
		resolver = fuzzy.Resolve
	}
	return &Analyzer{
		Extractor: extractor,
		Resolver:  resolver,
		Threshold: threshold,
	}
}

// NewDefaultAnalyzer creates an analyzer over the registry's taggers.
func NewDefaultAnalyzer(registry *nlp.Registry, config model.AnalyzerConfig) *Analyzer {
	extractor := nlp.NewExtractor(registry, nlp.NewNameFilter(config.ExtraDenylist...))
	return NewAnalyzer(extractor.Extract, fuzzy.Resolve, config.Threshold)
}

// Analyze extracts the entities of text and suggests a known character for
// every PERSON and a known location for every LOC that resolves.
// Entities without a match produce no suggestion.
func (a *Analyzer) Analyze(text string, lang model.Language, characters []model.Character, locations []model.Location, ignoredWords []string) (*model.AnalysisResult, error) {
	result := model.NewAnalysisResult()
	if a.Extractor == nil {
		return result, nil
	}

	entities, err := a.Extractor(text, lang, ignoredWords)
	if err != nil {
		return nil, fmt.Errorf("failed to extract entities: %w", err)
	}
	if entities != nil {
		result.Entities = entities
	}

	people := model.CharacterReferences(characters)
	places := model.LocationReferences(locations)
	peopleNames := model.DisplayNames(people)
	placeNames := model.DisplayNames(places)

	for _, entity := range result.Entities {
		var refs []model.ReferenceName
		var names []string
		switch entity.Label {
		case model.LabelPerson:
			refs, names = people, peopleNames
		case model.LabelLocation:
			refs, names = places, placeNames
		default:
			continue
		}

		match := a.Resolver(entity.Text, names, a.Threshold)
		if match == nil {
			continue
		}

		suggestion := model.MatchSuggestion{
			MentionText: entity.Text,
			MatchedName: match.Name,
			EntityType:  entity.Label,
			Score:       match.Score,
			Start:       entity.Start,
			End:         entity.End,
		}
		if ref, ok := model.FindReference(refs, match.Name); ok {
			id := ref.ID
			suggestion.MatchedID = &id
		}

		result.Suggestions = append(result.Suggestions, suggestion)
	}

	return result, nil
}
