package model

// MatchSuggestion proposes linking an entity to a known reference.
type MatchSuggestion struct {
	MentionText string `json:"mention_text"`
	MatchedName string `json:"match_name"`
	MatchedID   *int64 `json:"entity_id"`
	EntityType  Label  `json:"entity_type"`
	Score       int    `json:"score"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

// AnalysisResult is the outcome of analyzing one paragraph.
// Suggestions is the subset of Entities that resolved to a known reference,
// correlated by (Start, End).
type AnalysisResult struct {
	Entities    []Entity          `json:"entities"`
	Suggestions []MatchSuggestion `json:"suggestions"`
}

// NewAnalysisResult returns an empty result that serializes as empty arrays.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Entities:    []Entity{},
		Suggestions: []MatchSuggestion{},
	}
}

// SuggestionFor returns the suggestion covering exactly the entity's span.
func (r *AnalysisResult) SuggestionFor(e Entity) (MatchSuggestion, bool) {
	for _, s := range r.Suggestions {
		if s.Start == e.Start && s.End == e.End {
			return s, true
		}
	}
	return MatchSuggestion{}, false
}

// SceneAnalysis is the analysis of a stored scene, with the occurrences of
// already linked mentions merged into the extracted entities.
type SceneAnalysis struct {
	*AnalysisResult
	Linked []LinkedEntity `json:"linked"`
}
