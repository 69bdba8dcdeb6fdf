package analysis

import (
	"github.com/siherrmann/mentioner/core/fuzzy"
	"github.com/siherrmann/mentioner/model"
)

// ExtractFunc extracts the person and location entities of a paragraph,
// ordered by start offset.
type ExtractFunc func(text string, lang model.Language, ignoredWords []string) ([]model.Entity, error)

// ResolveFunc resolves a mention against candidate names.
// It returns nil when no candidate reaches threshold.
type ResolveFunc func(mention string, candidates []string, threshold int) *fuzzy.Match
