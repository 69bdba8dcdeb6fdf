package fuzzy

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum score of a fuzzy match.
const DefaultThreshold = 85

const (
	exactScore    = 100
	namePartScore = 95
)

// Match is the candidate a mention resolved to.
type Match struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Resolve finds the candidate best matching mention. Comparison ignores case
// and surrounding whitespace.
//
// An exact match scores 100 wherever it is in candidates. A one-word mention
// equal to a word of a multi-word candidate ("Alaric" in "Alaric Thorne")
// scores 95. Otherwise every candidate is scored with Ratio, TokenSortRatio
// and PartialRatio (one-word mentions also with Ratio against each word) and
// the highest score reaching threshold wins, ties going to the earlier
// candidate. Resolve returns nil when nothing qualifies.
func Resolve(mention string, candidates []string, threshold int) *Match {
	needle := normalize(mention)
	if needle == "" || len(candidates) == 0 {
		return nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = normalize(c)
	}

	for i, name := range names {
		if name == needle {
			return &Match{Name: candidates[i], Score: exactScore}
		}
	}

	singleToken := len(strings.Fields(needle)) == 1

	if singleToken {
		for i, name := range names {
			parts := strings.Fields(name)
			if len(parts) < 2 {
				continue
			}
			for _, part := range parts {
				if part == needle {
					return &Match{Name: candidates[i], Score: namePartScore}
				}
			}
		}
	}

	limit := float64(threshold)
	best := -1
	bestScore := 0.0

	consider := func(i int, score float64) {
		if score >= limit && score > bestScore {
			best = i
			bestScore = score
		}
	}

	for i, name := range names {
		if name == "" {
			continue
		}
		if singleToken {
			for _, part := range strings.Fields(name) {
				consider(i, Ratio(needle, part))
			}
		}
		consider(i, Ratio(needle, name))
		consider(i, TokenSortRatio(needle, name))
		consider(i, PartialRatio(needle, name))
	}

	if best < 0 {
		return nil
	}
	return &Match{Name: candidates[best], Score: int(math.Round(bestScore))}
}

func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}
