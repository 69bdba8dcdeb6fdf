package fuzzy

import (
	"sort"
	"strings"
)

// Ratio returns the normalized Indel similarity of s1 and s2 in [0, 100]:
// 100 * (1 - insertions+deletions / len(s1)+len(s2)), computed on code points.
// Two empty strings are identical.
func Ratio(s1, s2 string) float64 {
	return ratio([]rune(s1), []rune(s2))
}

// TokenSortRatio is Ratio after sorting the whitespace separated words of
// both strings, so word order does not matter.
func TokenSortRatio(s1, s2 string) float64 {
	return Ratio(sortTokens(s1), sortTokens(s2))
}

// PartialRatio is the best Ratio of the shorter string against any window of
// the longer string with the shorter string's length. Windows sliding over
// either end of the longer string are shortened accordingly.
func PartialRatio(s1, s2 string) float64 {
	short, long := []rune(s1), []rune(s2)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	m := len(short)
	best := 0.0
	for start := 1 - m; start < len(long); start++ {
		lo := max(start, 0)
		hi := min(start+m, len(long))
		if r := ratio(short, long[lo:hi]); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(a, b)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
