package nlp

import (
	"strings"
	"unicode/utf8"
)

// runeOffset converts a byte offset in text to a code point offset.
func runeOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(text) {
		return utf8.RuneCountInString(text)
	}
	return utf8.RuneCountInString(text[:byteOffset])
}

// validByteSpan reports whether [start, end) is a non-empty slice of text
// that begins and ends on rune boundaries.
func validByteSpan(text string, start, end int) bool {
	if start < 0 || end > len(text) || start >= end {
		return false
	}
	if !utf8.RuneStart(text[start]) {
		return false
	}
	return end == len(text) || utf8.RuneStart(text[end])
}

// locate finds word in text and returns its byte span. A hint region that
// matches word wins, then the first occurrence at or after cursor, then the
// first occurrence anywhere, then the bare hint region.
func locate(text, word string, hintStart, hintEnd, cursor int) (int, int, bool) {
	word = strings.TrimSpace(word)
	hinted := validByteSpan(text, hintStart, hintEnd) && strings.TrimSpace(text[hintStart:hintEnd]) != ""

	trimHint := func() (int, int, bool) {
		region := text[hintStart:hintEnd]
		trimmed := strings.TrimSpace(region)
		start := hintStart + strings.Index(region, trimmed)
		return start, start + len(trimmed), true
	}

	if hinted && word != "" && strings.EqualFold(strings.TrimSpace(text[hintStart:hintEnd]), word) {
		return trimHint()
	}

	if word != "" {
		if cursor < 0 || cursor > len(text) {
			cursor = 0
		}
		if i := strings.Index(text[cursor:], word); i >= 0 {
			return cursor + i, cursor + i + len(word), true
		}
		if i := strings.Index(text, word); i >= 0 {
			return i, i + len(word), true
		}
	}

	if hinted {
		return trimHint()
	}
	return 0, 0, false
}
