package model

import "strings"

// Language is a supported text language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// SupportedLanguages lists the languages the analyzer knows about.
var SupportedLanguages = []Language{LanguageEnglish, LanguageGerman}

// ParseLanguage accepts codes like "en", "DE", "en-US" or "de_DE".
func ParseLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	for _, l := range SupportedLanguages {
		if string(l) == code {
			return l, true
		}
	}
	return "", false
}
