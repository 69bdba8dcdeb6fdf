package model

import "strings"

// PartOfSpeech is a universal part-of-speech tag.
type PartOfSpeech string

const (
	POSNone        PartOfSpeech = ""
	POSProperNoun  PartOfSpeech = "PROPN"
	POSNoun        PartOfSpeech = "NOUN"
	POSPronoun     PartOfSpeech = "PRON"
	POSDeterminer  PartOfSpeech = "DET"
	POSVerb        PartOfSpeech = "VERB"
	POSAdjective   PartOfSpeech = "ADJ"
	POSAdverb      PartOfSpeech = "ADV"
	POSAdposition  PartOfSpeech = "ADP"
	POSNumeral     PartOfSpeech = "NUM"
	POSConjunction PartOfSpeech = "CCONJ"
	POSPunctuation PartOfSpeech = "PUNCT"
	POSUnknown     PartOfSpeech = "X"
)

// ParsePartOfSpeech maps a universal tag (optionally BIO prefixed) onto a
// PartOfSpeech. Unrecognized tags become POSUnknown.
func ParsePartOfSpeech(tag string) PartOfSpeech {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	tag = strings.TrimPrefix(strings.TrimPrefix(tag, "B-"), "I-")

	switch PartOfSpeech(tag) {
	case POSNone:
		return POSNone
	case POSProperNoun, POSNoun, POSPronoun, POSDeterminer, POSVerb, POSAdjective,
		POSAdverb, POSAdposition, POSNumeral, POSConjunction, POSPunctuation, POSUnknown:
		return PartOfSpeech(tag)
	case "AUX":
		return POSVerb
	case "SCONJ":
		return POSConjunction
	}
	return POSUnknown
}

// PartOfSpeechFromPenn maps a Penn Treebank tag onto a universal tag.
func PartOfSpeechFromPenn(tag string) PartOfSpeech {
	switch tag {
	case "NNP", "NNPS":
		return POSProperNoun
	case "NN", "NNS":
		return POSNoun
	case "PRP", "PRP$", "WP", "WP$":
		return POSPronoun
	case "DT", "PDT", "WDT":
		return POSDeterminer
	case "JJ", "JJR", "JJS":
		return POSAdjective
	case "RB", "RBR", "RBS", "WRB":
		return POSAdverb
	case "IN", "TO":
		return POSAdposition
	case "CD":
		return POSNumeral
	case "CC":
		return POSConjunction
	case "":
		return POSNone
	}
	if strings.HasPrefix(tag, "VB") || tag == "MD" {
		return POSVerb
	}
	if strings.IndexFunc(tag, func(r rune) bool { return r >= 'A' && r <= 'Z' }) < 0 {
		return POSPunctuation
	}
	return POSUnknown
}
