package model

// AnalyzerConfig tunes the paragraph analyzer.
type AnalyzerConfig struct {
	// Minimum fuzzy score (0-100) for a suggestion.
	Threshold int `json:"threshold" env:"MENTIONER_MATCH_THRESHOLD" envDefault:"85"`
	// Words rejected as names in addition to the built-in denylist.
	ExtraDenylist []string `json:"extra_denylist,omitempty" env:"MENTIONER_EXTRA_DENYLIST" envSeparator:","`
}

// DefaultAnalyzerConfig returns the default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Threshold:     85,
		ExtraDenylist: nil,
	}
}
