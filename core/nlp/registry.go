package nlp

import (
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/siherrmann/mentioner/model"
)

// RegistryConfig describes which taggers LoadRegistry tries to load.
type RegistryConfig struct {
	ModelDir string `env:"MENTIONER_MODELS_DIR" envDefault:"./models"`
	// EnableProse loads the built-in English tagger.
	EnableProse bool `env:"MENTIONER_ENABLE_PROSE" envDefault:"true"`
	// EnglishNERModel replaces the built-in English tagger with a hugot model.
	EnglishNERModel    string `env:"MENTIONER_EN_NER_MODEL"`
	EnglishNEROnnxFile string `env:"MENTIONER_EN_NER_ONNX" envDefault:"onnx/model.onnx"`
	EnglishPOSModel    string `env:"MENTIONER_EN_POS_MODEL"`
	EnglishPOSOnnxFile string `env:"MENTIONER_EN_POS_ONNX" envDefault:"onnx/model.onnx"`
	GermanNERModel     string `env:"MENTIONER_DE_NER_MODEL" envDefault:"Xenova/bert-base-multilingual-cased-ner-hrl"`
	GermanNEROnnxFile  string `env:"MENTIONER_DE_NER_ONNX" envDefault:"onnx/model.onnx"`
	GermanPOSModel     string `env:"MENTIONER_DE_POS_MODEL"`
	GermanPOSOnnxFile  string `env:"MENTIONER_DE_POS_ONNX" envDefault:"onnx/model.onnx"`
}

// DefaultRegistryConfig returns the configuration used without environment.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		ModelDir:           "./models",
		EnableProse:        true,
		EnglishNEROnnxFile: "onnx/model.onnx",
		EnglishPOSOnnxFile: "onnx/model.onnx",
		GermanNERModel:     "Xenova/bert-base-multilingual-cased-ner-hrl",
		GermanNEROnnxFile:  "onnx/model.onnx",
		GermanPOSOnnxFile:  "onnx/model.onnx",
	}
}

// Registry maps languages to loaded taggers. It is immutable after
// construction and safe for concurrent use. A nil Registry has no taggers.
type Registry struct {
	taggers map[model.Language]Tagger
}

// NewRegistry creates a registry of the available taggers.
func NewRegistry(taggers map[model.Language]Tagger) *Registry {
	r := &Registry{taggers: make(map[model.Language]Tagger, len(taggers))}
	for lang, tagger := range taggers {
		if tagger != nil && tagger.Available() {
			r.taggers[lang] = tagger
		}
	}
	return r
}

// LoadRegistry loads every configured tagger once. Languages whose model
// cannot be loaded are logged as a warning and left unavailable.
func LoadRegistry(config RegistryConfig, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	taggers := map[model.Language]Tagger{}

	if config.EnglishNERModel != "" {
		tagger, err := NewHugotTagger(HugotTaggerConfig{
			ModelDir:    config.ModelDir,
			NERModel:    config.EnglishNERModel,
			NEROnnxFile: config.EnglishNEROnnxFile,
			POSModel:    config.EnglishPOSModel,
			POSOnnxFile: config.EnglishPOSOnnxFile,
		})
		if err != nil {
			logger.Warn("English NER model not available", slog.String("model", config.EnglishNERModel), slog.String("error", err.Error()))
		} else {
			taggers[model.LanguageEnglish] = tagger
		}
	}
	if _, ok := taggers[model.LanguageEnglish]; !ok && config.EnableProse {
		taggers[model.LanguageEnglish] = NewProseTagger()
	}

	if config.GermanNERModel != "" {
		tagger, err := NewHugotTagger(HugotTaggerConfig{
			ModelDir:    config.ModelDir,
			NERModel:    config.GermanNERModel,
			NEROnnxFile: config.GermanNEROnnxFile,
			POSModel:    config.GermanPOSModel,
			POSOnnxFile: config.GermanPOSOnnxFile,
		})
		if err != nil {
			logger.Warn("German NER model not available", slog.String("model", config.GermanNERModel), slog.String("error", err.Error()))
		} else {
			taggers[model.LanguageGerman] = tagger
		}
	}

	registry := NewRegistry(taggers)
	for _, lang := range model.SupportedLanguages {
		if !registry.Available(lang) {
			logger.Warn("NLP features disabled for language", slog.String("language", string(lang)))
		}
	}
	warnMissingPOS(registry, logger)
	logger.Info("Loaded NLP registry", slog.Any("languages", registry.Languages()))

	return registry
}

// posReporter is implemented by taggers whose POS hints are optional.
type posReporter interface {
	HasPOS() bool
}

// warnMissingPOS logs the languages whose tagger returns no POS hints.
// Their spans are only checked against the denylist and the casing rule.
func warnMissingPOS(registry *Registry, logger *slog.Logger) {
	for _, lang := range registry.Languages() {
		if reporter, ok := registry.Tagger(lang).(posReporter); ok && !reporter.HasPOS() {
			logger.Warn("No POS model loaded, common nouns are only filtered by the denylist", slog.String("language", string(lang)))
		}
	}
}

// Tagger returns the tagger for lang, or an UnavailableTagger.
func (r *Registry) Tagger(lang model.Language) Tagger {
	if r == nil {
		return UnavailableTagger{}
	}
	if tagger, ok := r.taggers[lang]; ok {
		return tagger
	}
	return UnavailableTagger{}
}

// Available reports whether a tagger is loaded for lang.
func (r *Registry) Available(lang model.Language) bool {
	return r.Tagger(lang).Available()
}

// Languages returns the languages with a loaded tagger, sorted.
func (r *Registry) Languages() []model.Language {
	if r == nil {
		return []model.Language{}
	}
	langs := make([]model.Language, 0, len(r.taggers))
	for lang := range r.taggers {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Close releases taggers holding native resources.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, tagger := range r.taggers {
		if closer, ok := tagger.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
