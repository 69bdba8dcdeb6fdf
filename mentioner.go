package mentioner

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/mentioner/core/analysis"
	"github.com/siherrmann/mentioner/core/nlp"
	"github.com/siherrmann/mentioner/database"
	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/model"
	loadSql "github.com/siherrmann/mentioner/sql"
)

// Mentioner provides a unified interface to paragraph analysis and the
// optional mention storage
type Mentioner struct {
	Registry *nlp.Registry
	Analyzer *analysis.Analyzer
	// Optional, set by WithDatabase
	DB           *helper.Database
	IgnoredWords *database.IgnoredWordsDBHandler
	Mentions     *database.MentionsDBHandler
	// Logging
	log *slog.Logger
}

// NewMentioner creates a new Mentioner analyzing with the registry's taggers
func NewMentioner(registry *nlp.Registry, config model.AnalyzerConfig) *Mentioner {
	return &Mentioner{
		Registry: registry,
		Analyzer: analysis.NewDefaultAnalyzer(registry, config),
		log:      helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
}

// NewMentionerFromEnv loads .env files, reads the registry and analyzer
// configuration from the environment and loads all configured taggers.
// A nil logger logs to stdout.
func NewMentionerFromEnv(logger *slog.Logger) (*Mentioner, error) {
	err := helper.LoadEnvFiles()
	if err != nil {
		return nil, err
	}

	registryConfig := nlp.DefaultRegistryConfig()
	err = helper.ParseEnv(&registryConfig)
	if err != nil {
		return nil, helper.NewError("registry configuration", err)
	}

	analyzerConfig := model.DefaultAnalyzerConfig()
	err = helper.ParseEnv(&analyzerConfig)
	if err != nil {
		return nil, helper.NewError("analyzer configuration", err)
	}

	if logger == nil {
		logger = helper.NewLogger(os.Stdout, slog.LevelInfo)
	}
	m := NewMentioner(nlp.LoadRegistry(registryConfig, logger), analyzerConfig)
	m.log = logger

	return m, nil
}

// SetLogger replaces the logger
func (m *Mentioner) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.log = logger
	}
}

// WithDatabase connects to Postgres and creates the ignore-list and mention handlers
func (m *Mentioner) WithDatabase(dbConfig *helper.DatabaseConfiguration) error {
	db, err := helper.NewDatabase("mentioner", dbConfig, m.log)
	if err != nil {
		return helper.NewError("connect database", err)
	}

	err = loadSql.Init(db.Instance)
	if err != nil {
		db.Close()
		return helper.NewError("initialize database functions", err)
	}

	// force=false to not reload if functions already exist
	ignoredWords, err := database.NewIgnoredWordsDBHandler(db, false)
	if err != nil {
		db.Close()
		return helper.NewError("create ignored words handler", err)
	}

	mentions, err := database.NewMentionsDBHandler(db, false)
	if err != nil {
		db.Close()
		return helper.NewError("create mentions handler", err)
	}

	m.DB = db
	m.IgnoredWords = ignoredWords
	m.Mentions = mentions

	return nil
}

// HasDatabase reports whether WithDatabase attached the handlers
func (m *Mentioner) HasDatabase() bool {
	return m.DB != nil && m.IgnoredWords != nil && m.Mentions != nil
}

// Close releases the taggers and closes the database connection
func (m *Mentioner) Close() error {
	err := m.Registry.Close()
	if m.DB != nil {
		if dbErr := m.DB.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

// Languages returns the languages analysis is available for
func (m *Mentioner) Languages() []model.Language {
	return m.Registry.Languages()
}

// AnalyzeParagraph extracts the entities of a paragraph and suggests matching
// characters and locations. It does not touch the database.
func (m *Mentioner) AnalyzeParagraph(text string, lang model.Language, characters []model.Character, locations []model.Location, ignoredWords []string) (*model.AnalysisResult, error) {
	result, err := m.Analyzer.Analyze(text, lang, characters, locations, ignoredWords)
	if err != nil {
		return nil, helper.NewError("analyze paragraph", err)
	}

	m.log.Debug("Analyzed paragraph", slog.String("language", string(lang)), slog.Int("entities", len(result.Entities)), slog.Int("suggestions", len(result.Suggestions)))

	return result, nil
}

// AnalyzeScene analyzes the text of a scene with the project's ignore-list
// and merges the scene's linked mentions into the result.
// Without a database it behaves like AnalyzeParagraph without ignored words.
func (m *Mentioner) AnalyzeScene(ctx context.Context, projectID int64, sceneID int64, text string, lang model.Language, characters []model.Character, locations []model.Location) (*model.SceneAnalysis, error) {
	var ignoredWords []string
	var linked []*model.Mention

	if m.HasDatabase() {
		var err error
		ignoredWords, err = m.IgnoredWords.SelectIgnoredWordStrings(ctx, projectID)
		if err != nil {
			return nil, helper.NewError("select ignored words", err)
		}

		linked, err = m.Mentions.SelectMentionsByScene(ctx, sceneID)
		if err != nil {
			return nil, helper.NewError("select mentions", err)
		}
	}

	result, err := m.AnalyzeParagraph(text, lang, characters, locations, ignoredWords)
	if err != nil {
		return nil, err
	}

	return &model.SceneAnalysis{
		AnalysisResult: result,
		Linked:         analysis.MergeLinkedMentions(text, linked, result.Entities),
	}, nil
}

// IgnoreWord adds word to the project's ignore-list
func (m *Mentioner) IgnoreWord(ctx context.Context, projectID int64, word string) (*database.IgnoredWord, error) {
	if !m.HasDatabase() {
		return nil, helper.NewError("ignore word", fmt.Errorf("database not set, use WithDatabase() first"))
	}

	ignoredWord, err := m.IgnoredWords.InsertIgnoredWord(ctx, projectID, word)
	if err != nil {
		return nil, helper.NewError("insert ignored word", err)
	}

	m.log.Info("Ignored word", slog.Int64("project_id", projectID), slog.String("word", ignoredWord.Word))

	return ignoredWord, nil
}

// UnignoreWord removes word from the project's ignore-list
func (m *Mentioner) UnignoreWord(ctx context.Context, projectID int64, word string) (bool, error) {
	if !m.HasDatabase() {
		return false, helper.NewError("unignore word", fmt.Errorf("database not set, use WithDatabase() first"))
	}

	deleted, err := m.IgnoredWords.DeleteIgnoredWord(ctx, projectID, word)
	if err != nil {
		return false, helper.NewError("delete ignored word", err)
	}
	return deleted, nil
}

// AcceptSuggestion stores a suggestion as a linked mention of the scene
func (m *Mentioner) AcceptSuggestion(ctx context.Context, sceneID int64, suggestion model.MatchSuggestion) (*model.Mention, error) {
	if !m.HasDatabase() {
		return nil, helper.NewError("accept suggestion", fmt.Errorf("database not set, use WithDatabase() first"))
	}
	if suggestion.MatchedID == nil {
		return nil, helper.NewError("accept suggestion", fmt.Errorf("suggestion %q has no entity id", suggestion.MentionText))
	}

	mention := model.NewMentionFromSuggestion(sceneID, suggestion)
	err := m.Mentions.InsertMention(ctx, mention)
	if err != nil {
		return nil, helper.NewError("insert mention", err)
	}

	m.log.Info("Linked mention", slog.Int64("scene_id", sceneID), slog.String("text", mention.Text), slog.String("entity", mention.EntityName))

	return mention, nil
}
