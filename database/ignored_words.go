package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/sql"
)

// IgnoredWord is a word a project suppresses from entity extraction.
type IgnoredWord struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Word      string    `json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// IgnoredWordsDBHandlerFunctions defines the interface for ignore-list database operations.
type IgnoredWordsDBHandlerFunctions interface {
	InsertIgnoredWord(ctx context.Context, projectID int64, word string) (*IgnoredWord, error)
	DeleteIgnoredWord(ctx context.Context, projectID int64, word string) (bool, error)
	SelectIgnoredWords(ctx context.Context, projectID int64) ([]*IgnoredWord, error)
	SelectIgnoredWordStrings(ctx context.Context, projectID int64) ([]string, error)
}

// IgnoredWordsDBHandler handles per-project ignore-lists
type IgnoredWordsDBHandler struct {
	db *helper.Database
}

// NewIgnoredWordsDBHandler creates a new ignored words database handler.
// It loads the ignore-list SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewIgnoredWordsDBHandler(db *helper.Database, force bool) (*IgnoredWordsDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	ignoredWordsDbHandler := &IgnoredWordsDBHandler{
		db: db,
	}

	err := sql.LoadIgnoredWordsSql(ignoredWordsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load ignored words sql", err)
	}

	err = ignoredWordsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized IgnoredWordsDBHandler")

	return ignoredWordsDbHandler, nil
}

// CreateTable creates the 'ignored_words' table and its unique index
// if they do not exist yet.
func (h *IgnoredWordsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_ignored_words();`)
	if err != nil {
		return helper.NewError("init ignored words", err)
	}

	h.db.Logger.Info("Checked/created table ignored_words")

	return nil
}

// InsertIgnoredWord adds word to the project's ignore-list. Adding a word
// that only differs in case returns the existing entry.
func (h *IgnoredWordsDBHandler) InsertIgnoredWord(ctx context.Context, projectID int64, word string) (*IgnoredWord, error) {
	if strings.TrimSpace(word) == "" {
		return nil, helper.NewError("validate word", fmt.Errorf("word is empty"))
	}

	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_ignored_word($1, $2)`,
		projectID,
		word,
	)

	ignoredWord := &IgnoredWord{}
	err := row.Scan(
		&ignoredWord.ID,
		&ignoredWord.ProjectID,
		&ignoredWord.Word,
		&ignoredWord.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return ignoredWord, nil
}

// DeleteIgnoredWord removes word (case-insensitively) from the project's
// ignore-list and reports whether it was present.
func (h *IgnoredWordsDBHandler) DeleteIgnoredWord(ctx context.Context, projectID int64, word string) (bool, error) {
	var deleted int
	err := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT delete_ignored_word($1, $2)`,
		projectID,
		word,
	).Scan(&deleted)
	if err != nil {
		return false, helper.NewError("scan", err)
	}
	return deleted > 0, nil
}

// SelectIgnoredWords returns the project's ignore-list in insertion order.
func (h *IgnoredWordsDBHandler) SelectIgnoredWords(ctx context.Context, projectID int64) ([]*IgnoredWord, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_ignored_words($1)`,
		projectID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var ignoredWords []*IgnoredWord
	for rows.Next() {
		ignoredWord := &IgnoredWord{}
		err := rows.Scan(
			&ignoredWord.ID,
			&ignoredWord.ProjectID,
			&ignoredWord.Word,
			&ignoredWord.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		ignoredWords = append(ignoredWords, ignoredWord)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return ignoredWords, nil
}

// SelectIgnoredWordStrings returns only the words of the project's ignore-list.
func (h *IgnoredWordsDBHandler) SelectIgnoredWordStrings(ctx context.Context, projectID int64) ([]string, error) {
	ignoredWords, err := h.SelectIgnoredWords(ctx, projectID)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(ignoredWords))
	for _, w := range ignoredWords {
		words = append(words, w.Word)
	}
	return words, nil
}
