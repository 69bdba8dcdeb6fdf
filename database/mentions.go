package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/siherrmann/mentioner/helper"
	"github.com/siherrmann/mentioner/model"
	loadSql "github.com/siherrmann/mentioner/sql"
)

// MentionsDBHandlerFunctions defines the interface for mention database operations.
type MentionsDBHandlerFunctions interface {
	InsertMention(ctx context.Context, mention *model.Mention) error
	SelectMention(ctx context.Context, id int64) (*model.Mention, error)
	SelectMentionsByScene(ctx context.Context, sceneID int64) ([]*model.Mention, error)
	DeleteMention(ctx context.Context, id int64) error
}

// MentionsDBHandler handles mentions linking scene text to characters and
// world nodes
type MentionsDBHandler struct {
	db *helper.Database
}

// NewMentionsDBHandler creates a new mentions database handler.
// It loads the mention SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewMentionsDBHandler(db *helper.Database, force bool) (*MentionsDBHandler, error) {
	if db == nil || db.Instance == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	mentionsDbHandler := &MentionsDBHandler{
		db: db,
	}

	err := loadSql.LoadMentionsSql(mentionsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load mentions sql", err)
	}

	err = mentionsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized MentionsDBHandler")

	return mentionsDbHandler, nil
}

// CreateTable creates the 'mentions' table and its indexes if they do not
// exist yet.
func (h *MentionsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_mentions();`)
	if err != nil {
		return helper.NewError("init mentions", err)
	}

	h.db.Logger.Info("Checked/created table mentions")

	return nil
}

// InsertMention inserts a mention and fills its generated fields.
func (h *MentionsDBHandler) InsertMention(ctx context.Context, mention *model.Mention) error {
	if mention == nil {
		return helper.NewError("validate mention", fmt.Errorf("mention is nil"))
	}
	if mention.CharacterID == nil && mention.WorldNodeID == nil {
		return helper.NewError("validate mention", fmt.Errorf("mention must link a character or a world node"))
	}

	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_mention($1, $2, $3, $4, $5, $6, $7)`,
		mention.SceneID,
		mention.Text,
		string(mention.EntityType),
		mention.CharacterID,
		mention.WorldNodeID,
		mention.EntityName,
		mention.Metadata,
	)

	err := scanMention(row, mention)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectMention retrieves a mention by ID
func (h *MentionsDBHandler) SelectMention(ctx context.Context, id int64) (*model.Mention, error) {
	mention := &model.Mention{}
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_mention($1)`,
		id,
	)

	err := scanMention(row, mention)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return mention, nil
}

// SelectMentionsByScene retrieves all mentions of a scene in insertion order
func (h *MentionsDBHandler) SelectMentionsByScene(ctx context.Context, sceneID int64) ([]*model.Mention, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_mentions_by_scene($1)`,
		sceneID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var mentions []*model.Mention
	for rows.Next() {
		mention := &model.Mention{}
		err := scanMention(rows, mention)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		mentions = append(mentions, mention)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return mentions, nil
}

// DeleteMention deletes a mention by ID
func (h *MentionsDBHandler) DeleteMention(ctx context.Context, id int64) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_mention($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMention(row rowScanner, mention *model.Mention) error {
	var entityType string
	var characterID, worldNodeID sql.NullInt64

	err := row.Scan(
		&mention.ID,
		&mention.RID,
		&mention.SceneID,
		&mention.Text,
		&entityType,
		&characterID,
		&worldNodeID,
		&mention.EntityName,
		&mention.Metadata,
		&mention.CreatedAt,
	)
	if err != nil {
		return err
	}

	mention.EntityType = model.Label(entityType)
	mention.CharacterID = nullInt64Ptr(characterID)
	mention.WorldNodeID = nullInt64Ptr(worldNodeID)

	return nil
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
