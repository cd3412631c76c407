package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"genesis-ai/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository keeps conversation documents in the `conversations` table
// created by the database migrations.
func NewSQLiteRepository(db *sql.DB) ConversationRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT document FROM conversations WHERE id = ?"
	var document string
	if err := r.db.QueryRowContext(ctx, query, conversationID).Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read conversation %s: %w", conversationID, err)
	}
	var conversation model.Conversation
	if err := json.Unmarshal([]byte(document), &conversation); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", conversationID, err)
	}
	return &conversation, nil
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	document, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	query := `
		INSERT INTO conversations (id, partition_key, document, total_tokens, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		conversation.ID,
		conversation.PartitionKey,
		string(document),
		conversation.TotalTokens,
		time.Now().UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrAlreadyExists
		}
		return fmt.Errorf("could not insert conversation %s: %w", conversation.ID, err)
	}
	return nil
}

func (r *sqliteRepository) ReplaceConversation(ctx context.Context, conversation *model.Conversation) error {
	document, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	query := "UPDATE conversations SET document = ?, total_tokens = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, string(document), conversation.TotalTokens, time.Now().UTC(), conversation.ID)
	if err != nil {
		return fmt.Errorf("could not update conversation %s: %w", conversation.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
