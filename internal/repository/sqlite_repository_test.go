package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/repository"
)

func setupSQLiteRepository(t *testing.T) (repository.ConversationRepository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteRepository(db), mockDB
}

func sampleConversation() *model.Conversation {
	conversation := model.NewConversation("session-1")
	conversation.Append(model.ConversationItem{
		MessageID: "msg-1",
		Query:     "Hello",
		Reply:     "Hi there",
		Usage:     model.NewUsageStats(10, 5),
	})
	return conversation
}

func TestSQLiteRepository_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		document, err := json.Marshal(sampleConversation())
		require.NoError(t, err)

		mockDB.ExpectQuery("SELECT document FROM conversations WHERE id = ?").
			WithArgs("session-1").
			WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(string(document)))

		conversation, err := repo.GetConversation(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "session-1", conversation.PartitionKey)
		require.Len(t, conversation.Items, 1)
		assert.Equal(t, 15, conversation.TotalTokens)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		mockDB.ExpectQuery("SELECT document FROM conversations").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetConversation(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSQLiteRepository_CreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		mockDB.ExpectExec("INSERT INTO conversations").
			WithArgs("session-1", "session-1", sqlmock.AnyArg(), 15, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.CreateConversation(ctx, sampleConversation()))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Duplicate id", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		mockDB.ExpectExec("INSERT INTO conversations").
			WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

		err := repo.CreateConversation(ctx, sampleConversation())
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})
}

func TestSQLiteRepository_ReplaceConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		mockDB.ExpectExec("UPDATE conversations SET document").
			WithArgs(sqlmock.AnyArg(), 15, sqlmock.AnyArg(), "session-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.ReplaceConversation(ctx, sampleConversation()))
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Missing row", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepository(t)
		mockDB.ExpectExec("UPDATE conversations SET document").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReplaceConversation(ctx, sampleConversation())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
