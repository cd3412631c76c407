package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/repository"
	mock_repo "genesis-ai/backend/internal/repository/mocks"
	"genesis-ai/backend/internal/service"
)

func item(id, query, reply string, prompt, completion int) model.ConversationItem {
	return model.ConversationItem{
		MessageID: id,
		Date:      "2025-01-01T10:00:00.000000",
		Query:     query,
		Reply:     reply,
		Usage:     model.NewUsageStats(prompt, completion),
	}
}

func conversationWith(id string, items ...model.ConversationItem) *model.Conversation {
	c := model.NewConversation(id)
	for _, it := range items {
		c.Append(it)
	}
	return c
}

func setupHistoryService(t *testing.T) (*service.HistoryService, *mock_repo.MockConversationRepository) {
	repo := mock_repo.NewMockConversationRepository(t)
	return service.NewHistoryService(repo), repo
}

func TestHistoryService_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.GetConversation(ctx, "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Found", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		stored := conversationWith("session-1", item("m1", "Q", "R", 1, 1))
		repo.On("GetConversation", ctx, "session-1").Return(stored, nil).Once()

		got, err := svc.GetConversation(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})
}

func TestHistoryService_SaveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates the conversation on first save", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "session-1").Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateConversation", ctx, mock.MatchedBy(func(c *model.Conversation) bool {
			return c.ID == "session-1" && c.PartitionKey == "session-1" && len(c.Items) == 1 && c.TotalTokens == 15
		})).Return(nil).Once()

		require.NoError(t, svc.SaveItem(ctx, "session-1", item("m1", "Q", "R", 10, 5)))
	})

	t.Run("Appends and keeps the total in sync", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		stored := conversationWith("session-1", item("m1", "Q1", "R1", 10, 5))
		repo.On("GetConversation", ctx, "session-1").Return(stored, nil).Once()
		repo.On("ReplaceConversation", ctx, mock.MatchedBy(func(c *model.Conversation) bool {
			return len(c.Items) == 2 && c.Items[1].MessageID == "m2" && c.TotalTokens == 15+30
		})).Return(nil).Once()

		require.NoError(t, svc.SaveItem(ctx, "session-1", item("m2", "Q2", "R2", 20, 10)))
	})

	t.Run("Lost creation race appends to the winner", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		winner := conversationWith("session-1", item("other", "Q", "R", 1, 1))
		repo.On("GetConversation", ctx, "session-1").Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateConversation", ctx, mock.Anything).Return(repository.ErrAlreadyExists).Once()
		repo.On("GetConversation", ctx, "session-1").Return(winner, nil).Once()
		repo.On("ReplaceConversation", ctx, mock.MatchedBy(func(c *model.Conversation) bool {
			return len(c.Items) == 2 && c.TotalTokens == 2+15
		})).Return(nil).Once()

		require.NoError(t, svc.SaveItem(ctx, "session-1", item("m1", "Q", "R", 10, 5)))
	})

	t.Run("Store failure", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "session-1").Return(nil, errors.New("connection refused")).Once()

		err := svc.SaveItem(ctx, "session-1", item("m1", "Q", "R", 1, 1))
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestHistoryService_UpdateFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent by match", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		stored := conversationWith("session-1", item("m1", "Q1", "R1", 1, 1), item("m2", "Q2", "R2", 1, 1))
		repo.On("GetConversation", ctx, "session-1").Return(stored, nil).Twice()
		repo.On("ReplaceConversation", ctx, stored).Return(nil).Twice()

		require.NoError(t, svc.UpdateFeedback(ctx, "session-1", "m2", model.FeedbackLike))
		first := *stored
		first.Items = append([]model.ConversationItem(nil), stored.Items...)
		require.NoError(t, svc.UpdateFeedback(ctx, "session-1", "m2", model.FeedbackLike))

		assert.Equal(t, first, *stored)
		assert.Equal(t, model.FeedbackLike, stored.Items[1].Feedback)
		assert.Equal(t, model.FeedbackNone, stored.Items[0].Feedback)
	})

	t.Run("Unknown message leaves the conversation unchanged", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		stored := conversationWith("session-1", item("m1", "Q1", "R1", 1, 1))
		repo.On("GetConversation", ctx, "session-1").Return(stored, nil).Once()

		require.NoError(t, svc.UpdateFeedback(ctx, "session-1", "nope", model.FeedbackDislike))
		assert.Equal(t, model.FeedbackNone, stored.Items[0].Feedback)
		repo.AssertNotCalled(t, "ReplaceConversation", mock.Anything, mock.Anything)
	})

	t.Run("Unknown conversation is ignored", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		assert.NoError(t, svc.UpdateFeedback(ctx, "missing", "m1", model.FeedbackLike))
	})
}

func TestHistoryService_LastExchangesAsText(t *testing.T) {
	ctx := context.Background()

	t.Run("Single exchange", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "session-1").Return(conversationWith("session-1", item("m1", "Q1", "R1", 1, 1)), nil).Once()

		expected := "# Conversation History:\n\n- User:\nQ1\n\n- You:\nR1\n\n\n# End of conversation history."
		assert.Equal(t, expected, svc.LastExchangesAsText(ctx, "session-1", service.HistoryWindow))
	})

	t.Run("Only the last two exchanges", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "session-1").Return(conversationWith("session-1",
			item("m1", "Q1", "R1", 1, 1),
			item("m2", "Q2", "R2", 1, 1),
			item("m3", "Q3", "R3", 1, 1),
		), nil).Once()

		text := svc.LastExchangesAsText(ctx, "session-1", service.HistoryWindow)
		assert.NotContains(t, text, "Q1")
		assert.Contains(t, text, "- User:\nQ2\n")
		assert.Contains(t, text, "- You:\nR2\n")
		assert.Contains(t, text, "- User:\nQ3\n")
		assert.Contains(t, text, "- You:\nR3\n")
	})

	t.Run("Nonexistent conversation", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		assert.Equal(t, "", svc.LastExchangesAsText(ctx, "missing", service.HistoryWindow))
	})

	t.Run("Store failure degrades to no history", func(t *testing.T) {
		svc, repo := setupHistoryService(t)
		repo.On("GetConversation", ctx, "session-1").Return(nil, errors.New("timeout")).Once()

		assert.Equal(t, "", svc.LastExchangesAsText(ctx, "session-1", service.HistoryWindow))
	})

	t.Run("Empty id", func(t *testing.T) {
		svc, _ := setupHistoryService(t)
		assert.Equal(t, "", svc.LastExchangesAsText(ctx, "", service.HistoryWindow))
	})
}
