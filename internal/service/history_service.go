package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/repository"
)

// HistoryWindow is how many past exchanges are included in prompts.
const HistoryWindow = 2

// HistoryService reads and writes conversation documents.
type HistoryService struct {
	repo repository.ConversationRepository
}

func NewHistoryService(repo repository.ConversationRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// GetConversation returns app_errors.ErrNotFound for unknown ids.
func (s *HistoryService) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, app_errors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get conversation %s: %w", conversationID, err)
	}
	return conversation, nil
}

// SaveItem appends item to the conversation, creating it on first save.
// Concurrent saves to the same id are last-write-wins.
func (s *HistoryService) SaveItem(ctx context.Context, conversationID string, item model.ConversationItem) error {
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		conversation = model.NewConversation(conversationID)
		conversation.Append(item)
		err = s.repo.CreateConversation(ctx, conversation)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			if err != nil {
				return fmt.Errorf("could not create conversation %s: %w", conversationID, err)
			}
			return nil
		}
		// Another request created it first; append to theirs.
		conversation, err = s.repo.GetConversation(ctx, conversationID)
	}
	if err != nil {
		return fmt.Errorf("could not get conversation %s: %w", conversationID, err)
	}

	conversation.Append(item)
	if err := s.repo.ReplaceConversation(ctx, conversation); err != nil {
		return fmt.Errorf("could not update conversation %s: %w", conversationID, err)
	}
	return nil
}

// UpdateFeedback sets the feedback of the first item with messageID. Unknown
// conversations and messages are ignored.
func (s *HistoryService) UpdateFeedback(ctx context.Context, conversationID, messageID string, feedback model.Feedback) error {
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		slog.Debug("Feedback for unknown conversation ignored", "conversation_id", conversationID, "message_id", messageID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not get conversation %s: %w", conversationID, err)
	}
	if !conversation.SetFeedback(messageID, feedback) {
		slog.Debug("Feedback for unknown message ignored", "conversation_id", conversationID, "message_id", messageID)
		return nil
	}
	if err := s.repo.ReplaceConversation(ctx, conversation); err != nil {
		return fmt.Errorf("could not update conversation %s: %w", conversationID, err)
	}
	return nil
}

// LastExchangesAsText renders the last n exchanges for a prompt, or "" when
// there are none. Store failures degrade to no history.
func (s *HistoryService) LastExchangesAsText(ctx context.Context, conversationID string, n int) string {
	if conversationID == "" {
		return ""
	}
	conversation, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Could not load conversation history", "conversation_id", conversationID, "error", err)
		}
		return ""
	}

	recent := conversation.LastItems(n)
	if len(recent) == 0 {
		return ""
	}
	lines := []string{"\n# Conversation History:\n"}
	for _, item := range recent {
		lines = append(lines, "- User:\n"+item.Query+"\n", "- You:\n"+item.Reply+"\n")
	}
	lines = append(lines, "\n# End of conversation history.")
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
