package repository

import (
	"context"

	"genesis-ai/backend/internal/model"
)

// ConversationRepository stores whole conversation documents keyed by their id
// (which is also their partition key). Writes replace the full document, so
// concurrent writers on the same id resolve as last-write-wins.
type ConversationRepository interface {
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	CreateConversation(ctx context.Context, conversation *model.Conversation) error
	ReplaceConversation(ctx context.Context, conversation *model.Conversation) error
}
