package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"genesis-ai/backend/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository stores each conversation as one JSON document under
// `conversation:<id>`.
func NewRedisRepository(rdb *redis.Client) ConversationRepository {
	return &redisRepository{rdb: rdb}
}

func (r *redisRepository) conversationKey(id string) string { return fmt.Sprintf("conversation:%s", id) }

func (r *redisRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	raw, err := r.rdb.Get(ctx, r.conversationKey(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not read conversation %s: %w", conversationID, err)
	}
	var conversation model.Conversation
	if err := json.Unmarshal(raw, &conversation); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", conversationID, err)
	}
	return &conversation, nil
}

func (r *redisRepository) CreateConversation(ctx context.Context, conversation *model.Conversation) error {
	raw, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	created, err := r.rdb.SetNX(ctx, r.conversationKey(conversation.ID), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("could not create conversation %s: %w", conversation.ID, err)
	}
	if !created {
		return ErrAlreadyExists
	}
	return nil
}

func (r *redisRepository) ReplaceConversation(ctx context.Context, conversation *model.Conversation) error {
	raw, err := json.Marshal(conversation)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	replaced, err := r.rdb.SetXX(ctx, r.conversationKey(conversation.ID), raw, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("could not replace conversation %s: %w", conversation.ID, err)
	}
	if !replaced {
		return ErrNotFound
	}
	return nil
}
