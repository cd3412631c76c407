package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/interfaces"
	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/service"
)

// ChatHandler serves the question answering endpoint.
type ChatHandler struct {
	chat interfaces.ChatService
}

func NewChatHandler(chat interfaces.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleCompletion godoc
// @Summary      Answer a user question
// @Description  Classifies, grounds and answers the prompt. The body streams one JSON object per model delta.
// @Tags         chat
// @Accept       json
// @Produce      plain
// @Param        api-key      header  string                true  "Backend API key"
// @Param        context-key  header  string                true  "Conversation id"
// @Param        request      body    CompletionRequestDTO  true  "Question"
// @Success      200  {object}  model.StreamChunk
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  map[string]string
// @Router       /genesisai-completions [post]
func (h *ChatHandler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	conversationID := r.Header.Get(conversationHeader)
	if err := requireConversation(conversationID); err != nil {
		respondWithError(w, err)
		return
	}

	var dto CompletionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&dto); err != nil {
		respondWithError(w, err)
		return
	}

	gen, err := h.chat.Prepare(r.Context(), &service.CompletionRequest{
		ConversationID: conversationID,
		Prompt:         dto.Prompt,
		Language:       dto.Language,
		AudioDuration:  dto.AudioDuration,
	})
	if err != nil {
		respondWithOperationError(w, "user question", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	streamChan := make(chan model.StreamChunk)
	go h.chat.Stream(ctx, gen, streamChan)

	disconnected := false
	for chunk := range streamChan {
		if disconnected {
			continue
		}
		if err := writeStreamChunk(w, chunk); err != nil {
			slog.Warn("Client disconnected during stream", "conversation_id", conversationID, "error", err)
			disconnected = true
			// Stream stops generating and closes the channel; keep draining.
			cancel()
		}
	}
}
