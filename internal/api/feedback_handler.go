package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/interfaces"
)

// FeedbackHandler records user ratings of answers.
type FeedbackHandler struct {
	feedback interfaces.FeedbackService
}

func NewFeedbackHandler(feedback interfaces.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// HandleFeedback godoc
// @Summary      Rate an answer
// @Description  "negative" stores Dislike, "positive" stores Like, anything else clears the rating.
// @Tags         chat
// @Accept       json
// @Param        api-key      header  string              true  "Backend API key"
// @Param        context-key  header  string              true  "Conversation id"
// @Param        request      body    FeedbackRequestDTO  true  "Rating"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  map[string]string
// @Router       /genesisai-feedback [post]
func (h *FeedbackHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	conversationID := r.Header.Get(conversationHeader)
	if err := requireConversation(conversationID); err != nil {
		respondWithError(w, err)
		return
	}

	var dto FeedbackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&dto); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.feedback.Submit(r.Context(), conversationID, dto.MessageID, dto.Feedback); err != nil {
		respondWithOperationError(w, "feedback", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
