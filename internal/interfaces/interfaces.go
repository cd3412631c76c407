package interfaces

import (
	"context"
	"io"

	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these contracts instead of concrete services, so
// handlers can be tested with mocks.

// ChatService defines the contract for answering user questions.
type ChatService interface {
	Prepare(ctx context.Context, req *service.CompletionRequest) (*service.Generation, error)
	Stream(ctx context.Context, gen *service.Generation, out chan<- model.StreamChunk)
}

// FeedbackService defines the contract for recording answer ratings.
type FeedbackService interface {
	Submit(ctx context.Context, conversationID, messageID, feedback string) error
}

// SpeechService defines the contract for the speech endpoints.
type SpeechService interface {
	SpeechToText(ctx context.Context, audio io.Reader, contentType, language string) (*service.Transcript, error)
	TextToSpeech(ctx context.Context, text, language, voice string) ([]byte, error)
}
