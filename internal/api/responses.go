package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/model"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the error shape of the speech endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CompletionRequestDTO is the body of POST /genesisai-completions.
type CompletionRequestDTO struct {
	Prompt        string  `json:"prompt" validate:"required" example:"Quais são os serviços disponíveis?"`
	Language      string  `json:"language" validate:"required" example:"pt"`
	AudioDuration float64 `json:"audio_duration" validate:"gte=0" example:"0"`
}

// FeedbackRequestDTO is the body of POST /genesisai-feedback.
type FeedbackRequestDTO struct {
	MessageID string `json:"message_id" validate:"required" example:"chatcmpl-9xYz"`
	Feedback  string `json:"feedback" example:"positive"`
}

// TextToSpeechRequestDTO is the body of POST /genesisai-text-to-speech.
type TextToSpeechRequestDTO struct {
	Text      string `json:"text" example:"Olá!"`
	Language  string `json:"language" example:"pt-PT"`
	VoiceName string `json:"voice_name,omitempty" example:"pt-PT-DuarteNeural"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps business-layer errors to HTTP status codes and formats a standard
// JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already written for the client.
		message = err.Error()
	case errors.Is(err, app_errors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, app_errors.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "An upstream service failed to process the request."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithOperationError reports a failure the request could not recover
// from as {"Error processing <operation>": "<message>"}. Validation errors
// keep their 400 mapping.
func respondWithOperationError(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, app_errors.ErrValidation) {
		respondWithError(w, err)
		return
	}
	slog.Error("Request failed", "operation", operation, "error", err)
	respondWithJSON(w, http.StatusInternalServerError, map[string]string{"Error processing " + operation: err.Error()})
}

// respondWithStatus writes the {status, message} error shape of the speech endpoints.
func respondWithStatus(w http.ResponseWriter, code int, message string) {
	slog.Warn("Responding with error", "status_code", code, "client_message", message)
	respondWithJSON(w, code, StatusResponse{Status: "error", Message: message})
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// writeStreamChunk writes one chunk as a bare JSON object and flushes it.
// It returns an error on write failure, which means the client has gone.
func writeStreamChunk(w http.ResponseWriter, chunk model.StreamChunk) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		slog.Error("Failed to marshal stream chunk", "error", err)
		return nil
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
