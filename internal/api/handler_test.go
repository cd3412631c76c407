// Black-box tests: only the exported surface of the api package is used.
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"genesis-ai/backend/internal/api"
	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/interfaces/mocks"
	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/service"
)

// streamChunks makes a Stream mock emit chunks and close the channel, as the
// real service does.
func streamChunks(chunks ...model.StreamChunk) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		out := args.Get(2).(chan<- model.StreamChunk)
		defer close(out)
		for _, c := range chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}
}

func completionRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/genesisai-completions", strings.NewReader(body))
	req.Header.Set("context-key", "conv-1")
	return req
}

func TestChatHandler_HandleCompletion(t *testing.T) {
	t.Run("Success - streams JSON objects", func(t *testing.T) {
		// ARRANGE
		chatSvc := mocks.NewMockChatService(t)
		handler := api.NewChatHandler(chatSvc)
		gen := &service.Generation{ConversationID: "conv-1", Query: "Olá"}

		chatSvc.On("Prepare", mock.Anything, mock.MatchedBy(func(r *service.CompletionRequest) bool {
			return r.ConversationID == "conv-1" && r.Prompt == "Olá" && r.Language == "pt" && r.AudioDuration == 0.5
		})).Return(gen, nil).Once()
		chatSvc.On("Stream", mock.Anything, gen, mock.Anything).Run(streamChunks(
			model.StreamChunk{Content: "Bom ", MessageID: "m1"},
			model.StreamChunk{Content: "dia", MessageID: "m1"},
		)).Once()

		// ACT
		rr := httptest.NewRecorder()
		handler.HandleCompletion(rr, completionRequest(`{"prompt":"Olá","language":"pt","audio_duration":0.5}`))

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, `{"content":"Bom ","message_id":"m1"}{"content":"dia","message_id":"m1"}`, rr.Body.String())
	})

	t.Run("Failure - missing conversation header", func(t *testing.T) {
		handler := api.NewChatHandler(mocks.NewMockChatService(t))
		req := httptest.NewRequest(http.MethodPost, "/genesisai-completions", strings.NewReader(`{"prompt":"a","language":"en"}`))
		rr := httptest.NewRecorder()

		handler.HandleCompletion(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "context-key")
	})

	t.Run("Failure - invalid JSON", func(t *testing.T) {
		handler := api.NewChatHandler(mocks.NewMockChatService(t))
		rr := httptest.NewRecorder()

		handler.HandleCompletion(rr, completionRequest(`{invalid`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - validation error", func(t *testing.T) {
		// GOAL: An empty prompt never reaches the service.
		handler := api.NewChatHandler(mocks.NewMockChatService(t))
		rr := httptest.NewRecorder()

		handler.HandleCompletion(rr, completionRequest(`{"prompt":"","language":"en"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "prompt is required")
	})

	t.Run("Failure - prepare error", func(t *testing.T) {
		chatSvc := mocks.NewMockChatService(t)
		handler := api.NewChatHandler(chatSvc)
		chatSvc.On("Prepare", mock.Anything, mock.Anything).Return(nil, errors.New("search index unavailable")).Once()
		rr := httptest.NewRecorder()

		handler.HandleCompletion(rr, completionRequest(`{"prompt":"a","language":"en"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "search index unavailable", body["Error processing user question"])
	})

	t.Run("Client disconnect cancels the stream", func(t *testing.T) {
		chatSvc := mocks.NewMockChatService(t)
		handler := api.NewChatHandler(chatSvc)
		gen := &service.Generation{ConversationID: "conv-1"}
		chatSvc.On("Prepare", mock.Anything, mock.Anything).Return(gen, nil).Once()

		var streamErr error
		chatSvc.On("Stream", mock.Anything, gen, mock.Anything).Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			out := args.Get(2).(chan<- model.StreamChunk)
			defer close(out)
			for _, c := range []string{"a", "b", "c"} {
				select {
				case out <- model.StreamChunk{Content: c, MessageID: "m1"}:
				case <-ctx.Done():
				}
			}
			streamErr = ctx.Err()
		}).Once()

		w := &brokenWriter{header: http.Header{}}
		handler.HandleCompletion(w, completionRequest(`{"prompt":"a","language":"en"}`))

		assert.ErrorIs(t, streamErr, context.Canceled)
		assert.Equal(t, 1, w.writes)
	})
}

// brokenWriter fails every body write, like a closed client connection.
type brokenWriter struct {
	header http.Header
	writes int
}

func (w *brokenWriter) Header() http.Header { return w.header }
func (w *brokenWriter) WriteHeader(int)     {}
func (w *brokenWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("broken pipe")
}

func TestFeedbackHandler_HandleFeedback(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		feedbackSvc := mocks.NewMockFeedbackService(t)
		handler := api.NewFeedbackHandler(feedbackSvc)
		feedbackSvc.On("Submit", mock.Anything, "conv-1", "m1", "positive").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/genesisai-feedback", strings.NewReader(`{"message_id":"m1","feedback":"positive"}`))
		req.Header.Set("context-key", "conv-1")
		rr := httptest.NewRecorder()
		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Failure - missing message id", func(t *testing.T) {
		handler := api.NewFeedbackHandler(mocks.NewMockFeedbackService(t))
		req := httptest.NewRequest(http.MethodPost, "/genesisai-feedback", strings.NewReader(`{"feedback":"positive"}`))
		req.Header.Set("context-key", "conv-1")
		rr := httptest.NewRecorder()

		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - store error", func(t *testing.T) {
		feedbackSvc := mocks.NewMockFeedbackService(t)
		handler := api.NewFeedbackHandler(feedbackSvc)
		feedbackSvc.On("Submit", mock.Anything, "conv-1", "m1", "negative").Return(errors.New("redis down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/genesisai-feedback", strings.NewReader(`{"message_id":"m1","feedback":"negative"}`))
		req.Header.Set("context-key", "conv-1")
		rr := httptest.NewRecorder()
		handler.HandleFeedback(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error processing feedback")
	})
}

func multipartAudio(t *testing.T, withFile bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if withFile {
		part, err := mw.CreateFormFile("file", "clip.wav")
		require.NoError(t, err)
		_, err = part.Write([]byte("RIFF-audio"))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "x"))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestSpeechHandler_HandleSpeechToText(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		speechSvc := mocks.NewMockSpeechService(t)
		handler := api.NewSpeechHandler(speechSvc)
		speechSvc.On("SpeechToText", mock.Anything, mock.Anything, mock.Anything, "pt-PT").
			Return(&service.Transcript{Text: "Olá", AudioDuration: 0.11667}, nil).Once()

		body, contentType := multipartAudio(t, true)
		req := httptest.NewRequest(http.MethodPost, "/genesisai-speech", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("language", "pt-PT")
		rr := httptest.NewRecorder()
		handler.HandleSpeechToText(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"text":"Olá","audio_duration":0.11667}`, rr.Body.String())
	})

	t.Run("Failure - no file", func(t *testing.T) {
		handler := api.NewSpeechHandler(mocks.NewMockSpeechService(t))
		body, contentType := multipartAudio(t, false)
		req := httptest.NewRequest(http.MethodPost, "/genesisai-speech", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("language", "pt-PT")
		rr := httptest.NewRecorder()

		handler.HandleSpeechToText(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"status":"error","message":"No audio file provided"}`, rr.Body.String())
	})

	t.Run("Failure - no language header", func(t *testing.T) {
		handler := api.NewSpeechHandler(mocks.NewMockSpeechService(t))
		body, contentType := multipartAudio(t, true)
		req := httptest.NewRequest(http.MethodPost, "/genesisai-speech", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.HandleSpeechToText(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"status":"error","message":"No language header provided"}`, rr.Body.String())
	})

	t.Run("Failure - speech service error", func(t *testing.T) {
		speechSvc := mocks.NewMockSpeechService(t)
		handler := api.NewSpeechHandler(speechSvc)
		speechSvc.On("SpeechToText", mock.Anything, mock.Anything, mock.Anything, "en-US").
			Return(nil, app_errors.ErrUpstream).Once()

		body, contentType := multipartAudio(t, true)
		req := httptest.NewRequest(http.MethodPost, "/genesisai-speech", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("language", "en-US")
		rr := httptest.NewRecorder()
		handler.HandleSpeechToText(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Error processing speech to text")
	})

	t.Run("Failure - undecodable audio", func(t *testing.T) {
		speechSvc := mocks.NewMockSpeechService(t)
		handler := api.NewSpeechHandler(speechSvc)
		speechSvc.On("SpeechToText", mock.Anything, mock.Anything, mock.Anything, "en-US").
			Return(nil, fmt.Errorf("%w: audio could not be decoded", app_errors.ErrValidation)).Once()

		body, contentType := multipartAudio(t, true)
		req := httptest.NewRequest(http.MethodPost, "/genesisai-speech", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("language", "en-US")
		rr := httptest.NewRecorder()
		handler.HandleSpeechToText(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "audio could not be decoded")
	})
}

func TestSpeechHandler_HandleTextToSpeech(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		speechSvc := mocks.NewMockSpeechService(t)
		handler := api.NewSpeechHandler(speechSvc)
		speechSvc.On("TextToSpeech", mock.Anything, "Olá", "pt-PT", "").Return([]byte("ID3mp3"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/genesisai-text-to-speech", strings.NewReader(`{"text":"Olá","language":"pt-PT"}`))
		rr := httptest.NewRecorder()
		handler.HandleTextToSpeech(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="speech.mp3"`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "ID3mp3", rr.Body.String())
	})

	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"No text", `{"language":"pt-PT"}`, "No text provided"},
		{"No language", `{"text":"Olá"}`, "No language provided"},
		{"Invalid JSON", `{`, "No text provided"},
	}
	for _, tc := range testCases {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			handler := api.NewSpeechHandler(mocks.NewMockSpeechService(t))
			req := httptest.NewRequest(http.MethodPost, "/genesisai-text-to-speech", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			handler.HandleTextToSpeech(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.message)
		})
	}
}
