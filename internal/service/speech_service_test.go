package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/service"
	"genesis-ai/backend/internal/service/mocks"
	"genesis-ai/backend/internal/speech"
)

// pcmClip stands in for converter output; only the bytes and length matter here.
var pcmClip = &speech.Clip{WAV: []byte("RIFF....WAVEfmt "), Duration: 7 * time.Second}

func setupSpeechService(t *testing.T) (*service.SpeechService, *mocks.MockSpeechClient, *mocks.MockAudioConverter) {
	client := mocks.NewMockSpeechClient(t)
	converter := mocks.NewMockAudioConverter(t)
	return service.NewSpeechService(client, converter), client, converter
}

// sentBody asserts what the speech client received.
func sentBody(t *testing.T, want []byte) func(mock.Arguments) {
	return func(args mock.Arguments) {
		got, err := io.ReadAll(args.Get(1).(io.Reader))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSpeechService_SpeechToText(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, client, converter := setupSpeechService(t)
		converter.On("Convert", ctx, mock.Anything).Return(pcmClip, nil).Once()
		client.On("Transcribe", ctx, mock.Anything, speech.PCMContentType, "pt-PT").
			Run(sentBody(t, pcmClip.WAV)).
			Return(&speech.Transcription{Text: "Olá"}, nil).Once()

		out, err := svc.SpeechToText(ctx, strings.NewReader("RIFF"), "audio/wav", "pt-PT")
		require.NoError(t, err)
		assert.Equal(t, "Olá", out.Text)
		assert.Equal(t, 0.11667, out.AudioDuration)
	})

	t.Run("Webm labelled as wav is converted", func(t *testing.T) {
		svc, client, converter := setupSpeechService(t)
		webm := "\x1a\x45\xdf\xa3\x9f\x42\x86\x81\x01"
		converter.On("Convert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				got, err := io.ReadAll(args.Get(1).(io.Reader))
				require.NoError(t, err)
				assert.Equal(t, webm, string(got))
			}).
			Return(pcmClip, nil).Once()
		client.On("Transcribe", ctx, mock.Anything, speech.PCMContentType, "en-US").
			Run(sentBody(t, pcmClip.WAV)).
			Return(&speech.Transcription{Text: "Hello."}, nil).Once()

		out, err := svc.SpeechToText(ctx, strings.NewReader(webm), "audio/wav", "en-US")
		require.NoError(t, err)
		assert.Equal(t, "Hello.", out.Text)
	})

	t.Run("Duration covers trailing silence", func(t *testing.T) {
		svc, client, converter := setupSpeechService(t)
		// Speech ends at 3s; the clip runs for 10s.
		converter.On("Convert", ctx, mock.Anything).
			Return(&speech.Clip{WAV: []byte("RIFF"), Duration: 10 * time.Second}, nil).Once()
		client.On("Transcribe", ctx, mock.Anything, speech.PCMContentType, "en-US").
			Return(&speech.Transcription{Text: "Short answer."}, nil).Once()

		out, err := svc.SpeechToText(ctx, strings.NewReader("x"), "audio/wav", "en-US")
		require.NoError(t, err)
		assert.Equal(t, 0.16667, out.AudioDuration)
	})

	t.Run("No speech", func(t *testing.T) {
		svc, client, converter := setupSpeechService(t)
		converter.On("Convert", ctx, mock.Anything).
			Return(&speech.Clip{WAV: []byte("RIFF"), Duration: 30 * time.Second}, nil).Once()
		client.On("Transcribe", ctx, mock.Anything, speech.PCMContentType, "en-US").
			Return(&speech.Transcription{}, speech.ErrNoMatch).Once()

		out, err := svc.SpeechToText(ctx, strings.NewReader("x"), "", "en-US")
		require.NoError(t, err)
		assert.Empty(t, out.Text)
		assert.Equal(t, 0.5, out.AudioDuration)
	})

	t.Run("Missing language", func(t *testing.T) {
		svc, _, _ := setupSpeechService(t)
		_, err := svc.SpeechToText(ctx, strings.NewReader("x"), "", "")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Undecodable audio", func(t *testing.T) {
		svc, _, converter := setupSpeechService(t)
		converter.On("Convert", ctx, mock.Anything).
			Return(nil, fmt.Errorf("%w: Invalid data found when processing input", speech.ErrUndecodable)).Once()

		_, err := svc.SpeechToText(ctx, strings.NewReader("x"), "audio/wav", "en-US")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Converter failure", func(t *testing.T) {
		svc, _, converter := setupSpeechService(t)
		converter.On("Convert", ctx, mock.Anything).Return(nil, errors.New("exec: \"ffmpeg\": executable file not found")).Once()

		_, err := svc.SpeechToText(ctx, strings.NewReader("x"), "audio/wav", "en-US")
		require.Error(t, err)
		assert.NotErrorIs(t, err, app_errors.ErrValidation)
		assert.NotErrorIs(t, err, app_errors.ErrUpstream)
	})

	t.Run("Service failure", func(t *testing.T) {
		svc, client, converter := setupSpeechService(t)
		converter.On("Convert", ctx, mock.Anything).Return(pcmClip, nil).Once()
		client.On("Transcribe", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

		_, err := svc.SpeechToText(ctx, strings.NewReader("x"), "", "en-US")
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
	})
}

func TestSpeechService_TextToSpeech(t *testing.T) {
	ctx := context.Background()
	svc, client, _ := setupSpeechService(t)
	client.On("Synthesize", ctx, "Olá", "pt-PT", "").Return([]byte("MP3"), nil).Once()

	audio, err := svc.TextToSpeech(ctx, "Olá", "pt-PT", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("MP3"), audio)
}
