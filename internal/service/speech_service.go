package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	app_errors "genesis-ai/backend/internal/errors"
	"genesis-ai/backend/internal/speech"
)

// SpeechClient is the managed speech service.
type SpeechClient interface {
	Transcribe(ctx context.Context, audio io.Reader, contentType, language string) (*speech.Transcription, error)
	Synthesize(ctx context.Context, text, locale, voice string) ([]byte, error)
}

// AudioConverter normalizes uploads for recognition.
type AudioConverter interface {
	Convert(ctx context.Context, audio io.Reader) (*speech.Clip, error)
}

// Transcript is the speech-to-text response. AudioDuration is in minutes.
type Transcript struct {
	Text          string  `json:"text"`
	AudioDuration float64 `json:"audio_duration"`
}

type SpeechService struct {
	client    SpeechClient
	converter AudioConverter
}

func NewSpeechService(client SpeechClient, converter AudioConverter) *SpeechService {
	return &SpeechService{client: client, converter: converter}
}

// minutes rounds d to five decimal places of a minute.
func minutes(d time.Duration) float64 {
	return math.Round(d.Minutes()*1e5) / 1e5
}

// SpeechToText transcribes one audio clip. The upload is re-encoded as mono
// PCM WAV whatever contentType claims, and AudioDuration is the length of the
// whole clip. Silence yields an empty text.
func (s *SpeechService) SpeechToText(ctx context.Context, audio io.Reader, contentType, language string) (*Transcript, error) {
	if language == "" {
		return nil, fmt.Errorf("%w: no language header provided", app_errors.ErrValidation)
	}
	clip, err := s.converter.Convert(ctx, audio)
	if errors.Is(err, speech.ErrUndecodable) {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrValidation, err)
	}
	if err != nil {
		return nil, fmt.Errorf("could not convert audio: %w", err)
	}
	slog.Debug("Audio converted", "declared_type", contentType, "bytes", len(clip.WAV), "duration", clip.Duration.String())
	length := minutes(clip.Duration)

	result, err := s.client.Transcribe(ctx, bytes.NewReader(clip.WAV), speech.PCMContentType, language)
	if errors.Is(err, speech.ErrNoMatch) {
		slog.Info("No speech recognized", "language", language)
		return &Transcript{AudioDuration: length}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	return &Transcript{Text: result.Text, AudioDuration: length}, nil
}

// TextToSpeech returns MP3 audio. An empty voice picks the language default.
func (s *SpeechService) TextToSpeech(ctx context.Context, text, language, voice string) ([]byte, error) {
	audio, err := s.client.Synthesize(ctx, text, language, voice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	return audio, nil
}
