// Package speech wraps the Azure Speech REST endpoints for short-audio
// recognition and neural text-to-speech.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	outputFormat = "audio-16khz-32kbitrate-mono-mp3"
	defaultVoice = "pt-PT-DuarteNeural"
)

var voices = map[string]string{
	"pt-PT": "pt-PT-DuarteNeural",
	"pt-BR": "pt-BR-AntonioNeural",
	"en-US": "en-US-JennyNeural",
	"en-GB": "en-GB-RyanNeural",
	"es-ES": "es-ES-AlvaroNeural",
	"fr-FR": "fr-FR-DeniseNeural",
}

// ErrNoMatch is returned when the service heard no recognizable speech.
var ErrNoMatch = errors.New("speech: no speech recognized")

// VoiceFor returns the neural voice used for a locale.
func VoiceFor(locale string) string {
	if v, ok := voices[locale]; ok {
		return v
	}
	return defaultVoice
}

// Transcription is the outcome of one recognition request.
type Transcription struct {
	Text string
}

// Client calls the regional speech endpoints. STTBaseURL and TTSBaseURL
// override the regional hosts.
type Client struct {
	http       *http.Client
	key        string
	STTBaseURL string
	TTSBaseURL string
}

// NewClient creates a client; recognition runs in sttRegion and synthesis in
// ttsRegion.
func NewClient(key, sttRegion, ttsRegion string) *Client {
	return &Client{
		http:       &http.Client{Timeout: 60 * time.Second},
		key:        key,
		STTBaseURL: fmt.Sprintf("https://%s.stt.speech.microsoft.com", sttRegion),
		TTSBaseURL: fmt.Sprintf("https://%s.tts.speech.microsoft.com", ttsRegion),
	}
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Transcribe sends audio in one request and returns once the service has
// produced its final result. contentType describes the audio; it defaults to
// the PCM WAV produced by FFmpegConverter.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, contentType, language string) (*Transcription, error) {
	q := url.Values{}
	q.Set("language", language)
	q.Set("format", "simple")
	endpoint := c.STTBaseURL + "/speech/recognition/conversation/cognitiveservices/v1?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, audio)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	if contentType == "" {
		contentType = PCMContentType
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("recognition returned status %d: %s", resp.StatusCode, string(body))
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not decode recognition response: %w", err)
	}
	switch result.RecognitionStatus {
	case "Success":
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return &Transcription{}, ErrNoMatch
	default:
		return nil, fmt.Errorf("recognition failed with status %q", result.RecognitionStatus)
	}

	return &Transcription{Text: result.DisplayText}, nil
}

// Synthesize renders text as MP3 audio with the given voice.
func (c *Client) Synthesize(ctx context.Context, text, locale, voice string) ([]byte, error) {
	if voice == "" {
		voice = VoiceFor(locale)
	}
	ssml, err := buildSSML(text, locale, voice)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TTSBaseURL+"/cognitiveservices/v1", strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("User-Agent", "genesis-ai-backend")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("synthesis returned status %d: %s", resp.StatusCode, string(body))
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read synthesized audio: %w", err)
	}
	return audio, nil
}

func buildSSML(text, locale, voice string) (string, error) {
	if locale == "" {
		locale = "pt-PT"
	}
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return "", fmt.Errorf("could not escape text: %w", err)
	}
	var attrLocale, attrVoice bytes.Buffer
	_ = xml.EscapeText(&attrLocale, []byte(locale))
	_ = xml.EscapeText(&attrVoice, []byte(voice))
	return fmt.Sprintf(`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s"><voice name="%s">%s</voice></speak>`,
		attrLocale.String(), attrVoice.String(), escaped.String()), nil
}
