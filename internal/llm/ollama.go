package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// ollamaProvider talks to a local Ollama server. It is meant for development
// without Azure credentials; Ollama has no content filter, so it never returns
// ErrPolicyViolation.
type ollamaProvider struct {
	client *http.Client
	url    string
	model  string
}

// NewOllamaProvider creates a Provider backed by Ollama's /api/chat endpoint.
func NewOllamaProvider(url, model string) Provider {
	return &ollamaProvider{
		client: &http.Client{},
		url:    url,
		model:  model,
	}
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatChunk struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error,omitempty"`
}

func (p *ollamaProvider) post(ctx context.Context, req *ChatRequest, stream bool) (*http.Response, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model:    p.model,
		Messages: req.Messages,
		Stream:   stream,
		Options:  map[string]any{"temperature": 0},
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}
	return resp, nil
}

func (p *ollamaProvider) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	resp, err := p.post(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var chunk ollamaChatChunk
	if err := json.NewDecoder(resp.Body).Decode(&chunk); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	return chunk.Message.Content, nil
}

// Stream forwards Ollama's NDJSON chunks. Ollama does not assign response ids,
// so one is generated per call.
func (p *ollamaProvider) Stream(ctx context.Context, req *ChatRequest, ch chan<- StreamDelta) error {
	defer close(ch)

	resp, err := p.post(ctx, req, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	id := "ollama-" + uuid.NewString()
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var chunk ollamaChatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("could not decode stream chunk: %w", err)
		}
		if chunk.Error != "" {
			return fmt.Errorf("ollama stream error: %s", chunk.Error)
		}

		select {
		case ch <- StreamDelta{ID: id, Content: chunk.Message.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
		if chunk.Done {
			break
		}
	}
	return scanner.Err()
}
