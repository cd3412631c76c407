package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Azure reports content-filter refusals with this error code and, in the inner
// error, this policy name.
const (
	contentFilterCode     = "content_filter"
	policyViolationMarker = "responsibleaipolicyviolation"
)

// zeroTemperature is sent instead of 0, which omitempty would drop.
const zeroTemperature = math.SmallestNonzeroFloat32

type openAIProvider struct {
	client *openai.Client
	model  string
}

// NewAzureProvider creates a Provider for an Azure OpenAI chat deployment.
func NewAzureProvider(endpoint, apiKey, apiVersion, deployment string) Provider {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	cfg.AzureModelMapperFunc = func(string) string { return deployment }
	return NewOpenAIProvider(cfg, deployment)
}

// NewOpenAIProvider creates a Provider from an arbitrary go-openai client
// configuration (OpenAI-compatible endpoints, tests).
func NewOpenAIProvider(cfg openai.ClientConfig, model string) Provider {
	return &openAIProvider{client: openai.NewClientWithConfig(cfg), model: model}
}

func (p *openAIProvider) request(req *ChatRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: zeroTemperature,
		Stream:      stream,
	}
}

func (p *openAIProvider) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.request(req, false))
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", &PolicyViolationError{Detail: "completion filtered"}
	}
	return choice.Message.Content, nil
}

func (p *openAIProvider) Stream(ctx context.Context, req *ChatRequest, ch chan<- StreamDelta) error {
	defer close(ch)

	stream, err := p.client.CreateChatCompletionStream(ctx, p.request(req, true))
	if err != nil {
		return classifyError(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return classifyError(err)
		}

		delta := StreamDelta{ID: resp.ID}
		if len(resp.Choices) > 0 {
			choice := resp.Choices[0]
			if choice.FinishReason == openai.FinishReasonContentFilter {
				return &PolicyViolationError{Detail: "stream filtered"}
			}
			delta.Content = choice.Delta.Content
		}

		select {
		case ch <- delta:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// classifyError turns Azure's content-filter failures into PolicyViolationError
// and wraps everything else.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == contentFilterCode {
			return &PolicyViolationError{Detail: apiErr.Message}
		}
		if strings.Contains(strings.ToLower(apiErr.Message), policyViolationMarker) {
			return &PolicyViolationError{Detail: apiErr.Message}
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), policyViolationMarker) {
		return &PolicyViolationError{Detail: err.Error()}
	}
	slog.Debug("Model invocation failed", "error", err)
	return fmt.Errorf("model invocation failed: %w", err)
}
