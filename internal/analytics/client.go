// Package analytics forwards usage and feedback events to the backoffice
// dashboard. Delivery is best-effort: nothing here is retried or persisted.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	contextsPath = "/v1/gpt/contexts"
	messagesPath = "/v1/gpt/messages"
	tokensPath   = "/v1/gpt/tokens"
	feedbackPath = "/v1/gpt/messages/feedback"
)

// Client calls the dashboard REST API.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	projectID string
}

// NewClient creates a dashboard client. Every payload is stamped with projectID.
func NewClient(baseURL, apiKey, projectID string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		baseURL:   baseURL,
		apiKey:    apiKey,
		projectID: projectID,
	}
}

// MessageEvent is the per-exchange record the dashboard keeps.
type MessageEvent struct {
	ProjectID      string  `json:"projectId"`
	ConversationID string  `json:"conversationId"`
	MessageID      string  `json:"messageId"`
	Amount         int     `json:"amount"`
	Prompt         string  `json:"prompt"`
	Reply          string  `json:"reply"`
	Contexts       []int64 `json:"contexts"`
	Context        *int64  `json:"context"`
	AudioDuration  float64 `json:"audioDuration"`
}

type tokensEvent struct {
	ProjectID string `json:"projectId"`
	Amount    int    `json:"amount"`
}

type feedbackEvent struct {
	ProjectID      string `json:"projectId"`
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	Feedback       int    `json:"feedback"`
}

type contextRequest struct {
	ProjectID   string `json:"projectId"`
	ContextName string `json:"contextName"`
}

type contextResponse struct {
	ContextID *int64 `json:"contextId"`
}

// ResolveContextID returns the dashboard's numeric id for a topic name.
func (c *Client) ResolveContextID(ctx context.Context, topic string) (int64, error) {
	var out contextResponse
	if err := c.send(ctx, http.MethodPost, contextsPath, contextRequest{ProjectID: c.projectID, ContextName: topic}, &out); err != nil {
		return 0, err
	}
	if out.ContextID == nil {
		return 0, fmt.Errorf("dashboard returned no context id for %q", topic)
	}
	return *out.ContextID, nil
}

// PostMessage records one exchange.
func (c *Client) PostMessage(ctx context.Context, event MessageEvent) error {
	event.ProjectID = c.projectID
	if event.Contexts == nil {
		event.Contexts = []int64{}
	}
	return c.send(ctx, http.MethodPost, messagesPath, event, nil)
}

// PostTokens records the total tokens spent on one exchange.
func (c *Client) PostTokens(ctx context.Context, amount int) error {
	return c.send(ctx, http.MethodPost, tokensPath, tokensEvent{ProjectID: c.projectID, Amount: amount}, nil)
}

// PatchFeedback records a thumbs up (1), thumbs down (-1) or cleared (0) vote.
func (c *Client) PatchFeedback(ctx context.Context, conversationID, messageID string, score int) error {
	return c.send(ctx, http.MethodPatch, feedbackPath, feedbackEvent{
		ProjectID:      c.projectID,
		ConversationID: conversationID,
		MessageID:      messageID,
		Feedback:       score,
	}, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode %s response: %w", path, err)
	}
	return nil
}
