package llm

import (
	"context"
	"errors"
)

// ErrPolicyViolation tags a model invocation that the service refused on
// content-policy grounds. Callers branch on it with errors.Is.
var ErrPolicyViolation = errors.New("llm: content policy violation")

// PolicyViolationError carries the upstream detail for a refused invocation.
type PolicyViolationError struct {
	Detail string
}

func (e *PolicyViolationError) Error() string {
	if e.Detail == "" {
		return ErrPolicyViolation.Error()
	}
	return ErrPolicyViolation.Error() + ": " + e.Detail
}

func (e *PolicyViolationError) Unwrap() error { return ErrPolicyViolation }

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a fully rendered prompt.
type ChatRequest struct {
	Messages []Message
}

// StreamDelta is one increment of a streamed completion. ID is the
// model-assigned response id and may be empty on some deltas.
type StreamDelta struct {
	ID      string
	Content string
}

// Provider defines the interface for interacting with a language model.
//
// Stream sends deltas on ch in the order produced and always closes ch before
// returning. A content-policy refusal, before or during streaming, is reported
// as an error wrapping ErrPolicyViolation.
type Provider interface {
	Complete(ctx context.Context, req *ChatRequest) (string, error)
	Stream(ctx context.Context, req *ChatRequest, ch chan<- StreamDelta) error
}
