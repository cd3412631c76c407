package service

import (
	"context"
	"errors"

	"genesis-ai/backend/internal/llm"
	"genesis-ai/backend/internal/tokenizer"
)

// PolicyViolationCompletion stands in for the model output of a refused
// classification call, so the refusal still costs completion tokens.
const PolicyViolationCompletion = "Responsible AI Policy Violation"

// Usage accumulates the token cost of every model call made for one request.
// It is created per request and never shared between requests.
type Usage struct {
	Prompt     int
	Completion int
}

func (u *Usage) AddPrompt(n int)     { u.Prompt += n }
func (u *Usage) AddCompletion(n int) { u.Completion += n }

// Total is prompt plus completion tokens.
func (u *Usage) Total() int { return u.Prompt + u.Completion }

// caller runs a single system+user model call and charges it to a Usage.
type caller struct {
	llm    llm.Provider
	tokens tokenizer.Counter
}

// invoke charges tokens(system)+tokens(user) as prompt and tokens(output) as
// completion. A policy refusal is charged with PolicyViolationCompletion and
// returned as is.
func (c caller) invoke(ctx context.Context, usage *Usage, system, user string) (string, error) {
	out, err := c.llm.Complete(ctx, &llm.ChatRequest{Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}})
	if err != nil && !errors.Is(err, llm.ErrPolicyViolation) {
		return "", err
	}
	usage.AddPrompt(c.tokens.Count(system) + c.tokens.Count(user))
	if err != nil {
		usage.AddCompletion(c.tokens.Count(PolicyViolationCompletion))
		return "", err
	}
	usage.AddCompletion(c.tokens.Count(out))
	return out, nil
}
