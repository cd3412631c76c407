package service

import (
	"context"
	"errors"
	"strings"

	"genesis-ai/backend/internal/llm"
	"genesis-ai/backend/internal/prompts"
	"genesis-ai/backend/internal/tokenizer"
)

// Topic categories returned by PolicyAndTopic.
const (
	TopicAboutAssistant  = "1"
	TopicGreeting        = "2"
	TopicGreetingAndAsk  = "3"
	TopicOther           = "4"
	TopicPolicyViolation = "policy_violation"
)

// Classifier routes a prompt with small model calls.
type Classifier struct {
	caller
}

func NewClassifier(provider llm.Provider, tokens tokenizer.Counter) *Classifier {
	return &Classifier{caller{llm: provider, tokens: tokens}}
}

// PolicyAndTopic returns the topic number the model picked, or
// TopicPolicyViolation if the model refused the prompt.
func (c *Classifier) PolicyAndTopic(ctx context.Context, usage *Usage, prompt string) (string, error) {
	out, err := c.invoke(ctx, usage, prompts.CheckTopic, prompt)
	if errors.Is(err, llm.ErrPolicyViolation) {
		return TopicPolicyViolation, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Language returns "pt", "en", or "" when the language is neither.
func (c *Classifier) Language(ctx context.Context, usage *Usage, prompt string) (string, error) {
	out, err := c.invoke(ctx, usage, prompts.CheckLanguage, prompt)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	switch {
	case strings.Contains(out, "1"):
		return prompts.Portuguese.Code, nil
	case strings.Contains(out, "2"):
		return prompts.English.Code, nil
	default:
		return "", nil
	}
}

// ClientTopic returns the category name chosen by the model, verbatim: either
// the host company topic or others.
func (c *Classifier) ClientTopic(ctx context.Context, usage *Usage, prompt, others string) (string, error) {
	return c.invoke(ctx, usage, prompts.ClientTopic(others), prompt)
}
