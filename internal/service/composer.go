package service

import (
	"context"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"genesis-ai/backend/internal/llm"
	"genesis-ai/backend/internal/prompts"
	"genesis-ai/backend/internal/retrieval"
	"genesis-ai/backend/internal/tokenizer"
)

// Composer rewrites user prompts and builds the final answer request.
type Composer struct {
	caller
	retriever retrieval.Retriever
	topN      int
	now       func() time.Time
}

func NewComposer(provider llm.Provider, tokens tokenizer.Counter, retriever retrieval.Retriever, topN int) *Composer {
	return &Composer{
		caller:    caller{llm: provider, tokens: tokens},
		retriever: retriever,
		topN:      topN,
		now:       time.Now,
	}
}

// needsTranslation skips prompts already in the output language and short or
// numeric ones, which the model tends to mistranslate.
func needsTranslation(detected string, lang prompts.Language, prompt string) bool {
	if detected == lang.Code {
		return false
	}
	if isDigits(prompt) {
		return false
	}
	return utf8.RuneCountInString(prompt) > 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Translate returns prompt in the output language.
func (c *Composer) Translate(ctx context.Context, usage *Usage, prompt string, lang prompts.Language) (string, error) {
	return c.invoke(ctx, usage, prompts.Translate(lang.Name), prompt)
}

// Rewrite restates prompt so it stands on its own given history. Without
// history the prompt is returned unchanged and nothing is charged.
func (c *Composer) Rewrite(ctx context.Context, usage *Usage, prompt, history string, lang prompts.Language) (string, error) {
	if history == "" {
		return prompt, nil
	}
	return c.invoke(ctx, usage, prompts.Rewrite(history, lang.Name), prompt)
}

// SimpleChain answers from the header alone, without retrieval or history.
func (c *Composer) SimpleChain(usage *Usage, prompt string, lang prompts.Language) *llm.ChatRequest {
	header := prompts.Header(lang.Name, c.now())
	usage.AddPrompt(c.tokens.Count(header) + c.tokens.Count(prompt))
	return &llm.ChatRequest{Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: header},
		{Role: llm.RoleUser, Content: prompt},
	}}
}

// GroundedChain retrieves passages for searchQuery and renders header,
// guidelines, history, passages and question into a single prompt. The
// rendered prompt is charged as prompt tokens; searchQuery only drives
// retrieval and is never counted.
func (c *Composer) GroundedChain(ctx context.Context, usage *Usage, searchQuery, question, history string, lang prompts.Language) (*llm.ChatRequest, error) {
	passages, err := c.retriever.Retrieve(ctx, searchQuery, c.topN)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve context: %w", err)
	}
	rendered := prompts.Grounded(prompts.Header(lang.Name, c.now()), history, retrieval.FormatContext(passages), question)
	usage.AddPrompt(c.tokens.Count(rendered))
	return &llm.ChatRequest{Messages: []llm.Message{{Role: llm.RoleUser, Content: rendered}}}, nil
}
