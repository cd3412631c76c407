package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"genesis-ai/backend/internal/analytics"
	"genesis-ai/backend/internal/llm"
	"genesis-ai/backend/internal/model"
	"genesis-ai/backend/internal/observability"
	"genesis-ai/backend/internal/prompts"
)

// dateLayout matches the ISO-8601 timestamps already stored in conversations.
const dateLayout = "2006-01-02T15:04:05.000000"

// refusal is the answer sent instead of model output when a prompt or its
// answer breaks content policy. Tokens approximates its completion cost.
type refusal struct {
	Text   string
	Tokens int
}

var (
	refusalPortuguese = refusal{
		Text:   "Lamentamos, mas não foi possível processar o seu pedido, pois este poderá conter conteúdo que contraria as nossas políticas de utilização responsável de inteligência artificial. Se desejar, pode reformular a sua pergunta e tentar novamente.\n\nO nosso sistema foi concebido para seguir diretrizes de utilização responsável de IA, garantindo uma comunicação segura e respeitosa. Diga-nos de que outra forma o podemos ajudar.",
		Tokens: 110,
	}
	refusalEnglish = refusal{
		Text:   "I'm sorry, but I couldn't process your request because it may contain content that goes against our Responsible AI use policies. If you’d like, feel free to rephrase your question and try again.\n\nOur system is designed to follow responsible AI guidelines to ensure safe and respectful communication. Let me know how I can assist you differently.",
		Tokens: 75,
	}
)

func refusalFor(lang prompts.Language) refusal {
	if lang.Code == prompts.Portuguese.Code {
		return refusalPortuguese
	}
	return refusalEnglish
}

// CompletionRequest is a validated user question.
type CompletionRequest struct {
	ConversationID string
	Prompt         string
	Language       string
	AudioDuration  float64
}

// Generation is the outcome of classification and composition for one
// request. It owns the request's token accounting.
type Generation struct {
	ConversationID string
	// Query is the prompt as answered and stored, after translation.
	Query         string
	Language      prompts.Language
	Topic         string
	ClientTopic   string
	AudioDuration float64
	// Blocked means the prompt was refused during classification; no model
	// answer is generated.
	Blocked bool

	chain *llm.ChatRequest
	usage *Usage
	start time.Time
}

// Usage returns the tokens charged so far.
func (g *Generation) Usage() Usage { return *g.usage }

// ChatService turns a user question into a streamed, persisted answer.
type ChatService struct {
	llm        llm.Provider
	classifier *Classifier
	composer   *Composer
	history    *HistoryService
	reporter   analytics.Reporter
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewChatService(
	provider llm.Provider,
	classifier *Classifier,
	composer *Composer,
	history *HistoryService,
	reporter analytics.Reporter,
	metrics *observability.Metrics,
) *ChatService {
	return &ChatService{
		llm:        provider,
		classifier: classifier,
		composer:   composer,
		history:    history,
		reporter:   reporter,
		metrics:    metrics,
		now:        time.Now,
	}
}

// blockOr turns a policy refusal in any preparation step into a blocked
// generation and wraps every other error.
func blockOr(gen *Generation, err error, step string) (*Generation, error) {
	if errors.Is(err, llm.ErrPolicyViolation) {
		gen.Blocked = true
		gen.ClientTopic = PolicyViolationCompletion
		slog.Info("Prompt refused by content policy", "conversation_id", gen.ConversationID, "step", step)
		return gen, nil
	}
	return nil, fmt.Errorf("could not %s: %w", step, err)
}

// Prepare classifies the prompt and builds the answer request. Every model
// call made here is charged to the returned Generation.
func (s *ChatService) Prepare(ctx context.Context, req *CompletionRequest) (*Generation, error) {
	gen := &Generation{
		ConversationID: req.ConversationID,
		Query:          req.Prompt,
		Language:       prompts.ParseLanguage(req.Language),
		AudioDuration:  req.AudioDuration,
		usage:          &Usage{},
		start:          s.now(),
	}
	lang := gen.Language

	topic, err := s.classifier.PolicyAndTopic(ctx, gen.usage, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("could not classify topic: %w", err)
	}
	gen.Topic = topic
	s.metrics.ObserveTopic(topic)
	if topic == TopicPolicyViolation {
		gen.Blocked = true
		gen.ClientTopic = PolicyViolationCompletion
		return gen, nil
	}

	detected, err := s.classifier.Language(ctx, gen.usage, req.Prompt)
	if err != nil {
		return blockOr(gen, err, "detect language")
	}
	if needsTranslation(detected, lang, req.Prompt) {
		translated, err := s.composer.Translate(ctx, gen.usage, req.Prompt, lang)
		if err != nil {
			return blockOr(gen, err, "translate prompt")
		}
		gen.Query = translated
	}

	if topic == TopicAboutAssistant || topic == TopicGreeting {
		gen.ClientTopic = lang.Others
		gen.chain = s.composer.SimpleChain(gen.usage, gen.Query, lang)
		return gen, nil
	}

	history := s.history.LastExchangesAsText(ctx, req.ConversationID, HistoryWindow)

	clientTopic, err := s.classifier.ClientTopic(ctx, gen.usage, gen.Query, lang.Others)
	if err != nil {
		return blockOr(gen, err, "classify client topic")
	}
	gen.ClientTopic = clientTopic

	searchQuery := gen.Query
	if strings.Contains(strings.ToLower(clientTopic), strings.ToLower(lang.Others)) {
		searchQuery, err = s.composer.Rewrite(ctx, gen.usage, gen.Query, history, lang)
		if err != nil {
			return blockOr(gen, err, "rewrite prompt")
		}
	}

	gen.chain, err = s.composer.GroundedChain(ctx, gen.usage, searchQuery, gen.Query, history, lang)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// send forwards a chunk unless the consumer has gone away.
func send(ctx context.Context, out chan<- model.StreamChunk, chunk model.StreamChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stream generates the answer for gen, writing chunks to out in model order,
// then persists the exchange and reports it. out is closed before Stream
// returns. Cancelling ctx stops generation; the partial answer is still saved.
func (s *ChatService) Stream(ctx context.Context, gen *Generation, out chan<- model.StreamChunk) {
	defer close(out)
	// Stream runs on its own goroutine, out of reach of the HTTP recoverer.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic during generation", "conversation_id", gen.ConversationID, "panic", r)
		}
	}()
	defer s.metrics.StreamStarted()()

	logger := slog.With("conversation_id", gen.ConversationID)
	var (
		reply     strings.Builder
		messageID string
		chunks    int
		outcome   = observability.OutcomeAnswered
	)

	useRefusal := func() {
		r := refusalFor(gen.Language)
		messageID = uuid.NewString()
		reply.Reset()
		reply.WriteString(r.Text)
		chunks = r.Tokens
		send(ctx, out, model.StreamChunk{Content: r.Text, MessageID: messageID})
	}

	if gen.Blocked {
		useRefusal()
		outcome = observability.OutcomePolicyBlocked
	} else {
		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		deltas := make(chan llm.StreamDelta)
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.llm.Stream(streamCtx, gen.chain, deltas)
		}()

		disconnected := false
		for delta := range deltas {
			if disconnected {
				continue
			}
			if messageID == "" && delta.ID != "" {
				messageID = delta.ID
			}
			if delta.Content == "" {
				continue
			}
			if chunks == 0 {
				s.metrics.ObserveFirstToken(s.now().Sub(gen.start))
			}
			chunks++
			if !send(ctx, out, model.StreamChunk{Content: delta.Content, MessageID: messageID}) {
				disconnected = true
				cancel()
				continue
			}
			// Only text the client received is stored.
			reply.WriteString(delta.Content)
		}
		err := <-errCh

		switch {
		case disconnected || ctx.Err() != nil:
			logger.Info("Client disconnected during generation", "chunks", chunks)
			outcome = observability.OutcomeCancelled
		case errors.Is(err, llm.ErrPolicyViolation):
			logger.Info("Answer refused by content policy", "chunks", chunks)
			useRefusal()
			outcome = observability.OutcomeModelBlocked
		case err != nil:
			logger.Error("Model stream failed", "error", err, "chunks", chunks)
			outcome = observability.OutcomeUpstreamFailed
		}
	}

	s.finish(context.WithoutCancel(ctx), gen, messageID, reply.String(), chunks, outcome)
}

// finish persists the exchange and hands it to analytics. It runs exactly once
// per generation, whatever the stream outcome.
func (s *ChatService) finish(ctx context.Context, gen *Generation, messageID, reply string, chunks int, outcome string) {
	now := s.now()
	elapsed := now.Sub(gen.start)
	promptTokens := gen.usage.Prompt
	completionTokens := gen.usage.Completion + chunks

	if messageID == "" && reply != "" {
		messageID = uuid.NewString()
	}
	logger := slog.With("conversation_id", gen.ConversationID, "message_id", messageID)

	if reply != "" {
		item := model.ConversationItem{
			MessageID:   messageID,
			Date:        now.Format(dateLayout),
			Query:       gen.Query,
			Reply:       reply,
			Feedback:    model.FeedbackNone,
			ElapsedTime: fmt.Sprintf("%.5f seconds", elapsed.Seconds()),
			Usage:       model.NewUsageStats(promptTokens, completionTokens),
		}
		if err := s.history.SaveItem(ctx, gen.ConversationID, item); err != nil {
			logger.Error("Failed to save conversation item", "error", err)
		}
	} else {
		logger.Warn("No answer text produced, skipping persistence", "outcome", outcome)
	}

	s.reporter.ReportExchange(ctx, analytics.Exchange{
		ConversationID: gen.ConversationID,
		MessageID:      messageID,
		Prompt:         gen.Query,
		Reply:          reply,
		ClientTopic:    gen.ClientTopic,
		AudioDuration:  gen.AudioDuration,
		TotalTokens:    promptTokens + completionTokens,
	})
	s.metrics.ObserveGeneration(outcome, promptTokens, completionTokens)

	logger.Info("Generation finished",
		"outcome", outcome,
		"prompt_tokens", promptTokens,
		"completion_tokens", completionTokens,
		"elapsed", elapsed.String(),
	)
}
