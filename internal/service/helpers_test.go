package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	mock_analytics "genesis-ai/backend/internal/analytics/mocks"
	"genesis-ai/backend/internal/llm"
	mock_llm "genesis-ai/backend/internal/llm/mocks"
	mock_repo "genesis-ai/backend/internal/repository/mocks"
	mock_retrieval "genesis-ai/backend/internal/retrieval/mocks"
	"genesis-ai/backend/internal/service"
)

// wordCounter is a deterministic stand-in for the BPE tokenizer: one token
// per whitespace-separated word.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

var tokens = wordCounter{}

type Mocks struct {
	llm       *mock_llm.MockProvider
	retriever *mock_retrieval.MockRetriever
	repo      *mock_repo.MockConversationRepository
	reporter  *mock_analytics.MockReporter
}

func newMocks(t *testing.T) Mocks {
	return Mocks{
		llm:       mock_llm.NewMockProvider(t),
		retriever: mock_retrieval.NewMockRetriever(t),
		repo:      mock_repo.NewMockConversationRepository(t),
		reporter:  mock_analytics.NewMockReporter(t),
	}
}

func setupChatService(t *testing.T) (*service.ChatService, Mocks) {
	m := newMocks(t)
	svc := service.NewChatService(
		m.llm,
		service.NewClassifier(m.llm, tokens),
		service.NewComposer(m.llm, tokens, m.retriever, 3),
		service.NewHistoryService(m.repo),
		m.reporter,
		nil,
	)
	return svc, m
}

// withSystem matches a model call by its system instruction.
func withSystem(system string) any {
	return mock.MatchedBy(func(req *llm.ChatRequest) bool {
		return len(req.Messages) == 2 && req.Messages[0].Role == llm.RoleSystem && req.Messages[0].Content == system
	})
}

// withSystemContaining matches a model call whose system instruction contains part.
func withSystemContaining(part string) any {
	return mock.MatchedBy(func(req *llm.ChatRequest) bool {
		return len(req.Messages) == 2 && strings.Contains(req.Messages[0].Content, part)
	})
}

// streamOf returns a Stream implementation that emits deltas, then err.
func streamOf(err error, deltas ...llm.StreamDelta) func(context.Context, *llm.ChatRequest, chan<- llm.StreamDelta) error {
	return func(ctx context.Context, _ *llm.ChatRequest, ch chan<- llm.StreamDelta) error {
		defer close(ch)
		for _, d := range deltas {
			select {
			case ch <- d:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return err
	}
}
