package service

import (
	"context"
	"strings"

	"genesis-ai/backend/internal/analytics"
	"genesis-ai/backend/internal/model"
)

// FeedbackService records thumbs up/down votes on answers.
type FeedbackService struct {
	history  *HistoryService
	reporter analytics.Reporter
}

func NewFeedbackService(history *HistoryService, reporter analytics.Reporter) *FeedbackService {
	return &FeedbackService{history: history, reporter: reporter}
}

// parseFeedback maps the frontend's free-form value to the stored feedback and
// the dashboard score.
func parseFeedback(raw string) (model.Feedback, int) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "negative"):
		return model.FeedbackDislike, -1
	case strings.Contains(lower, "positive"):
		return model.FeedbackLike, 1
	default:
		return model.FeedbackNone, 0
	}
}

// Submit forwards the vote to the dashboard and stores it on the answer.
func (s *FeedbackService) Submit(ctx context.Context, conversationID, messageID, feedback string) error {
	stored, score := parseFeedback(feedback)
	s.reporter.ReportFeedback(ctx, conversationID, messageID, score)
	return s.history.UpdateFeedback(ctx, conversationID, messageID, stored)
}
