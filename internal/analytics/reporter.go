package analytics

import (
	"context"
	"log/slog"
)

// Exchange is everything the dashboard needs about one completed answer.
type Exchange struct {
	ConversationID string
	MessageID      string
	Prompt         string
	Reply          string
	ClientTopic    string
	AudioDuration  float64
	TotalTokens    int
}

// Reporter hands events off for delivery without blocking the caller.
type Reporter interface {
	ReportExchange(ctx context.Context, ex Exchange)
	ReportFeedback(ctx context.Context, conversationID, messageID string, score int)
}

// Forwarder delivers events through a Client on a Dispatcher.
type Forwarder struct {
	client     *Client
	dispatcher *Dispatcher
}

func NewForwarder(client *Client, dispatcher *Dispatcher) *Forwarder {
	return &Forwarder{client: client, dispatcher: dispatcher}
}

// ReportExchange resolves the topic's context id, then posts the message and
// token events. A failed lookup sends a null context.
func (f *Forwarder) ReportExchange(_ context.Context, ex Exchange) {
	f.dispatcher.Submit("exchange", func(ctx context.Context) {
		logger := slog.With("conversation_id", ex.ConversationID, "message_id", ex.MessageID)

		event := MessageEvent{
			ConversationID: ex.ConversationID,
			MessageID:      ex.MessageID,
			Amount:         1,
			Prompt:         ex.Prompt,
			Reply:          ex.Reply,
			AudioDuration:  ex.AudioDuration,
		}
		if ex.ClientTopic != "" {
			id, err := f.client.ResolveContextID(ctx, ex.ClientTopic)
			if err != nil {
				logger.Warn("Could not resolve dashboard context id", "topic", ex.ClientTopic, "error", err)
			} else {
				event.Context = &id
				event.Contexts = append(event.Contexts, id)
			}
		}

		if err := f.client.PostMessage(ctx, event); err != nil {
			logger.Warn("Failed to post message event", "error", err)
		}
		if err := f.client.PostTokens(ctx, ex.TotalTokens); err != nil {
			logger.Warn("Failed to post token event", "error", err)
		}
	})
}

func (f *Forwarder) ReportFeedback(_ context.Context, conversationID, messageID string, score int) {
	f.dispatcher.Submit("feedback", func(ctx context.Context) {
		if err := f.client.PatchFeedback(ctx, conversationID, messageID, score); err != nil {
			slog.Warn("Failed to patch feedback", "conversation_id", conversationID, "message_id", messageID, "error", err)
		}
	})
}

// Disabled is used outside production; it drops every event.
type Disabled struct{}

func (Disabled) ReportExchange(context.Context, Exchange)            {}
func (Disabled) ReportFeedback(context.Context, string, string, int) {}
