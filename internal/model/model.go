package model

// Feedback is the user's rating of a single answer.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "Like"
	FeedbackDislike Feedback = "Dislike"
)

// UsageStats is the token accounting attached to one exchange.
type UsageStats struct {
	CompletionTokens int `json:"CompletionTokens"`
	PromptTokens     int `json:"PromptTokens"`
	TotalTokens      int `json:"TotalTokens"`
}

// NewUsageStats builds usage stats whose total is always the sum of its parts.
func NewUsageStats(promptTokens, completionTokens int) UsageStats {
	return UsageStats{
		CompletionTokens: completionTokens,
		PromptTokens:     promptTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// ConversationItem is one question/answer exchange. Only Feedback changes after creation.
type ConversationItem struct {
	MessageID   string     `json:"MessageId"`
	Date        string     `json:"Date"`
	Query       string     `json:"Query"`
	Reply       string     `json:"Reply"`
	Feedback    Feedback   `json:"Feedback"`
	ElapsedTime string     `json:"ElapsedTime"`
	Usage       UsageStats `json:"Usage"`
}

// Conversation is the stored document for one frontend session. The id and the
// partition key are both the session id sent in the `context-key` header.
type Conversation struct {
	ID           string             `json:"id"`
	PartitionKey string             `json:"partitionKey"`
	Items        []ConversationItem `json:"Items"`
	TotalTokens  int                `json:"TotalTokens"`
}

// NewConversation returns an empty conversation keyed by id.
func NewConversation(id string) *Conversation {
	return &Conversation{ID: id, PartitionKey: id, Items: []ConversationItem{}}
}

// Append adds an exchange and keeps TotalTokens in sync with the items.
func (c *Conversation) Append(item ConversationItem) {
	c.Items = append(c.Items, item)
	c.Recount()
}

// Recount recomputes TotalTokens from the items.
func (c *Conversation) Recount() {
	total := 0
	for _, item := range c.Items {
		total += item.Usage.TotalTokens
	}
	c.TotalTokens = total
}

// SetFeedback updates the first item carrying messageID. It reports whether an
// item was found.
func (c *Conversation) SetFeedback(messageID string, feedback Feedback) bool {
	for i := range c.Items {
		if c.Items[i].MessageID == messageID {
			c.Items[i].Feedback = feedback
			return true
		}
	}
	return false
}

// LastItems returns at most the n most recent exchanges, oldest first.
func (c *Conversation) LastItems(n int) []ConversationItem {
	if n <= 0 || len(c.Items) == 0 {
		return nil
	}
	if len(c.Items) <= n {
		return c.Items
	}
	return c.Items[len(c.Items)-n:]
}

// StreamChunk is a single fragment written to the completions stream.
type StreamChunk struct {
	Content   string `json:"content"`
	MessageID string `json:"message_id"`
}
