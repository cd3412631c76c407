package retrieval

import (
	"context"
	"fmt"
	"strings"
)

// Passage is one ranked result from the knowledge index.
type Passage struct {
	SourceTitle string
	SourceURL   string
	PageNumber  string
	Text        string
}

// Retriever returns the passages most relevant to a query, best first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topN int) ([]Passage, error)
}

// FormatContext renders passages in retrieval order, one section per passage,
// separated by a blank line. Missing metadata renders as an empty value.
func FormatContext(passages []Passage) string {
	sections := make([]string, 0, len(passages))
	for _, p := range passages {
		sections = append(sections, fmt.Sprintf("Source: %s\nUrl: %s\nPage: %s\nContent:\n%s",
			strings.TrimSpace(p.SourceTitle),
			strings.TrimSpace(p.SourceURL),
			strings.TrimSpace(p.PageNumber),
			p.Text,
		))
	}
	return strings.Join(sections, "\n\n")
}
