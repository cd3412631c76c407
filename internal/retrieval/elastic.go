package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Indexed document fields. Chunks are written by the ingestion pipeline with
// their source document title, public url and page number.
const (
	fieldSource  = "source"
	fieldURL     = "url"
	fieldPage    = "page"
	fieldContent = "content"
)

// ElasticRetriever searches a single knowledge index with a full-text query.
type ElasticRetriever struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticRetriever creates a retriever for the given index. apiKey may be
// empty for unsecured clusters.
func NewElasticRetriever(addresses []string, apiKey, index string) (*ElasticRetriever, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create elasticsearch client: %w", err)
	}
	return &ElasticRetriever{client: client, index: index}, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticRetriever) Retrieve(ctx context.Context, query string, topN int) ([]Passage, error) {
	if topN <= 0 {
		topN = 3
	}

	body := map[string]any{
		"size": topN,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{fieldContent, fieldSource + "^2"},
			},
		},
		"_source": []string{fieldSource, fieldURL, fieldPage, fieldContent},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("could not marshal search body: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  bytes.NewReader(payload),
	}
	resp, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("search error: %s", resp.String())
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}

	passages := make([]Passage, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		passages = append(passages, Passage{
			SourceTitle: stringField(hit.Source, fieldSource),
			SourceURL:   stringField(hit.Source, fieldURL),
			PageNumber:  stringField(hit.Source, fieldPage),
			Text:        stringField(hit.Source, fieldContent),
		})
	}
	slog.Debug("Retrieved passages", "index", e.index, "count", len(passages))
	return passages, nil
}

// stringField renders any JSON scalar; page numbers are indexed as integers.
func stringField(source map[string]any, key string) string {
	v, ok := source[key]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}
