// Package secrets resolves credentials once at startup from a key-value
// secret store.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by a Store for an unknown secret name.
var ErrNotFound = errors.New("secret not found")

// Secret names, as stored in the vault.
const (
	BackendAPIKey         = "BACKEND-API-KEY"
	DashboardAPIKey       = "DASHBOARD-API-KEY"
	ProjectID             = "PROJECT-ID"
	AzureOpenAIEndpoint   = "AZURE-OPENAI-ENDPOINT"
	AzureOpenAIAPIKey     = "AZURE-OPENAI-API-KEY"
	SearchServiceEndpoint = "AZURE-SEARCH-SERVICE-ENDPOINT"
	SearchAPIKey          = "AZURE-SEARCH-API-KEY"
	SpeechKey             = "AISPEECH-KEY"
	SpeechRegion          = "AISPEECH-REGION"
)

// Store looks up a single secret by name.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
}

// Secrets holds every credential the service needs. Values are read-only
// after Load.
type Secrets struct {
	BackendAPIKey         string
	DashboardAPIKey       string
	ProjectID             string
	AzureOpenAIEndpoint   string
	AzureOpenAIAPIKey     string
	SearchServiceEndpoint string
	SearchAPIKey          string
	SpeechKey             string
	SpeechRegion          string
}

// Load reads all secrets from store. The backend key is always required, as
// is every name in required; the rest may be missing and leave their feature
// unusable.
func Load(ctx context.Context, store Store, required ...string) (*Secrets, error) {
	must := map[string]bool{BackendAPIKey: true}
	for _, name := range required {
		must[name] = true
	}

	s := &Secrets{}
	fields := []struct {
		name string
		dst  *string
	}{
		{BackendAPIKey, &s.BackendAPIKey},
		{AzureOpenAIEndpoint, &s.AzureOpenAIEndpoint},
		{AzureOpenAIAPIKey, &s.AzureOpenAIAPIKey},
		{DashboardAPIKey, &s.DashboardAPIKey},
		{ProjectID, &s.ProjectID},
		{SearchServiceEndpoint, &s.SearchServiceEndpoint},
		{SearchAPIKey, &s.SearchAPIKey},
		{SpeechKey, &s.SpeechKey},
		{SpeechRegion, &s.SpeechRegion},
	}

	var missing []string
	for _, f := range fields {
		value, err := store.Get(ctx, f.name)
		switch {
		case errors.Is(err, ErrNotFound):
			if must[f.name] {
				missing = append(missing, f.name)
			}
		case err != nil:
			return nil, fmt.Errorf("could not read secret %s: %w", f.name, err)
		default:
			*f.dst = value
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(missing, ", "))
	}
	return s, nil
}
