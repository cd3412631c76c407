package api

import (
	"crypto/subtle"
	"net/http"
)

const (
	apiKeyHeader       = "api-key"
	conversationHeader = "context-key"
	languageHeader     = "language"
)

// RequireAPIKey rejects requests whose api-key header differs from key.
// Preflight requests pass through so CORS can answer them.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			got := []byte(r.Header.Get(apiKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
