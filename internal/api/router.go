package api

import (
	"net/http"

	// This blank import is required by swaggo to find the API definitions.
	_ "genesis-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions carries what the router needs besides the handlers.
type RouterOptions struct {
	// APIKey is compared against the api-key header of every API route.
	APIKey string
	// FrontendOrigin is the only origin allowed to call the API from a browser.
	FrontendOrigin string
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chat *ChatHandler, feedback *FeedbackHandler, speech *SpeechHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// --- GenesisAI Routes ---
	// No request timeout here: completions hold the connection for the whole answer.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{opts.FrontendOrigin},
			AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", apiKeyHeader, conversationHeader, languageHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(RequireAPIKey(opts.APIKey))

		r.Post("/genesisai-completions", chat.HandleCompletion)
		r.Post("/genesisai-feedback", feedback.HandleFeedback)
		r.Post("/genesisai-speech", speech.HandleSpeechToText)
		r.Post("/genesisai-text-to-speech", speech.HandleTextToSpeech)

		// Preflights are answered by the CORS middleware; these keep chi from
		// replying 405 to a bare OPTIONS.
		for _, path := range []string{"/genesisai-completions", "/genesisai-feedback", "/genesisai-speech", "/genesisai-text-to-speech"} {
			r.Options(path, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		}
	})

	return r
}
