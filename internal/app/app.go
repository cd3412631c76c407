package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"genesis-ai/backend/internal/analytics"
	"genesis-ai/backend/internal/api"
	"genesis-ai/backend/internal/config"
	"genesis-ai/backend/internal/database"
	"genesis-ai/backend/internal/llm"
	"genesis-ai/backend/internal/observability"
	"genesis-ai/backend/internal/repository"
	"genesis-ai/backend/internal/retrieval"
	"genesis-ai/backend/internal/secrets"
	"genesis-ai/backend/internal/service"
	"genesis-ai/backend/internal/speech"
	"genesis-ai/backend/internal/tokenizer"
)

const (
	analyticsTimeout = 15 * time.Second
	shutdownTimeout  = 30 * time.Second
)

// App holds the long-lived resources built at startup.
type App struct {
	Server   *http.Server
	Registry *prometheus.Registry

	// Exactly one of DB and Redis is set, following HISTORY_BACKEND.
	DB    *sql.DB
	Redis *redis.Client
	// Dispatcher is nil when analytics are disabled.
	Dispatcher *analytics.Dispatcher
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newSecretStore(cfg)
	if err != nil {
		slog.Error("Failed to create secret store", "backend", cfg.SecretsBackend, "error", err)
		return 1
	}

	app, err := NewApp(ctx, cfg, store)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	code := 0
	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			code = 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		code = 1
	}
	if err := app.Close(shutdownCtx); err != nil {
		slog.Error("Failed to release resources", "error", err)
		code = 1
	}
	return code
}

// NewApp resolves secrets from store and builds every client, service and
// handler. Nothing here serves traffic yet.
func NewApp(ctx context.Context, cfg *config.Config, store secrets.Store) (*App, error) {
	var required []string
	if cfg.LLMBackend == config.LLMAzure {
		required = append(required, secrets.AzureOpenAIEndpoint, secrets.AzureOpenAIAPIKey)
	}
	sec, err := secrets.Load(ctx, store, required...)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	tokens, err := tokenizer.New(cfg.TokenizerModel)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, cfg, sec)
	if err != nil {
		return nil, err
	}

	var addresses []string
	if sec.SearchServiceEndpoint != "" {
		addresses = []string{sec.SearchServiceEndpoint}
	} else {
		slog.Warn("No search service endpoint configured; grounded answers will fail", "index", cfg.SearchIndexName)
	}
	retriever, err := retrieval.NewElasticRetriever(addresses, sec.SearchAPIKey, cfg.SearchIndexName)
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	app := &App{Registry: prometheus.NewRegistry()}

	repo, err := app.openHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var reporter analytics.Reporter = analytics.Disabled{}
	if cfg.ProdFlag {
		client := analytics.NewClient(cfg.DashboardBaseURL, sec.DashboardAPIKey, sec.ProjectID)
		app.Dispatcher = analytics.NewDispatcher(cfg.AnalyticsQueueSize, cfg.AnalyticsWorkers, analyticsTimeout)
		reporter = analytics.NewForwarder(client, app.Dispatcher)
		slog.Info("Dashboard analytics enabled", "base_url", cfg.DashboardBaseURL)
	}

	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(app.Registry)

	history := service.NewHistoryService(repo)
	chatService := service.NewChatService(
		provider,
		service.NewClassifier(provider, tokens),
		service.NewComposer(provider, tokens, retriever, cfg.AISearchTopN),
		history,
		reporter,
		metrics,
	)
	feedbackService := service.NewFeedbackService(history, reporter)
	speechService := service.NewSpeechService(
		speech.NewClient(sec.SpeechKey, sec.SpeechRegion, cfg.SpeechTTSRegion),
		speech.NewFFmpegConverter(cfg.FFmpegPath),
	)

	router := api.NewRouter(
		api.NewChatHandler(chatService),
		api.NewFeedbackHandler(feedbackService),
		api.NewSpeechHandler(speechService),
		api.RouterOptions{
			APIKey:         sec.BackendAPIKey,
			FrontendOrigin: cfg.FrontendEndpoint,
			Gatherer:       app.Registry,
		},
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

// Close drains pending analytics and closes the conversation store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Dispatcher != nil {
		if err := a.Dispatcher.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("analytics dispatcher: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) openHistory(ctx context.Context, cfg *config.Config) (repository.ConversationRepository, error) {
	if cfg.HistoryBackend == config.HistoryRedis {
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		// Conversation history is best effort; a missing store only degrades answers.
		if err := a.Redis.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis is not reachable yet", "addr", cfg.RedisAddr, "error", err)
		} else {
			slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		}
		return repository.NewRedisRepository(a.Redis), nil
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
	return repository.NewSQLiteRepository(db), nil
}

func newProvider(ctx context.Context, cfg *config.Config, sec *secrets.Secrets) (llm.Provider, error) {
	if cfg.LLMBackend == config.LLMOllama {
		if err := waitForOllama(ctx, cfg.OllamaURL); err != nil {
			return nil, err
		}
		slog.Warn("Using the local Ollama backend; content policy is not enforced", "model", cfg.OllamaModel)
		return llm.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	}
	return llm.NewAzureProvider(sec.AzureOpenAIEndpoint, sec.AzureOpenAIAPIKey, cfg.AzureOpenAIVersion, cfg.AzureOpenAIModel), nil
}

func newSecretStore(cfg *config.Config) (secrets.Store, error) {
	if cfg.SecretsBackend == config.SecretsConsul {
		store, err := secrets.NewConsulStore(cfg.ConsulAddr, cfg.ConsulToken, cfg.ConsulPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Reading secrets from Consul", "addr", cfg.ConsulAddr, "prefix", cfg.ConsulPrefix)
		return store, nil
	}
	return secrets.NewEnvStore(nil), nil
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama blocks until the Ollama server answers or ctx is done.
func waitForOllama(ctx context.Context, ollamaURL string) error {
	slog.Info("Waiting for Ollama to be ready...")
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ollamaURL, nil)
		if err != nil {
			return fmt.Errorf("invalid Ollama URL: %w", err)
		}
		resp, err := client.Do(req)
		if err == nil {
			if bErr := resp.Body.Close(); bErr != nil {
				slog.Warn("Failed to close response body in ollama health check", "error", bErr)
			}
			if resp.StatusCode == http.StatusOK {
				slog.Info("Ollama is ready.")
				return nil
			}
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "url", ollamaURL, "error", err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("ollama not ready: %w", ctx.Err())
		case <-time.After(3 * time.Second):
		}
	}
}
