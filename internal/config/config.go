package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Backends selectable through configuration.
const (
	HistoryRedis  = "redis"
	HistorySQLite = "sqlite"

	SecretsEnv    = "env"
	SecretsConsul = "consul"

	LLMAzure  = "azure"
	LLMOllama = "ollama"
)

// Config holds non-secret settings. Credentials are resolved separately
// through the secrets package.
type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// FrontendEndpoint is the only origin allowed by CORS.
	FrontendEndpoint string `mapstructure:"FRONTEND_ENDPOINT"`
	AISearchTopN     int    `mapstructure:"AISEARCH_TOP_N"`
	// ProdFlag enables dashboard analytics.
	ProdFlag bool `mapstructure:"PROD_FLAG"`

	HistoryBackend string `mapstructure:"HISTORY_BACKEND"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`

	SecretsBackend string `mapstructure:"SECRETS_BACKEND"`
	ConsulAddr     string `mapstructure:"CONSUL_ADDR"`
	ConsulToken    string `mapstructure:"CONSUL_TOKEN"`
	ConsulPrefix   string `mapstructure:"CONSUL_PREFIX"`

	LLMBackend         string `mapstructure:"LLM_BACKEND"`
	AzureOpenAIVersion string `mapstructure:"AZURE_OPENAI_VERSION"`
	AzureOpenAIModel   string `mapstructure:"AZURE_OPENAI_GPTMODEL_NAME"`
	TokenizerModel     string `mapstructure:"TOKENIZER_MODEL"`
	OllamaURL          string `mapstructure:"OLLAMA_URL"`
	OllamaModel        string `mapstructure:"OLLAMA_MODEL"`

	SearchIndexName string `mapstructure:"AZURE_SEARCH_INDEX_NAME"`

	DashboardBaseURL   string `mapstructure:"DASHBOARD_BASE_URL"`
	AnalyticsQueueSize int    `mapstructure:"ANALYTICS_QUEUE_SIZE"`
	AnalyticsWorkers   int    `mapstructure:"ANALYTICS_WORKERS"`

	SpeechTTSRegion string `mapstructure:"AISPEECH_TTS_REGION"`
	FFmpegPath      string `mapstructure:"FFMPEG_PATH"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("FRONTEND_ENDPOINT", "http://localhost:4200")
	viper.SetDefault("AISEARCH_TOP_N", 3)
	viper.SetDefault("PROD_FLAG", false)
	viper.SetDefault("HISTORY_BACKEND", HistorySQLite)
	viper.SetDefault("DATABASE_PATH", "/data/genesis.db")
	viper.SetDefault("REDIS_ADDR", "redis:6379")
	viper.SetDefault("SECRETS_BACKEND", SecretsEnv)
	viper.SetDefault("CONSUL_ADDR", "consul:8500")
	viper.SetDefault("CONSUL_TOKEN", "")
	viper.SetDefault("CONSUL_PREFIX", "genesis-ai/")
	viper.SetDefault("LLM_BACKEND", LLMAzure)
	viper.SetDefault("AZURE_OPENAI_VERSION", "2024-06-01")
	viper.SetDefault("AZURE_OPENAI_GPTMODEL_NAME", "gpt-4o")
	viper.SetDefault("TOKENIZER_MODEL", "gpt-4o")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.1")
	viper.SetDefault("AZURE_SEARCH_INDEX_NAME", "genesis-knowledge")
	viper.SetDefault("DASHBOARD_BASE_URL", "https://genhelpbackoffice-api.azurewebsites.net")
	viper.SetDefault("ANALYTICS_QUEUE_SIZE", 256)
	viper.SetDefault("ANALYTICS_WORKERS", 2)
	viper.SetDefault("AISPEECH_TTS_REGION", "eastus")
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.HistoryBackend = strings.ToLower(c.HistoryBackend)
	c.SecretsBackend = strings.ToLower(c.SecretsBackend)
	c.LLMBackend = strings.ToLower(c.LLMBackend)

	switch {
	case c.HistoryBackend != HistoryRedis && c.HistoryBackend != HistorySQLite:
		return fmt.Errorf("invalid HISTORY_BACKEND %q", c.HistoryBackend)
	case c.SecretsBackend != SecretsEnv && c.SecretsBackend != SecretsConsul:
		return fmt.Errorf("invalid SECRETS_BACKEND %q", c.SecretsBackend)
	case c.LLMBackend != LLMAzure && c.LLMBackend != LLMOllama:
		return fmt.Errorf("invalid LLM_BACKEND %q", c.LLMBackend)
	case c.AISearchTopN <= 0:
		return fmt.Errorf("AISEARCH_TOP_N must be positive, got %d", c.AISearchTopN)
	}
	return nil
}
