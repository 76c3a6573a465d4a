// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// OpenRouterConfig configures the cloud chat-completions backend.
// The backend is disabled when APIKey is empty.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GatewayConfig configures the remote self-hosted inference gateway.
// The backend is disabled when URL is empty.
type GatewayConfig struct {
	URL     string
	Token   string
	Model   string
	Timeout time.Duration
}

// OllamaConfig configures the local inference daemon. The URL defaults to the
// standard local address; the startup probe decides whether it is usable.
type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// Config is the full environment-derived configuration surface.
type Config struct {
	Port          string
	AllowedOrigin string

	// QuestionsFile optionally overrides the embedded static question set.
	QuestionsFile string

	OpenRouter OpenRouterConfig
	Gateway    GatewayConfig
	Ollama     OllamaConfig

	// RedisAddr enables the finished-game history queue when non-empty.
	RedisAddr    string
	HistoryQueue string
}

// Load reads the configuration from environment variables. Missing provider
// credentials disable the corresponding backend; nothing here fails startup.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3001"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		QuestionsFile: getEnv("QUESTIONS_FILE", ""),
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			BaseURL: getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnv("OPENROUTER_MODEL", "nousresearch/hermes-3-llama-3.1-405b:free"),
			Timeout: getEnvDuration("OPENROUTER_TIMEOUT", 30*time.Second),
		},
		Gateway: GatewayConfig{
			URL:     getEnv("LLM_GATEWAY_URL", ""),
			Token:   getEnv("LLM_GATEWAY_TOKEN", ""),
			Model:   getEnv("LLM_GATEWAY_MODEL", "nemotron-3-nano:latest"),
			Timeout: getEnvDuration("LLM_GATEWAY_TIMEOUT", 60*time.Second),
		},
		Ollama: OllamaConfig{
			URL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "qwen2.5:7b-instruct"),
			Timeout: getEnvDuration("OLLAMA_TIMEOUT", 60*time.Second),
		},
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		HistoryQueue: getEnv("HISTORIAN_QUEUE_NAME", "guesslink_games"),
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
