package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the demos read from the environment. A
// .env file in the working directory is honored but never required.
type Config struct {
	APIKey  string
	BaseURL string

	// Model tiers the demos compare against each other.
	FastModel      string // non-reasoning, cheap and quick
	ReasoningModel string // reasoning-capable, tuned for speed in the demos
	ChatModel      string // general chat/vision tier
	ResponsesModel string // Responses API reasoning tier

	RequestTimeout time.Duration
	MaxRetries     int

	// Debug enables the logging HTTP transport; CacheSize > 0 enables
	// LRU memoization of identical requests; RateLimit > 0 throttles
	// outgoing requests to that many per second.
	Debug     bool
	CacheSize int
	RateLimit float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         os.Getenv("OPENAI_API_KEY"),
		BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		FastModel:      getEnv("LLM_FAST_MODEL", "gpt-4.1-mini"),
		ReasoningModel: getEnv("LLM_REASONING_MODEL", "gpt-5-mini"),
		ChatModel:      getEnv("LLM_CHAT_MODEL", "gpt-4o"),
		ResponsesModel: getEnv("LLM_RESPONSES_MODEL", "gpt-5"),
		RequestTimeout: 60 * time.Second,
		MaxRetries:     3,
		Debug:          os.Getenv("LLM_DEBUG") == "1",
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if raw := os.Getenv("LLM_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", raw, err)
		}
		cfg.RequestTimeout = timeout
	}

	if raw := os.Getenv("LLM_MAX_RETRIES"); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil || retries < 0 {
			return nil, fmt.Errorf("invalid LLM_MAX_RETRIES %q", raw)
		}
		cfg.MaxRetries = retries
	}

	if raw := os.Getenv("LLM_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid LLM_CACHE_SIZE %q", raw)
		}
		cfg.CacheSize = size
	}

	if raw := os.Getenv("LLM_RATE_LIMIT"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid LLM_RATE_LIMIT %q", raw)
		}
		cfg.RateLimit = rps
	}

	return cfg, nil
}

// getEnv treats an empty-but-set variable as unset, matching how the
// other knobs in Load read the environment.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
