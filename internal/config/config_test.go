package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"OPENAI_API_KEY", "OPENAI_BASE_URL",
			"LLM_FAST_MODEL", "LLM_REASONING_MODEL", "LLM_CHAT_MODEL", "LLM_RESPONSES_MODEL",
			"LLM_TIMEOUT", "LLM_MAX_RETRIES", "LLM_DEBUG", "LLM_CACHE_SIZE", "LLM_RATE_LIMIT",
		} {
			// t.Setenv registers the restore; Unsetenv makes the key
			// truly absent rather than empty-but-set.
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, "https://api.openai.com", cfg.BaseURL)
		assert.Equal(t, "gpt-4.1-mini", cfg.FastModel)
		assert.Equal(t, "gpt-5-mini", cfg.ReasoningModel)
		assert.Equal(t, "gpt-4o", cfg.ChatModel)
		assert.Equal(t, "gpt-5", cfg.ResponsesModel)
		assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 3, cfg.MaxRetries)
		assert.False(t, cfg.Debug)
		assert.Zero(t, cfg.CacheSize)
		assert.Zero(t, cfg.RateLimit)
	})

	t.Run("EmptySetVariableFallsBack", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LLM_FAST_MODEL", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "gpt-4.1-mini", cfg.FastModel)
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		clearEnv(t)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_BASE_URL", "http://localhost:11434")
		t.Setenv("LLM_FAST_MODEL", "llama3")
		t.Setenv("LLM_TIMEOUT", "90s")
		t.Setenv("LLM_MAX_RETRIES", "5")
		t.Setenv("LLM_DEBUG", "1")
		t.Setenv("LLM_CACHE_SIZE", "32")
		t.Setenv("LLM_RATE_LIMIT", "2.5")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:11434", cfg.BaseURL)
		assert.Equal(t, "llama3", cfg.FastModel)
		assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 5, cfg.MaxRetries)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 32, cfg.CacheSize)
		assert.Equal(t, 2.5, cfg.RateLimit)
	})

	t.Run("InvalidTimeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LLM_TIMEOUT", "ninety seconds")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("NegativeRetries", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LLM_MAX_RETRIES", "-1")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("InvalidCacheSize", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LLM_CACHE_SIZE", "lots")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("NegativeRateLimit", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LLM_RATE_LIMIT", "-1")

		_, err := Load()
		assert.Error(t, err)
	})
}
