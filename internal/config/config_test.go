package config

import (
	"errors"
	"os"
	"testing"

	"github.com/go-playground/assert/v2"
)

func validConfig() *Config {
	return &Config{
		PerplexityAPIKey: "pplx-key",
		SerpAPIKey:       "serp-key",
		OpenAIAPIKey:     "oai-key",
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, nil, cfg.Validate())
}

func TestValidateMissingPerplexity(t *testing.T) {
	cfg := validConfig()
	cfg.PerplexityAPIKey = ""

	err := cfg.Validate()
	assert.Equal(t, true, errors.Is(err, ErrMissingCredential))
}

func TestValidateMissingSerpAPI(t *testing.T) {
	cfg := validConfig()
	cfg.SerpAPIKey = ""

	err := cfg.Validate()
	assert.Equal(t, true, errors.Is(err, ErrMissingCredential))
}

func TestValidateAnthropicOnly(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIAPIKey = ""
	cfg.AnthropicAPIKey = "ant-key"

	assert.Equal(t, nil, cfg.Validate())
}

func TestValidateNoLLMKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAIAPIKey = ""

	err := cfg.Validate()
	assert.Equal(t, true, errors.Is(err, ErrMissingCredential))
}

// clearEnv removes a variable for the duration of the test. t.Setenv
// registers the restore; Unsetenv makes the variable truly absent so
// envDefault values apply.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "HTTP_TIMEOUT", "ENRICH_WORKERS", "NEWS_LIMIT", "STRUCTURE_MAX_ATTEMPTS", "CACHE_TTL")

	cfg, err := Load()
	assert.Equal(t, nil, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.EnrichWorkers)
	assert.Equal(t, 5, cfg.NewsLimit)
	assert.Equal(t, 2, cfg.StructureMaxAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENRICH_WORKERS", "8")

	cfg, err := Load()
	assert.Equal(t, nil, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.EnrichWorkers)
}

func TestProviders(t *testing.T) {
	cfg := validConfig()
	cfg.FinnhubAPIKey = "fh-key"

	providers := cfg.Providers()
	assert.Equal(t, []string{"perplexity", "serpapi", "openai", "finnhub"}, providers)
}
