package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrMissingCredential marks a fatal configuration problem. Generation must
// not start without the provider credentials it needs.
var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL"`

	PerplexityAPIKey string `env:"PERPLEXITY_API_KEY"`
	SerpAPIKey       string `env:"SERPAPI_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	FinnhubAPIKey    string `env:"FINNHUB_API_KEY"`
	RedisURL         string `env:"REDIS_URL"`

	// Tuning defaults, chosen here because the upstream providers specify
	// none of them.
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	EnrichWorkers        int           `env:"ENRICH_WORKERS" envDefault:"4"`
	NewsLimit            int           `env:"NEWS_LIMIT" envDefault:"5"`
	StructureMaxAttempts int           `env:"STRUCTURE_MAX_ATTEMPTS" envDefault:"2"`
	CacheTTL             time.Duration `env:"CACHE_TTL" envDefault:"6h"`
}

// Load reads configuration from a .env file (when present) and the process
// environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate fails fast when a required credential is absent so that a missing
// key surfaces as a configuration error instead of a confusing downstream
// provider failure.
func (c *Config) Validate() error {
	if c.PerplexityAPIKey == "" {
		return fmt.Errorf("%w: PERPLEXITY_API_KEY", ErrMissingCredential)
	}
	if c.SerpAPIKey == "" {
		return fmt.Errorf("%w: SERPAPI_API_KEY", ErrMissingCredential)
	}
	if c.OpenAIAPIKey == "" && c.AnthropicAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY or ANTHROPIC_API_KEY", ErrMissingCredential)
	}
	return nil
}

// Providers lists the configured upstream providers, for the health report.
func (c *Config) Providers() []string {
	providers := []string{"perplexity", "serpapi"}
	if c.OpenAIAPIKey != "" {
		providers = append(providers, "openai")
	}
	if c.AnthropicAPIKey != "" {
		providers = append(providers, "anthropic")
	}
	if c.FinnhubAPIKey != "" {
		providers = append(providers, "finnhub")
	}
	return providers
}
