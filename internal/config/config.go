package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backend identifiers selectable at deploy time.
const (
	BackendGemini = "gemini"
	BackendGroq   = "groq"
)

// Config holds the environment driven configuration for the thumbnail service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"thumbforge"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"THUMBFORGE_PORT" envDefault:"8290"`
	LogLevel        string        `env:"THUMBFORGE_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Ledger (local sqlite database holding history, credits, credentials)
	LedgerPath string `env:"THUMBFORGE_LEDGER_PATH" envDefault:"thumbforge.db"`

	// Backend variant selection. This is a deploy-time choice: the two
	// variants require different credential shapes and are never switched
	// at runtime.
	Backend string `env:"THUMBFORGE_BACKEND" envDefault:"gemini"`

	// Gemini variant (single provider, one secret)
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Groq + Hugging Face variant (two providers, two secrets)
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	GroqBaseURL      string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	HuggingFaceToken string `env:"HUGGINGFACE_API_TOKEN"`
	HuggingFaceURL   string `env:"HUGGINGFACE_API_URL" envDefault:"https://api-inference.huggingface.co"`

	// Generation behaviour
	ImageTimeout      time.Duration `env:"THUMBFORGE_IMAGE_TIMEOUT" envDefault:"120s"`
	MaxReferenceBytes int64         `env:"THUMBFORGE_MAX_REFERENCE_BYTES" envDefault:"10485760"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.GroqAPIKey = strings.TrimSpace(cfg.GroqAPIKey)
	cfg.HuggingFaceToken = strings.TrimSpace(cfg.HuggingFaceToken)

	switch cfg.Backend {
	case BackendGemini, BackendGroq:
	default:
		return nil, fmt.Errorf("THUMBFORGE_BACKEND must be %q or %q, got %q", BackendGemini, BackendGroq, cfg.Backend)
	}
	if cfg.MaxReferenceBytes <= 0 {
		cfg.MaxReferenceBytes = 10 * 1024 * 1024
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsGeminiBackend returns true when the single-provider variant is selected.
func (c *Config) IsGeminiBackend() bool {
	return c.Backend == BackendGemini
}
