package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Inference backends selectable with SKIM_BACKEND.
const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
)

// envFiles are loaded in order; variables already set are never overridden,
// so earlier files take precedence over later ones.
var envFiles = []string{".env.local", ".env"}

// Config is the runtime configuration read from the environment.
// Missing credentials are not an error; the summarizer reports them per call.
type Config struct {
	HFAPIKey     string        `env:"HF_API_KEY"`
	HFModelURL   string        `env:"HF_MODEL_URL"       envDefault:"https://router.huggingface.co/hf-inference/models/sshleifer/distilbart-cnn-12-6"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL"       envDefault:"gemini-2.5-flash"`
	Backend      string        `env:"SKIM_BACKEND"       envDefault:"huggingface"`
	Addr         string        `env:"SKIM_ADDR"          envDefault:":8080"`
	InferenceRPS float64       `env:"SKIM_INFERENCE_RPS" envDefault:"0"`
	FetchTimeout time.Duration `env:"SKIM_FETCH_TIMEOUT" envDefault:"10s"`
	ChromeBin    string        `env:"SKIM_CHROME_BIN"`
	MaxPages     int           `env:"SKIM_MAX_PAGES"     envDefault:"75"`
	LogLevel     string        `env:"LOG_LEVEL"`
}

// LoadConfig loads .env files, if present, and parses the process environment.
func LoadConfig() (Config, error) {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", name, err)
		}
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ParseConfig parses configuration from the given variables only.
func ParseConfig(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration values that can never work.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendHuggingFace, BackendGemini:
	default:
		return fmt.Errorf("invalid SKIM_BACKEND %q: expected %q or %q", c.Backend, BackendHuggingFace, BackendGemini)
	}
	if c.InferenceRPS < 0 {
		return fmt.Errorf("invalid SKIM_INFERENCE_RPS %v: must not be negative", c.InferenceRPS)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid SKIM_FETCH_TIMEOUT %v: must be positive", c.FetchTimeout)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("invalid SKIM_MAX_PAGES %d: must be positive", c.MaxPages)
	}
	if _, err := c.Level(slog.LevelInfo); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, or fallback when LOG_LEVEL is unset.
func (c Config) Level(fallback slog.Level) (slog.Level, error) {
	if c.LogLevel == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
