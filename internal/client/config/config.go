// Package config holds runtime settings for the QuizForge CLI.
//
// Sources, later ones winning: built-in defaults, a .env file in the working
// directory, QUIZFORGE_* environment variables, command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// devBaseURL targets a backend started locally alongside the client.
	devBaseURL = "http://localhost:8000/api/v1"

	// defaultBaseURL is the deployed endpoint used when nothing overrides it.
	defaultBaseURL = "https://api.quizforge.app/api/v1"
)

type Config struct {
	// APIBaseURL, when set, overrides base URL resolution entirely.
	APIBaseURL string `env:"QUIZFORGE_API_URL"`

	// DevMode points the client at the local development backend.
	DevMode bool `env:"QUIZFORGE_DEV"`

	// DatabaseDSN locates the local SQLite database holding the credential.
	DatabaseDSN string `env:"QUIZFORGE_DB"`

	// ExportDir is where export artifacts are written.
	ExportDir string `env:"QUIZFORGE_EXPORT_DIR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"QUIZFORGE_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "quizforge.db"
	c.ExportDir = "."
	c.LogLevel = "info"
}

// LoadConfig constructs a Config: defaults, then .env/environment, then
// flags. A missing .env file is not an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	parseFlags(cfg)
	return cfg, nil
}

// ResolveBaseURL applies the fixed precedence for the backend base path:
// explicit override → local development endpoint → deployed default.
func (c *Config) ResolveBaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.DevMode {
		return devBaseURL
	}
	return defaultBaseURL
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info for
// unrecognized values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
