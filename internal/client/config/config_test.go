package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "quizforge.db", c.DatabaseDSN)
	assert.Equal(t, ".", c.ExportDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.APIBaseURL)
	assert.False(t, c.DevMode)
}

func TestLoadConfig_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("QUIZFORGE_API_URL", "http://example.test/api/v1")
	t.Setenv("QUIZFORGE_DB", "/tmp/creds.db")
	t.Setenv("QUIZFORGE_LOG_LEVEL", "debug")

	origArgs := os.Args
	os.Args = []string{"quizforge"}
	t.Cleanup(func() { os.Args = origArgs })

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/creds.db", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".", cfg.ExportDir, "untouched fields keep their defaults")
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "all flags",
			args: []string{"quizforge", "-a", "http://localhost:9000/api/v1", "-d", "alt.db", "-e", "/tmp/out", "-l", "warn"},
			expected: Config{
				APIBaseURL:  "http://localhost:9000/api/v1",
				DatabaseDSN: "alt.db",
				ExportDir:   "/tmp/out",
				LogLevel:    "warn",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"quizforge", "-test.v", "-a", "http://localhost:9000/api/v1"},
			expected: Config{
				APIBaseURL:  "http://localhost:9000/api/v1",
				DatabaseDSN: "quizforge.db",
				ExportDir:   ".",
				LogLevel:    "info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			os.Args = tt.args
			t.Cleanup(func() { os.Args = origArgs })

			cfg := &Config{}
			cfg.LoadDefaults()
			parseFlags(cfg)

			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{name: "explicit override wins", cfg: Config{APIBaseURL: "http://example.test", DevMode: true}, expected: "http://example.test"},
		{name: "dev mode", cfg: Config{DevMode: true}, expected: "http://localhost:8000/api/v1"},
		{name: "deployed default", cfg: Config{}, expected: "https://api.quizforge.app/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.ResolveBaseURL())
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		c := Config{LogLevel: tt.in}
		assert.Equal(t, tt.expected, c.SlogLevel(), tt.in)
	}
}
