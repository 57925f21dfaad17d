package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "https://akil-backend.onrender.com", c.APIBaseURL)
	assert.Equal(t, "jobboard.db", c.DBPath)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 8, c.FetchConcurrency)
}

func TestLoadConfig_Defaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(envAPIBaseURL, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, defaults(), cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "https://json.example",
		"session_db":      "json.db",
		"request_timeout": "20s",
	})
	t.Setenv(envAPIBaseURL, "https://env.example")

	t.Run("env beats json", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := LoadConfig()

		assert.Equal(t, "https://env.example", cfg.APIBaseURL)
		assert.Equal(t, "json.db", cfg.DBPath)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	})

	t.Run("flags beat env", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path, "-a", "https://flag.example", "-t", "5"}

		cfg := LoadConfig()

		assert.Equal(t, "https://flag.example", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://localhost:8080", "-d", "/tmp/s.db", "-t", "10", "-l", "debug", "-n", "2"},
			expected: &Config{
				APIBaseURL:       "http://localhost:8080",
				DBPath:           "/tmp/s.db",
				RequestTimeout:   10 * time.Second,
				LogLevel:         "debug",
				FetchConcurrency: 2,
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "-l", "error"},
			expected: &Config{APIBaseURL: DefaultAPIBaseURL, DBPath: DefaultDBPath, LogLevel: "error", FetchConcurrency: 8},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestParseJson(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"log_level":         "info",
			"fetch_concurrency": 0,
			"request_timeout":   int64(3 * time.Second),
		})
		cfg := defaults()

		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 0, cfg.FetchConcurrency)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
		assert.Equal(t, DefaultDBPath, cfg.DBPath)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		cfg := defaults()
		parseJson(cfg, []string{"-a", "x"})
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(defaults(), []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}) })
	})
}

func TestParseEnv(t *testing.T) {
	cfg := defaults()

	parseEnv(cfg, func(k string) (string, bool) {
		if k == envAPIBaseURL {
			return "https://env.example", true
		}
		return "", false
	})
	assert.Equal(t, "https://env.example", cfg.APIBaseURL)

	parseEnv(cfg, func(string) (string, bool) { return "", true })
	assert.Equal(t, "https://env.example", cfg.APIBaseURL)
}
