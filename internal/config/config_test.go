package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEOCHAT_PORT", "")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, ":8000", cfg.ListenAddr())
	require.Equal(t, "openai", cfg.Provider)
	require.Equal(t, "gpt-3.5-turbo", cfg.Model)
	require.Equal(t, 650, cfg.MaxTokens)
	require.Equal(t, 0.4, cfg.Temperature)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, 1, cfg.MaxRetries)
	require.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GEOCHAT_ADDRESS", ":9999")
	t.Setenv("GEOCHAT_MAX_TOKENS", "300")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.ListenAddr())
	require.Equal(t, 300, cfg.MaxTokens)
}

func TestLoadWellKnownEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PORT", "8123")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "sk-env", cfg.OpenAIKey)
	require.Equal(t, ":8123", cfg.ListenAddr())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	raw, err := yaml.Marshal(map[string]any{
		"provider":        "echo",
		"model":           "gpt-4o-mini",
		"temperature":     0.2,
		"request_timeout": "5s",
		"max_retries":     0,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), raw, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "echo", cfg.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.Model)
	require.Equal(t, 0.2, cfg.Temperature)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, 0, cfg.MaxRetries)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("GEOCHAT_TEMPERATURE", "3.5")
	_, err := Load(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "temperature")
}
