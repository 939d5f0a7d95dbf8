package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"gemini_api_key": "key-123",
		"database_url": "postgres://localhost/recipehub?sslmode=disable",
		"server": {"port": 9090},
		"log": {"level": "debug", "format": "console"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/recipehub?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, []string{"http://localhost:8081"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "images", cfg.Images.Dir)
	assert.Equal(t, ProviderGemini, cfg.Chef.Provider)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"gemini_api_key": "key", "database_url": "postgres://file"}`)
	t.Setenv("RECIPEHUB_DATABASE_URL", "postgres://env")
	t.Setenv("RECIPEHUB_CHEF_PROVIDER", "local")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, ProviderLocal, cfg.Chef.Provider)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing database":   `{"gemini_api_key": "key"}`,
		"missing gemini key": `{"database_url": "postgres://x"}`,
		"unknown provider":   `{"database_url": "postgres://x", "chef": {"provider": "oracle"}}`,
		"bad port":           `{"database_url": "postgres://x", "gemini_api_key": "k", "server": {"port": 70000}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to read config")
}
