package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromDir(t *testing.T, dir string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadFromDir(t, t.TempDir())

	assert.Equal(t, "0.0.0.0", cfg.Server.Addr)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "model.gob", cfg.Model.Path)
	assert.Equal(t, "vectorizer.gob", cfg.Model.VectorizerPath)
	assert.Empty(t, cfg.Model.Bucket)
	assert.Equal(t, "gemini", cfg.Suggestion.Provider)
	assert.Equal(t, 10, cfg.Suggestion.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Suggestion.MaxAttempts)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: "9090"
model:
  path: artifacts/model.gob
suggestion:
  provider: openai
  max_attempts: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg := loadFromDir(t, dir)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "artifacts/model.gob", cfg.Model.Path)
	assert.Equal(t, "openai", cfg.Suggestion.Provider)
	assert.Equal(t, 5, cfg.Suggestion.MaxAttempts)
	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Suggestion.TimeoutSeconds)
}

func TestLoadConfigEnvBindings(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gk-test")
	t.Setenv("OPENAI_API_KEY", "ok-test")
	t.Setenv("MODEL_BUCKET", "my-artifacts")

	cfg := loadFromDir(t, t.TempDir())

	assert.Equal(t, "gk-test", cfg.Suggestion.GeminiApiKey)
	assert.Equal(t, "ok-test", cfg.Suggestion.OpenaiApiKey)
	assert.Equal(t, "my-artifacts", cfg.Model.Bucket)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [not: valid"), 0o644))

	viper.Reset()
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	_, err = LoadConfig()
	assert.Error(t, err)
}
