package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.False(t, cfg.Pipeline.StrictRouting)
	assert.Equal(t, 4, cfg.Pipeline.MaxConcurrentAgents)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.ParserModel)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.ReportModel)
	assert.Equal(t, 60, cfg.Anthropic.RequestTimeoutSecs)
	assert.Equal(t, 3, cfg.Anthropic.MaxRetries)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
log:
  level: debug
  format: console
server:
  port: 9000
data:
  dir: /srv/datasets
pipeline:
  strict_routing: true
anthropic:
  parser_model: custom-model
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/datasets", cfg.Data.Dir)
	assert.True(t, cfg.Pipeline.StrictRouting)
	assert.Equal(t, "custom-model", cfg.Anthropic.ParserModel)
	// Untouched defaults survive.
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.ReportModel)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nonsense", Format: "json"})
	assert.Error(t, err)
}
