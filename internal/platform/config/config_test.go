package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "errgate", cfg.App.Name)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.False(t, cfg.Translator.IncludeClassName)
	assert.False(t, cfg.Translator.IncludeStacktrace)
	assert.Equal(t, "FINEST", cfg.Translator.StacktraceLogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9999")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProfileFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "configs"), 0o755))

	profile := []byte(`
jaxrs-ext:
  includeClassName: true
  includeStacktrace: true
  stacktraceLogLevel: WARNING

catalog:
  NotFoundError/mp-jaxrs-ext/statuscode: 404
  ValidationError/mp-jaxrs-ext/statuscode: 400
  LegacyError/mp-jaxrs-ext/statuscode: -1
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "configs", "test.yaml"), profile, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.True(t, cfg.Translator.IncludeClassName)
	assert.True(t, cfg.Translator.IncludeStacktrace)
	assert.Equal(t, "WARNING", cfg.Translator.StacktraceLogLevel)

	lookup := cfg.StatusLookup()

	status, ok := lookup("catalog.NotFoundError/mp-jaxrs-ext/statuscode")
	assert.True(t, ok)
	assert.Equal(t, 404, status)

	status, ok = lookup("catalog.LegacyError/mp-jaxrs-ext/statuscode")
	assert.True(t, ok)
	assert.Equal(t, -1, status)

	_, ok = lookup("catalog.UnknownError/mp-jaxrs-ext/statuscode")
	assert.False(t, ok)
}

func TestLoadFromMap(t *testing.T) {
	cfg, err := LoadFromMap(map[string]any{
		"jaxrs-ext.includeClassName": true,
		"users.AccessError/mp-jaxrs-ext/statuscode": 403,
	})
	require.NoError(t, err)

	assert.True(t, cfg.Translator.IncludeClassName)

	status, ok := cfg.StatusLookup()("users.AccessError/mp-jaxrs-ext/statuscode")
	assert.True(t, ok)
	assert.Equal(t, 403, status)
}

func TestTranslatorSettings(t *testing.T) {
	cfg, err := LoadFromMap(map[string]any{
		"jaxrs-ext.includeStacktrace":  true,
		"jaxrs-ext.stacktraceLogLevel": "SEVERE",
	})
	require.NoError(t, err)

	settings := cfg.TranslatorSettings()

	assert.False(t, settings.IncludeClassName)
	assert.True(t, settings.IncludeStacktrace)
	assert.Equal(t, "SEVERE", settings.LogLevel)
}

func TestStatusLookup_NilTree(t *testing.T) {
	var cfg Config

	_, ok := cfg.StatusLookup()("anything")
	assert.False(t, ok)
}
