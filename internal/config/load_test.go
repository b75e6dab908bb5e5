package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[portal]
url = "https://portal.escola.br/api"
token = "abc"
timeout = "5s"

[library]
books_per_page = 10

[cache]
enabled = false
ttl = "1h"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.escola.br/api", cfg.Portal.URL)
	assert.Equal(t, "abc", cfg.Portal.Token)
	assert.Equal(t, 5*time.Second, cfg.Portal.Timeout)
	assert.Equal(t, 10, cfg.Library.BooksPerPage)
	assert.Equal(t, DefaultVideosPerPage, cfg.Library.VideosPerPage)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPortalURL, cfg.Portal.URL)
	assert.Equal(t, DefaultTimeout, cfg.Portal.Timeout)
	assert.Equal(t, 8, cfg.Library.BooksPerPage)
	assert.Equal(t, 12, cfg.Library.VideosPerPage)
	assert.True(t, cfg.Cache.Enabled, "cache is on unless disabled explicitly")
	assert.Equal(t, "/xdg/cache/acervo/cache.db", cfg.Cache.Path)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[portal]
token = "${ACERVO_TEST_MISSING_TOKEN}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"ACERVO_TEST_MISSING_TOKEN"}, cfgErr.Missing)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "loud"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[portal\nurl =")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfig(t, `
[library]
books_per_page = -3

[portal]
token = "${ACERVO_TEST_MISSING_TOKEN}"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, -3, cfg.Library.BooksPerPage)
	assert.Equal(t, "${ACERVO_TEST_MISSING_TOKEN}", cfg.Portal.Token)
}

func TestLoad_EnvVarDefault(t *testing.T) {
	t.Setenv("ACERVO_TEST_URL", "")
	path := writeConfig(t, `
[portal]
url = "${ACERVO_TEST_URL:-https://fallback.escola.br/api}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://fallback.escola.br/api", cfg.Portal.URL)
}
