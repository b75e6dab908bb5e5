package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "acervo", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/acervo/config.toml", DefaultPath())
}

func TestDefaultCachePath_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	assert.Equal(t, "/custom/cache/acervo/cache.db", DefaultCachePath())
}

func TestDiscover_ACERVO_CONFIG(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[portal]"), 0644))

	t.Setenv("ACERVO_CONFIG", cfgPath)

	loc, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, Location{Path: cfgPath, Source: SourceEnv}, loc)
}

func TestDiscover_ACERVO_CONFIG_NotFound(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACERVO_CONFIG")
	assert.NotErrorIs(t, err, ErrNotFound, "an explicit path that is missing is a hard error")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "")
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "acervo.toml"), []byte("[portal]"), 0644))
	t.Chdir(tmp)

	loc, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "acervo.toml", filepath.Base(loc.Path))
	assert.Equal(t, SourceWorkDir, loc.Source)
}

func TestDiscover_XDG(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "")
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	want := filepath.Join(xdg, "acervo", "config.toml")
	require.NoError(t, WriteDefault(want))
	t.Chdir(t.TempDir())

	loc, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, Location{Path: want, Source: SourceUser}, loc)
	assert.True(t, loc.Exists())
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Chdir(t.TempDir())

	_, err := Discover()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "acervo.toml")
}

func TestResolve(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")
	t.Chdir(t.TempDir())

	loc, err := Resolve("/tmp/explicit.toml")
	require.NoError(t, err)
	assert.Equal(t, Location{Path: "/tmp/explicit.toml", Source: SourceFlag}, loc)

	loc, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, SourceBuiltins, loc.Source)
	assert.Equal(t, "/nonexistent/xdg/acervo/config.toml", loc.Path)
	assert.False(t, loc.Exists())

	cfg, err := LoadFrom(loc)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_ACERVO_CONFIG_Missing(t *testing.T) {
	t.Setenv("ACERVO_CONFIG", "/nonexistent/config.toml")

	_, err := Resolve("")
	require.Error(t, err, "a missing explicit env path does not fall back to defaults")
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "/etc/acervo/config.toml (system config)",
		Location{Path: "/etc/acervo/config.toml", Source: SourceSystem}.String())
	assert.Equal(t, "a.toml", Location{Path: "a.toml"}.String())
}
