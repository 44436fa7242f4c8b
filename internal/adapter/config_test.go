package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultOMDbURL, cfg.OMDb.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OMDb.Timeout)
	assert.Equal(t, 32, cfg.Session.EffectBuffer)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "watchlist.db", filepath.Base(cfg.Storage.Path))
	assert.False(t, cfg.IsConfigured())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.OMDb.APIKey = "abc123"
	cfg.OMDb.EnrichGenres = true
	cfg.Session.SearchTimeout = 3 * time.Second
	cfg.Storage.Path = filepath.Join(t.TempDir(), "list.db")
	cfg.Browser.Command = "firefox"
	cfg.Browser.Args = []string{"--new-tab"}

	written, err := SaveConfig(cfg, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, loaded.IsConfigured())
	assert.Equal(t, "abc123", loaded.OMDb.APIKey)
	assert.True(t, loaded.OMDb.EnrichGenres)
	assert.Equal(t, 3*time.Second, loaded.Session.SearchTimeout)
	assert.Equal(t, cfg.Storage.Path, loaded.Storage.Path)
	assert.Equal(t, "firefox", loaded.Browser.Command)
	assert.Equal(t, []string{"--new-tab"}, loaded.Browser.Args)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("omdb:\n  api_key: from-file\nlogging:\n  level: WARN\n"), 0600))

	t.Setenv("MARQUEE_OMDB_API_KEY", "from-env")
	t.Setenv("MARQUEE_SESSION_EFFECT_BUFFER", "4")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OMDb.APIKey)
	assert.Equal(t, 4, cfg.Session.EffectBuffer)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("omdb: [unclosed\n"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestIsConfiguredIgnoresWhitespace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OMDb.APIKey = "   "
	assert.False(t, cfg.IsConfigured())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "x.db"), ExpandPath("~/data/x.db"))
	assert.Equal(t, "/abs/x.db", ExpandPath("/abs/x.db"))
}
