package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.API, cfg.API)
	assert.Equal(t, def.Storage, cfg.Storage)
	assert.Equal(t, 20, cfg.Catalog.PageSize)
	assert.Equal(t, 5*time.Second, cfg.UI.ToastDuration)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "marvel-custom-heroes", cfg.Storage.Key)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  public_key: pub
  private_key: priv
  timeout: 5s
catalog:
  page_size: 10
ui:
  toast_duration: 0s
  viewer: feh
  viewer_args: ["--scale-down"]
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, "pub", cfg.API.PublicKey)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://gateway.marvel.com/v1/public", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.Equal(t, time.Duration(0), cfg.UI.ToastDuration)
	assert.Equal(t, "feh", cfg.UI.Viewer)
	assert.Equal(t, []string{"--scale-down"}, cfg.UI.ViewerArgs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, path, cfg.Path())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HERODEX_API_PUBLIC_KEY", "env-pub")
	t.Setenv("HERODEX_CATALOG_PAGE_SIZE", "50")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-pub", cfg.API.PublicKey)
	assert.Equal(t, 50, cfg.Catalog.PageSize)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.SetPath(path)
	cfg.API.PublicKey = "pub"
	cfg.API.PrivateKey = "priv"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "herodex.db")
	cfg.UI.ViewerArgs = []string{"-a", "-b"}
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.API, loaded.API)
	assert.Equal(t, cfg.Storage, loaded.Storage)
	assert.Equal(t, cfg.UI, loaded.UI)
	assert.Equal(t, cfg.Catalog, loaded.Catalog)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y.db"), ExpandHome("~/x/y.db"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "", ExpandHome(""))
}
