package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3030", cfg.Server.URL)
	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Unpopular.ConnectTimeoutSeconds)
	assert.Equal(t, 60, cfg.Unpopular.ReadWriteTimeoutSeconds)

	// First run persists the defaults to disk.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.URL = "http://10.0.0.5:3030"
	cfg.Defaults.OutputDir = "/data/downloads"
	cfg.LogFile = "/tmp/rqbit-tui.log"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:3030", loaded.Server.URL)
	assert.Equal(t, "/data/downloads", loaded.Defaults.OutputDir)
	assert.Equal(t, "/tmp/rqbit-tui.log", loaded.LogFile)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("missing URL", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.URL = ""
		assert.Error(t, Validate(cfg))
	})

	t.Run("URL without scheme", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.URL = "127.0.0.1:3030"
		assert.Error(t, Validate(cfg))
	})

	t.Run("zero timeouts fall back to defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.TimeoutSeconds = 0
		cfg.Unpopular.ConnectTimeoutSeconds = 0
		cfg.Unpopular.ReadWriteTimeoutSeconds = 0
		require.NoError(t, Validate(cfg))
		assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
		assert.Equal(t, 20, cfg.Unpopular.ConnectTimeoutSeconds)
		assert.Equal(t, 60, cfg.Unpopular.ReadWriteTimeoutSeconds)
	})
}
