package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MENUFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "menu-manifest.json", cfg.Manifest.Path)
	assert.Equal(t, "main", cfg.Manifest.RootScreen)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menuflow.yaml")
	content := `
manifest:
  path: /etc/menuflow/screens.yaml
  root_screen: home
store:
  backend: redis
redis:
  address: redis.internal:6379
  session_ttl: 30m
server:
  listen: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("MENUFLOW_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/etc/menuflow/screens.yaml", cfg.Manifest.Path)
	assert.Equal(t, "home", cfg.Manifest.RootScreen)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Address)
	assert.Equal(t, 30*time.Minute, cfg.Redis.SessionTTL)
	assert.Equal(t, ":9090", cfg.Server.Listen)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MENUFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MENUFLOW_STORE_BACKEND", "redis")
	t.Setenv("MENUFLOW_REDIS_ADDRESS", "10.0.0.5:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "10.0.0.5:6379", cfg.Redis.Address)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("MENUFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MENUFLOW_STORE_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)
}
