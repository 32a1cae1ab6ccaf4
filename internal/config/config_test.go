package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage:
  driver: sqlite
  path: /var/lib/patients/patients.db
  create_if_missing: true
http_server:
  address: 0.0.0.0:9000
  read_timeout: 3s
metrics:
  enabled: true
  path: /internal/metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/patients/patients.db", cfg.Storage.Path)
	assert.True(t, cfg.Storage.CreateIfMissing)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  path: patients.json\n"))
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.CreateIfMissing)
	assert.Equal(t, "localhost:8082", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/override.json")
	t.Setenv("HTTP_SERVER_ADDR", ":7000")

	cfg, err := Load(writeConfig(t, "storage:\n  path: patients.json\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.json", cfg.Storage.Path)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "storage:\n  path: p.json\n  driver: mongo\n"))
	assert.ErrorContains(t, err, "unknown storage driver")

	_, err = Load(writeConfig(t, "env: qa\nstorage:\n  path: p.json\n"))
	assert.ErrorContains(t, err, "unknown env")

	_, err = Load(writeConfig(t, "storage:\n  path: p.json\nmetrics:\n  enabled: true\n  path: metrics\n"))
	assert.ErrorContains(t, err, "metrics path")
}
