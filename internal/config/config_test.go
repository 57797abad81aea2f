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

func TestLoadDefaultsWithMissingFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/trading")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.EventLogBackend)
	assert.Equal(t, 1024, cfg.EngineQueueCapacity)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.PriceRefreshInterval)
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeConfig(t, `
event_log_backend: pebble
event_log_path: /tmp/events
engine_queue_capacity: 256
listen_addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendPebble, cfg.EventLogBackend)
	assert.Equal(t, "/tmp/events", cfg.EventLogPath)
	assert.Equal(t, 256, cfg.EngineQueueCapacity)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
event_log_backend: pebble
engine_queue_capacity: 256
`)
	t.Setenv("ENGINE_QUEUE_CAPACITY", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.EngineQueueCapacity)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `event_log_backend: carrier-pigeon`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresDatabaseURLForPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	path := writeConfig(t, `event_log_backend: postgres`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveQueueCapacity(t *testing.T) {
	path := writeConfig(t, `
event_log_backend: pebble
engine_queue_capacity: 0
`)

	_, err := Load(path)
	assert.Error(t, err)
}
