package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/marionette/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "marionette.yaml", `
recursion_limit: 10
wait_interval: 1s
screen: shot.png
log:
  level: debug
redis:
  addr: localhost:6379
  db: "2"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.RecursionLimit)
	assert.Equal(t, time.Second, cfg.WaitInterval)
	assert.Equal(t, "shot.png", cfg.Screen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "marionette:", cfg.Redis.Prefix)
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "marionette.toml", `
wait_interval = "50ms"

[metrics]
addr = ":2112"

[redis]
lock = true
lock_ttl = "30s"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.WaitInterval)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	assert.True(t, cfg.Redis.Lock)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, 64, cfg.RecursionLimit)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = config.Load(write(t, "bad.yaml", "log: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = config.Load(write(t, "unknown.yaml", "colour: blue\n"))
	assert.ErrorContains(t, err, "invalid config")

	_, err = config.Load(write(t, "badtype.toml", "wait_interval = \"soon\"\n"))
	assert.ErrorContains(t, err, "invalid config")
}
