package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "1234", cfg.Shell.PIN)
	assert.Equal(t, 3*time.Second, cfg.Shell.AutoHideDelay)
	assert.Equal(t, "/sys/class/power_supply", cfg.Device.PowerSupplyPath)

	require.NoError(t, cfg.Validate())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_ENABLED":      "false",
		"PREFS_BACKEND":           "sqlite",
		"PREFS_PATH":              "/var/lib/aurora/prefs.db",
		"LOCK_PIN":                "9876",
		"AUTO_HIDE_DELAY":         "750ms",
		"DEVICE_REFRESH_INTERVAL": "1m",
		"DEVICE_GEO_ENDPOINT":     "http://geo.local/json",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/var/lib/aurora/prefs.db", cfg.Storage.Path)
	assert.Equal(t, "9876", cfg.Shell.PIN)
	assert.Equal(t, 750*time.Millisecond, cfg.Shell.AutoHideDelay)
	assert.Equal(t, time.Minute, cfg.Device.RefreshInterval)
	assert.Equal(t, "http://geo.local/json", cfg.Device.GeoEndpoint)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("PREFS_BACKEND", "redis")

	_, err := Load()
	assert.Error(t, err)

	// LoadOrDefault swallows the error
	cfg := LoadOrDefault()
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurora.yaml")
	content := `
server:
  port: "8080"
storage:
  backend: memory
shell:
  pin: "0000"
  auto_hide_delay: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "0000", cfg.Shell.PIN)
	assert.Equal(t, 5*time.Second, cfg.Shell.AutoHideDelay)
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurora.toml")
	content := `
[server]
port = "7000"

[logging]
level = "warn"
development = true

[storage]
backend = "sqlite"
path = "/tmp/prefs.db"

[shell]
auto_hide_delay = "5s"
perf_interval = "250ms"

[device]
refresh_interval = "1m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Shell.AutoHideDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Shell.PerfInterval)
	assert.Equal(t, time.Minute, cfg.Device.RefreshInterval)
	assert.Equal(t, 2*time.Second, cfg.Device.PollInterval, "unset durations keep defaults")

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/prefs.db", cfg.Storage.Path)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unsupported := filepath.Join(dir, "aurora.ini")
	require.NoError(t, os.WriteFile(unsupported, []byte("port=1"), 0o644))
	_, err = LoadFile(unsupported)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("storage:\n  backend: floppy\n"), 0o644))
	_, err = LoadFile(invalid)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "memory backend needs no path", mutate: func(c *Config) { c.Storage.Backend = "memory"; c.Storage.Path = "" }},
		{name: "file backend needs a path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: true},
		{name: "empty pin", mutate: func(c *Config) { c.Shell.PIN = "" }, wantErr: true},
		{name: "zero poll interval", mutate: func(c *Config) { c.Device.PollInterval = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
