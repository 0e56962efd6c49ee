package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
	Device    DeviceConfig    `yaml:"device" toml:"device"`
	Shell     ShellConfig     `yaml:"shell" toml:"shell"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000" yaml:"port" toml:"port"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	Compression     bool          `envconfig:"COMPRESSION" default:"true" yaml:"compression" toml:"compression"`
	AllowOrigins    []string      `envconfig:"CORS_ORIGINS" default:"*" yaml:"allow_origins" toml:"allow_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// StorageConfig selects where preferences live.
type StorageConfig struct {
	Backend string `envconfig:"PREFS_BACKEND" default:"file" yaml:"backend" toml:"backend"` // memory, file, sqlite
	Path    string `envconfig:"PREFS_PATH" default:"/tmp/aurora-os/preferences.json" yaml:"path" toml:"path"`
}

// DeviceConfig configures the host capability probes.
type DeviceConfig struct {
	RefreshInterval time.Duration `envconfig:"DEVICE_REFRESH_INTERVAL" default:"5s" yaml:"refresh_interval" toml:"refresh_interval"`
	PollInterval    time.Duration `envconfig:"DEVICE_POLL_INTERVAL" default:"2s" yaml:"poll_interval" toml:"poll_interval"`
	PowerSupplyPath string        `envconfig:"DEVICE_POWER_SUPPLY_PATH" default:"/sys/class/power_supply" yaml:"power_supply_path" toml:"power_supply_path"`
	NetClassPath    string        `envconfig:"DEVICE_NET_CLASS_PATH" default:"/sys/class/net" yaml:"net_class_path" toml:"net_class_path"`
	BluetoothPath   string        `envconfig:"DEVICE_BLUETOOTH_PATH" default:"/sys/class/bluetooth" yaml:"bluetooth_path" toml:"bluetooth_path"`
	DevPath         string        `envconfig:"DEVICE_DEV_PATH" default:"/dev" yaml:"dev_path" toml:"dev_path"`
	StoragePath     string        `envconfig:"DEVICE_STORAGE_PATH" default:"/" yaml:"storage_path" toml:"storage_path"`
	RTTTarget       string        `envconfig:"DEVICE_RTT_TARGET" default:"" yaml:"rtt_target" toml:"rtt_target"`
	GeoEndpoint     string        `envconfig:"DEVICE_GEO_ENDPOINT" default:"" yaml:"geo_endpoint" toml:"geo_endpoint"`
	ProbeTimeout    time.Duration `envconfig:"DEVICE_PROBE_TIMEOUT" default:"2s" yaml:"probe_timeout" toml:"probe_timeout"`
}

// ShellConfig holds desktop shell behaviour.
type ShellConfig struct {
	PIN           string        `envconfig:"LOCK_PIN" default:"1234" yaml:"pin" toml:"pin"`
	AutoHideDelay time.Duration `envconfig:"AUTO_HIDE_DELAY" default:"3s" yaml:"auto_hide_delay" toml:"auto_hide_delay"`
	PerfInterval  time.Duration `envconfig:"PERF_INTERVAL" default:"2s" yaml:"perf_interval" toml:"perf_interval"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			Compression:     true,
			AllowOrigins:    []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "/tmp/aurora-os/preferences.json",
		},
		Device: DeviceConfig{
			RefreshInterval: 5 * time.Second,
			PollInterval:    2 * time.Second,
			PowerSupplyPath: "/sys/class/power_supply",
			NetClassPath:    "/sys/class/net",
			BluetoothPath:   "/sys/class/bluetooth",
			DevPath:         "/dev",
			StoragePath:     "/",
			ProbeTimeout:    2 * time.Second,
		},
		Shell: ShellConfig{
			PIN:           "1234",
			AutoHideDelay: 3 * time.Second,
			PerfInterval:  2 * time.Second,
		},
	}
}
