package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// LoadFile reads a YAML or TOML file on top of Default(). Keys missing from the
// file keep their default values. The format is chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = decodeTOML(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeTOML reads the document generically and hands it to the YAML decoder,
// which parses duration strings such as "5s" into time.Duration fields.
func decodeTOML(data []byte, cfg *Config) error {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return err
	}
	normalized, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(normalized, cfg)
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != "memory" && c.Storage.Path == "" {
		return fmt.Errorf("storage backend %q requires a path", c.Storage.Backend)
	}
	if c.Shell.PIN == "" {
		return fmt.Errorf("lock pin must not be empty")
	}
	if c.Device.RefreshInterval <= 0 || c.Device.PollInterval <= 0 {
		return fmt.Errorf("device intervals must be positive")
	}
	return nil
}
