// Package config loads server configuration.
//
// Sources, in order of use:
//   - Environment variables (12-factor), parsed by envconfig with struct-tag defaults
//   - A YAML or TOML file passed with -config, layered over Default()
//   - CLI flags in cmd/server, which override port and development mode
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
