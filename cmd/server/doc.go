// Package main is the entry point for the AuroraOS shell server.
//
// The server holds the desktop session (lock screen, windows, taskbar,
// preferences) and serves it to a browser page over REST and a WebSocket
// stream. Device capabilities are read from the host.
//
// Configuration:
//   - Environment variables (12-factor)
//   - A YAML or TOML file via -config
//   - CLI flags (override both)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
//	# From a file
//	./server -config aurora.yaml
package main
