// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON lines, info level by default
//   - Development: colored console output, debug level
//
// Each subsystem takes a named child via Component ("window", "device",
// "terminal", ...), which shows up as the "component" key in JSON output.
//
// Example Usage:
//
//	logger := logging.NewFromSettings("info", false)
//	logger.Component("device").Debug("battery probe failed", zap.Error(err))
package logging
