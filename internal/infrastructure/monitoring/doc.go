/*
Package monitoring provides Prometheus metrics for the shell server.

# Overview

Every collector owns a private registry, which keeps tests and multiple
servers in one process from colliding on the global default registry.

# Features

- HTTP request metrics (latency, status, size), labelled by route template
- Window counts
- Intent, terminal command and unlock attempt counters
- Device capability queries split by host support
- WebSocket connection and message metrics

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordIntent("open_app", nil)
	metrics.RecordDeviceQuery("battery", false)
*/
package monitoring
