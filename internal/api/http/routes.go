package http

import (
	"github.com/gin-gonic/gin"
)

// Register mounts every shell route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics/json", h.MetricsJSON)
	r.POST("/logs", h.IngestLogs)

	// The shell checks the lock itself, after validating the intent.
	r.POST("/intents", h.Dispatch)

	lockGroup := r.Group("/lock")
	{
		lockGroup.GET("", h.LockScreen)
		lockGroup.POST("/unlock", h.Unlock)
		lockGroup.POST("/lock", h.Lock)
	}

	dev := r.Group("/device")
	{
		dev.GET("/battery", h.Battery)
		dev.GET("/network", h.Network)
		dev.GET("/wifi", h.WiFi)
		dev.GET("/storage", h.Storage)
		dev.GET("/display", h.Display)
		dev.PUT("/display", h.ReportDisplay)
		dev.GET("/bluetooth", h.Bluetooth)
		dev.GET("/media", h.Media)
		dev.GET("/geolocation", h.Geolocation)
		dev.GET("/info", h.Info)
		dev.GET("/snapshot", h.Snapshot)
	}

	desk := r.Group("", h.RequireUnlocked())
	{
		desk.GET("/state", h.State)

		desk.GET("/windows", h.ListWindows)
		desk.POST("/windows", h.OpenWindow)
		desk.DELETE("/windows/:id", h.CloseWindow)
		desk.POST("/windows/:id/minimize", h.MinimizeWindow)
		desk.POST("/windows/:id/maximize", h.MaximizeWindow)
		desk.POST("/windows/:id/focus", h.FocusWindow)
		desk.PUT("/windows/:id/geometry", h.UpdateGeometry)

		desk.GET("/preferences", h.GetPreferences)
		desk.PUT("/preferences", h.UpdatePreferences)

		desk.POST("/terminal/execute", h.ExecuteTerminal)
		desk.GET("/taskmanager", h.TaskManager)
		desk.GET("/catalog", h.Catalog)

		desk.GET("/wifi/networks", h.WiFiNetworks)
		desk.POST("/wifi/connect", h.WiFiConnect)
		desk.POST("/wifi/toggle", h.WiFiToggle)
	}
}
