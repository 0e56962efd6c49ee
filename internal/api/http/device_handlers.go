package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
)

// Battery returns the power source state
func (h *Handlers) Battery(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Battery(c.Request.Context()))
}

// Network returns the connection details
func (h *Handlers) Network(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Network(c.Request.Context()))
}

// WiFi returns the derived Wi-Fi view
func (h *Handlers) WiFi(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.WiFi(c.Request.Context()))
}

// Storage returns volume capacity
func (h *Handlers) Storage(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Storage(c.Request.Context()))
}

// Display returns the last reported screen geometry
func (h *Handlers) Display(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Display(c.Request.Context()))
}

// ReportDisplay stores the client's screen geometry
func (h *Handlers) ReportDisplay(c *gin.Context) {
	if h.display == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "display reporting disabled"})
		return
	}
	var d device.Display
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, "invalid display")
		return
	}
	if err := h.display.Report(d); err != nil {
		if errors.Is(err, device.ErrInvalidDisplay) {
			badRequest(c, err.Error())
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.device.Display(c.Request.Context()))
}

// Bluetooth returns adapter presence
func (h *Handlers) Bluetooth(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Bluetooth(c.Request.Context()))
}

// Media returns audio and video endpoints
func (h *Handlers) Media(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.MediaDevices(c.Request.Context()))
}

// Geolocation returns an approximate position
func (h *Handlers) Geolocation(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Geolocation(c.Request.Context()))
}

// Info describes the host
func (h *Handlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Info(c.Request.Context()))
}

// Snapshot returns every capability, from the monitor's cache when running
func (h *Handlers) Snapshot(c *gin.Context) {
	if h.monitor != nil {
		c.JSON(http.StatusOK, h.monitor.Latest(c.Request.Context()))
		return
	}
	c.JSON(http.StatusOK, h.device.Snapshot(c.Request.Context()))
}
