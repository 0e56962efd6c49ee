package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/desktop"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/lock"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/shell"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/window"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/preferences"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/terminal"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Deps are the components the handlers serve. Monitor and Display are
// optional.
type Deps struct {
	Shell    *shell.Shell
	Device   *device.Adapter
	Monitor  *device.Monitor
	Display  *device.ReportedDisplay
	Terminal *terminal.Interpreter
	Metrics  *monitoring.Metrics
	Logger   *logging.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	shell    *shell.Shell
	device   *device.Adapter
	monitor  *device.Monitor
	display  *device.ReportedDisplay
	terminal *terminal.Interpreter
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(deps Deps) *Handlers {
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		shell:    deps.Shell,
		device:   deps.Device,
		monitor:  deps.Monitor,
		display:  deps.Display,
		terminal: deps.Terminal,
		metrics:  deps.Metrics,
		log:      log.Component("api"),
	}
}

// Root handles the status check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "AuroraOS shell",
		"version": Version,
	})
}

// Health reports lock state, window stats and request counters
func (h *Handlers) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"locked":  h.shell.Locked(),
		"windows": len(h.shell.Windows()),
	}
	if h.metrics != nil {
		resp["metrics"] = h.metrics.GetSnapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// MetricsJSON returns the request counters as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

// LockScreen returns the lock screen view
func (h *Handlers) LockScreen(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.LockScreen(c.Request.Context()))
}

// UnlockRequest carries a PIN attempt
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// Unlock checks a PIN against the lock gate
func (h *Handlers) Unlock(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid unlock request")
		return
	}

	if !h.shell.Unlock(c.Request.Context(), req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"unlocked": false,
			"error":    lock.IncorrectMessage,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": true})
}

// Lock shows the lock screen again
func (h *Handlers) Lock(c *gin.Context) {
	h.shell.Lock(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"locked": true})
}

// State returns the full shell snapshot
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.State(c.Request.Context()))
}

// Dispatch applies an intent from the request body
func (h *Handlers) Dispatch(c *gin.Context) {
	var intent shell.Intent
	if err := c.ShouldBindJSON(&intent); err != nil {
		badRequest(c, "invalid intent")
		return
	}
	h.dispatch(c, intent)
}

// ListWindows lists open windows
func (h *Handlers) ListWindows(c *gin.Context) {
	st := h.shell.State(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"windows": st.Windows,
		"stats":   st.Stats,
	})
}

// OpenWindowRequest opens an application by title
type OpenWindowRequest struct {
	Title   string `json:"title" binding:"required"`
	Icon    string `json:"icon"`
	Section string `json:"section"`
}

// OpenWindow opens or reactivates an application window
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req OpenWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid window request")
		return
	}
	h.dispatch(c, shell.Intent{Kind: shell.OpenApp, Title: req.Title, Icon: req.Icon, Section: req.Section})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowIntent(c, shell.CloseWindow)
}

// MinimizeWindow toggles a window's minimized flag
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowIntent(c, shell.Minimize)
}

// MaximizeWindow toggles a window's maximized flag
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	h.windowIntent(c, shell.Maximize)
}

// FocusWindow activates a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowIntent(c, shell.Focus)
}

// UpdateGeometry moves or resizes a window
func (h *Handlers) UpdateGeometry(c *gin.Context) {
	id, ok := windowID(c)
	if !ok {
		return
	}
	var g window.Geometry
	if err := c.ShouldBindJSON(&g); err != nil {
		badRequest(c, "invalid geometry")
		return
	}
	h.dispatch(c, shell.Intent{Kind: shell.UpdateGeometry, WindowID: id, Geometry: &g})
}

// GetPreferences returns the decoded preferences
func (h *Handlers) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.Preferences(c.Request.Context()))
}

// UpdatePreferences applies a partial preference update
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var patch preferences.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid preferences")
		return
	}
	snap, err := h.shell.UpdatePreferences(c.Request.Context(), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ExecuteRequest is one terminal line
type ExecuteRequest struct {
	Command string `json:"command"`
	Path    string `json:"path"`
}

// DefaultTerminalPath is where a new terminal starts
const DefaultTerminalPath = `C:\Users\User`

// ExecuteTerminal interprets one terminal line
func (h *Handlers) ExecuteTerminal(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid terminal request")
		return
	}
	if req.Path == "" {
		req.Path = DefaultTerminalPath
	}
	c.JSON(http.StatusOK, h.terminal.Execute(c.Request.Context(), req.Command, req.Path))
}

// TaskManager returns the process table and a performance sample
func (h *Handlers) TaskManager(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.TaskManager())
}

// Catalog returns the static start menu, taskbar, desktop and widget lists
func (h *Handlers) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, desktop.NewCatalog())
}

// WiFiNetworks lists the simulated networks
func (h *Handlers) WiFiNetworks(c *gin.Context) {
	wifi := h.device.WiFi(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"wifi":     wifi,
		"networks": desktop.Networks(wifi),
	})
}

// ConnectRequest names a network to join
type ConnectRequest struct {
	Name string `json:"name" binding:"required"`
}

// WiFiConnect explains that networks cannot be joined from here
func (h *Handlers) WiFiConnect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "network name is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"connected": false,
		"message":   desktop.ConnectNotice(req.Name),
	})
}

// WiFiToggle explains that the radio cannot be switched from here
func (h *Handlers) WiFiToggle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"changed": false,
		"message": desktop.WiFiToggleNotice,
	})
}

func (h *Handlers) windowIntent(c *gin.Context, kind shell.Kind) {
	id, ok := windowID(c)
	if !ok {
		return
	}
	h.dispatch(c, shell.Intent{Kind: kind, WindowID: id})
}

func (h *Handlers) dispatch(c *gin.Context, intent shell.Intent) {
	st, err := h.shell.Dispatch(c.Request.Context(), intent)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// fail maps domain errors to status codes
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shell.ErrLocked):
		locked(c)
	case errors.Is(err, shell.ErrUnknownIntent), errors.Is(err, shell.ErrInvalidIntent):
		badRequest(c, err.Error())
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RequireUnlocked refuses desktop routes while the lock screen is up
func (h *Handlers) RequireUnlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.shell.Locked() {
			locked(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func windowID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid window id")
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func locked(c *gin.Context) {
	c.JSON(http.StatusLocked, gin.H{"error": "desktop is locked"})
}
