package ws

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/shell"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/terminal"
	"github.com/GriffinCanCode/AuroraOS/internal/shared/id"
)

// Message types
const (
	TypeWelcome     = "welcome"
	TypeState       = "state"
	TypeBattery     = "battery"
	TypeNetwork     = "network"
	TypeClock       = "clock"
	TypePerf        = "perf"
	TypeTerminal    = "terminal"
	TypeError       = "error"
	TypePong        = "pong"
	TypeIntent      = "intent"
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
)

// Topics a client may opt into
const (
	TopicClock = "clock"
	TopicPerf  = "perf"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 32
)

// Deps are what a connection streams from. Device, Terminal and Metrics
// are optional.
type Deps struct {
	Shell         *shell.Shell
	Device        *device.Adapter
	Terminal      *terminal.Interpreter
	Metrics       *monitoring.Metrics
	Logger        *logging.Logger
	AllowOrigins  []string
	ClockInterval time.Duration
	PerfInterval  time.Duration
}

// Handler manages WebSocket connections
type Handler struct {
	shell    *shell.Shell
	device   *device.Adapter
	terminal *terminal.Interpreter
	metrics  *monitoring.Metrics
	log      *logging.Logger

	upgrader      websocket.Upgrader
	clockInterval time.Duration
	perfInterval  time.Duration
	now           func() time.Time
}

// NewHandler creates a new WebSocket handler
func NewHandler(deps Deps) *Handler {
	log := deps.Logger
	if log == nil {
		log = logging.NewNop()
	}
	h := &Handler{
		shell:         deps.Shell,
		device:        deps.Device,
		terminal:      deps.Terminal,
		metrics:       deps.Metrics,
		log:           log.Component("ws"),
		clockInterval: deps.ClockInterval,
		perfInterval:  deps.PerfInterval,
		now:           time.Now,
	}
	if h.clockInterval <= 0 {
		h.clockInterval = time.Second
	}
	if h.perfInterval <= 0 {
		h.perfInterval = 2 * time.Second
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(deps.AllowOrigins),
	}
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// HandleConnection upgrades the request and serves the connection until
// either side closes it
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := newConnection(h, ws, id.NewConnectionID().String())
	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	h.log.Debug("websocket connected", zap.String("connection_id", conn.id))

	conn.serve(context.Background())
	h.log.Debug("websocket closed", zap.String("connection_id", conn.id))
}
