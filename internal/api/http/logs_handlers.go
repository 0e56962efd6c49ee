package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxClientLogBatch bounds one ingestion request
const MaxClientLogBatch = 200

// ClientLogEntry is one log line forwarded by the desktop page
type ClientLogEntry struct {
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	Timestamp string         `json:"timestamp"`
}

// ClientLogBatch is a batch of client log lines
type ClientLogBatch struct {
	Source  string           `json:"source"`
	Entries []ClientLogEntry `json:"entries"`
}

// IngestLogs writes client log lines into the server log
func (h *Handlers) IngestLogs(c *gin.Context) {
	var req ClientLogBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid log batch")
		return
	}
	if len(req.Entries) == 0 {
		badRequest(c, "no log entries provided")
		return
	}
	if len(req.Entries) > MaxClientLogBatch {
		badRequest(c, "too many log entries")
		return
	}

	source := req.Source
	if source == "" {
		source = "desktop"
	}
	log := h.log.Component("client").With(zap.String("source", source))
	for _, entry := range req.Entries {
		writeClientLog(log.Logger, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted":  len(req.Entries),
		"timestamp": time.Now().Unix(),
	})
}

func writeClientLog(log *zap.Logger, entry ClientLogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+1)
	if entry.Timestamp != "" {
		fields = append(fields, zap.String("client_timestamp", entry.Timestamp))
	}
	for key, value := range entry.Context {
		fields = append(fields, zap.Any(key, value))
	}

	switch entry.Level {
	case "error":
		log.Error(entry.Message, fields...)
	case "warn":
		log.Warn(entry.Message, fields...)
	case "debug", "verbose":
		log.Debug(entry.Message, fields...)
	default:
		log.Info(entry.Message, fields...)
	}
}
