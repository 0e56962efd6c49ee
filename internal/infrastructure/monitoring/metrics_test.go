package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestDomainCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordIntent("open_app", nil)
	m.RecordIntent("open_app", errors.New("locked"))
	m.RecordUnlockAttempt(false)
	m.RecordUnlockAttempt(true)
	m.RecordDeviceQuery("battery", false)
	m.RecordTerminalCommand("dir", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("open_app", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("open_app", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnlockAttempts.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeviceQueries.WithLabelValues("battery", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TerminalCommands.WithLabelValues("dir", "ok")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest("GET", "/state", 200, 10*time.Millisecond, 10)
	m.RecordHTTPRequest("POST", "/intents", 423, 30*time.Millisecond, 10)
	m.SetWindowsOpen(3)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.Equal(t, int64(3), snap.OpenWindows)
	assert.Equal(t, int64(1), snap.ActiveConnections)
	assert.InDelta(t, 20.0, snap.AvgLatencyMs, 0.001)
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/windows/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/windows/42", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/windows/:id", "204")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aurora_http_requests_total")
	assert.Contains(t, w.Body.String(), "aurora_uptime_seconds")
}
