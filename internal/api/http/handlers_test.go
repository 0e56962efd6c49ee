package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/lock"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/shell"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/storage"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/preferences"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/taskmgr"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/terminal"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router  *gin.Engine
	shell   *shell.Shell
	metrics *monitoring.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gate, err := lock.NewGate(lock.DefaultPIN)
	require.NoError(t, err)

	metrics := monitoring.NewMetrics()
	sh, err := shell.New(context.Background(), shell.Config{
		Gate:        gate,
		Preferences: preferences.NewProvider(storage.NewMemory(), nil),
		Sampler:     taskmgr.NewSampler(rand.NewPCG(7, 7)),
		HideDelay:   time.Hour,
		Metrics:     metrics,
	})
	require.NoError(t, err)
	t.Cleanup(sh.Close)

	display := device.NewReportedDisplay()
	adapter := device.NewAdapter(device.Probes{Display: display}, nil)

	h := NewHandlers(Deps{
		Shell:    sh,
		Device:   adapter,
		Display:  display,
		Terminal: terminal.NewInterpreter(adapter),
		Metrics:  metrics,
	})

	r := gin.New()
	h.Register(r)
	return &fixture{router: r, shell: sh, metrics: metrics}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) unlock(t *testing.T) {
	t.Helper()
	w := f.do(http.MethodPost, "/lock/unlock", UnlockRequest{PIN: lock.DefaultPIN})
	require.Equal(t, http.StatusOK, w.Code)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRootAndHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "online")

	w = f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["locked"])
	assert.Contains(t, body, "metrics")
}

func TestUnlock(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/lock/unlock", UnlockRequest{PIN: "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, false, body["unlocked"])
	assert.Equal(t, lock.IncorrectMessage, body["error"])

	w = f.do(http.MethodGet, "/lock", nil)
	view := decode[lock.View](t, w)
	assert.True(t, view.Locked)
	assert.Equal(t, 1, view.Failures)

	w = f.do(http.MethodPost, "/lock/unlock", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.unlock(t)
	assert.False(t, f.shell.Locked())

	w = f.do(http.MethodPost, "/lock/lock", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.shell.Locked())
}

func TestDesktopRoutesLocked(t *testing.T) {
	f := newFixture(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/state"},
		{http.MethodGet, "/windows"},
		{http.MethodPost, "/windows"},
		{http.MethodDelete, "/windows/1"},
		{http.MethodGet, "/preferences"},
		{http.MethodPost, "/terminal/execute"},
		{http.MethodGet, "/taskmanager"},
		{http.MethodGet, "/catalog"},
		{http.MethodGet, "/wifi/networks"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := f.do(rt.method, rt.path, nil)
			assert.Equal(t, http.StatusLocked, w.Code)
		})
	}

	w := f.do(http.MethodGet, "/device/battery", nil)
	assert.Equal(t, http.StatusOK, w.Code, "device queries stay open")
}

func TestWindowLifecycle(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)

	w := f.do(http.MethodPost, "/windows", OpenWindowRequest{Title: "Terminal"})
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[shell.State](t, w)
	require.Len(t, st.Windows, 1)
	id := st.Windows[0].ID
	path := "/windows/" + jsonNumber(id)

	w = f.do(http.MethodPost, path+"/maximize", nil)
	st = decode[shell.State](t, w)
	assert.True(t, st.Windows[0].IsMaximized)

	w = f.do(http.MethodPost, path+"/minimize", nil)
	st = decode[shell.State](t, w)
	assert.True(t, st.Windows[0].IsMinimized)

	w = f.do(http.MethodPost, path+"/focus", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, path+"/maximize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(http.MethodPut, path+"/geometry", map[string]int{"x": 10, "y": 20, "width": 640, "height": 480})
	require.Equal(t, http.StatusOK, w.Code)
	st = decode[shell.State](t, w)
	assert.Equal(t, 640, st.Windows[0].Geometry.Width)

	w = f.do(http.MethodDelete, path, nil)
	st = decode[shell.State](t, w)
	assert.Empty(t, st.Windows)

	w = f.do(http.MethodDelete, "/windows/999", nil)
	assert.Equal(t, http.StatusOK, w.Code, "unknown ids are no-ops")

	w = f.do(http.MethodDelete, "/windows/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/windows", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchIntent(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)

	w := f.do(http.MethodPost, "/intents", shell.Intent{Kind: shell.ToggleStartMenu})
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[shell.State](t, w)
	assert.True(t, st.Chrome.StartMenuOpen)

	w = f.do(http.MethodPost, "/intents", map[string]string{"kind": "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/intents", shell.Intent{Kind: shell.OpenApp})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/intents", "[]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchIntentWhileLocked(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown kind", map[string]string{"kind": "teleport"}, http.StatusBadRequest},
		{"missing title", shell.Intent{Kind: shell.OpenApp}, http.StatusBadRequest},
		{"malformed json", "[]", http.StatusBadRequest},
		{"valid intent", shell.Intent{Kind: shell.ToggleStartMenu}, http.StatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/intents", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)

	vol := 35
	w := f.do(http.MethodPut, "/preferences", preferences.Patch{SystemVolume: &vol})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/preferences", nil)
	snap := decode[preferences.Snapshot](t, w)
	assert.Equal(t, 35, snap.SystemVolume)
}

func TestTerminal(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)

	w := f.do(http.MethodPost, "/terminal/execute", ExecuteRequest{Command: "pwd"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[terminal.Result](t, w)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Output, DefaultTerminalPath)
}

func TestCatalogAndWiFi(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)

	w := f.do(http.MethodGet, "/catalog", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "startMenu")

	w = f.do(http.MethodGet, "/wifi/networks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Home Network")

	w = f.do(http.MethodPost, "/wifi/connect", ConnectRequest{Name: "Cafe"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, false, body["connected"])
	assert.Contains(t, body["message"], "Would connect to: Cafe")

	w = f.do(http.MethodPost, "/wifi/connect", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/taskmanager", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportDisplay(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/device/display", nil)
	require.Equal(t, http.StatusOK, w.Code)
	before := decode[device.Display](t, w)
	assert.False(t, before.Supported)

	w = f.do(http.MethodPut, "/device/display", device.Display{Width: 0, Height: 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPut, "/device/display", device.Display{Width: 2560, Height: 1440})
	require.Equal(t, http.StatusOK, w.Code)
	after := decode[device.Display](t, w)
	assert.Equal(t, 2560, after.Width)
	assert.True(t, after.Supported)
}

func TestDeviceRoutes(t *testing.T) {
	f := newFixture(t)

	for _, p := range []string{"battery", "network", "wifi", "storage", "bluetooth", "media", "geolocation", "info", "snapshot"} {
		w := f.do(http.MethodGet, "/device/"+p, nil)
		assert.Equal(t, http.StatusOK, w.Code, p)
	}
}

func TestIngestLogs(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/logs", ClientLogBatch{
		Source: "desktop",
		Entries: []ClientLogEntry{
			{Level: "error", Message: "render failed", Context: map[string]any{"window": 3}},
			{Level: "verbose", Message: "tick"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, float64(2), body["accepted"])

	w = f.do(http.MethodPost, "/logs", ClientLogBatch{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/logs", ClientLogBatch{Entries: make([]ClientLogEntry, MaxClientLogBatch+1)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsJSON(t *testing.T) {
	f := newFixture(t)
	f.unlock(t)
	f.do(http.MethodPost, "/intents", shell.Intent{Kind: shell.ToggleWidgets})

	w := f.do(http.MethodGet, "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[monitoring.Snapshot](t, w)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func jsonNumber(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
