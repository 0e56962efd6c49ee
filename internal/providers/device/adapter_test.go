package device

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoHardware = errors.New("no hardware")

type failingProbe struct{}

func (failingProbe) Battery(context.Context) (Battery, error) { return Battery{}, errNoHardware }
func (failingProbe) Network(context.Context) (Network, error) { return Network{}, errNoHardware }
func (failingProbe) Online(context.Context) (bool, error)     { return false, errNoHardware }
func (failingProbe) Storage(context.Context) (Storage, error) { return Storage{}, errNoHardware }
func (failingProbe) Display(context.Context) (Display, error) { return Display{}, errNoHardware }
func (failingProbe) Bluetooth(context.Context) (Bluetooth, error) {
	return Bluetooth{}, errNoHardware
}
func (failingProbe) MediaDevices(context.Context) (MediaDevices, error) {
	return MediaDevices{}, errNoHardware
}
func (failingProbe) Geolocation(context.Context) (Geolocation, error) {
	return Geolocation{}, errNoHardware
}
func (failingProbe) Info(context.Context) (Info, error) { return Info{}, errNoHardware }

type panickingProbe struct{}

func (panickingProbe) Battery(context.Context) (Battery, error) { panic("driver crashed") }
func (panickingProbe) Storage(context.Context) (Storage, error) { panic("driver crashed") }

func allProbes(p failingProbe) Probes {
	return Probes{
		Battery: p, Network: p, Storage: p, Display: p,
		Bluetooth: p, Media: p, Geolocation: p, Info: p,
	}
}

func assertFallbacks(t *testing.T, a *Adapter) {
	t.Helper()
	ctx := context.Background()

	b := a.Battery(ctx)
	assert.False(t, b.Supported)
	assert.Equal(t, 85, b.Level)
	assert.False(t, b.Charging)

	n := a.Network(ctx)
	assert.False(t, n.Supported)
	assert.Equal(t, "4g", n.EffectiveType)
	assert.Equal(t, 10.0, n.Downlink)
	assert.Equal(t, 50, n.RTT)
	assert.Equal(t, "wifi", n.Type)

	w := a.WiFi(ctx)
	assert.False(t, w.Supported)
	assert.Equal(t, 80.0, w.Quality)

	s := a.Storage(ctx)
	assert.False(t, s.Supported)
	assert.Equal(t, uint64(1073741824), s.Quota)
	assert.Equal(t, uint64(268435456), s.Usage)
	assert.Equal(t, 25, s.Percentage)

	d := a.Display(ctx)
	assert.False(t, d.Supported)
	assert.Equal(t, 1920, d.Width)
	assert.Equal(t, 1080, d.Height)
	assert.Equal(t, 24, d.ColorDepth)
	assert.Equal(t, "landscape-primary", d.Orientation)
	assert.Equal(t, 1.0, d.DevicePixelRatio)

	bt := a.Bluetooth(ctx)
	assert.False(t, bt.Supported)
	assert.False(t, bt.Available)

	m := a.MediaDevices(ctx)
	assert.False(t, m.Supported)
	assert.Empty(t, m.AudioInputs)
	assert.NotNil(t, m.AudioInputs)

	g := a.Geolocation(ctx)
	assert.False(t, g.Supported)
	assert.Zero(t, g.Latitude)

	i := a.Info(ctx)
	assert.False(t, i.Supported)
	assert.Equal(t, 4, i.HardwareConcurrency)
	assert.Equal(t, 8, i.DeviceMemory)
	assert.Equal(t, "User", i.UserInfo)
}

func TestFallbacksWithoutProbes(t *testing.T) {
	assertFallbacks(t, NewAdapter(Probes{}, nil))
}

func TestFallbacksOnProbeErrors(t *testing.T) {
	assertFallbacks(t, NewAdapter(allProbes(failingProbe{}), nil))
}

func TestFallbacksOnProbePanic(t *testing.T) {
	a := NewAdapter(Probes{Battery: panickingProbe{}, Storage: panickingProbe{}}, nil)

	assert.NotPanics(t, func() {
		assert.Equal(t, FallbackBattery(), a.Battery(context.Background()))
		assert.Equal(t, FallbackStorage(), a.Storage(context.Background()))
	})
}

type stubProbes struct {
	battery Battery
	network Network
	online  bool
	storage Storage
	info    Info
}

func (s stubProbes) Battery(context.Context) (Battery, error) { return s.battery, nil }
func (s stubProbes) Network(context.Context) (Network, error) { return s.network, nil }
func (s stubProbes) Online(context.Context) (bool, error)     { return s.online, nil }
func (s stubProbes) Storage(context.Context) (Storage, error) { return s.storage, nil }
func (s stubProbes) Info(context.Context) (Info, error)       { return s.info, nil }

func TestSupportedValues(t *testing.T) {
	stub := stubProbes{
		battery: Battery{Level: 42, Charging: true},
		network: Network{Type: "ethernet", Downlink: 1000, RTT: 12, EffectiveType: "4g"},
		online:  true,
		storage: Storage{Quota: 1000, Usage: 333},
		info:    Info{Hostname: "box", HardwareConcurrency: 16},
	}
	a := NewAdapter(Probes{Battery: stub, Network: stub, Storage: stub, Info: stub}, nil)
	ctx := context.Background()

	assert.Equal(t, Battery{Level: 42, Charging: true, Supported: true}, a.Battery(ctx))

	n := a.Network(ctx)
	assert.True(t, n.Supported)
	assert.Equal(t, "ethernet", n.Type)

	s := a.Storage(ctx)
	assert.True(t, s.Supported)
	assert.Equal(t, 33, s.Percentage)

	i := a.Info(ctx)
	assert.True(t, i.Supported)
	assert.Equal(t, "box", i.Hostname)
	assert.Equal(t, 16, i.HardwareConcurrency)
	assert.Equal(t, 8, i.DeviceMemory, "missing fields take the fallback")
	assert.True(t, i.Online)
}

func TestNetworkNormalizesEmptyFields(t *testing.T) {
	stub := stubProbes{network: Network{Type: "none"}}
	a := NewAdapter(Probes{Network: stub}, nil)

	n := a.Network(context.Background())
	assert.True(t, n.Supported)
	assert.Equal(t, "none", n.Type)
	assert.Equal(t, "4g", n.EffectiveType)
	assert.Equal(t, 10.0, n.Downlink)
	assert.Equal(t, 50, n.RTT)
}

func TestWiFiQuality(t *testing.T) {
	tests := []struct {
		name     string
		downlink float64
		online   bool
		quality  float64
		typ      string
	}{
		{"slow link", 2.5, true, 25, "wifi"},
		{"capped", 300, true, 100, "wifi"},
		{"unknown downlink uses default", 0, true, 100, "wifi"},
		{"offline", 5, false, 50, "wifi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := stubProbes{network: Network{Type: "wifi", Downlink: tt.downlink}, online: tt.online}
			a := NewAdapter(Probes{Network: stub}, nil)

			w := a.WiFi(context.Background())
			assert.InDelta(t, tt.quality, w.Quality, 0.0001)
			assert.Equal(t, tt.online, w.Connected)
			assert.Equal(t, tt.typ, w.Type)
			assert.True(t, w.Supported)
		})
	}
}

func TestWiFiWithoutNetworkProbe(t *testing.T) {
	w := NewAdapter(Probes{}, nil).WiFi(context.Background())
	assert.Equal(t, WiFi{Connected: true, Type: "wifi", Quality: 80}, w)
}

func TestSnapshot(t *testing.T) {
	a := NewAdapter(Probes{}, nil)
	fixed := time.Date(2026, 2, 19, 10, 30, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	snap := a.Snapshot(context.Background())
	assert.Equal(t, fixed, snap.Timestamp)
	assert.Equal(t, FallbackBattery(), snap.Battery)
	assert.Equal(t, FallbackStorage(), snap.Storage)
}

func TestMetricsRecordSupport(t *testing.T) {
	metrics := monitoring.NewMetrics()
	a := NewAdapter(Probes{Battery: stubProbes{battery: Battery{Level: 1}}}, nil).WithMetrics(metrics)

	a.Battery(context.Background())
	a.Storage(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DeviceQueries.WithLabelValues("battery", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DeviceQueries.WithLabelValues("storage", "false")))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{268435456, "256 MB"},
		{1073741824, "1 GB"},
		{1288490189, "1.2 GB"},
		{1 << 40, "1 TB"},
		{1 << 50, "1024 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(10, 0))
	assert.Equal(t, 25, Percentage(268435456, 1073741824))
	assert.Equal(t, 67, Percentage(2, 3))
}

type changingBattery struct {
	mu    sync.Mutex
	level int
	err   error
}

func (c *changingBattery) set(level int) {
	c.mu.Lock()
	c.level = level
	c.mu.Unlock()
}

func (c *changingBattery) Battery(context.Context) (Battery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Battery{Level: c.level}, c.err
}

func TestSubscribeBattery(t *testing.T) {
	probe := &changingBattery{level: 80}
	a := NewAdapter(Probes{Battery: probe}, nil).WithPollInterval(5 * time.Millisecond)

	var calls atomic.Int32
	var lastLevel atomic.Int32
	cancel := a.SubscribeBattery(func(b Battery) {
		calls.Add(1)
		lastLevel.Store(int32(b.Level))
	})

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load(), "no delivery without a change")

	probe.set(79)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(79), lastLevel.Load())

	cancel()
	cancel()

	probe.set(50)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubscribeUnsupportedIsNoop(t *testing.T) {
	a := NewAdapter(Probes{Battery: &changingBattery{err: errNoHardware}}, nil)

	called := false
	cancel := a.SubscribeBattery(func(Battery) { called = true })
	require.NotNil(t, cancel)
	assert.NotPanics(t, func() {
		cancel()
		cancel()
	})
	assert.False(t, called)

	cancel = NewAdapter(Probes{}, nil).SubscribeOnline(func(OnlineStatus) {})
	assert.NotPanics(t, assert.PanicTestFunc(cancel))
}

type flappingNetwork struct {
	online atomic.Bool
}

func (f *flappingNetwork) Network(context.Context) (Network, error) { return Network{}, nil }
func (f *flappingNetwork) Online(context.Context) (bool, error)     { return f.online.Load(), nil }

func TestSubscribeOnline(t *testing.T) {
	probe := &flappingNetwork{}
	probe.online.Store(true)
	a := NewAdapter(Probes{Network: probe}, nil).WithPollInterval(5 * time.Millisecond)

	statuses := make(chan OnlineStatus, 4)
	cancel := a.SubscribeOnline(func(s OnlineStatus) { statuses <- s })
	defer cancel()

	probe.online.Store(false)
	select {
	case s := <-statuses:
		assert.False(t, s.Online)
		assert.False(t, s.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no online status delivered")
	}
}

func TestMonitor(t *testing.T) {
	probe := &changingBattery{level: 60}
	a := NewAdapter(Probes{Battery: probe}, nil)
	m := NewMonitor(a, 5*time.Millisecond)

	assert.Equal(t, 60, m.Latest(context.Background()).Battery.Level)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	probe.set(61)
	assert.Eventually(t, func() bool {
		return m.Latest(context.Background()).Battery.Level == 61
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
