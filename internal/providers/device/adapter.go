package device

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by probes when the host lacks a capability.
var ErrUnsupported = errors.New("device: capability unsupported")

// BatteryProbe reads the power supply. Like every probe below it may be nil
// in Probes, which makes the capability unsupported.
type BatteryProbe interface {
	Battery(ctx context.Context) (Battery, error)
}

type NetworkProbe interface {
	Network(ctx context.Context) (Network, error)
	Online(ctx context.Context) (bool, error)
}

type StorageProbe interface {
	Storage(ctx context.Context) (Storage, error)
}

type DisplayProbe interface {
	Display(ctx context.Context) (Display, error)
}

type BluetoothProbe interface {
	Bluetooth(ctx context.Context) (Bluetooth, error)
}

type MediaProbe interface {
	MediaDevices(ctx context.Context) (MediaDevices, error)
}

type GeolocationProbe interface {
	Geolocation(ctx context.Context) (Geolocation, error)
}

type InfoProbe interface {
	Info(ctx context.Context) (Info, error)
}

// Probes bundles the capability sources an Adapter reads from
type Probes struct {
	Battery     BatteryProbe
	Network     NetworkProbe
	Storage     StorageProbe
	Display     DisplayProbe
	Bluetooth   BluetoothProbe
	Media       MediaProbe
	Geolocation GeolocationProbe
	Info        InfoProbe
}

// Adapter answers capability queries. Queries never fail: probe errors,
// missing probes and probe panics all yield the fallback with
// Supported == false.
type Adapter struct {
	probes       Probes
	pollInterval time.Duration
	now          func() time.Time

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// NewAdapter creates an adapter over probes
func NewAdapter(probes Probes, log *logging.Logger) *Adapter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Adapter{
		probes:       probes,
		pollInterval: 2 * time.Second,
		now:          time.Now,
		log:          log.Component("device"),
	}
}

// WithMetrics adds metrics tracking to the adapter
func (a *Adapter) WithMetrics(metrics *monitoring.Metrics) *Adapter {
	a.metrics = metrics
	return a
}

// WithPollInterval sets how often subscriptions re-read their capability
func (a *Adapter) WithPollInterval(d time.Duration) *Adapter {
	if d > 0 {
		a.pollInterval = d
	}
	return a
}

// Battery returns the power source state
func (a *Adapter) Battery(ctx context.Context) Battery {
	var fn func(context.Context) (Battery, error)
	if a.probes.Battery != nil {
		fn = a.probes.Battery.Battery
	}
	b, ok := query(a, ctx, "battery", fn)
	if !ok {
		return FallbackBattery()
	}
	b.Supported = true
	return b
}

// Network returns the primary connection, with empty fields defaulted
func (a *Adapter) Network(ctx context.Context) Network {
	var fn func(context.Context) (Network, error)
	if a.probes.Network != nil {
		fn = a.probes.Network.Network
	}
	n, ok := query(a, ctx, "network", fn)
	if !ok {
		return FallbackNetwork()
	}
	n = normalizeNetwork(n)
	n.Supported = true
	return n
}

// Online reports connectivity. Hosts without a network probe count as online.
func (a *Adapter) Online(ctx context.Context) bool {
	var fn func(context.Context) (bool, error)
	if a.probes.Network != nil {
		fn = a.probes.Network.Online
	}
	online, ok := query(a, ctx, "online", fn)
	if !ok {
		return true
	}
	return online
}

// WiFi derives connection quality from the network query. Quality is
// downlink/10*100 capped at 100, or 80 when the downlink is unknown.
func (a *Adapter) WiFi(ctx context.Context) WiFi {
	online := a.Online(ctx)
	n := a.Network(ctx)

	w := WiFi{Connected: online, Quality: 80, Supported: n.Supported}
	switch {
	case n.Supported:
		w.Type = n.Type
		w.Quality = math.Min(100, n.Downlink/10*100)
	case online:
		w.Type = "wifi"
	default:
		w.Type = "none"
	}
	return w
}

// Storage returns capacity of the reported volume
func (a *Adapter) Storage(ctx context.Context) Storage {
	var fn func(context.Context) (Storage, error)
	if a.probes.Storage != nil {
		fn = a.probes.Storage.Storage
	}
	s, ok := query(a, ctx, "storage", fn)
	if !ok {
		return FallbackStorage()
	}
	s.Percentage = Percentage(s.Usage, s.Quota)
	s.Supported = true
	return s
}

// Display returns the client's screen geometry
func (a *Adapter) Display(ctx context.Context) Display {
	var fn func(context.Context) (Display, error)
	if a.probes.Display != nil {
		fn = a.probes.Display.Display
	}
	d, ok := query(a, ctx, "display", fn)
	if !ok {
		return FallbackDisplay()
	}
	d = normalizeDisplay(d)
	d.Supported = true
	return d
}

// Bluetooth reports adapter presence
func (a *Adapter) Bluetooth(ctx context.Context) Bluetooth {
	var fn func(context.Context) (Bluetooth, error)
	if a.probes.Bluetooth != nil {
		fn = a.probes.Bluetooth.Bluetooth
	}
	b, ok := query(a, ctx, "bluetooth", fn)
	if !ok {
		return FallbackBluetooth()
	}
	if b.Adapters == nil {
		b.Adapters = []string{}
	}
	b.Supported = true
	return b
}

// MediaDevices lists audio and video endpoints
func (a *Adapter) MediaDevices(ctx context.Context) MediaDevices {
	var fn func(context.Context) (MediaDevices, error)
	if a.probes.Media != nil {
		fn = a.probes.Media.MediaDevices
	}
	m, ok := query(a, ctx, "media", fn)
	if !ok {
		return FallbackMediaDevices()
	}
	m = normalizeMedia(m)
	m.Supported = true
	return m
}

// Geolocation returns an approximate position
func (a *Adapter) Geolocation(ctx context.Context) Geolocation {
	var fn func(context.Context) (Geolocation, error)
	if a.probes.Geolocation != nil {
		fn = a.probes.Geolocation.Geolocation
	}
	g, ok := query(a, ctx, "geolocation", fn)
	if !ok {
		return FallbackGeolocation()
	}
	g.Supported = true
	return g
}

// Info describes the host
func (a *Adapter) Info(ctx context.Context) Info {
	var fn func(context.Context) (Info, error)
	if a.probes.Info != nil {
		fn = a.probes.Info.Info
	}
	online := a.Online(ctx)
	i, ok := query(a, ctx, "info", fn)
	if !ok {
		i = FallbackInfo()
		i.Online = online
		return i
	}
	i = normalizeInfo(i)
	i.Online = online
	i.Supported = true
	return i
}

// Snapshot reads every capability
func (a *Adapter) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{
		Battery:     a.Battery(ctx),
		Network:     a.Network(ctx),
		WiFi:        a.WiFi(ctx),
		Storage:     a.Storage(ctx),
		Display:     a.Display(ctx),
		Bluetooth:   a.Bluetooth(ctx),
		Media:       a.MediaDevices(ctx),
		Geolocation: a.Geolocation(ctx),
		Info:        a.Info(ctx),
		Timestamp:   a.now(),
	}
}

// query runs probe and reports whether it produced a usable value
func query[T any](a *Adapter, ctx context.Context, capability string, probe func(context.Context) (T, error)) (out T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("capability probe panicked", zap.String("capability", capability), zap.Any("panic", r))
			var zero T
			out, ok = zero, false
		}
		if a.metrics != nil {
			a.metrics.RecordDeviceQuery(capability, ok)
		}
	}()

	if probe == nil {
		return out, false
	}

	v, err := probe(ctx)
	if err != nil {
		a.log.Debug("capability unavailable, using fallback", zap.String("capability", capability), zap.Error(err))
		return out, false
	}
	return v, true
}

// Percentage is usage as a rounded share of quota
func Percentage(usage, quota uint64) int {
	if quota == 0 {
		return 0
	}
	return int(math.Round(float64(usage) / float64(quota) * 100))
}

// FormatBytes renders a byte count the way the settings and terminal views
// show it, e.g. "1.5 GB".
func FormatBytes(bytes uint64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB", "TB"}

	i := 0
	unit := uint64(1)
	for i < len(sizes)-1 && bytes/unit >= 1024 {
		unit *= 1024
		i++
	}
	value := math.Round(float64(bytes)/float64(unit)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[i]
}
