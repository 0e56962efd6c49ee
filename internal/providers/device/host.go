package device

import (
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/resilience"
	"go.uber.org/zap"
)

// NewHostProbes wires the Linux probes described by cfg. display receives
// geometry reports from clients. Geolocation is only wired when an
// endpoint is configured.
func NewHostProbes(cfg config.DeviceConfig, display *ReportedDisplay, log *logging.Logger) Probes {
	if log == nil {
		log = logging.NewNop()
	}

	probes := Probes{
		Battery: SysfsBattery{Root: cfg.PowerSupplyPath},
		Network: HostNetwork{
			NetClassRoot: cfg.NetClassPath,
			RTTTarget:    cfg.RTTTarget,
			Timeout:      cfg.ProbeTimeout,
		},
		Storage:   HostStorage{Path: cfg.StoragePath},
		Bluetooth: SysfsBluetooth{Root: cfg.BluetoothPath},
		Media:     DevMedia{Root: cfg.DevPath},
		Info:      HostInfo{},
	}
	if display != nil {
		probes.Display = display
	}

	if cfg.GeoEndpoint != "" {
		geoLog := log.Component("geolocation")
		breaker := resilience.New("geolocation", resilience.Settings{
			Threshold: 3,
			Cooldown:  30 * time.Second,
			OnStateChange: func(name string, from, to resilience.State) {
				geoLog.Info("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		})
		probes.Geolocation = NewIPGeolocation(cfg.GeoEndpoint, cfg.ProbeTimeout, breaker)
	}

	return probes
}
