package device

import (
	"context"
	"net"
	"time"
)

// HostNetwork reads interfaces from the OS and link details from
// /sys/class/net. When RTTTarget is set, rtt is the TCP connect time to it.
type HostNetwork struct {
	NetClassRoot string
	RTTTarget    string // host:port
	Timeout      time.Duration

	// Interfaces overrides net.Interfaces in tests
	Interfaces func() ([]net.Interface, error)
}

func (h HostNetwork) interfaces() ([]net.Interface, error) {
	if h.Interfaces != nil {
		return h.Interfaces()
	}
	return net.Interfaces()
}

// primary returns the first interface that is up and not loopback
func (h HostNetwork) primary() (*net.Interface, error) {
	ifaces, err := h.interfaces()
	if err != nil {
		return nil, err
	}
	for i := range ifaces {
		iface := ifaces[i]
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		return &iface, nil
	}
	return nil, nil
}

// Online reports whether any non-loopback interface is up
func (h HostNetwork) Online(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	iface, err := h.primary()
	if err != nil {
		return false, err
	}
	return iface != nil, nil
}

// Network describes the primary interface
func (h HostNetwork) Network(ctx context.Context) (Network, error) {
	if err := ctx.Err(); err != nil {
		return Network{}, err
	}
	iface, err := h.primary()
	if err != nil {
		return Network{}, err
	}
	if iface == nil {
		return Network{Type: "none"}, nil
	}

	n := Network{Type: "ethernet"}
	if exists(join(h.NetClassRoot, iface.Name, "wireless")) {
		n.Type = "wifi"
	}
	if speed, err := readInt(join(h.NetClassRoot, iface.Name, "speed")); err == nil && speed > 0 {
		n.Downlink = float64(speed)
	}
	if h.RTTTarget != "" {
		if rtt, err := h.measureRTT(ctx); err == nil {
			n.RTT = int(rtt.Milliseconds())
		}
	}
	if n.Downlink > 0 || n.RTT > 0 {
		n.EffectiveType = EffectiveType(n.Downlink, n.RTT)
	}
	return n, nil
}

func (h HostNetwork) measureRTT(ctx context.Context) (time.Duration, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", h.RTTTarget)
	if err != nil {
		return 0, err
	}
	rtt := time.Since(start)
	conn.Close()
	return rtt, nil
}

// EffectiveType buckets a connection the way the Network Information API
// does. Unknown values (zero) do not count against the connection.
func EffectiveType(downlinkMbps float64, rttMs int) string {
	slow := func(limitRTT int, limitDown float64) bool {
		return (rttMs > 0 && rttMs >= limitRTT) || (downlinkMbps > 0 && downlinkMbps < limitDown)
	}
	switch {
	case slow(2000, 0.05):
		return "slow-2g"
	case slow(1400, 0.07):
		return "2g"
	case slow(270, 0.7):
		return "3g"
	default:
		return "4g"
	}
}
