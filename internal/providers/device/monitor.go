package device

import (
	"context"
	"sync"
	"time"
)

// Monitor keeps the latest Snapshot fresh on an interval
type Monitor struct {
	adapter  *Adapter
	interval time.Duration

	mu     sync.RWMutex
	latest Snapshot
	ready  bool
}

// NewMonitor creates a monitor; Run starts it
func NewMonitor(adapter *Adapter, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Monitor{adapter: adapter, interval: interval}
}

// Run refreshes immediately and then on every tick until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	m.refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.refresh(ctx)
		}
	}
}

// Latest returns the most recent snapshot. Before the first refresh it
// reads the adapter directly.
func (m *Monitor) Latest(ctx context.Context) Snapshot {
	m.mu.RLock()
	snap, ready := m.latest, m.ready
	m.mu.RUnlock()

	if ready {
		return snap
	}
	return m.refresh(ctx)
}

func (m *Monitor) refresh(ctx context.Context) Snapshot {
	snap := m.adapter.Snapshot(ctx)

	m.mu.Lock()
	m.latest = snap
	m.ready = true
	m.mu.Unlock()

	return snap
}
