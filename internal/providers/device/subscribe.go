package device

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// CancelFunc detaches a subscription. It is safe to call more than once.
type CancelFunc func()

func noop() {}

// SubscribeBattery calls fn whenever the battery level or charging state
// changes. Without a working battery probe it returns a no-op cancel and
// never calls fn.
func (a *Adapter) SubscribeBattery(fn func(Battery)) CancelFunc {
	if a.probes.Battery == nil || fn == nil {
		return noop
	}

	ctx, cancel := context.WithCancel(context.Background())
	baseline := a.Battery(ctx)
	if !baseline.Supported {
		cancel()
		return noop
	}

	last := baseline
	return a.poll(ctx, cancel, func(ctx context.Context, deliver func(func())) {
		b := a.Battery(ctx)
		if !b.Supported {
			return
		}
		if b.Level != last.Level || b.Charging != last.Charging {
			last = b
			deliver(func() { fn(b) })
		}
	})
}

// SubscribeOnline calls fn whenever connectivity flips. Without a network
// probe it returns a no-op cancel.
func (a *Adapter) SubscribeOnline(fn func(OnlineStatus)) CancelFunc {
	if a.probes.Network == nil || fn == nil {
		return noop
	}

	ctx, cancel := context.WithCancel(context.Background())
	last := a.Online(ctx)
	return a.poll(ctx, cancel, func(ctx context.Context, deliver func(func())) {
		online := a.Online(ctx)
		if online != last {
			last = online
			status := OnlineStatus{Online: online, Timestamp: a.now()}
			deliver(func() { fn(status) })
		}
	})
}

// poll runs check on every tick until the returned cancel is called. No
// delivery starts after cancel returns.
func (a *Adapter) poll(ctx context.Context, cancel context.CancelFunc, check func(context.Context, func(func()))) CancelFunc {
	var stopped atomic.Bool
	deliver := func(call func()) {
		if !stopped.Load() {
			call()
		}
	}

	go func() {
		ticker := time.NewTicker(a.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check(ctx, deliver)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			cancel()
		})
	}
}
