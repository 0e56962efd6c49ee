/*
Package resilience provides a circuit breaker for optional network probes.

The device adapter reaches out to an IP geolocation endpoint when one is
configured. When that endpoint is down the breaker opens after Threshold
consecutive failures and every query falls back immediately until the
cooldown has passed.

# Usage

	breaker := resilience.New("geolocation", resilience.Settings{
		Threshold: 3,
		Cooldown:  30 * time.Second,
	})

	err := breaker.Call(ctx, func(ctx context.Context) error {
		return fetch(ctx)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		// use the fallback
	}

# States

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[Trials successes]-> Closed
	                                                        |
	                                                    [failure]
	                                                        v
	                                                      Open
*/
package resilience
