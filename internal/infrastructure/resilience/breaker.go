package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// Threshold is the number of consecutive failures that opens the circuit
	Threshold uint32
	// Cooldown is how long the circuit stays open before a trial call
	Cooldown time.Duration
	// Trials is the number of successes in half-open state that close the circuit
	Trials uint32
	// OnStateChange is called whenever the state changes, outside the lock
	OnStateChange func(name string, from, to State)
	// Now overrides the clock in tests
	Now func() time.Time
}

// Counts holds the statistics for the circuit breaker
type Counts struct {
	Calls                uint32
	Successes            uint32
	Failures             uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
}

// Breaker guards calls to a flaky dependency, failing fast once the
// dependency has failed Threshold times in a row.
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
	inFlight uint32
}

// New creates a circuit breaker. Zero settings get defaults of 3 failures,
// a 30 second cooldown and one trial call.
func New(name string, settings Settings) *Breaker {
	if settings.Threshold == 0 {
		settings.Threshold = 3
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Trials == 0 {
		settings.Trials = 1
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}

	return &Breaker{name: name, settings: settings}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, promoting open to half-open once the
// cooldown has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	state, t := b.refresh()
	b.mu.Unlock()

	b.notify(t)
	return state
}

// Counts returns a copy of the counts for the current state
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

// Call runs fn unless the circuit is open. Context cancellation is not
// counted as a failure of the dependency.
func (b *Breaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		b.release()
		return err
	}
	b.record(err == nil)
	return err
}

type transition struct {
	from, to State
	changed  bool
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	state, t := b.refresh()
	err := b.take(state)
	b.mu.Unlock()

	b.notify(t)
	return err
}

// take must be called with the lock held
func (b *Breaker) take(state State) error {
	switch state {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.inFlight >= b.settings.Trials {
			return ErrTooManyRequests
		}
	}

	b.inFlight++
	b.counts.Calls++
	return nil
}

func (b *Breaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inFlight > 0 {
		b.inFlight--
	}
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	if b.inFlight > 0 {
		b.inFlight--
	}

	var t transition
	if success {
		b.counts.Successes++
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if b.state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.Trials {
			t = b.setState(StateClosed)
		}
	} else {
		b.counts.Failures++
		b.counts.ConsecutiveFailures++
		b.counts.ConsecutiveSuccesses = 0
		switch b.state {
		case StateClosed:
			if b.counts.ConsecutiveFailures >= b.settings.Threshold {
				t = b.setState(StateOpen)
			}
		case StateHalfOpen:
			t = b.setState(StateOpen)
		}
	}
	b.mu.Unlock()

	b.notify(t)
}

// refresh must be called with the lock held
func (b *Breaker) refresh() (State, transition) {
	if b.state == StateOpen && !b.settings.Now().Before(b.openedAt.Add(b.settings.Cooldown)) {
		return StateHalfOpen, b.setState(StateHalfOpen)
	}
	return b.state, transition{}
}

// setState must be called with the lock held
func (b *Breaker) setState(state State) transition {
	if b.state == state {
		return transition{}
	}

	prev := b.state
	b.state = state
	b.counts = Counts{}
	b.inFlight = 0
	if state == StateOpen {
		b.openedAt = b.settings.Now()
	}
	return transition{from: prev, to: state, changed: true}
}

func (b *Breaker) notify(t transition) {
	if t.changed && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, t.from, t.to)
	}
}
