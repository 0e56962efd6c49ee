package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPIN unlocks a gate built without configuration
const DefaultPIN = "1234"

// IncorrectMessage is shown after a rejected attempt
const IncorrectMessage = "The password is incorrect. Try again."

// ErrEmptyPIN rejects a gate without a secret
var ErrEmptyPIN = errors.New("lock: pin must not be empty")

// Gate guards the desktop behind a single secret. Only its hash is kept.
type Gate struct {
	hash []byte

	mu       sync.RWMutex
	unlocked bool
	failures int

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// View is what the lock screen renders
type View struct {
	Locked    bool   `json:"locked"`
	Wallpaper string `json:"wallpaper"`
	Time      string `json:"time"`
	Date      string `json:"date"`
	Failures  int    `json:"failures"`
}

// NewGate creates a locked gate for pin
func NewGate(pin string) (*Gate, error) {
	if pin == "" {
		return nil, ErrEmptyPIN
	}
	hash, err := bcrypt.GenerateFromPassword(digest(pin), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	return &Gate{hash: hash, log: logging.NewNop()}, nil
}

// digest maps a secret of any length to 64 hex bytes, within bcrypt's
// 72-byte input limit.
func digest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}

// WithMetrics adds metrics tracking to the gate
func (g *Gate) WithMetrics(metrics *monitoring.Metrics) *Gate {
	g.metrics = metrics
	return g
}

// WithLogger attaches a logger
func (g *Gate) WithLogger(log *logging.Logger) *Gate {
	if log != nil {
		g.log = log.Component("lock")
	}
	return g
}

// AttemptUnlock compares candidate with the secret. A match unlocks and
// returns true, also when already unlocked. A mismatch returns false and
// leaves the lock state as it was.
func (g *Gate) AttemptUnlock(candidate string) bool {
	match := bcrypt.CompareHashAndPassword(g.hash, digest(candidate)) == nil

	g.mu.Lock()
	wasUnlocked := g.unlocked
	if match {
		g.unlocked = true
		g.failures = 0
	} else {
		g.failures++
	}
	g.mu.Unlock()

	if g.metrics != nil {
		g.metrics.RecordUnlockAttempt(match)
	}
	switch {
	case match && !wasUnlocked:
		g.log.Info("desktop unlocked")
	case !match:
		g.log.Debug("unlock rejected")
	}
	return match
}

// Lock returns to the lock screen
func (g *Gate) Lock() {
	g.mu.Lock()
	changed := g.unlocked
	g.unlocked = false
	g.mu.Unlock()

	if changed {
		g.log.Info("desktop locked", zap.Time("at", time.Now()))
	}
}

// Unlocked reports whether the desktop is reachable
func (g *Gate) Unlocked() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.unlocked
}

// LockScreen renders the clock and wallpaper for now
func (g *Gate) LockScreen(now time.Time, wallpaper string) View {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return View{
		Locked:    !g.unlocked,
		Wallpaper: wallpaper,
		Time:      FormatTime(now),
		Date:      FormatDate(now),
		Failures:  g.failures,
	}
}

// FormatTime renders the lock screen and taskbar clock, e.g. "3:04 PM"
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatDate renders the lock screen date, e.g. "Monday, January 2"
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2")
}
