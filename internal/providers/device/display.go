package device

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidDisplay rejects a report without a positive size
var ErrInvalidDisplay = errors.New("device: display width and height must be positive")

// ReportedDisplay holds the screen geometry last reported by the client.
// The server has no screen of its own.
type ReportedDisplay struct {
	mu       sync.RWMutex
	display  Display
	reported bool
}

// NewReportedDisplay creates an empty display source
func NewReportedDisplay() *ReportedDisplay {
	return &ReportedDisplay{}
}

// Report stores the client's geometry
func (r *ReportedDisplay) Report(d Display) error {
	if d.Width <= 0 || d.Height <= 0 {
		return ErrInvalidDisplay
	}
	d.Supported = false

	r.mu.Lock()
	r.display = normalizeDisplay(d)
	r.reported = true
	r.mu.Unlock()
	return nil
}

func (r *ReportedDisplay) Display(context.Context) (Display, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.reported {
		return Display{}, ErrUnsupported
	}
	return r.display, nil
}
