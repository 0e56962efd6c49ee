package window

import (
	"sync"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Manager owns the ordered window collection and the active window.
// Every operation is total: unknown ids are ignored and reported as false.
type Manager struct {
	mu       sync.RWMutex
	windows  []*Window // insertion order, protected by mu
	activeID uint64    // 0 means none, protected by mu
	nextID   uint64    // protected by mu

	metrics *monitoring.Metrics
	log     *logging.Logger
}

// NewManager creates an empty window manager
func NewManager() *Manager {
	return &Manager{log: logging.NewNop()}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger attaches a logger
func (m *Manager) WithLogger(log *logging.Logger) *Manager {
	if log != nil {
		m.log = log.Component("window")
	}
	return m
}

// Open activates the window titled d.Title, un-minimizing it, or creates a
// new one. A reopened window keeps its geometry and payload.
func (m *Manager) Open(d Descriptor) Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w := m.findByTitle(d.Title); w != nil {
		m.activeID = w.ID
		w.IsMinimized = false
		return *w
	}

	size := SizeFor(d.Title)
	if d.Size != nil {
		size = *d.Size
	}
	payload := d.Payload
	if payload == nil {
		payload, _ = NewPayload(KindFromTitle(d.Title), "")
	}
	x, y := CascadePosition(len(m.windows))

	m.nextID++
	w := &Window{
		ID:       m.nextID,
		Title:    d.Title,
		Icon:     d.Icon,
		Geometry: Geometry{X: x, Y: y, Width: size.Width, Height: size.Height},
		Payload:  payload,
	}
	m.windows = append(m.windows, w)
	m.activeID = w.ID

	m.log.Debug("window opened",
		zap.Uint64("window_id", w.ID),
		zap.String("title", w.Title),
		zap.String("kind", string(payload.Kind())))
	if m.metrics != nil {
		m.metrics.IncWindowsOpened()
		m.metrics.SetWindowsOpen(len(m.windows))
	}

	return *w
}

// Close removes a window. If it was active, the last remaining window by
// insertion order becomes active.
func (m *Manager) Close(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}

	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)

	if m.activeID == id {
		m.activeID = 0
		if n := len(m.windows); n > 0 {
			m.activeID = m.windows[n-1].ID
		}
	}

	m.log.Debug("window closed", zap.Uint64("window_id", id))
	if m.metrics != nil {
		m.metrics.SetWindowsOpen(len(m.windows))
	}
	return true
}

// ToggleMinimize flips the minimized flag
func (m *Manager) ToggleMinimize(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.find(id)
	if w == nil {
		return false
	}
	w.IsMinimized = !w.IsMinimized
	return true
}

// ToggleMaximize flips the maximized flag. Minimized is left untouched.
func (m *Manager) ToggleMaximize(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.find(id)
	if w == nil {
		return false
	}
	w.IsMaximized = !w.IsMaximized
	return true
}

// Focus activates a window and restores it if minimized
func (m *Manager) Focus(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.find(id)
	if w == nil {
		return false
	}
	m.activeID = id
	w.IsMinimized = false
	return true
}

// UpdateGeometry moves or resizes a window. Ignored while maximized; y is
// clamped to the top edge and the size to the minimum.
func (m *Manager) UpdateGeometry(id uint64, g Geometry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.find(id)
	if w == nil || w.IsMaximized {
		return false
	}
	w.Geometry = clampGeometry(g)
	return true
}

// Get retrieves a copy of a window
func (m *Manager) Get(id uint64) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w := m.find(id)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// FindByTitle retrieves a copy of the window with the given title
func (m *Manager) FindByTitle(title string) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w := m.findByTitle(title)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// List returns copies of all windows in insertion order
func (m *Manager) List() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// Active returns the active window, if any
func (m *Manager) Active() (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.activeID == 0 {
		return Window{}, false
	}
	w := m.find(m.activeID)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// ActiveID returns the active window id, or 0 for none
func (m *Manager) ActiveID() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Stats
	for _, w := range m.windows {
		s.Total++
		if w.IsMinimized {
			s.Minimized++
		} else {
			s.Visible++
		}
		if w.IsMaximized {
			s.Maximized++
		}
	}
	if m.activeID != 0 {
		id := m.activeID
		s.ActiveID = &id
	}
	return s
}

// find must be called with the lock held
func (m *Manager) find(id uint64) *Window {
	if idx := m.indexOf(id); idx >= 0 {
		return m.windows[idx]
	}
	return nil
}

// indexOf must be called with the lock held
func (m *Manager) indexOf(id uint64) int {
	for i, w := range m.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// findByTitle must be called with the lock held
func (m *Manager) findByTitle(title string) *Window {
	for _, w := range m.windows {
		if w.Title == title {
			return w
		}
	}
	return nil
}
