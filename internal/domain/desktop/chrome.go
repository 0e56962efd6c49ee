package desktop

import (
	"math"
	"sync"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Pointer thresholds, measured from the bottom edge of the viewport
const (
	RevealZone    = 50  // pointer within this distance shows the taskbar
	HideZone      = 100 // pointer above this distance schedules a hide
	TouchZone     = 100 // touch within this distance shows the taskbar
	SwipeDistance = 100 // minimum upward travel of a swipe
	SwipeDrift    = 50  // maximum sideways travel of a swipe
	SwipeFingers  = 3
)

// DefaultHideDelay is how long the pointer must stay away before the
// taskbar hides
const DefaultHideDelay = 3 * time.Second

// Point is a viewport position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the open/closed state of every piece of shell chrome
type State struct {
	StartMenuOpen     bool   `json:"startMenuOpen"`
	WidgetsOpen       bool   `json:"widgetsOpen"`
	ContextMenu       *Point `json:"contextMenu"`
	QuickSettingsOpen bool   `json:"quickSettingsOpen"`
	VolumePanelOpen   bool   `json:"volumePanelOpen"`
	WiFiPanelOpen     bool   `json:"wifiPanelOpen"`
	TaskbarVisible    bool   `json:"taskbarVisible"`
	AutoHide          bool   `json:"autoHide"`
}

// Chrome owns the taskbar, menus and flyout panels. The auto-hide timer is
// owned by the Chrome and released by Close.
type Chrome struct {
	mu        sync.Mutex
	state     State
	hideDelay time.Duration
	hideTimer *time.Timer
	hideGen   uint64 // bumped on every schedule and cancel, protected by mu
	closed    bool

	onChange func(State)
	log      *logging.Logger
}

// NewChrome creates chrome with every menu closed and the taskbar shown
func NewChrome(autoHide bool) *Chrome {
	return &Chrome{
		state:     State{TaskbarVisible: true, AutoHide: autoHide},
		hideDelay: DefaultHideDelay,
		log:       logging.NewNop(),
	}
}

// WithHideDelay overrides the auto-hide delay
func (c *Chrome) WithHideDelay(d time.Duration) *Chrome {
	if d > 0 {
		c.hideDelay = d
	}
	return c
}

// WithLogger attaches a logger
func (c *Chrome) WithLogger(log *logging.Logger) *Chrome {
	if log != nil {
		c.log = log.Component("chrome")
	}
	return c
}

// OnChange registers fn to be called after a timer changes the state.
// Changes made by method calls are not reported; callers already know.
func (c *Chrome) OnChange(fn func(State)) *Chrome {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
	return c
}

// State returns a copy of the current state
func (c *Chrome) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// ToggleStartMenu opens or closes the start menu. With auto-hide on, the
// taskbar is shown as well.
func (c *Chrome) ToggleStartMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.StartMenuOpen = !c.state.StartMenuOpen
	if c.state.AutoHide {
		c.state.TaskbarVisible = true
	}
}

// CloseStartMenu closes the start menu
func (c *Chrome) CloseStartMenu() {
	c.mu.Lock()
	c.state.StartMenuOpen = false
	c.mu.Unlock()
}

// AppOpened is called whenever a window is opened or reactivated
func (c *Chrome) AppOpened() {
	c.CloseStartMenu()
}

// ToggleWidgets opens or closes the widget board
func (c *Chrome) ToggleWidgets() {
	c.mu.Lock()
	c.state.WidgetsOpen = !c.state.WidgetsOpen
	c.mu.Unlock()
}

// CloseWidgets closes the widget board
func (c *Chrome) CloseWidgets() {
	c.mu.Lock()
	c.state.WidgetsOpen = false
	c.mu.Unlock()
}

// OpenContextMenu shows the desktop context menu at (x, y) and closes the
// start menu and widget board
func (c *Chrome) OpenContextMenu(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ContextMenu = &Point{X: x, Y: y}
	c.state.StartMenuOpen = false
	c.state.WidgetsOpen = false
}

// CloseContextMenu hides the context menu
func (c *Chrome) CloseContextMenu() {
	c.mu.Lock()
	c.state.ContextMenu = nil
	c.mu.Unlock()
}

// DesktopClick closes the context menu, start menu and widget board
func (c *Chrome) DesktopClick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ContextMenu = nil
	c.state.StartMenuOpen = false
	c.state.WidgetsOpen = false
}

// ToggleQuickSettings flips the quick settings flyout. Flyouts share the
// tray, so opening one closes the others.
func (c *Chrome) ToggleQuickSettings() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFlyout(&c.state.QuickSettingsOpen)
}

// ToggleVolumePanel flips the volume flyout
func (c *Chrome) ToggleVolumePanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFlyout(&c.state.VolumePanelOpen)
}

// ToggleWiFiPanel flips the Wi-Fi flyout
func (c *Chrome) ToggleWiFiPanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFlyout(&c.state.WiFiPanelOpen)
}

// CloseFlyouts closes every tray flyout
func (c *Chrome) CloseFlyouts() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.QuickSettingsOpen = false
	c.state.VolumePanelOpen = false
	c.state.WiFiPanelOpen = false
}

// PointerMove tracks the pointer for auto-hide. y is measured from the top
// of a viewport of the given height.
func (c *Chrome) PointerMove(y, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.AutoHide || c.closed {
		return
	}
	switch {
	case y > height-RevealZone:
		c.state.TaskbarVisible = true
		c.cancelHide()
	case y < height-HideZone:
		c.scheduleHide()
	}
}

// TouchMove shows the taskbar when a touch nears the bottom edge
func (c *Chrome) TouchMove(y, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.AutoHide && y > height-TouchZone {
		c.state.TaskbarVisible = true
	}
}

// SetAutoHide switches auto-hide. Turning it off shows the taskbar and
// cancels a pending hide.
func (c *Chrome) SetAutoHide(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.AutoHide = enabled
	if !enabled {
		c.state.TaskbarVisible = true
		c.cancelHide()
	}
}

// Close releases the auto-hide timer. Further pointer moves are ignored.
func (c *Chrome) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cancelHide()
}

// IsTaskManagerSwipe reports whether a touch gesture with the given finger
// count and travel opens the Task Manager
func IsTaskManagerSwipe(fingers int, dx, dy float64) bool {
	return fingers == SwipeFingers && dy < -SwipeDistance && math.Abs(dx) < SwipeDrift
}

func (c *Chrome) setFlyout(target *bool) {
	open := !*target
	c.state.QuickSettingsOpen = false
	c.state.VolumePanelOpen = false
	c.state.WiFiPanelOpen = false
	*target = open
}

// scheduleHide (re)arms the hide timer. Caller must hold mu.
func (c *Chrome) scheduleHide() {
	c.cancelHide()
	gen := c.hideGen
	c.hideTimer = time.AfterFunc(c.hideDelay, func() { c.fireHide(gen) })
}

// cancelHide stops a pending hide. Caller must hold mu.
func (c *Chrome) cancelHide() {
	c.hideGen++
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

func (c *Chrome) fireHide(gen uint64) {
	c.mu.Lock()
	if gen != c.hideGen || c.closed {
		c.mu.Unlock()
		return
	}
	c.hideTimer = nil

	changed := false
	if c.state.AutoHide && !c.state.StartMenuOpen && c.state.TaskbarVisible {
		c.state.TaskbarVisible = false
		changed = true
	}
	state := c.snapshot()
	notify := c.onChange
	c.mu.Unlock()

	if !changed {
		return
	}
	c.log.Debug("taskbar hidden", zap.Bool("auto_hide", state.AutoHide))
	if notify != nil {
		notify(state)
	}
}

func (c *Chrome) snapshot() State {
	s := c.state
	if s.ContextMenu != nil {
		p := *s.ContextMenu
		s.ContextMenu = &p
	}
	return s
}
