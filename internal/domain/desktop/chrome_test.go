package desktop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewport = 1000.0

func newAutoHide(t *testing.T) *Chrome {
	t.Helper()
	c := NewChrome(true).WithHideDelay(20 * time.Millisecond)
	t.Cleanup(c.Close)
	return c
}

func TestNewChrome(t *testing.T) {
	s := NewChrome(false).State()
	assert.True(t, s.TaskbarVisible)
	assert.False(t, s.AutoHide)
	assert.False(t, s.StartMenuOpen)
	assert.Nil(t, s.ContextMenu)
}

func TestStartMenu(t *testing.T) {
	c := NewChrome(false)

	c.ToggleStartMenu()
	assert.True(t, c.State().StartMenuOpen)

	c.AppOpened()
	assert.False(t, c.State().StartMenuOpen, "opening an app closes the start menu")

	c.ToggleStartMenu()
	c.ToggleStartMenu()
	assert.False(t, c.State().StartMenuOpen)
}

func TestContextMenuClosesMenus(t *testing.T) {
	c := NewChrome(false)
	c.ToggleStartMenu()
	c.ToggleWidgets()

	c.OpenContextMenu(120, 340)

	s := c.State()
	require.NotNil(t, s.ContextMenu)
	assert.Equal(t, Point{X: 120, Y: 340}, *s.ContextMenu)
	assert.False(t, s.StartMenuOpen)
	assert.False(t, s.WidgetsOpen)

	c.CloseContextMenu()
	assert.Nil(t, c.State().ContextMenu)
}

func TestDesktopClick(t *testing.T) {
	c := NewChrome(false)
	c.OpenContextMenu(1, 1)
	c.ToggleStartMenu()
	c.ToggleWidgets()

	c.DesktopClick()

	s := c.State()
	assert.Nil(t, s.ContextMenu)
	assert.False(t, s.StartMenuOpen)
	assert.False(t, s.WidgetsOpen)
}

func TestStateIsACopy(t *testing.T) {
	c := NewChrome(false)
	c.OpenContextMenu(5, 5)

	s := c.State()
	s.ContextMenu.X = 999

	assert.Equal(t, 5.0, c.State().ContextMenu.X)
}

func TestFlyoutsAreExclusive(t *testing.T) {
	c := NewChrome(false)

	c.ToggleQuickSettings()
	assert.True(t, c.State().QuickSettingsOpen)

	c.ToggleVolumePanel()
	s := c.State()
	assert.False(t, s.QuickSettingsOpen)
	assert.True(t, s.VolumePanelOpen)

	c.ToggleWiFiPanel()
	s = c.State()
	assert.False(t, s.VolumePanelOpen)
	assert.True(t, s.WiFiPanelOpen)

	c.ToggleWiFiPanel()
	assert.False(t, c.State().WiFiPanelOpen)

	c.ToggleQuickSettings()
	c.CloseFlyouts()
	assert.False(t, c.State().QuickSettingsOpen)
}

func TestAutoHideHidesAfterDelay(t *testing.T) {
	c := newAutoHide(t)
	var notified atomic.Int32
	c.OnChange(func(s State) {
		assert.False(t, s.TaskbarVisible)
		notified.Add(1)
	})

	c.PointerMove(100, viewport)

	assert.Eventually(t, func() bool { return !c.State().TaskbarVisible },
		time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return notified.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestPointerNearBottomCancelsHide(t *testing.T) {
	c := NewChrome(true).WithHideDelay(50 * time.Millisecond)
	defer c.Close()

	c.PointerMove(100, viewport)
	c.PointerMove(viewport-10, viewport)

	time.Sleep(120 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible)
}

func TestPointerInDeadBandDoesNothing(t *testing.T) {
	c := newAutoHide(t)

	c.PointerMove(viewport-75, viewport)

	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible)
}

func TestPointerRevealsTaskbar(t *testing.T) {
	c := newAutoHide(t)
	c.PointerMove(0, viewport)
	require.Eventually(t, func() bool { return !c.State().TaskbarVisible },
		time.Second, 5*time.Millisecond)

	c.PointerMove(viewport-1, viewport)
	assert.True(t, c.State().TaskbarVisible)
}

func TestHideSkippedWhileStartMenuOpen(t *testing.T) {
	c := newAutoHide(t)
	c.ToggleStartMenu()

	c.PointerMove(0, viewport)

	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible)
}

func TestPointerIgnoredWithoutAutoHide(t *testing.T) {
	c := NewChrome(false).WithHideDelay(10 * time.Millisecond)
	defer c.Close()

	c.PointerMove(0, viewport)

	time.Sleep(40 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible)
}

func TestDisablingAutoHideCancelsTimer(t *testing.T) {
	c := NewChrome(true).WithHideDelay(30 * time.Millisecond)
	defer c.Close()

	c.PointerMove(0, viewport)
	c.SetAutoHide(false)

	time.Sleep(80 * time.Millisecond)
	s := c.State()
	assert.True(t, s.TaskbarVisible)
	assert.False(t, s.AutoHide)
}

func TestCloseReleasesTimer(t *testing.T) {
	c := NewChrome(true).WithHideDelay(20 * time.Millisecond)
	var notified atomic.Int32
	c.OnChange(func(State) { notified.Add(1) })

	c.PointerMove(0, viewport)
	c.Close()

	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible)
	assert.Zero(t, notified.Load())

	c.PointerMove(0, viewport)
	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.State().TaskbarVisible, "a closed chrome schedules nothing")
}

func TestTouchMove(t *testing.T) {
	c := newAutoHide(t)
	c.PointerMove(0, viewport)
	require.Eventually(t, func() bool { return !c.State().TaskbarVisible },
		time.Second, 5*time.Millisecond)

	c.TouchMove(viewport-200, viewport)
	assert.False(t, c.State().TaskbarVisible)

	c.TouchMove(viewport-50, viewport)
	assert.True(t, c.State().TaskbarVisible)
}

func TestStartMenuShowsHiddenTaskbar(t *testing.T) {
	c := newAutoHide(t)
	c.PointerMove(0, viewport)
	require.Eventually(t, func() bool { return !c.State().TaskbarVisible },
		time.Second, 5*time.Millisecond)

	c.ToggleStartMenu()
	assert.True(t, c.State().TaskbarVisible)
}

func TestIsTaskManagerSwipe(t *testing.T) {
	tests := []struct {
		name    string
		fingers int
		dx, dy  float64
		want    bool
	}{
		{"three finger swipe up", 3, 10, -150, true},
		{"too short", 3, 0, -100, false},
		{"too much drift", 3, 50, -200, false},
		{"drift left", 3, -49, -101, true},
		{"two fingers", 2, 0, -200, false},
		{"swipe down", 3, 0, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTaskManagerSwipe(tt.fingers, tt.dx, tt.dy))
		})
	}
}
