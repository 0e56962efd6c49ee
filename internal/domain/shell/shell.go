package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/desktop"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/lock"
	"github.com/GriffinCanCode/AuroraOS/internal/domain/window"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/preferences"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/taskmgr"
	"go.uber.org/zap"
)

// ErrLocked is returned for desktop operations while the lock screen is up
var ErrLocked = errors.New("shell: desktop is locked")

// Icons used when the shell opens built-in apps itself
const (
	settingsIcon    = "⚙️"
	taskManagerIcon = "📊"
	genericIcon     = "🪟"
)

// State is the full session snapshot published to subscribers
type State struct {
	Locked      bool                   `json:"locked"`
	Windows     []window.Window        `json:"windows"`
	ActiveID    *uint64                `json:"activeId"`
	Taskbar     []desktop.TaskbarEntry `json:"taskbar"`
	Chrome      desktop.State          `json:"chrome"`
	Preferences preferences.Snapshot   `json:"preferences"`
	Stats       window.Stats           `json:"stats"`
}

// TaskManagerView is what the Task Manager window renders
type TaskManagerView struct {
	Processes   []taskmgr.Process `json:"processes"`
	Performance taskmgr.Sample    `json:"performance"`
}

// Config wires a Shell. Gate and Preferences are required.
type Config struct {
	Gate        *lock.Gate
	Preferences *preferences.Provider
	Windows     *window.Manager
	Sampler     *taskmgr.Sampler
	HideDelay   time.Duration
	Clock       func() time.Time
	Logger      *logging.Logger
	Metrics     *monitoring.Metrics
}

// Shell composes the lock gate, preferences, windows, chrome and task
// manager into one session and publishes a snapshot after every change.
type Shell struct {
	gate    *lock.Gate
	prefs   *preferences.Provider
	windows *window.Manager
	chrome  *desktop.Chrome
	sampler *taskmgr.Sampler
	now     func() time.Time
	metrics *monitoring.Metrics
	log     *logging.Logger

	// mu serializes mutations so snapshots publish in order
	mu sync.Mutex

	subsMu  sync.Mutex
	subs    map[uint64]chan State
	nextSub uint64
	closed  bool
}

// New creates a shell. The chrome starts with the persisted auto-hide flag.
func New(ctx context.Context, cfg Config) (*Shell, error) {
	if cfg.Gate == nil {
		return nil, errors.New("shell: lock gate is required")
	}
	if cfg.Preferences == nil {
		return nil, errors.New("shell: preferences are required")
	}

	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}
	windows := cfg.Windows
	if windows == nil {
		windows = window.NewManager().WithMetrics(cfg.Metrics).WithLogger(log)
	}
	sampler := cfg.Sampler
	if sampler == nil {
		sampler = taskmgr.NewSampler(nil)
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	s := &Shell{
		gate:    cfg.Gate,
		prefs:   cfg.Preferences,
		windows: windows,
		sampler: sampler,
		now:     now,
		metrics: cfg.Metrics,
		log:     log.Component("shell"),
		subs:    make(map[uint64]chan State),
	}
	s.chrome = desktop.NewChrome(cfg.Preferences.AutoHide(ctx)).
		WithHideDelay(cfg.HideDelay).
		WithLogger(log).
		OnChange(func(desktop.State) { s.publishCurrent() })

	return s, nil
}

// Locked reports whether the lock screen is up
func (s *Shell) Locked() bool {
	return !s.gate.Unlocked()
}

// Unlock tries candidate against the lock gate
func (s *Shell) Unlock(ctx context.Context, candidate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasLocked := !s.gate.Unlocked()
	ok := s.gate.AttemptUnlock(candidate)
	if ok && wasLocked {
		s.publish(s.state(ctx))
	}
	return ok
}

// Lock brings the lock screen back. Windows stay open behind it.
func (s *Shell) Lock(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Unlocked() {
		return
	}
	s.gate.Lock()
	s.chrome.DesktopClick()
	s.chrome.CloseFlyouts()
	s.publish(s.state(ctx))
}

// LockScreen renders the lock screen with the stored wallpaper
func (s *Shell) LockScreen(ctx context.Context) lock.View {
	return s.gate.LockScreen(s.now(), s.prefs.LockWallpaper(ctx))
}

// State returns the current snapshot
func (s *Shell) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(ctx)
}

// Windows returns the open windows in insertion order
func (s *Shell) Windows() []window.Window {
	return s.windows.List()
}

// Window returns one window
func (s *Shell) Window(id uint64) (window.Window, bool) {
	return s.windows.Get(id)
}

// Preferences returns the decoded preferences
func (s *Shell) Preferences(ctx context.Context) preferences.Snapshot {
	return s.prefs.Snapshot(ctx)
}

// UpdatePreferences applies patch and keeps the chrome's auto-hide flag in
// step with the stored one
func (s *Shell) UpdatePreferences(ctx context.Context, patch preferences.Patch) (preferences.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Unlocked() {
		return preferences.Snapshot{}, ErrLocked
	}
	snap, err := s.prefs.Apply(ctx, patch)
	if err != nil {
		return preferences.Snapshot{}, fmt.Errorf("update preferences: %w", err)
	}
	if patch.TaskbarAutoHide != nil {
		s.chrome.SetAutoHide(*patch.TaskbarAutoHide)
	}
	s.publish(s.state(ctx))
	return snap, nil
}

// TaskManager samples the performance figures and the process table
func (s *Shell) TaskManager() TaskManagerView {
	return TaskManagerView{
		Processes:   s.sampler.Processes(s.apps()),
		Performance: s.sampler.Sample(),
	}
}

// Performance draws one performance sample
func (s *Shell) Performance() taskmgr.Sample {
	return s.sampler.Sample()
}

// Dispatch applies intent and returns the resulting snapshot. Unknown
// window ids are silent no-ops.
func (s *Shell) Dispatch(ctx context.Context, intent Intent) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.dispatch(ctx, intent)
	if s.metrics != nil {
		s.metrics.RecordIntent(string(intent.Kind), err)
	}
	if err != nil {
		if !errors.Is(err, ErrLocked) {
			s.log.Debug("intent rejected", zap.String("kind", string(intent.Kind)), zap.Error(err))
		}
		return State{}, err
	}

	st := s.state(ctx)
	s.publish(st)
	return st, nil
}

func (s *Shell) dispatch(ctx context.Context, in Intent) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if !s.gate.Unlocked() {
		return ErrLocked
	}

	switch in.Kind {
	case OpenApp:
		s.openApp(in.Title, in.Icon, in.Section)
	case OpenSettings:
		s.chrome.CloseFlyouts()
		s.openApp(window.TitleSettings, settingsIcon, in.Section)
	case OpenTaskManager:
		s.openApp(window.TitleTaskManager, taskManagerIcon, "")
	case CloseWindow, EndTask:
		s.windows.Close(in.WindowID)
	case Minimize:
		s.windows.ToggleMinimize(in.WindowID)
	case Maximize:
		s.windows.ToggleMaximize(in.WindowID)
	case Focus:
		s.windows.Focus(in.WindowID)
	case UpdateGeometry:
		s.windows.UpdateGeometry(in.WindowID, *in.Geometry)

	case ToggleStartMenu:
		s.chrome.ToggleStartMenu()
	case CloseStartMenu:
		s.chrome.CloseStartMenu()
	case ToggleWidgets:
		s.chrome.ToggleWidgets()
	case CloseWidgets:
		s.chrome.CloseWidgets()
	case ContextMenu:
		s.chrome.OpenContextMenu(in.X, in.Y)
	case CloseContextMenu:
		s.chrome.CloseContextMenu()
	case DesktopClick:
		s.chrome.DesktopClick()
	case ToggleQuickSettings:
		s.chrome.ToggleQuickSettings()
	case ToggleVolumePanel:
		s.chrome.ToggleVolumePanel()
	case ToggleWiFiPanel:
		s.chrome.ToggleWiFiPanel()
	case PointerMove:
		s.chrome.PointerMove(in.Y, in.Height)
	case TouchMove:
		s.chrome.TouchMove(in.Y, in.Height)
	case Swipe:
		if desktop.IsTaskManagerSwipe(in.Fingers, in.DX, in.DY) {
			s.openApp(window.TitleTaskManager, taskManagerIcon, "")
		}

	case SetAutoHide:
		return s.setAutoHide(ctx, *in.Enabled)
	case ToggleAutoHide:
		return s.setAutoHide(ctx, !s.chrome.State().AutoHide)
	case SetWallpaper:
		return s.setWallpaper(ctx, in.Wallpaper, in.Color)
	case SetVolume:
		return s.prefs.SetVolume(ctx, *in.Volume)
	case ToggleMute:
		return s.prefs.ToggleMute(ctx)
	}
	return nil
}

func (s *Shell) openApp(title, icon, section string) {
	if icon == "" {
		icon = genericIcon
		if app, ok := desktop.FindApp(title); ok {
			icon = app.Icon
		}
	}
	d := window.Descriptor{Title: title, Icon: icon}
	if window.KindFromTitle(title) == window.KindSettings {
		d.Payload = window.SettingsPayload{Section: section}
	}
	s.windows.Open(d)
	s.chrome.AppOpened()
}

func (s *Shell) setAutoHide(ctx context.Context, enabled bool) error {
	if err := s.prefs.SetAutoHide(ctx, enabled); err != nil {
		return err
	}
	s.chrome.SetAutoHide(enabled)
	return nil
}

// setWallpaper accepts a catalog id or a URL. A catalog wallpaper brings
// its accent color unless one is given.
func (s *Shell) setWallpaper(ctx context.Context, wallpaper, color string) error {
	url := wallpaper
	if w, ok := desktop.FindWallpaper(wallpaper); ok {
		url = w.URL
		if color == "" {
			color = w.Color
		}
	}
	if err := s.prefs.SetWallpaper(ctx, url); err != nil {
		return err
	}
	if color != "" {
		return s.prefs.SetWallpaperColor(ctx, color)
	}
	return nil
}

func (s *Shell) apps() []taskmgr.App {
	windows := s.windows.List()
	apps := make([]taskmgr.App, len(windows))
	for i, w := range windows {
		apps[i] = taskmgr.App{ID: w.ID, Title: w.Title}
	}
	return apps
}

// state builds a snapshot. Caller must hold mu.
func (s *Shell) state(ctx context.Context) State {
	windows := s.windows.List()
	stats := s.windows.Stats()
	var active uint64
	if stats.ActiveID != nil {
		active = *stats.ActiveID
	}
	return State{
		Locked:      !s.gate.Unlocked(),
		Windows:     windows,
		ActiveID:    stats.ActiveID,
		Taskbar:     desktop.TaskbarEntries(windows, active),
		Chrome:      s.chrome.State(),
		Preferences: s.prefs.Snapshot(ctx),
		Stats:       stats,
	}
}
