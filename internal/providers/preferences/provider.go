package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Storage keys
const (
	KeyWallpaper      = "wallpaper"
	KeyWallpaperColor = "wallpaperColor"
	KeyAutoHide       = "taskbarAutoHide"
	KeyVolume         = "systemVolume"
)

// Defaults
const (
	DefaultWallpaper      = "https://images.unsplash.com/photo-1614850523060-8da1d56ae167?w=1920&h=1080&fit=crop"
	DefaultWallpaperColor = "#1e3c72"
	DefaultVolume         = 50

	// LockWallpaperFallback is shown on the lock screen until a wallpaper is stored.
	LockWallpaperFallback = "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=1920&h=1080&fit=crop"
)

// Snapshot is the decoded view of all preferences
type Snapshot struct {
	Wallpaper       string     `json:"wallpaper"`
	WallpaperColor  string     `json:"wallpaperColor"`
	TaskbarAutoHide bool       `json:"taskbarAutoHide"`
	SystemVolume    int        `json:"systemVolume"`
	Muted           bool       `json:"muted"`
	Volume          VolumeView `json:"volume"`
}

// Patch carries the preferences to change; nil fields are left alone
type Patch struct {
	Wallpaper       *string `json:"wallpaper,omitempty"`
	WallpaperColor  *string `json:"wallpaperColor,omitempty"`
	TaskbarAutoHide *bool   `json:"taskbarAutoHide,omitempty"`
	SystemVolume    *int    `json:"systemVolume,omitempty"`
}

// Provider reads and writes shell preferences over a key-value store.
// Reads never fail: missing or malformed values decode to defaults.
type Provider struct {
	store storage.Store
	log   *logging.Logger

	mu             sync.Mutex
	muted          bool
	previousVolume int
}

// NewProvider creates a preference provider
func NewProvider(store storage.Store, log *logging.Logger) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	return &Provider{
		store:          store,
		log:            log.Component("preferences"),
		previousVolume: DefaultVolume,
	}
}

// Wallpaper returns the desktop wallpaper URL
func (p *Provider) Wallpaper(ctx context.Context) string {
	v, ok := p.read(ctx, KeyWallpaper)
	if !ok || v == "" {
		return DefaultWallpaper
	}
	return v
}

// LockWallpaper returns the stored wallpaper, or the bloom fallback if none
// was ever stored.
func (p *Provider) LockWallpaper(ctx context.Context) string {
	v, ok := p.read(ctx, KeyWallpaper)
	if !ok || v == "" {
		return LockWallpaperFallback
	}
	return v
}

// WallpaperColor returns the accent color
func (p *Provider) WallpaperColor(ctx context.Context) string {
	v, ok := p.read(ctx, KeyWallpaperColor)
	if !ok || v == "" {
		return DefaultWallpaperColor
	}
	return v
}

// AutoHide reports whether the taskbar hides itself. Anything but the
// literal "true" is false.
func (p *Provider) AutoHide(ctx context.Context) bool {
	v, _ := p.read(ctx, KeyAutoHide)
	return v == "true"
}

// StoredVolume returns the persisted volume, clamped to 0..100. A
// non-integer value decodes to the default.
func (p *Provider) StoredVolume(ctx context.Context) int {
	v, ok := p.read(ctx, KeyVolume)
	if !ok {
		return DefaultVolume
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return DefaultVolume
	}
	return clampVolume(n)
}

// Volume returns the effective volume, which is 0 while muted
func (p *Provider) Volume(ctx context.Context) int {
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()

	if muted {
		return 0
	}
	return p.StoredVolume(ctx)
}

// Muted reports the runtime mute toggle
func (p *Provider) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetWallpaper stores the wallpaper URL
func (p *Provider) SetWallpaper(ctx context.Context, url string) error {
	return p.write(ctx, KeyWallpaper, url)
}

// SetWallpaperColor stores the accent color
func (p *Provider) SetWallpaperColor(ctx context.Context, color string) error {
	return p.write(ctx, KeyWallpaperColor, color)
}

// SetAutoHide stores the taskbar auto-hide flag
func (p *Provider) SetAutoHide(ctx context.Context, enabled bool) error {
	return p.write(ctx, KeyAutoHide, strconv.FormatBool(enabled))
}

// SetVolume stores a volume clamped to 0..100. A positive volume clears mute.
func (p *Provider) SetVolume(ctx context.Context, level int) error {
	level = clampVolume(level)
	if err := p.write(ctx, KeyVolume, strconv.Itoa(level)); err != nil {
		return err
	}

	p.mu.Lock()
	if level > 0 {
		p.muted = false
	}
	p.mu.Unlock()
	return nil
}

// ToggleMute flips mute. Muting remembers the current volume; unmuting
// restores it, or the default if it was 0. Mute itself is not persisted.
func (p *Provider) ToggleMute(ctx context.Context) error {
	stored := p.StoredVolume(ctx)

	p.mu.Lock()
	if !p.muted {
		p.previousVolume = stored
		p.muted = true
		p.mu.Unlock()
		return nil
	}
	restore := p.previousVolume
	if restore == 0 {
		restore = DefaultVolume
	}
	p.muted = false
	p.mu.Unlock()

	return p.write(ctx, KeyVolume, strconv.Itoa(restore))
}

// Snapshot decodes every preference
func (p *Provider) Snapshot(ctx context.Context) Snapshot {
	muted := p.Muted()
	volume := p.Volume(ctx)
	return Snapshot{
		Wallpaper:       p.Wallpaper(ctx),
		WallpaperColor:  p.WallpaperColor(ctx),
		TaskbarAutoHide: p.AutoHide(ctx),
		SystemVolume:    p.StoredVolume(ctx),
		Muted:           muted,
		Volume:          NewVolumeView(volume, muted),
	}
}

// Apply writes every non-nil field of patch and returns the new snapshot.
// Writes stop at the first failure.
func (p *Provider) Apply(ctx context.Context, patch Patch) (Snapshot, error) {
	if patch.Wallpaper != nil {
		if err := p.SetWallpaper(ctx, *patch.Wallpaper); err != nil {
			return Snapshot{}, err
		}
	}
	if patch.WallpaperColor != nil {
		if err := p.SetWallpaperColor(ctx, *patch.WallpaperColor); err != nil {
			return Snapshot{}, err
		}
	}
	if patch.TaskbarAutoHide != nil {
		if err := p.SetAutoHide(ctx, *patch.TaskbarAutoHide); err != nil {
			return Snapshot{}, err
		}
	}
	if patch.SystemVolume != nil {
		if err := p.SetVolume(ctx, *patch.SystemVolume); err != nil {
			return Snapshot{}, err
		}
	}
	return p.Snapshot(ctx), nil
}

func (p *Provider) read(ctx context.Context, key string) (string, bool) {
	v, err := p.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false
	}
	if err != nil {
		p.log.Warn("preference read failed, using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, true
}

func (p *Provider) write(ctx context.Context, key, value string) error {
	if err := p.store.Set(ctx, key, value); err != nil {
		p.log.Error("preference write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	p.log.Debug("preference saved", zap.String("key", key))
	return nil
}

func clampVolume(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
