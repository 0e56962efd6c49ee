package shell

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/window"
)

// Kind names a desktop intent
type Kind string

const (
	OpenApp             Kind = "open_app"
	OpenSettings        Kind = "open_settings"
	OpenTaskManager     Kind = "open_task_manager"
	CloseWindow         Kind = "close_window"
	EndTask             Kind = "end_task"
	Minimize            Kind = "minimize"
	Maximize            Kind = "maximize"
	Focus               Kind = "focus"
	UpdateGeometry      Kind = "update_geometry"
	ToggleStartMenu     Kind = "toggle_start_menu"
	CloseStartMenu      Kind = "close_start_menu"
	ToggleWidgets       Kind = "toggle_widgets"
	CloseWidgets        Kind = "close_widgets"
	ContextMenu         Kind = "context_menu"
	CloseContextMenu    Kind = "close_context_menu"
	DesktopClick        Kind = "desktop_click"
	ToggleQuickSettings Kind = "toggle_quick_settings"
	ToggleVolumePanel   Kind = "toggle_volume_panel"
	ToggleWiFiPanel     Kind = "toggle_wifi_panel"
	PointerMove         Kind = "pointer_move"
	TouchMove           Kind = "touch_move"
	Swipe               Kind = "swipe"
	SetAutoHide         Kind = "set_auto_hide"
	ToggleAutoHide      Kind = "toggle_auto_hide"
	SetWallpaper        Kind = "set_wallpaper"
	SetVolume           Kind = "set_volume"
	ToggleMute          Kind = "toggle_mute"
)

var (
	// ErrUnknownIntent is returned for an unrecognized intent kind
	ErrUnknownIntent = errors.New("shell: unknown intent")
	// ErrInvalidIntent is returned when an intent lacks a required field
	ErrInvalidIntent = errors.New("shell: invalid intent")
)

// Intent is a single user action against the desktop. Only the fields the
// kind needs are read.
type Intent struct {
	Kind Kind `json:"kind"`

	// open_app, open_settings
	Title   string `json:"title,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Section string `json:"section,omitempty"`

	// window operations
	WindowID uint64           `json:"windowId,omitempty"`
	Geometry *window.Geometry `json:"geometry,omitempty"`

	// context_menu, pointer_move, touch_move. Height is the viewport height.
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Height float64 `json:"height,omitempty"`

	// swipe
	Fingers int     `json:"fingers,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`

	// preferences
	Enabled   *bool  `json:"enabled,omitempty"`
	Wallpaper string `json:"wallpaper,omitempty"` // URL or catalog id
	Color     string `json:"color,omitempty"`
	Volume    *int   `json:"volume,omitempty"`
}

// Validate checks the fields the intent's kind requires
func (i Intent) Validate() error {
	switch i.Kind {
	case OpenApp:
		if i.Title == "" {
			return invalid(i.Kind, "title is required")
		}
	case UpdateGeometry:
		if i.Geometry == nil {
			return invalid(i.Kind, "geometry is required")
		}
	case PointerMove, TouchMove:
		if i.Height <= 0 {
			return invalid(i.Kind, "viewport height must be positive")
		}
	case SetAutoHide:
		if i.Enabled == nil {
			return invalid(i.Kind, "enabled is required")
		}
	case SetWallpaper:
		if i.Wallpaper == "" {
			return invalid(i.Kind, "wallpaper is required")
		}
	case SetVolume:
		if i.Volume == nil {
			return invalid(i.Kind, "volume is required")
		}
	case OpenSettings, OpenTaskManager, CloseWindow, EndTask, Minimize, Maximize, Focus,
		ToggleStartMenu, CloseStartMenu, ToggleWidgets, CloseWidgets, ContextMenu,
		CloseContextMenu, DesktopClick, ToggleQuickSettings, ToggleVolumePanel,
		ToggleWiFiPanel, Swipe, ToggleAutoHide, ToggleMute:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, i.Kind)
	}
	return nil
}

func invalid(kind Kind, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidIntent, kind, reason)
}
