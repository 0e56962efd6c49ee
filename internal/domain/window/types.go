package window

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which mock application a window hosts
type Kind string

const (
	KindSettings    Kind = "settings"
	KindTaskManager Kind = "task_manager"
	KindTerminal    Kind = "terminal"
	KindGeneric     Kind = "generic"
)

// Well-known application titles
const (
	TitleSettings    = "Settings"
	TitleTaskManager = "Task Manager"
	TitleTerminal    = "Terminal"
)

// KindFromTitle maps the built-in application titles to their kind.
// Everything else is Generic.
func KindFromTitle(title string) Kind {
	switch title {
	case TitleSettings:
		return KindSettings
	case TitleTaskManager:
		return KindTaskManager
	case TitleTerminal:
		return KindTerminal
	default:
		return KindGeneric
	}
}

// Payload is the body a window hosts. The set of implementations is closed.
type Payload interface {
	Kind() Kind
	payload()
}

// SettingsPayload opens the Settings app, optionally on one section
type SettingsPayload struct {
	Section string
}

// TaskManagerPayload hosts the Task Manager
type TaskManagerPayload struct{}

// TerminalPayload hosts the Terminal
type TerminalPayload struct{}

// GenericPayload hosts a placeholder body for any other title
type GenericPayload struct{}

func (SettingsPayload) Kind() Kind    { return KindSettings }
func (TaskManagerPayload) Kind() Kind { return KindTaskManager }
func (TerminalPayload) Kind() Kind    { return KindTerminal }
func (GenericPayload) Kind() Kind     { return KindGeneric }

func (SettingsPayload) payload()    {}
func (TaskManagerPayload) payload() {}
func (TerminalPayload) payload()    {}
func (GenericPayload) payload()     {}

// NewPayload builds the payload for kind. section only applies to Settings.
func NewPayload(kind Kind, section string) (Payload, error) {
	switch kind {
	case KindSettings:
		return SettingsPayload{Section: section}, nil
	case KindTaskManager:
		return TaskManagerPayload{}, nil
	case KindTerminal:
		return TerminalPayload{}, nil
	case KindGeneric:
		return GenericPayload{}, nil
	default:
		return nil, fmt.Errorf("unknown window kind %q", kind)
	}
}

// Geometry is a window's position and size in desktop units
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size is a width and height pair
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Descriptor is a request to open an application
type Descriptor struct {
	Title   string
	Icon    string
	Payload Payload // derived from Title when nil
	Size    *Size   // overrides the per-title size table
}

// Window is one open mock application
type Window struct {
	ID          uint64
	Title       string
	Icon        string
	Geometry    Geometry
	IsMaximized bool
	IsMinimized bool
	Payload     Payload
}

// EffectiveGeometry is where the window is drawn inside viewport. A
// maximized window fills everything above the taskbar.
func (w Window) EffectiveGeometry(viewport Size) Geometry {
	if !w.IsMaximized {
		return w.Geometry
	}
	height := viewport.Height - TaskbarHeight
	if height < 0 {
		height = 0
	}
	return Geometry{X: 0, Y: 0, Width: viewport.Width, Height: height}
}

type windowJSON struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Geometry    Geometry `json:"geometry"`
	IsMaximized bool     `json:"isMaximized"`
	IsMinimized bool     `json:"isMinimized"`
	Kind        Kind     `json:"kind"`
	Section     string   `json:"section,omitempty"`
}

// MarshalJSON flattens the payload into kind and section fields
func (w Window) MarshalJSON() ([]byte, error) {
	out := windowJSON{
		ID:          w.ID,
		Title:       w.Title,
		Icon:        w.Icon,
		Geometry:    w.Geometry,
		IsMaximized: w.IsMaximized,
		IsMinimized: w.IsMinimized,
		Kind:        KindGeneric,
	}
	if w.Payload != nil {
		out.Kind = w.Payload.Kind()
	}
	if s, ok := w.Payload.(SettingsPayload); ok {
		out.Section = s.Section
	}
	return json.Marshal(out)
}

// Stats summarizes the window collection
type Stats struct {
	Total     int     `json:"total"`
	Visible   int     `json:"visible"`
	Minimized int     `json:"minimized"`
	Maximized int     `json:"maximized"`
	ActiveID  *uint64 `json:"active_id,omitempty"`
}
