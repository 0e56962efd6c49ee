package preferences

import "fmt"

// VolumeView is the derived visual state of the volume control
type VolumeView struct {
	Level    int    `json:"level"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Gradient string `json:"gradient"`
}

// NewVolumeView derives the icon, label and slider gradient for a level
func NewVolumeView(level int, muted bool) VolumeView {
	level = clampVolume(level)
	if muted {
		level = 0
	}

	view := VolumeView{
		Level:    level,
		Icon:     volumeIcon(level),
		Gradient: fmt.Sprintf("linear-gradient(to right, #0078d4 0%%, #0078d4 %d%%, #d0d0d0 %d%%, #d0d0d0 100%%)", level, level),
	}
	if level == 0 {
		view.Label = "Muted"
	} else {
		view.Label = fmt.Sprintf("%d%%", level)
	}
	return view
}

func volumeIcon(level int) string {
	switch {
	case level == 0:
		return "🔇"
	case level < 33:
		return "🔈"
	case level < 66:
		return "🔉"
	default:
		return "🔊"
	}
}
