package desktop

import (
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/domain/window"
)

// TaskbarEntry is a running-window button on the taskbar
type TaskbarEntry struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Active    bool   `json:"active"`
	Minimized bool   `json:"minimized"`
}

// Clock is the taskbar tray clock
type Clock struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// TaskbarEntries derives one button per window, in window order
func TaskbarEntries(windows []window.Window, activeID uint64) []TaskbarEntry {
	entries := make([]TaskbarEntry, 0, len(windows))
	for _, w := range windows {
		entries = append(entries, TaskbarEntry{
			ID:        w.ID,
			Title:     w.Title,
			Icon:      w.Icon,
			Active:    w.ID == activeID,
			Minimized: w.IsMinimized,
		})
	}
	return entries
}

// NewClock formats t for the tray, e.g. "3:04 PM" over "1/2/2006"
func NewClock(t time.Time) Clock {
	return Clock{Time: t.Format("3:04 PM"), Date: t.Format("1/2/2006")}
}
