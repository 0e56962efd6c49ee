package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
)

// Result is the outcome of one command line
type Result struct {
	Output      string  `json:"output"`
	IsError     bool    `json:"error"`
	ClearScreen bool    `json:"clear,omitempty"`
	NewPath     *string `json:"newPath,omitempty"`
}

// DeviceReader is the slice of the device adapter the terminal reads.
// Every query must succeed, falling back when the host lacks a capability.
type DeviceReader interface {
	Battery(ctx context.Context) device.Battery
	Network(ctx context.Context) device.Network
	WiFi(ctx context.Context) device.WiFi
	Storage(ctx context.Context) device.Storage
	Display(ctx context.Context) device.Display
	Info(ctx context.Context) device.Info
}

// Fixed identity of the simulated machine
const (
	Hostname  = "AURORA-PC"
	Username  = `AURORA\User`
	OSName    = "AuroraOS"
	OSVersion = "1.0.0"
)

type handler func(ctx context.Context, args []string, path string) Result

func ok(output string) Result {
	return Result{Output: output}
}

func errorf(format string, args ...any) Result {
	return Result{Output: fmt.Sprintf(format, args...), IsError: true}
}

type entry struct {
	name     string
	modified string
	dir      bool
	size     int64
}

// listing is the fixed content of every simulated directory
var listing = []entry{
	{name: ".", modified: "02/19/2026  10:30 AM", dir: true},
	{name: "..", modified: "02/19/2026  10:30 AM", dir: true},
	{name: "Documents", modified: "02/15/2026  03:45 PM", dir: true},
	{name: "Downloads", modified: "02/15/2026  03:45 PM", dir: true},
	{name: "Pictures", modified: "02/15/2026  03:45 PM", dir: true},
	{name: "Desktop", modified: "02/15/2026  03:45 PM", dir: true},
	{name: "example.txt", modified: "01/20/2026  09:15 AM", size: 1024},
}

// matches reports whether a lower-cased glob selects the entry. The dot
// entries only show in an unfiltered listing.
func (e entry) matches(pattern string) bool {
	if e.name == "." || e.name == ".." {
		return false
	}
	ok, _ := doublestar.Match(pattern, strings.ToLower(e.name))
	return ok
}
