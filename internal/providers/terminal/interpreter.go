package terminal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
)

var drivePath = regexp.MustCompile(`^[A-Za-z]:\\`)

var driveLetter = regexp.MustCompile(`^[A-Za-z]:$`)

// Interpreter runs the simulated command vocabulary. It keeps no state
// between calls: the caller passes the current path in and applies any
// NewPath from the result.
type Interpreter struct {
	device   DeviceReader
	now      func() time.Time
	commands map[string]handler

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithClock injects the time source used by date and systeminfo
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// WithLogger attaches a logger
func WithLogger(log *logging.Logger) Option {
	return func(i *Interpreter) {
		if log != nil {
			i.log = log.Component("terminal")
		}
	}
}

// WithMetrics adds metrics tracking
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(i *Interpreter) { i.metrics = metrics }
}

// NewInterpreter creates an interpreter reading system data from dev
func NewInterpreter(dev DeviceReader, opts ...Option) *Interpreter {
	i := &Interpreter{
		device: dev,
		now:    time.Now,
		log:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.commands = map[string]handler{
		"help":       i.help,
		"clear":      i.clear,
		"cls":        i.clear,
		"echo":       i.echo,
		"date":       i.date,
		"whoami":     i.whoami,
		"hostname":   i.hostname,
		"ver":        i.ver,
		"systeminfo": i.systeminfo,
		"ipconfig":   i.ipconfig,
		"battery":    i.battery,
		"network":    i.network,
		"storage":    i.storage,
		"dir":        i.dir,
		"ls":         i.dir,
		"cd":         i.cd,
		"pwd":        i.pwd,
	}
	return i
}

// Commands returns the recognized command names
func (i *Interpreter) Commands() []string {
	names := make([]string, 0, len(i.commands))
	for name := range i.commands {
		names = append(names, name)
	}
	return names
}

// Execute interprets one line. The first token is matched
// case-insensitively; unknown commands produce an error-flagged result.
func (i *Interpreter) Execute(ctx context.Context, line, currentPath string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{}
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	run, found := i.commands[name]
	if !found {
		i.record("unknown", true)
		i.log.Debug("unrecognized command", zap.String("command", name))
		return Result{
			Output: fmt.Sprintf("'%s' is not recognized as an internal or external command,\n"+
				"operable program or batch file.\n\n"+
				"Type 'help' for available commands.", name),
			IsError: true,
		}
	}

	res := run(ctx, args, currentPath)
	i.record(name, res.IsError)
	return res
}

func (i *Interpreter) record(command string, isError bool) {
	if i.metrics != nil {
		i.metrics.RecordTerminalCommand(command, isError)
	}
}

func (i *Interpreter) help(context.Context, []string, string) Result {
	return ok(`Available commands:
  help                - Show this help message
  clear, cls          - Clear the terminal screen
  echo <text>         - Display text
  date                - Display current date and time
  whoami              - Display current user info
  hostname            - Display computer name
  ver                 - Display OS version
  systeminfo          - Display detailed system information
  ipconfig            - Display network configuration
  dir, ls             - List directory contents (simulated)
  cd <path>           - Change directory (simulated)
  pwd                 - Print working directory
  battery             - Display battery status
  network             - Display network information
  storage             - Display storage information

Note: This is a simulated terminal. No command is executed on the host.
`)
}

func (i *Interpreter) clear(context.Context, []string, string) Result {
	return Result{ClearScreen: true}
}

func (i *Interpreter) echo(_ context.Context, args []string, _ string) Result {
	return ok(strings.Join(args, " "))
}

func (i *Interpreter) date(context.Context, []string, string) Result {
	now := i.now()
	return ok(fmt.Sprintf("The current date is: %s\nThe current time is: %s",
		now.Format("Mon, Jan 2, 2006"), now.Format("3:04:05 PM")))
}

func (i *Interpreter) whoami(context.Context, []string, string) Result {
	return ok(Username)
}

func (i *Interpreter) hostname(context.Context, []string, string) Result {
	return ok(Hostname)
}

func (i *Interpreter) ver(ctx context.Context, _ []string, _ string) Result {
	info := i.device.Info(ctx)
	return ok(fmt.Sprintf("%s [Version %s]\nPlatform: %s", OSName, OSVersion, info.Platform))
}

func (i *Interpreter) pwd(_ context.Context, _ []string, path string) Result {
	return ok(path)
}

// cd never touches a real filesystem. ".." stops at the drive root.
func (i *Interpreter) cd(_ context.Context, args []string, path string) Result {
	if len(args) == 0 {
		return ok(path)
	}

	target := strings.Join(args, " ")
	var next string
	switch {
	case target == "..":
		parts := strings.Split(path, `\`)
		switch {
		case len(parts) > 2:
			next = strings.Join(parts[:len(parts)-1], `\`)
		case driveLetter.MatchString(parts[0]):
			next = parts[0] + `\`
		case len(parts) == 2:
			next = parts[0]
		default:
			next = path
		}
	case drivePath.MatchString(target):
		next = target
	case strings.HasSuffix(path, `\`):
		next = path + target
	default:
		next = path + `\` + target
	}

	return Result{NewPath: &next}
}

func (i *Interpreter) dir(_ context.Context, args []string, path string) Result {
	pattern := ""
	if len(args) > 0 {
		pattern = strings.ToLower(strings.Join(args, " "))
		if !doublestar.ValidatePattern(pattern) {
			return errorf("The filename, directory name, or volume label syntax is incorrect.")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Directory of %s\n\n", path)

	files, dirs, bytes := 0, 0, int64(0)
	for _, e := range listing {
		if pattern != "" && !e.matches(pattern) {
			continue
		}
		if e.dir {
			dirs++
			fmt.Fprintf(&b, "%s    <DIR>          %s\n", e.modified, e.name)
			continue
		}
		files++
		bytes += e.size
		fmt.Fprintf(&b, "%s    %14s %s\n", e.modified, humanize.Comma(e.size), e.name)
	}
	if files+dirs == 0 {
		return errorf("File Not Found")
	}

	fmt.Fprintf(&b, "%16d File(s)%15s bytes\n", files, humanize.Comma(bytes))
	fmt.Fprintf(&b, "%16d Dir(s)  (simulated directory listing)\n", dirs)
	return ok(b.String())
}

func (i *Interpreter) systeminfo(ctx context.Context, _ []string, _ string) Result {
	info := i.device.Info(ctx)
	battery := i.device.Battery(ctx)
	network := i.device.Network(ctx)
	storage := i.device.Storage(ctx)
	display := i.device.Display(ctx)

	batteryState := "On Battery"
	if battery.Charging {
		batteryState = "Charging"
	}
	memory := info.DeviceMemory

	var b strings.Builder
	row := func(label, value string) {
		fmt.Fprintf(&b, "%-27s%s\n", label+":", value)
	}
	row("Host Name", Hostname)
	row("OS Name", OSName)
	row("OS Version", OSVersion)
	row("System Manufacturer", OSName+" Server")
	row("System Type", "x64-based PC")
	row("Processor(s)", fmt.Sprintf("%d processor(s) installed", info.HardwareConcurrency))
	row("Total Physical Memory", fmt.Sprintf("%d GB", memory))
	row("Available Physical Memory", fmt.Sprintf("%d GB", (memory*6+5)/10))
	row("Virtual Memory", fmt.Sprintf("%d GB", memory*2))
	row("Platform", info.Platform)
	row("Language", info.Language)
	row("Time Zone", i.now().Location().String())
	row("Battery Status", fmt.Sprintf("%s (%d%%)", batteryState, battery.Level))
	row("Network Status", fmt.Sprintf("%s (%s)", network.Type, network.EffectiveType))
	row("Display Resolution", fmt.Sprintf("%d x %d", display.Width, display.Height))
	row("Storage Used", fmt.Sprintf("%s / %s", device.FormatBytes(storage.Usage), device.FormatBytes(storage.Quota)))

	return ok(b.String())
}

func (i *Interpreter) ipconfig(ctx context.Context, _ []string, _ string) Result {
	network := i.device.Network(ctx)
	wifi := i.device.WiFi(ctx)

	return ok(fmt.Sprintf(`%s IP Configuration

Ethernet adapter Ethernet:
   Connection-specific DNS Suffix  . : 
   Link-local IPv6 Address . . . . . : fe80::xxxx:xxxx:xxxx:xxxx%%12
   IPv4 Address. . . . . . . . . . . : 192.168.1.100 (simulated)
   Subnet Mask . . . . . . . . . . . : 255.255.255.0
   Default Gateway . . . . . . . . . : 192.168.1.1

Connection Status:
   Network Type: %s
   Effective Type: %s
   Connected: %s
   Downlink Speed: %s Mbps
   RTT: %d ms
`, OSName, network.Type, network.EffectiveType, yesNo(wifi.Connected), formatFloat(network.Downlink), network.RTT))
}

func (i *Interpreter) battery(ctx context.Context, _ []string, _ string) Result {
	battery := i.device.Battery(ctx)

	status := "Discharging"
	if battery.Charging {
		status = "Charging"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Battery Status:\n  Level: %d%%\n  Status: %s\n", battery.Level, status)
	if battery.Charging && battery.ChargingTime != nil {
		fmt.Fprintf(&b, "  Charging Time: %d minutes\n", minutes(*battery.ChargingTime))
	}
	if !battery.Charging && battery.DischargingTime != nil {
		fmt.Fprintf(&b, "  Remaining Time: %d minutes\n", minutes(*battery.DischargingTime))
	}
	if !battery.Supported {
		b.WriteString("\nNote: Battery information is not available on this host.\n")
	}
	return ok(b.String())
}

func (i *Interpreter) network(ctx context.Context, _ []string, _ string) Result {
	network := i.device.Network(ctx)
	wifi := i.device.WiFi(ctx)

	saveData := "Disabled"
	if network.SaveData {
		saveData = "Enabled"
	}

	return ok(fmt.Sprintf(`Network Information:
  Connection Type: %s
  Effective Type: %s
  Online: %s
  Downlink: %s Mbps
  Round Trip Time: %d ms
  Save Data Mode: %s
`, network.Type, network.EffectiveType, yesNo(wifi.Connected), formatFloat(network.Downlink), network.RTT, saveData))
}

func (i *Interpreter) storage(ctx context.Context, _ []string, _ string) Result {
	storage := i.device.Storage(ctx)

	var available uint64
	if storage.Quota > storage.Usage {
		available = storage.Quota - storage.Usage
	}

	out := fmt.Sprintf(`Storage Information:
  Total Space: %s
  Used Space: %s
  Available: %s
  Usage: %d%%

`, device.FormatBytes(storage.Quota), device.FormatBytes(storage.Usage), device.FormatBytes(available), storage.Percentage)
	if !storage.Supported {
		out += "Note: Storage information is not available - showing estimates.\n"
	}
	return ok(out)
}
