package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/GriffinCanCode/AuroraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	battery device.Battery
}

func (f fakeDevice) Battery(context.Context) device.Battery { return f.battery }
func (fakeDevice) Network(context.Context) device.Network {
	return device.Network{EffectiveType: "4g", Downlink: 10, RTT: 50, Type: "wifi"}
}
func (fakeDevice) WiFi(context.Context) device.WiFi {
	return device.WiFi{Connected: true, Type: "wifi", Quality: 100}
}
func (fakeDevice) Storage(context.Context) device.Storage { return device.FallbackStorage() }
func (fakeDevice) Display(context.Context) device.Display { return device.FallbackDisplay() }
func (fakeDevice) Info(context.Context) device.Info       { return device.FallbackInfo() }

var fixedNow = time.Date(2026, 2, 19, 14, 5, 9, 0, time.UTC)

func newInterpreter(opts ...Option) *Interpreter {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewInterpreter(fakeDevice{battery: device.FallbackBattery()}, opts...)
}

const home = `C:\Users\User`

func TestEcho(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "echo hello world", home)
	assert.Equal(t, "hello world", res.Output)
	assert.False(t, res.IsError)
	assert.Nil(t, res.NewPath)
}

func TestUnknownCommand(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "bogus --flag", home)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Output, "'bogus' is not recognized as an internal or external command,")
	assert.Contains(t, res.Output, "Type 'help' for available commands.")
}

func TestCaseInsensitiveCommand(t *testing.T) {
	i := newInterpreter()
	assert.Equal(t, Hostname, i.Execute(context.Background(), "HOSTNAME", home).Output)
	assert.Equal(t, Username, i.Execute(context.Background(), "WhoAmI", home).Output)
}

func TestEmptyInput(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		res := newInterpreter().Execute(context.Background(), line, home)
		assert.Equal(t, Result{}, res)
	}
}

func TestClear(t *testing.T) {
	for _, cmd := range []string{"clear", "cls", "CLS"} {
		res := newInterpreter().Execute(context.Background(), cmd, home)
		assert.True(t, res.ClearScreen)
		assert.Empty(t, res.Output)
		assert.False(t, res.IsError)
	}
}

func TestCd(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		path    string
		newPath string
		output  string
	}{
		{"parent", "cd ..", `C:\Users\User\Documents`, `C:\Users\User`, ""},
		{"parent to root", "cd ..", `C:\Users`, `C:\`, ""},
		{"parent at root stays", "cd ..", `C:\`, `C:\`, ""},
		{"parent of bare drive", "cd ..", `C:`, `C:\`, ""},
		{"parent without separator", "cd ..", "home", "home", ""},
		{"parent of empty path", "cd ..", "", "", ""},
		{"parent of relative path", "cd ..", `home\docs`, "home", ""},
		{"absolute", `cd D:\Games`, home, `D:\Games`, ""},
		{"absolute lowercase", `cd e:\`, home, `e:\`, ""},
		{"child", "cd Documents", home, `C:\Users\User\Documents`, ""},
		{"child from root", "cd Windows", `C:\`, `C:\Windows`, ""},
		{"child with spaces", "cd My   Files", home, `C:\Users\User\My Files`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newInterpreter().Execute(context.Background(), tt.line, tt.path)
			require.NotNil(t, res.NewPath)
			assert.Equal(t, tt.newPath, *res.NewPath)
			assert.Equal(t, tt.output, res.Output)
		})
	}
}

func TestCdWithoutArgsPrintsPath(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "cd", home)
	assert.Equal(t, home, res.Output)
	assert.Nil(t, res.NewPath)
}

func TestPwdAndDir(t *testing.T) {
	i := newInterpreter()
	assert.Equal(t, home, i.Execute(context.Background(), "pwd", home).Output)

	for _, cmd := range []string{"dir", "ls"} {
		out := i.Execute(context.Background(), cmd, home).Output
		assert.Contains(t, out, `Directory of C:\Users\User`)
		assert.Contains(t, out, "example.txt")
	}
}

func TestDirPattern(t *testing.T) {
	i := newInterpreter()

	res := i.Execute(context.Background(), "dir *.TXT", home)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Output, "example.txt")
	assert.NotContains(t, res.Output, "Documents")
	assert.Contains(t, res.Output, "               1 File(s)          1,024 bytes")
	assert.Contains(t, res.Output, "               0 Dir(s)")

	res = i.Execute(context.Background(), "ls D*", home)
	assert.Contains(t, res.Output, "Documents")
	assert.Contains(t, res.Output, "Desktop")
	assert.NotContains(t, res.Output, "example.txt")
	assert.Contains(t, res.Output, "               3 Dir(s)")

	res = i.Execute(context.Background(), "dir *.exe", home)
	assert.True(t, res.IsError)
	assert.Equal(t, "File Not Found", res.Output)

	res = i.Execute(context.Background(), "dir [", home)
	assert.True(t, res.IsError)
}

func TestDirUnfiltered(t *testing.T) {
	out := newInterpreter().Execute(context.Background(), "dir", home).Output
	assert.Contains(t, out, "01/20/2026  09:15 AM             1,024 example.txt")
	assert.Contains(t, out, "02/19/2026  10:30 AM    <DIR>          ..")
	assert.Contains(t, out, "               6 Dir(s)  (simulated directory listing)")
}

func TestDate(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "date", home)
	assert.Equal(t, "The current date is: Thu, Feb 19, 2026\nThe current time is: 2:05:09 PM", res.Output)
}

func TestVer(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "ver", home)
	assert.Contains(t, res.Output, "AuroraOS [Version 1.0.0]")
}

func TestBattery(t *testing.T) {
	res := newInterpreter().Execute(context.Background(), "battery", home)
	assert.Contains(t, res.Output, "Level: 85%")
	assert.Contains(t, res.Output, "Status: Discharging")
	assert.Contains(t, res.Output, "not available")

	drain := 5400.0
	i := NewInterpreter(fakeDevice{battery: device.Battery{Level: 40, DischargingTime: &drain, Supported: true}})
	res = i.Execute(context.Background(), "battery", home)
	assert.Contains(t, res.Output, "Remaining Time: 90 minutes")
	assert.NotContains(t, res.Output, "not available")

	charge := 1800.0
	i = NewInterpreter(fakeDevice{battery: device.Battery{Level: 40, Charging: true, ChargingTime: &charge, Supported: true}})
	res = i.Execute(context.Background(), "battery", home)
	assert.Contains(t, res.Output, "Status: Charging")
	assert.Contains(t, res.Output, "Charging Time: 30 minutes")
}

func TestNetworkAndIpconfig(t *testing.T) {
	i := newInterpreter()

	out := i.Execute(context.Background(), "network", home).Output
	assert.Contains(t, out, "Connection Type: wifi")
	assert.Contains(t, out, "Online: Yes")
	assert.Contains(t, out, "Downlink: 10 Mbps")
	assert.Contains(t, out, "Save Data Mode: Disabled")

	out = i.Execute(context.Background(), "ipconfig", home).Output
	assert.Contains(t, out, "Link-local IPv6 Address . . . . . : fe80::xxxx:xxxx:xxxx:xxxx%12")
	assert.Contains(t, out, "RTT: 50 ms")
}

func TestStorage(t *testing.T) {
	out := newInterpreter().Execute(context.Background(), "storage", home).Output
	assert.Contains(t, out, "Total Space: 1 GB")
	assert.Contains(t, out, "Used Space: 256 MB")
	assert.Contains(t, out, "Available: 768 MB")
	assert.Contains(t, out, "Usage: 25%")
	assert.Contains(t, out, "showing estimates")
}

func TestSysteminfo(t *testing.T) {
	out := newInterpreter().Execute(context.Background(), "systeminfo", home).Output
	assert.Contains(t, out, "Host Name:                 AURORA-PC\n")
	assert.Contains(t, out, "Total Physical Memory:     8 GB\n")
	assert.Contains(t, out, "Available Physical Memory: 5 GB\n")
	assert.Contains(t, out, "Virtual Memory:            16 GB\n")
	assert.Contains(t, out, "Battery Status:            On Battery (85%)\n")
	assert.Contains(t, out, "Display Resolution:        1920 x 1080\n")
	assert.Contains(t, out, "Storage Used:              256 MB / 1 GB\n")
	assert.Contains(t, out, "Time Zone:                 UTC\n")
}

func TestHelpListsEveryCommand(t *testing.T) {
	i := newInterpreter()
	out := i.Execute(context.Background(), "help", home).Output
	for _, name := range i.Commands() {
		assert.Contains(t, out, name)
	}
}

func TestMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	i := newInterpreter(WithMetrics(metrics))

	i.Execute(context.Background(), "dir", home)
	i.Execute(context.Background(), "nope", home)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TerminalCommands.WithLabelValues("dir", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TerminalCommands.WithLabelValues("unknown", "error")))
}
