package device

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStorage reports usage of the filesystem holding Path
type HostStorage struct {
	Path string
}

func (h HostStorage) Storage(ctx context.Context) (Storage, error) {
	path := h.Path
	if path == "" {
		path = "/"
	}
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Storage{}, fmt.Errorf("disk usage %s: %w", path, err)
	}
	if usage.Total == 0 {
		return Storage{}, ErrUnsupported
	}
	return Storage{
		Quota:      usage.Total,
		Usage:      usage.Used,
		Percentage: Percentage(usage.Used, usage.Total),
	}, nil
}

// HostInfo describes the machine via gopsutil
type HostInfo struct{}

func (HostInfo) Info(ctx context.Context) (Info, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("host info: %w", err)
	}

	info := Info{
		Platform:            platform(hi.OS, hi.KernelArch),
		Hostname:            hi.Hostname,
		Language:            languageFromEnv(),
		HardwareConcurrency: runtime.NumCPU(),
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm.Total > 0 {
		info.DeviceMemory = int(math.Round(float64(vm.Total) / (1 << 30)))
	}
	return info, nil
}

func platform(goos, arch string) string {
	if goos == "" {
		goos = runtime.GOOS
	}
	if arch == "" {
		arch = runtime.GOARCH
	}
	return strings.ToUpper(goos[:1]) + goos[1:] + " " + arch
}

// languageFromEnv turns LANG=en_US.UTF-8 into en-US
func languageFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return NormalizeLanguage(v)
		}
	}
	return ""
}

// NormalizeLanguage converts a POSIX locale name into a BCP 47 tag.
// "C" and "POSIX" carry no language and yield "".
func NormalizeLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}
