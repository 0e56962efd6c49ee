package device

import (
	"context"
	"sort"
	"strings"
)

// SysfsBluetooth lists adapters under /sys/class/bluetooth
type SysfsBluetooth struct {
	Root string
}

func (s SysfsBluetooth) Bluetooth(ctx context.Context) (Bluetooth, error) {
	if err := ctx.Err(); err != nil {
		return Bluetooth{}, err
	}
	names, err := entries(s.Root)
	if err != nil {
		return Bluetooth{}, err
	}

	adapters := []string{}
	for _, name := range names {
		if strings.HasPrefix(name, "hci") && !strings.Contains(name, ":") {
			adapters = append(adapters, name)
		}
	}
	sort.Strings(adapters)
	return Bluetooth{Available: len(adapters) > 0, Adapters: adapters}, nil
}

// DevMedia enumerates ALSA PCM nodes under /dev/snd and V4L nodes /dev/video*
type DevMedia struct {
	Root string
}

func (d DevMedia) MediaDevices(ctx context.Context) (MediaDevices, error) {
	if err := ctx.Err(); err != nil {
		return MediaDevices{}, err
	}

	m := MediaDevices{
		AudioInputs:  []MediaDevice{},
		AudioOutputs: []MediaDevice{},
		VideoInputs:  []MediaDevice{},
	}

	snd, sndErr := entries(join(d.Root, "snd"))
	for _, name := range snd {
		if !strings.HasPrefix(name, "pcmC") {
			continue
		}
		switch {
		case strings.HasSuffix(name, "c"):
			m.AudioInputs = append(m.AudioInputs, MediaDevice{DeviceID: name, Kind: "audioinput", Label: name})
		case strings.HasSuffix(name, "p"):
			m.AudioOutputs = append(m.AudioOutputs, MediaDevice{DeviceID: name, Kind: "audiooutput", Label: name})
		}
	}

	dev, devErr := entries(d.Root)
	if devErr != nil {
		return MediaDevices{}, devErr
	}
	for _, name := range dev {
		if strings.HasPrefix(name, "video") {
			m.VideoInputs = append(m.VideoInputs, MediaDevice{DeviceID: name, Kind: "videoinput", Label: name})
		}
	}

	if sndErr != nil && len(m.VideoInputs) == 0 {
		return MediaDevices{}, ErrUnsupported
	}
	return m, nil
}
