package device

import "runtime"

// Fallback values used when a capability is missing or fails. Every
// fallback carries Supported == false.

func FallbackBattery() Battery {
	return Battery{Level: 85, Charging: false}
}

func FallbackNetwork() Network {
	return Network{EffectiveType: "4g", Downlink: 10, RTT: 50, Type: "wifi"}
}

func FallbackStorage() Storage {
	return Storage{Quota: 1 << 30, Usage: 256 << 20, Percentage: 25}
}

func FallbackDisplay() Display {
	return Display{
		Width:            1920,
		Height:           1080,
		AvailWidth:       1920,
		AvailHeight:      1080,
		ColorDepth:       24,
		PixelDepth:       24,
		Orientation:      "landscape-primary",
		DevicePixelRatio: 1,
	}
}

func FallbackBluetooth() Bluetooth {
	return Bluetooth{Available: false, Adapters: []string{}}
}

func FallbackMediaDevices() MediaDevices {
	return MediaDevices{
		AudioInputs:  []MediaDevice{},
		AudioOutputs: []MediaDevice{},
		VideoInputs:  []MediaDevice{},
	}
}

func FallbackGeolocation() Geolocation {
	return Geolocation{}
}

func FallbackInfo() Info {
	return Info{
		Platform:            runtime.GOOS,
		Hostname:            "AURORA-PC",
		Language:            "en-US",
		Online:              true,
		HardwareConcurrency: 4,
		DeviceMemory:        8,
		UserInfo:            "User",
	}
}

// normalizeNetwork fills fields a supported probe left empty with the
// fallback defaults.
func normalizeNetwork(n Network) Network {
	fb := FallbackNetwork()
	if n.EffectiveType == "" {
		n.EffectiveType = fb.EffectiveType
	}
	if n.Downlink <= 0 {
		n.Downlink = fb.Downlink
	}
	if n.RTT <= 0 {
		n.RTT = fb.RTT
	}
	if n.Type == "" {
		n.Type = fb.Type
	}
	return n
}

// normalizeDisplay fills fields a client left out of its report
func normalizeDisplay(d Display) Display {
	if d.AvailWidth <= 0 {
		d.AvailWidth = d.Width
	}
	if d.AvailHeight <= 0 {
		d.AvailHeight = d.Height
	}
	if d.ColorDepth <= 0 {
		d.ColorDepth = 24
	}
	if d.PixelDepth <= 0 {
		d.PixelDepth = d.ColorDepth
	}
	if d.Orientation == "" {
		d.Orientation = "landscape-primary"
		if d.Height > d.Width {
			d.Orientation = "portrait-primary"
		}
	}
	if d.DevicePixelRatio <= 0 {
		d.DevicePixelRatio = 1
	}
	return d
}

func normalizeMedia(m MediaDevices) MediaDevices {
	if m.AudioInputs == nil {
		m.AudioInputs = []MediaDevice{}
	}
	if m.AudioOutputs == nil {
		m.AudioOutputs = []MediaDevice{}
	}
	if m.VideoInputs == nil {
		m.VideoInputs = []MediaDevice{}
	}
	return m
}

func normalizeInfo(i Info) Info {
	fb := FallbackInfo()
	if i.Platform == "" {
		i.Platform = fb.Platform
	}
	if i.Hostname == "" {
		i.Hostname = fb.Hostname
	}
	if i.Language == "" {
		i.Language = fb.Language
	}
	if i.HardwareConcurrency <= 0 {
		i.HardwareConcurrency = fb.HardwareConcurrency
	}
	if i.DeviceMemory <= 0 {
		i.DeviceMemory = fb.DeviceMemory
	}
	if i.UserInfo == "" {
		i.UserInfo = fb.UserInfo
	}
	return i
}
