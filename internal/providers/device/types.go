package device

import "time"

// Battery is the power source state
type Battery struct {
	Level           int      `json:"level"`
	Charging        bool     `json:"charging"`
	ChargingTime    *float64 `json:"chargingTime,omitempty"`    // seconds, nil when unknown
	DischargingTime *float64 `json:"dischargingTime,omitempty"` // seconds, nil when unknown
	Supported       bool     `json:"supported"`
}

// Network describes the primary connection
type Network struct {
	EffectiveType string  `json:"effectiveType"`
	Downlink      float64 `json:"downlink"` // Mbps
	RTT           int     `json:"rtt"`      // ms
	SaveData      bool    `json:"saveData"`
	Type          string  `json:"type"`
	Supported     bool    `json:"supported"`
}

// WiFi is the derived view the taskbar and Wi-Fi panel show
type WiFi struct {
	Connected bool    `json:"connected"`
	Type      string  `json:"type"`
	Quality   float64 `json:"quality"`
	Supported bool    `json:"supported"`
}

// Storage is capacity of the volume the shell reports on
type Storage struct {
	Quota      uint64 `json:"quota"`
	Usage      uint64 `json:"usage"`
	Percentage int    `json:"percentage"`
	Supported  bool   `json:"supported"`
}

// Display is the screen the client renders on
type Display struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	AvailWidth       int     `json:"availWidth"`
	AvailHeight      int     `json:"availHeight"`
	ColorDepth       int     `json:"colorDepth"`
	PixelDepth       int     `json:"pixelDepth"`
	Orientation      string  `json:"orientation"`
	DevicePixelRatio float64 `json:"devicePixelRatio"`
	Supported        bool    `json:"supported"`
}

// Bluetooth reports adapter presence
type Bluetooth struct {
	Available bool     `json:"available"`
	Adapters  []string `json:"adapters"`
	Supported bool     `json:"supported"`
}

// MediaDevice is one audio or video endpoint
type MediaDevice struct {
	DeviceID string `json:"deviceId"`
	Kind     string `json:"kind"` // audioinput, audiooutput, videoinput
	Label    string `json:"label"`
}

// MediaDevices groups endpoints by kind
type MediaDevices struct {
	AudioInputs  []MediaDevice `json:"audioInputs"`
	AudioOutputs []MediaDevice `json:"audioOutputs"`
	VideoInputs  []MediaDevice `json:"videoInputs"`
	Supported    bool          `json:"supported"`
}

// Geolocation is an approximate position
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"` // meters
	Supported bool    `json:"supported"`
}

// Info describes the host
type Info struct {
	Platform            string `json:"platform"`
	Hostname            string `json:"hostname"`
	Language            string `json:"language"`
	Online              bool   `json:"online"`
	HardwareConcurrency int    `json:"hardwareConcurrency"`
	DeviceMemory        int    `json:"deviceMemory"` // GB
	UserInfo            string `json:"userInfo"`
	Supported           bool   `json:"supported"`
}

// OnlineStatus is delivered to online subscribers on every change
type OnlineStatus struct {
	Online    bool      `json:"online"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is every capability read at one moment
type Snapshot struct {
	Battery     Battery      `json:"battery"`
	Network     Network      `json:"network"`
	WiFi        WiFi         `json:"wifi"`
	Storage     Storage      `json:"storage"`
	Display     Display      `json:"display"`
	Bluetooth   Bluetooth    `json:"bluetooth"`
	Media       MediaDevices `json:"media"`
	Geolocation Geolocation  `json:"geolocation"`
	Info        Info         `json:"info"`
	Timestamp   time.Time    `json:"timestamp"`
}
