package desktop

import (
	"fmt"

	"github.com/GriffinCanCode/AuroraOS/internal/providers/device"
)

// App is a launchable entry in the start menu, taskbar or desktop
type App struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color,omitempty"`
}

// RecentItem is a start menu recommendation
type RecentItem struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Time string `json:"time"`
}

// Weather is the widget board's forecast card
type Weather struct {
	Temperature int    `json:"temp"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
}

// Headline is one news card
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Time   string `json:"time"`
}

// Event is one calendar card
type Event struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// Widgets is the widget board feed
type Widgets struct {
	Weather  Weather    `json:"weather"`
	News     []Headline `json:"news"`
	Calendar []Event    `json:"calendar"`
}

// Wallpaper is a selectable background and its accent color
type Wallpaper struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Color string `json:"color"`
}

// SettingsSection is a navigation entry of the Settings app
type SettingsSection struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Subsections []string `json:"subsections"`
}

// MenuItem is a desktop context menu row. Separators carry no label.
type MenuItem struct {
	Label     string `json:"label,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Separator bool   `json:"separator,omitempty"`
	Submenu   bool   `json:"submenu,omitempty"`
	// OpensSettings marks rows that open the Settings window
	OpensSettings bool `json:"opensSettings,omitempty"`
}

// Network is a row of the simulated Wi-Fi list
type Network struct {
	Name      string `json:"name"`
	Signal    int    `json:"signal"` // bars, 1..4
	Secured   bool   `json:"secured"`
	Connected bool   `json:"connected"`
}

// Catalog bundles every static list the client renders
type Catalog struct {
	StartMenu        []App             `json:"startMenu"`
	Recommended      []RecentItem      `json:"recommended"`
	TaskbarPins      []App             `json:"taskbarPins"`
	DesktopIcons     []App             `json:"desktopIcons"`
	Widgets          Widgets           `json:"widgets"`
	Wallpapers       []Wallpaper       `json:"wallpapers"`
	SettingsSections []SettingsSection `json:"settingsSections"`
	ContextMenu      []MenuItem        `json:"contextMenu"`
}

var startMenuApps = []App{
	{ID: "edge", Name: "Microsoft Edge", Icon: "🌐", Color: "#0078d4"},
	{ID: "explorer", Name: "File Explorer", Icon: "📁", Color: "#ffb900"},
	{ID: "settings", Name: "Settings", Icon: "⚙️", Color: "#737373"},
	{ID: "taskmgr", Name: "Task Manager", Icon: "📊", Color: "#0078d4"},
	{ID: "store", Name: "Microsoft Store", Icon: "🛒", Color: "#0078d4"},
	{ID: "photos", Name: "Photos", Icon: "🖼️", Color: "#00bcf2"},
	{ID: "mail", Name: "Mail", Icon: "✉️", Color: "#0078d4"},
	{ID: "calendar", Name: "Calendar", Icon: "📅", Color: "#0078d4"},
	{ID: "calculator", Name: "Calculator", Icon: "🔢", Color: "#00bcf2"},
	{ID: "paint", Name: "Paint", Icon: "🎨", Color: "#886ce4"},
	{ID: "notepad", Name: "Notepad", Icon: "📝", Color: "#0078d4"},
	{ID: "terminal", Name: "Terminal", Icon: "⌨️", Color: "#0c7d9d"},
}

var recommended = []RecentItem{
	{Name: "Document.docx", Icon: "📄", Time: "2 hours ago"},
	{Name: "Presentation.pptx", Icon: "📊", Time: "Yesterday"},
	{Name: "Project Folder", Icon: "📁", Time: "3 days ago"},
	{Name: "Image.png", Icon: "🖼️", Time: "Last week"},
}

var taskbarPins = []App{
	{ID: "edge", Name: "Microsoft Edge", Icon: "🌐"},
	{ID: "explorer", Name: "File Explorer", Icon: "📁"},
	{ID: "settings", Name: "Settings", Icon: "⚙️"},
	{ID: "store", Name: "Microsoft Store", Icon: "🛒"},
}

var desktopIcons = []App{
	{ID: "this-pc", Name: "This PC", Icon: "💻"},
	{ID: "recycle-bin", Name: "Recycle Bin", Icon: "🗑️"},
	{ID: "edge", Name: "Microsoft Edge", Icon: "🌐"},
	{ID: "settings", Name: "Settings", Icon: "⚙️"},
}

var widgetFeed = Widgets{
	Weather: Weather{Temperature: 72, Condition: "Partly Cloudy", Location: "New York, NY"},
	News: []Headline{
		{Title: "Breaking: Important news headline", Source: "News Source", Time: "2h ago"},
		{Title: "Technology advances in AI", Source: "Tech News", Time: "4h ago"},
		{Title: "Market trends show growth", Source: "Finance", Time: "6h ago"},
	},
	Calendar: []Event{
		{Title: "Team Meeting", Time: "2:00 PM"},
		{Title: "Project Review", Time: "4:30 PM"},
	},
}

var wallpapers = []Wallpaper{
	{ID: "default", Name: "Aurora Default", URL: "https://images.unsplash.com/photo-1614850523060-8da1d56ae167?w=1920&h=1080&fit=crop", Color: "#1e3c72"},
	{ID: "bloom", Name: "Aurora Bloom", URL: "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?w=1920&h=1080&fit=crop", Color: "#667eea"},
	{ID: "mountain", Name: "Mountain Vista", URL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1920&h=1080&fit=crop", Color: "#2c3e50"},
	{ID: "ocean", Name: "Ocean Blue", URL: "https://images.unsplash.com/photo-1505142468610-359e7d316be0?w=1920&h=1080&fit=crop", Color: "#0652DD"},
	{ID: "forest", Name: "Forest Green", URL: "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1920&h=1080&fit=crop", Color: "#27ae60"},
	{ID: "sunset", Name: "Golden Sunset", URL: "https://images.unsplash.com/photo-1472120435266-53107fd0c44a?w=1920&h=1080&fit=crop", Color: "#e67e22"},
	{ID: "city", Name: "City Lights", URL: "https://images.unsplash.com/photo-1480714378408-67cf0d13bc1b?w=1920&h=1080&fit=crop", Color: "#34495e"},
	{ID: "desert", Name: "Desert Dunes", URL: "https://images.unsplash.com/photo-1509316785289-025f5b846b35?w=1920&h=1080&fit=crop", Color: "#d35400"},
	{ID: "space", Name: "Space Galaxy", URL: "https://images.unsplash.com/photo-1419242902214-272b3f66ee7a?w=1920&h=1080&fit=crop", Color: "#2c3e50"},
	{ID: "abstract1", Name: "Abstract Blue", URL: "https://images.unsplash.com/photo-1557672172-298e090bd0f1?w=1920&h=1080&fit=crop", Color: "#3498db"},
	{ID: "abstract2", Name: "Abstract Purple", URL: "https://images.unsplash.com/photo-1557682250-33bd709cbe85?w=1920&h=1080&fit=crop", Color: "#9b59b6"},
	{ID: "gradient", Name: "Color Gradient", URL: "https://images.unsplash.com/photo-1557682224-5b8590cd9ec5?w=1920&h=1080&fit=crop", Color: "#e74c3c"},
}

var settingsSections = []SettingsSection{
	{ID: "system", Icon: "💻", Name: "System", Subsections: []string{"Display", "Sound", "Notifications", "Power", "Storage", "About"}},
	{ID: "bluetooth", Icon: "📡", Name: "Bluetooth & devices", Subsections: []string{"Bluetooth", "Devices", "Printers", "Mouse", "Keyboard"}},
	{ID: "network", Icon: "🌐", Name: "Network & internet", Subsections: []string{"Wi-Fi", "Ethernet", "VPN", "Proxy", "Dial-up"}},
	{ID: "personalization", Icon: "🎨", Name: "Personalization", Subsections: []string{"Background", "Colors", "Themes", "Lock screen", "Start", "Taskbar"}},
	{ID: "apps", Icon: "📱", Name: "Apps", Subsections: []string{"Apps & features", "Default apps", "Startup", "Optional features"}},
	{ID: "accounts", Icon: "👤", Name: "Accounts", Subsections: []string{"Your info", "Email & accounts", "Sign-in options", "Family", "Sync"}},
	{ID: "time", Icon: "🕐", Name: "Time & language", Subsections: []string{"Date & time", "Language", "Region", "Typing"}},
	{ID: "gaming", Icon: "🎮", Name: "Gaming", Subsections: []string{"Game Bar", "Captures", "Game Mode"}},
	{ID: "accessibility", Icon: "♿", Name: "Accessibility", Subsections: []string{"Vision", "Hearing", "Interaction", "Keyboard", "Mouse"}},
	{ID: "privacy", Icon: "🔒", Name: "Privacy & security", Subsections: []string{"Security", "Permissions", "Diagnostics", "Activity history"}},
	{ID: "update", Icon: "🔄", Name: "Updates", Subsections: []string{"Update history", "Advanced options", "Delivery Optimization"}},
}

var contextMenu = []MenuItem{
	{Label: "Refresh", Icon: "🔄"},
	{Separator: true},
	{Label: "View", Icon: "👁️", Submenu: true},
	{Label: "Sort by", Icon: "📋", Submenu: true},
	{Separator: true},
	{Label: "New", Icon: "📁", Submenu: true},
	{Separator: true},
	{Label: "Personalize", Icon: "🎨", OpensSettings: true},
	{Label: "Display settings", Icon: "⚙️", OpensSettings: true},
}

var networks = []Network{
	{Name: "Home Network", Signal: 4, Secured: true},
	{Name: "Office WiFi", Signal: 3, Secured: true},
	{Name: "Guest Network", Signal: 2, Secured: false},
	{Name: "Neighbor WiFi", Signal: 1, Secured: true},
}

// HomeNetwork is the row marked connected when the host reports Wi-Fi
const HomeNetwork = "Home Network"

// WiFiToggleNotice answers requests to switch the radio on or off
const WiFiToggleNotice = "WiFi control is managed by your operating system.\n\nWeb browsers cannot turn WiFi on/off for security reasons."

// NewCatalog returns fresh copies of the static lists
func NewCatalog() Catalog {
	return Catalog{
		StartMenu:        clone(startMenuApps),
		Recommended:      clone(recommended),
		TaskbarPins:      clone(taskbarPins),
		DesktopIcons:     clone(desktopIcons),
		Widgets:          Widgets{Weather: widgetFeed.Weather, News: clone(widgetFeed.News), Calendar: clone(widgetFeed.Calendar)},
		Wallpapers:       clone(wallpapers),
		SettingsSections: clone(settingsSections),
		ContextMenu:      clone(contextMenu),
	}
}

// FindApp looks up a launchable entry by name across the start menu and
// desktop icons
func FindApp(name string) (App, bool) {
	for _, list := range [][]App{startMenuApps, desktopIcons} {
		for _, a := range list {
			if a.Name == name {
				return a, true
			}
		}
	}
	return App{}, false
}

// FindWallpaper looks up a wallpaper by id
func FindWallpaper(id string) (Wallpaper, bool) {
	for _, w := range wallpapers {
		if w.ID == id {
			return w, true
		}
	}
	return Wallpaper{}, false
}

// Networks lists the simulated Wi-Fi networks. The home network is marked
// connected when the host reports a Wi-Fi connection.
func Networks(wifi device.WiFi) []Network {
	out := clone(networks)
	for i := range out {
		if out[i].Name == HomeNetwork {
			out[i].Connected = wifi.Connected && wifi.Type == "wifi"
		}
	}
	return out
}

// ConnectNotice is the answer to a connect request. Nothing is connected.
func ConnectNotice(name string) string {
	return fmt.Sprintf("Would connect to: %s\n\nNote: Web browsers cannot control WiFi connections.", name)
}

func clone[T any](in []T) []T {
	return append([]T(nil), in...)
}
