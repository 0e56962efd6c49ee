// Package desktop holds the shell chrome around the windows: the taskbar
// and its auto-hide timer, the start menu, the widget board, the desktop
// context menu and the tray flyouts, plus the static catalogs they list.
//
// Chrome is safe for concurrent use. Its only background work is the
// auto-hide timer, which reports through the OnChange callback and is
// released by Close.
package desktop
