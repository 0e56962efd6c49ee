// Package preferences stores the handful of shell settings that survive a
// restart: wallpaper, accent color, taskbar auto-hide and system volume.
//
// Values are kept as strings under fixed keys. Reads decode leniently and
// fall back to defaults; writes go straight to the backing store and report
// its errors.
package preferences
