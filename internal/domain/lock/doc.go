// Package lock implements the lock screen gate in front of the desktop.
package lock
