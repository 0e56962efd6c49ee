// Package window manages the shell's open application windows.
//
// The Manager keeps windows in insertion order, allows at most one window per
// title, and tracks a single active window. Minimized and maximized are
// independent flags. Window ids come from a per-manager counter starting at 1.
package window
