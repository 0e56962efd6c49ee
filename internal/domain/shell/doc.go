// Package shell is the top-level desktop session.
//
// A Shell composes the lock gate, the preference store, the window manager,
// the desktop chrome and the task manager sampler. Every desktop action
// arrives as an Intent through Dispatch, which is refused with ErrLocked
// while the lock screen is up. After each change the full State is
// published to every subscriber, including changes made by the taskbar's
// auto-hide timer.
package shell
