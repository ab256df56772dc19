// Package clock abstracts time so timer-driven page state stays deterministic in tests.
package clock

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped it.
	Stop() bool
}

// Clock is the source of time and delayed callbacks for page components.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
