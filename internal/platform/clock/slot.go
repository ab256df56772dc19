package clock

import (
	"sync"
	"time"
)

// Slot owns at most one pending callback. Arm and Cancel must be called while
// holding the owner's lock; the callback runs with that same lock held, so a
// superseded or cancelled callback can never observe or mutate owner state.
type Slot struct {
	clock Clock
	lock  sync.Locker
	timer Timer
	seq   uint64
}

// NewSlot returns a slot whose callbacks run under lock.
func NewSlot(c Clock, lock sync.Locker) *Slot {
	if c == nil {
		c = System{}
	}
	return &Slot{clock: c, lock: lock}
}

// Arm cancels any pending callback and schedules fn after d.
func (s *Slot) Arm(d time.Duration, fn func()) {
	s.Cancel()
	seq := s.seq
	s.timer = s.clock.AfterFunc(d, func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		if s.seq != seq {
			return
		}
		s.timer = nil
		s.seq++
		fn()
	})
}

// Cancel stops the pending callback, if any.
func (s *Slot) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}

// Pending reports whether a callback is armed and has not fired.
func (s *Slot) Pending() bool {
	return s.timer != nil
}
