// Package toast is the single transient notice shown at the bottom of the page.
package toast

import (
	"sync"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// Toast shows at most one message. Showing a new message replaces the old one
// and restarts the dismissal timer. Methods must be called with the owner's
// lock held; the same lock is taken when the timer fires.
type Toast struct {
	slot     *clock.Slot
	duration time.Duration
	message  string
	onChange func()
}

// New returns an empty toast. onChange, if set, runs after the timer clears
// the message, still under lock.
func New(c clock.Clock, lock sync.Locker, duration time.Duration, onChange func()) *Toast {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Toast{slot: clock.NewSlot(c, lock), duration: duration, onChange: onChange}
}

// Show displays msg and schedules its dismissal.
func (t *Toast) Show(msg string) {
	t.message = msg
	t.slot.Arm(t.duration, func() {
		t.message = ""
		if t.onChange != nil {
			t.onChange()
		}
	})
}

// Message is the visible text, or "" when hidden.
func (t *Toast) Message() string { return t.message }

// Visible reports whether a message is showing.
func (t *Toast) Visible() bool { return t.message != "" }

// Stop cancels the dismissal timer without touching the message.
func (t *Toast) Stop() { t.slot.Cancel() }
