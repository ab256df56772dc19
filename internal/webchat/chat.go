package webchat

import (
	"sync"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
)

const (
	// DefaultReplyDelay is how long the scripted second bubble takes to appear.
	DefaultReplyDelay = 1100 * time.Millisecond
	// DefaultUnreadDelay is how long after mount the unread dot lights up.
	DefaultUnreadDelay = 2500 * time.Millisecond
)

// View is the visible chat state.
type View struct {
	Open         bool `json:"open"`
	SecondBubble bool `json:"second_bubble"`
	Unread       bool `json:"unread"`
}

// Script is the two-bubble scripted conversation and the launcher's unread
// dot. Methods must be called with the owner's lock held.
type Script struct {
	view        View
	reply       *clock.Slot
	unread      *clock.Slot
	replyDelay  time.Duration
	unreadDelay time.Duration
	onChange    func()
}

// ScriptOptions configures a Script.
type ScriptOptions struct {
	Clock       clock.Clock
	Lock        sync.Locker
	ReplyDelay  time.Duration
	UnreadDelay time.Duration
	OnChange    func()
}

// NewScript returns a closed chat with no unread indicator.
func NewScript(opts ScriptOptions) *Script {
	if opts.ReplyDelay <= 0 {
		opts.ReplyDelay = DefaultReplyDelay
	}
	if opts.UnreadDelay <= 0 {
		opts.UnreadDelay = DefaultUnreadDelay
	}
	return &Script{
		reply:       clock.NewSlot(opts.Clock, opts.Lock),
		unread:      clock.NewSlot(opts.Clock, opts.Lock),
		replyDelay:  opts.ReplyDelay,
		unreadDelay: opts.UnreadDelay,
		onChange:    opts.OnChange,
	}
}

// Mount starts the one-shot unread timer.
func (s *Script) Mount() {
	s.unread.Arm(s.unreadDelay, func() {
		s.view.Unread = true
		s.changed()
	})
}

// Open shows the chat and clears the unread dot. The second bubble is
// scheduled only on the closed-to-open transition.
func (s *Script) Open() {
	s.view.Unread = false
	if s.view.Open {
		return
	}
	s.view.Open = true
	s.view.SecondBubble = false
	s.reply.Arm(s.replyDelay, func() {
		s.view.SecondBubble = true
		s.changed()
	})
}

// Close hides the chat and the second bubble and cancels a pending reply.
func (s *Script) Close() {
	s.reply.Cancel()
	s.view.Open = false
	s.view.SecondBubble = false
}

// View returns the current state.
func (s *Script) View() View { return s.view }

// Stop cancels both timers.
func (s *Script) Stop() {
	s.reply.Cancel()
	s.unread.Cancel()
}

func (s *Script) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
