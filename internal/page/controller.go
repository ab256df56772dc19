// Package page holds the per-visit state of the landing page: stories,
// feed reactions, the calculator, the toast, the chat panel and the identity
// toggle. Every transition, including timer callbacks, runs under one mutex.
package page

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/booking"
	"github.com/wolfman30/cosmo-wb-landing/internal/content"
	"github.com/wolfman30/cosmo-wb-landing/internal/feed"
	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
	"github.com/wolfman30/cosmo-wb-landing/internal/revenue"
	"github.com/wolfman30/cosmo-wb-landing/internal/stories"
	"github.com/wolfman30/cosmo-wb-landing/internal/toast"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
)

// Identity is the visitor's answer to "which best describes you?".
type Identity string

const (
	IdentityNone  Identity = ""
	IdentityBooth Identity = "booth"
	IdentityOwner Identity = "owner"
)

// ParseIdentity accepts "booth" or "owner", case-insensitively.
func ParseIdentity(raw string) (Identity, error) {
	switch Identity(strings.ToLower(strings.TrimSpace(raw))) {
	case IdentityBooth:
		return IdentityBooth, nil
	case IdentityOwner:
		return IdentityOwner, nil
	}
	return IdentityNone, fmt.Errorf("page: identity %q: %w", raw, ErrUnknownIdentity)
}

// Options are the shared, read-only dependencies and timings for a page.
type Options struct {
	Content       *content.Table
	Dispatcher    *booking.Dispatcher
	Calculator    revenue.Calculator
	Clock         clock.Clock
	ToastDuration time.Duration
	BurstDuration time.Duration
	ReplyDelay    time.Duration
	UnreadDelay   time.Duration
}

// Controller is one mounted landing page.
type Controller struct {
	mu sync.Mutex

	content    *content.Table
	dispatcher *booking.Dispatcher
	calculator revenue.Calculator

	carousel *stories.Carousel
	feed     *feed.Feed
	toast    *toast.Toast
	chat     *webchat.Script

	inputs   revenue.Inputs
	promo    bool
	identity Identity

	subs     map[int]func()
	nextSub  int
	tornDown bool
}

// New builds a controller and mounts it, starting the unread-message timer.
func New(opts Options) *Controller {
	if opts.Content == nil {
		opts.Content = &content.Table{}
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = booking.NewDispatcher(booking.Destinations{}, booking.DefaultDesktopBreakpointPx)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	c := &Controller{
		content:    opts.Content,
		dispatcher: opts.Dispatcher,
		calculator: opts.Calculator,
		carousel:   stories.NewCarousel(opts.Content),
		inputs:     revenue.DefaultInputs(),
		subs:       make(map[int]func()),
	}
	c.toast = toast.New(opts.Clock, &c.mu, opts.ToastDuration, c.notify)
	c.feed = feed.New(opts.Content, feed.Options{
		Clock:         opts.Clock,
		Lock:          &c.mu,
		Toast:         c.toast,
		BurstDuration: opts.BurstDuration,
		SaveMessage:   opts.Content.SaveToast,
		OnChange:      c.notify,
	})
	c.chat = webchat.NewScript(webchat.ScriptOptions{
		Clock:       opts.Clock,
		Lock:        &c.mu,
		ReplyDelay:  opts.ReplyDelay,
		UnreadDelay: opts.UnreadDelay,
		OnChange:    c.notify,
	})

	c.mu.Lock()
	c.chat.Mount()
	c.mu.Unlock()
	return c
}

// update runs fn under the lock and notifies subscribers when fn succeeds.
func (c *Controller) update(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return ErrTornDown
	}
	if err := fn(); err != nil {
		return err
	}
	c.notify()
	return nil
}

// notify runs with c.mu held.
func (c *Controller) notify() {
	for _, fn := range c.subs {
		fn()
	}
}

// Subscribe registers fn to run after every state change. fn runs with the
// page locked and must not block or call back into the controller.
func (c *Controller) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Dispatch decides how a link activation navigates. Only tour links are
// intercepted; the rest keep their default navigation.
func (c *Controller) Dispatch(href string, tour bool, viewportWidthPx int) booking.Action {
	return c.dispatcher.DispatchLink(href, tour, viewportWidthPx)
}

// ToggleLike flips the like on a post.
func (c *Controller) ToggleLike(postID string) (liked bool, err error) {
	err = c.update(func() error {
		var ferr error
		liked, ferr = c.feed.ToggleLike(postID)
		return ferr
	})
	return liked, err
}

// ToggleSave flips the save on a post and shows the save toast.
func (c *Controller) ToggleSave(postID string) (saved bool, err error) {
	err = c.update(func() error {
		var ferr error
		saved, ferr = c.feed.ToggleSave(postID)
		return ferr
	})
	return saved, err
}

// OpenStory shows the first slide of a story.
func (c *Controller) OpenStory(storyID string) error {
	return c.update(func() error { return c.carousel.Open(storyID) })
}

// NextSlide advances the open story.
func (c *Controller) NextSlide() error {
	return c.update(func() error { c.carousel.Next(); return nil })
}

// PrevSlide steps the open story back.
func (c *Controller) PrevSlide() error {
	return c.update(func() error { c.carousel.Prev(); return nil })
}

// CloseStory closes the story viewer.
func (c *Controller) CloseStory() error {
	return c.update(func() error { c.carousel.Close(); return nil })
}

// ActivateStoryCTA follows the visible slide's call to action. ok is false
// when no story is open or the slide has no CTA.
func (c *Controller) ActivateStoryCTA(viewportWidthPx int) (action booking.Action, cta content.CTA, ok bool, err error) {
	err = c.update(func() error {
		action, cta, ok = c.carousel.ActivateCTA(c.dispatcher, viewportWidthPx)
		return nil
	})
	return action, cta, ok, err
}

// SetCalculatorInputs replaces both calculator amounts. Invalid amounts become 0.
func (c *Controller) SetCalculatorInputs(in revenue.Inputs) (revenue.Display, error) {
	var d revenue.Display
	err := c.update(func() error {
		c.inputs = in.Sanitize()
		d = c.calculator.Render(c.inputs, c.promo)
		return nil
	})
	return d, err
}

// TogglePromo flips the move-in special without touching the inputs.
func (c *Controller) TogglePromo() (revenue.Display, error) {
	var d revenue.Display
	err := c.update(func() error {
		c.promo = !c.promo
		d = c.calculator.Render(c.inputs, c.promo)
		return nil
	})
	return d, err
}

// ChooseIdentity records the visitor's identity toggle.
func (c *Controller) ChooseIdentity(raw string) (Identity, error) {
	id, err := ParseIdentity(raw)
	if err != nil {
		return IdentityNone, err
	}
	if err := c.update(func() error { c.identity = id; return nil }); err != nil {
		return IdentityNone, err
	}
	return id, nil
}

// OpenChat opens the chat panel and clears the unread dot.
func (c *Controller) OpenChat() (webchat.View, error) {
	return c.chatUpdate(func() { c.chat.Open() })
}

// CloseChat closes the chat panel.
func (c *Controller) CloseChat() (webchat.View, error) {
	return c.chatUpdate(func() { c.chat.Close() })
}

// chatUpdate reports a torn-down page as webchat.ErrNoConversation while
// keeping ErrTornDown in the chain.
func (c *Controller) chatUpdate(fn func()) (webchat.View, error) {
	var v webchat.View
	if err := c.update(func() error { fn(); v = c.chat.View(); return nil }); err != nil {
		return webchat.View{}, fmt.Errorf("%w: %w", webchat.ErrNoConversation, err)
	}
	return v, nil
}

// ChatView returns the chat panel state.
func (c *Controller) ChatView() webchat.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chat.View()
}

// Teardown cancels every pending timer and drops subscribers. Later calls
// that change state return ErrTornDown. Safe to call more than once.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return
	}
	c.tornDown = true
	c.toast.Stop()
	c.feed.Stop()
	c.chat.Stop()
	c.subs = make(map[int]func())
}

// TornDown reports whether Teardown has run.
func (c *Controller) TornDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tornDown
}
