// Package feed tracks the visitor's likes and saves on the feed cards and the
// short like "burst" animation.
package feed

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
	"github.com/wolfman30/cosmo-wb-landing/internal/toast"
)

// DefaultBurstDuration is how long the like burst stays on a post.
const DefaultBurstDuration = 550 * time.Millisecond

// DefaultSaveMessage is shown on every save toggle.
const DefaultSaveMessage = "Saved. We’ll remind you about availability."

// Catalog reports which post ids exist.
type Catalog interface {
	HasPost(id string) bool
}

// Options configures a Feed.
type Options struct {
	Clock         clock.Clock
	Lock          sync.Locker
	Toast         *toast.Toast
	BurstDuration time.Duration
	SaveMessage   string
	OnChange      func()
}

// Feed is per-visit like and save state. Methods must be called with the
// owner's lock held.
type Feed struct {
	catalog     Catalog
	liked       map[string]struct{}
	saved       map[string]struct{}
	burst       string
	bursts      map[*clock.Slot]struct{}
	clock       clock.Clock
	lock        sync.Locker
	burstFor    time.Duration
	toast       *toast.Toast
	saveMessage string
	onChange    func()
}

// New returns a feed with nothing liked or saved.
func New(catalog Catalog, opts Options) *Feed {
	if opts.BurstDuration <= 0 {
		opts.BurstDuration = DefaultBurstDuration
	}
	if opts.SaveMessage == "" {
		opts.SaveMessage = DefaultSaveMessage
	}
	return &Feed{
		catalog:     catalog,
		liked:       make(map[string]struct{}),
		saved:       make(map[string]struct{}),
		bursts:      make(map[*clock.Slot]struct{}),
		clock:       opts.Clock,
		lock:        opts.Lock,
		burstFor:    opts.BurstDuration,
		toast:       opts.Toast,
		saveMessage: opts.SaveMessage,
		onChange:    opts.OnChange,
	}
}

// ToggleLike flips the like on postID and marks it as bursting. Every like
// gets its own timer: the marker clears one burst duration after the like
// unless another post took it over, so liking the same post again does not
// extend the burst.
func (f *Feed) ToggleLike(postID string) (liked bool, err error) {
	if !f.catalog.HasPost(postID) {
		return false, fmt.Errorf("feed: like %q: %w", postID, ErrUnknownPost)
	}
	liked = toggle(f.liked, postID)
	f.burst = postID

	slot := clock.NewSlot(f.clock, f.lock)
	f.bursts[slot] = struct{}{}
	slot.Arm(f.burstFor, func() {
		delete(f.bursts, slot)
		if f.burst != postID {
			return
		}
		f.burst = ""
		if f.onChange != nil {
			f.onChange()
		}
	})
	return liked, nil
}

// ToggleSave flips the save on postID and always shows the save toast.
func (f *Feed) ToggleSave(postID string) (saved bool, err error) {
	if !f.catalog.HasPost(postID) {
		return false, fmt.Errorf("feed: save %q: %w", postID, ErrUnknownPost)
	}
	saved = toggle(f.saved, postID)
	if f.toast != nil {
		f.toast.Show(f.saveMessage)
	}
	return saved, nil
}

// IsLiked reports whether postID is liked.
func (f *Feed) IsLiked(postID string) bool {
	_, ok := f.liked[postID]
	return ok
}

// IsSaved reports whether postID is saved.
func (f *Feed) IsSaved(postID string) bool {
	_, ok := f.saved[postID]
	return ok
}

// Burst is the post currently showing the like burst, or "".
func (f *Feed) Burst() string { return f.burst }

// Liked returns the liked post ids in sorted order.
func (f *Feed) Liked() []string { return sortedKeys(f.liked) }

// Saved returns the saved post ids in sorted order.
func (f *Feed) Saved() []string { return sortedKeys(f.saved) }

// Stop cancels every pending burst timer.
func (f *Feed) Stop() {
	for slot := range f.bursts {
		slot.Cancel()
		delete(f.bursts, slot)
	}
}

func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
