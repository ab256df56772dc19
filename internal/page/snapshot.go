package page

import (
	"github.com/wolfman30/cosmo-wb-landing/internal/content"
	"github.com/wolfman30/cosmo-wb-landing/internal/revenue"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
)

// StoryView is the story viewer as the page renders it.
type StoryView struct {
	Open       bool           `json:"open"`
	StoryID    string         `json:"story_id,omitempty"`
	Title      string         `json:"title,omitempty"`
	SlideIndex int            `json:"slide_index"`
	SlideCount int            `json:"slide_count,omitempty"`
	Progress   float64        `json:"progress"`
	Slide      *content.Slide `json:"slide,omitempty"`
}

// FeedView is the visitor's reactions.
type FeedView struct {
	Liked []string `json:"liked"`
	Saved []string `json:"saved"`
	Burst string   `json:"burst,omitempty"`
}

// ToastView is the transient notice.
type ToastView struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

// Snapshot is a consistent copy of the whole page state.
type Snapshot struct {
	Story      StoryView       `json:"story"`
	Feed       FeedView        `json:"feed"`
	Toast      ToastView       `json:"toast"`
	Chat       webchat.View    `json:"chat"`
	Calculator revenue.Display `json:"calculator"`
	Identity   Identity        `json:"identity,omitempty"`
}

// Liked reports whether postID is in the liked set.
func (s Snapshot) Liked(postID string) bool { return contains(s.Feed.Liked, postID) }

// Saved reports whether postID is in the saved set.
func (s Snapshot) Saved(postID string) bool { return contains(s.Feed.Saved, postID) }

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Feed: FeedView{
			Liked: c.feed.Liked(),
			Saved: c.feed.Saved(),
			Burst: c.feed.Burst(),
		},
		Toast:      ToastView{Visible: c.toast.Visible(), Message: c.toast.Message()},
		Chat:       c.chat.View(),
		Calculator: c.calculator.Render(c.inputs, c.promo),
		Identity:   c.identity,
	}
	if story, slide, ok := c.carousel.Current(); ok {
		st := c.carousel.State()
		s.Story = StoryView{
			Open:       true,
			StoryID:    st.StoryID(),
			Title:      story.Title,
			SlideIndex: st.SlideIndex(),
			SlideCount: len(story.Slides),
			Progress:   c.carousel.ProgressPercent(),
			Slide:      &slide,
		}
	}
	return s
}
