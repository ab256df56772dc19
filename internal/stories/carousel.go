// Package stories implements the story viewer: which story is open and which
// slide of it is showing.
package stories

import (
	"fmt"

	"github.com/wolfman30/cosmo-wb-landing/internal/booking"
	"github.com/wolfman30/cosmo-wb-landing/internal/content"
)

// Catalog looks stories up by id.
type Catalog interface {
	Story(id string) (content.Story, bool)
}

// State is the carousel value: closed, or open on a story at a slide index.
// The zero value is closed.
type State struct {
	open    bool
	storyID string
	index   int
}

// Closed returns the closed state.
func Closed() State { return State{} }

// IsOpen reports whether a story is showing.
func (s State) IsOpen() bool { return s.open }

// StoryID is the open story, or "" when closed.
func (s State) StoryID() string { return s.storyID }

// SlideIndex is the current slide; always 0 when closed.
func (s State) SlideIndex() int { return s.index }

// Carousel applies bounds-checked transitions against a catalog.
type Carousel struct {
	catalog Catalog
	state   State
	story   content.Story
}

// NewCarousel returns a closed carousel.
func NewCarousel(catalog Catalog) *Carousel {
	return &Carousel{catalog: catalog}
}

// State returns the current state value.
func (c *Carousel) State() State { return c.state }

// Open shows the first slide of storyID regardless of the prior state.
func (c *Carousel) Open(storyID string) error {
	story, ok := c.catalog.Story(storyID)
	if !ok {
		return fmt.Errorf("stories: open %q: %w", storyID, ErrUnknownStory)
	}
	if len(story.Slides) == 0 {
		return fmt.Errorf("stories: open %q: %w", storyID, content.ErrNoSlides)
	}
	c.story = story
	c.state = State{open: true, storyID: storyID}
	return nil
}

// Close returns to the closed state with the index reset.
func (c *Carousel) Close() {
	c.story = content.Story{}
	c.state = Closed()
}

// Next advances one slide, stopping at the last one.
func (c *Carousel) Next() {
	if !c.state.open {
		return
	}
	if last := len(c.story.Slides) - 1; c.state.index < last {
		c.state.index++
	}
}

// Prev steps back one slide, stopping at the first one.
func (c *Carousel) Prev() {
	if !c.state.open {
		return
	}
	if c.state.index > 0 {
		c.state.index--
	}
}

// Current returns the open story and its visible slide.
func (c *Carousel) Current() (content.Story, content.Slide, bool) {
	if !c.state.open {
		return content.Story{}, content.Slide{}, false
	}
	return c.story, c.story.Slides[c.state.index], true
}

// ProgressPercent is the share of slides seen, (index+1)/len*100; 0 when closed.
func (c *Carousel) ProgressPercent() float64 {
	if !c.state.open || len(c.story.Slides) == 0 {
		return 0
	}
	return float64(c.state.index+1) / float64(len(c.story.Slides)) * 100
}

// ActivateCTA follows the visible slide's call to action. A tour destination
// runs through the dispatcher first; every CTA then closes the story. With no
// CTA on the slide nothing changes and ok is false.
func (c *Carousel) ActivateCTA(d *booking.Dispatcher, viewportWidthPx int) (action booking.Action, cta content.CTA, ok bool) {
	_, slide, open := c.Current()
	if !open || slide.CTA == nil {
		return booking.Action{}, content.CTA{}, false
	}
	cta = *slide.CTA
	action = booking.DefaultNavigation()
	if d != nil && d.Destinations().IsTour(cta.Href) {
		action = d.Dispatch(viewportWidthPx)
	}
	c.Close()
	return action, cta, true
}
