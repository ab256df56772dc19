package landing

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/wolfman30/cosmo-wb-landing/internal/content"
	"github.com/wolfman30/cosmo-wb-landing/internal/feed"
	"github.com/wolfman30/cosmo-wb-landing/internal/page"
	"github.com/wolfman30/cosmo-wb-landing/internal/revenue"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
)

// postView is one feed card with the visitor's reactions folded in.
type postView struct {
	content.Post
	Emoji      string
	Liked      bool
	Saved      bool
	Burst      bool
	Calculator *revenue.Display
}

// pageData is everything the landing template renders.
type pageData struct {
	Site           content.Site
	Keywords       string
	CanonicalURL   string
	SocialImageURL string

	LiveActivity string
	Stats        []content.Stat
	Stories      []content.Story
	People       []content.Person
	PeopleNote   string
	Posts        []postView

	Chat     content.Chat
	ChatView webchat.View
	Final    content.Final
	Identity page.Identity
	Story    page.StoryView
	Toast    page.ToastView

	TourURL      string
	BreakpointPx int
}

func (h *Handler) buildPageData(r *http.Request, snap page.Snapshot) pageData {
	t := h.content
	data := pageData{
		Site:           t.Site,
		Keywords:       strings.Join(t.Site.Keywords, ", "),
		CanonicalURL:   h.absoluteURL(r, "/"),
		SocialImageURL: t.Site.SocialImage.URL,
		LiveActivity:   t.LiveActivityMessage(),
		Stats:          t.Stats,
		Stories:        t.Stories,
		People:         t.People,
		PeopleNote:     t.PeopleNote,
		Chat:           t.Chat,
		ChatView:       snap.Chat,
		Final:          t.Final,
		Identity:       snap.Identity,
		Story:          snap.Story,
		Toast:          snap.Toast,
		TourURL:        h.dispatcher.Destinations().Tour,
		BreakpointPx:   h.dispatcher.BreakpointPx(),
	}
	for _, p := range t.Posts {
		v := postView{
			Post:  p,
			Emoji: feed.EmojiForTitle(p.Title),
			Liked: snap.Liked(p.ID),
			Saved: snap.Saved(p.ID),
			Burst: snap.Feed.Burst == p.ID,
		}
		if p.IsCalculator() {
			calc := snap.Calculator
			v.Calculator = &calc
		}
		data.Posts = append(data.Posts, v)
	}
	return data
}

// absoluteURL builds an absolute URL for path, preferring the configured
// public base URL over request hints.
func (h *Handler) absoluteURL(r *http.Request, path string) string {
	clean := strings.TrimSpace(path)
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}
	if h.publicBaseURL != "" {
		return h.publicBaseURL + clean
	}

	scheme := "https"
	if proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto != "" {
		scheme = proto
	} else if r.TLS == nil {
		scheme = "http"
	}
	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, clean)
}
