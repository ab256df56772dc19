package landing

import "github.com/go-chi/chi/v5"

// Register adds the page, its state API and the static assets to r. Chat
// endpoints live with the chat handler and are registered by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandlePage)
	r.Handle("/static/*", StaticHandler())

	r.Get("/api/state", h.HandleState)
	r.Post("/api/dispatch", h.HandleDispatch)
	r.Post("/api/session/unmount", h.HandleUnmount)

	r.Post("/api/posts/{postID}/like", h.HandleLike)
	r.Post("/api/posts/{postID}/save", h.HandleSave)

	r.Post("/api/stories/{storyID}/open", h.HandleStoryOpen)
	r.Post("/api/stories/next", h.HandleStoryNext)
	r.Post("/api/stories/prev", h.HandleStoryPrev)
	r.Post("/api/stories/close", h.HandleStoryClose)
	r.Post("/api/stories/cta", h.HandleStoryCTA)

	r.Post("/api/calculator", h.HandleCalculator)
	r.Post("/api/calculator/promo", h.HandlePromo)
	r.Post("/api/identity", h.HandleIdentity)
}
