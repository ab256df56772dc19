package landing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/cosmo-wb-landing/internal/page"
	"go.opentelemetry.io/otel/attribute"
)

// stateResponse wraps the snapshot with action-specific fields.
type stateResponse struct {
	State page.Snapshot `json:"state"`
}

func (h *Handler) respond(w http.ResponseWriter, action string, ctrl *page.Controller, extra map[string]any) {
	h.metrics.ObserveInteraction(action, "ok")
	if extra == nil {
		writeJSON(w, http.StatusOK, stateResponse{State: ctrl.Snapshot()})
		return
	}
	extra["state"] = ctrl.Snapshot()
	writeJSON(w, http.StatusOK, extra)
}

// HandleLike toggles the like on a post.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.like")
	defer span.End()
	postID := chi.URLParam(r, "postID")
	span.SetAttributes(attribute.String("post.id", postID))

	ctrl, ok := h.controller(w, r, "like")
	if !ok {
		return
	}
	liked, err := ctrl.ToggleLike(postID)
	if err != nil {
		h.fail(w, r, "like", err)
		return
	}
	h.respond(w, "like", ctrl, map[string]any{"liked": liked})
}

// HandleSave toggles the save on a post and shows the save toast.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.save")
	defer span.End()
	postID := chi.URLParam(r, "postID")
	span.SetAttributes(attribute.String("post.id", postID))

	ctrl, ok := h.controller(w, r, "save")
	if !ok {
		return
	}
	saved, err := ctrl.ToggleSave(postID)
	if err != nil {
		h.fail(w, r, "save", err)
		return
	}
	h.respond(w, "save", ctrl, map[string]any{"saved": saved})
}

// HandleStoryOpen opens a story at its first slide.
func (h *Handler) HandleStoryOpen(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.story_open")
	defer span.End()
	storyID := chi.URLParam(r, "storyID")
	span.SetAttributes(attribute.String("story.id", storyID))

	ctrl, ok := h.controller(w, r, "story_open")
	if !ok {
		return
	}
	if err := ctrl.OpenStory(storyID); err != nil {
		h.fail(w, r, "story_open", err)
		return
	}
	h.respond(w, "story_open", ctrl, nil)
}

// HandleStoryNext advances the open story.
func (h *Handler) HandleStoryNext(w http.ResponseWriter, r *http.Request) {
	h.storyStep(w, r, "story_next", (*page.Controller).NextSlide)
}

// HandleStoryPrev steps the open story back.
func (h *Handler) HandleStoryPrev(w http.ResponseWriter, r *http.Request) {
	h.storyStep(w, r, "story_prev", (*page.Controller).PrevSlide)
}

// HandleStoryClose closes the story viewer.
func (h *Handler) HandleStoryClose(w http.ResponseWriter, r *http.Request) {
	h.storyStep(w, r, "story_close", (*page.Controller).CloseStory)
}

func (h *Handler) storyStep(w http.ResponseWriter, r *http.Request, action string, step func(*page.Controller) error) {
	_, span := tracer.Start(r.Context(), "landing."+action)
	defer span.End()

	ctrl, ok := h.controller(w, r, action)
	if !ok {
		return
	}
	if err := step(ctrl); err != nil {
		h.fail(w, r, action, err)
		return
	}
	h.respond(w, action, ctrl, nil)
}

// HandleStoryCTA follows the visible slide's call to action and closes the story.
func (h *Handler) HandleStoryCTA(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.story_cta")
	defer span.End()

	var req storyCTARequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "story_cta", err)
		return
	}
	ctrl, ok := h.controller(w, r, "story_cta")
	if !ok {
		return
	}
	width := widthFor(req.ViewportWidth, r)
	action, cta, activated, err := ctrl.ActivateStoryCTA(width)
	if err != nil {
		h.fail(w, r, "story_cta", err)
		return
	}
	span.SetAttributes(attribute.Bool("cta.activated", activated), attribute.Int("viewport.width", width))

	resp := map[string]any{"activated": activated, "action": action}
	if activated {
		resp["cta"] = cta
		if h.dispatcher.Destinations().IsTour(cta.Href) {
			h.metrics.ObserveDispatch(action.PreventDefault)
		}
	}
	h.respond(w, "story_cta", ctrl, resp)
}

// HandleCalculator replaces the calculator inputs.
func (h *Handler) HandleCalculator(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.calculator")
	defer span.End()

	var req calculatorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "calculator", err)
		return
	}
	ctrl, ok := h.controller(w, r, "calculator")
	if !ok {
		return
	}
	display, err := ctrl.SetCalculatorInputs(req.inputs())
	if err != nil {
		h.fail(w, r, "calculator", err)
		return
	}
	h.respond(w, "calculator", ctrl, map[string]any{"calculator": display})
}

// HandlePromo toggles the move-in special.
func (h *Handler) HandlePromo(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.promo")
	defer span.End()

	ctrl, ok := h.controller(w, r, "promo")
	if !ok {
		return
	}
	display, err := ctrl.TogglePromo()
	if err != nil {
		h.fail(w, r, "promo", err)
		return
	}
	span.SetAttributes(attribute.Bool("promo.applied", display.Promo))
	h.respond(w, "promo", ctrl, map[string]any{"calculator": display})
}

// HandleIdentity records the identity toggle in the final call to action.
func (h *Handler) HandleIdentity(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.identity")
	defer span.End()

	var req identityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "identity", err)
		return
	}
	ctrl, ok := h.controller(w, r, "identity")
	if !ok {
		return
	}
	id, err := ctrl.ChooseIdentity(req.Choice)
	if err != nil {
		h.fail(w, r, "identity", err)
		return
	}
	h.respond(w, "identity", ctrl, map[string]any{"identity": id})
}
