// Package landing serves the West Bloomfield landing page and the JSON API
// its script uses to drive per-visit page state.
package landing

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/booking"
	"github.com/wolfman30/cosmo-wb-landing/internal/content"
	"github.com/wolfman30/cosmo-wb-landing/internal/feed"
	"github.com/wolfman30/cosmo-wb-landing/internal/observability/metrics"
	"github.com/wolfman30/cosmo-wb-landing/internal/page"
	"github.com/wolfman30/cosmo-wb-landing/internal/session"
	"github.com/wolfman30/cosmo-wb-landing/internal/stories"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cosmo-wb-landing/landing")

// Deps are the shared collaborators of the landing handler.
type Deps struct {
	Store         *session.Store
	Content       *content.Table
	Dispatcher    *booking.Dispatcher
	Metrics       *metrics.LandingMetrics
	PublicBaseURL string
	SessionTTL    time.Duration
	SecureCookies bool
}

// Handler serves the page and its API.
type Handler struct {
	store         *session.Store
	content       *content.Table
	dispatcher    *booking.Dispatcher
	metrics       *metrics.LandingMetrics
	logger        *logging.Logger
	tmpl          *template.Template
	publicBaseURL string
	sessionTTL    time.Duration
	secureCookies bool
}

// NewHandler parses the embedded templates and returns a handler.
func NewHandler(deps Deps, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if deps.Store == nil {
		return nil, errors.New("landing: session store is required")
	}
	if deps.Content == nil {
		return nil, errors.New("landing: content table is required")
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = booking.NewDispatcher(booking.Destinations{}, booking.DefaultDesktopBreakpointPx)
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = session.DefaultTTL
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:         deps.Store,
		content:       deps.Content,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		logger:        logger,
		tmpl:          tmpl,
		publicBaseURL: deps.PublicBaseURL,
		sessionTTL:    deps.SessionTTL,
		secureCookies: deps.SecureCookies,
	}, nil
}

// HandlePage mounts a fresh page for the visitor and renders it. A reload
// replaces whatever page the cookie pointed at.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "landing.page")
	defer span.End()

	id, ctrl := h.store.Mount(session.IDFromRequest(r))
	span.SetAttributes(attribute.String("session.id", id))

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "base", h.buildPageData(r, ctrl.Snapshot())); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		h.logger.WithContext(ctx).Error("landing: render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	session.SetCookie(w, id, h.sessionTTL, h.secureCookies)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Accept-CH", "Sec-CH-Viewport-Width")
	_, _ = w.Write(buf.Bytes())
}

// HandleState returns the current page snapshot.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r, "state")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// HandleDispatch decides how a link activation should navigate. It needs no
// page: the rule depends only on the link and the viewport width.
func (h *Handler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "landing.dispatch")
	defer span.End()

	var req dispatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.badRequest(w, r, "dispatch", err)
		return
	}
	width := widthFor(req.ViewportWidth, r)
	action := h.dispatcher.DispatchLink(req.Href, req.Tour, width)

	span.SetAttributes(
		attribute.Int("viewport.width", width),
		attribute.Bool("dispatch.new_tab", action.PreventDefault),
	)
	if req.Tour || h.dispatcher.Destinations().IsTour(req.Href) {
		h.metrics.ObserveDispatch(action.PreventDefault)
	}
	writeJSON(w, http.StatusOK, map[string]any{"action": action})
}

// HandleUnmount tears the visitor's page down. Browsers call it with
// sendBeacon on pagehide, so it always answers 204.
func (h *Handler) HandleUnmount(w http.ResponseWriter, r *http.Request) {
	if id := session.IDFromRequest(r); id != "" {
		if err := h.store.Unmount(id); err != nil && !errors.Is(err, session.ErrNotFound) {
			h.logger.WithContext(r.Context()).Warn("landing: unmount failed", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// controller resolves the visitor's page or writes a 404.
func (h *Handler) controller(w http.ResponseWriter, r *http.Request, action string) (*page.Controller, bool) {
	ctrl, err := h.store.FromRequest(r)
	if err != nil {
		h.metrics.ObserveInteraction(action, "no_session")
		writeError(w, http.StatusNotFound, webchat.NoSessionMessage)
		return nil, false
	}
	return ctrl, true
}

// fail maps a domain error to a status and records it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	outcome := "error"
	switch {
	case errors.Is(err, feed.ErrUnknownPost):
		status, msg, outcome = http.StatusNotFound, "unknown post", "unknown_id"
	case errors.Is(err, stories.ErrUnknownStory), errors.Is(err, content.ErrNoSlides):
		status, msg, outcome = http.StatusNotFound, "unknown story", "unknown_id"
	case errors.Is(err, page.ErrUnknownIdentity):
		status, msg, outcome = http.StatusBadRequest, "choice must be booth or owner", "invalid"
	case errors.Is(err, page.ErrTornDown):
		status, msg, outcome = http.StatusNotFound, webchat.NoSessionMessage, "no_session"
	}
	h.metrics.ObserveInteraction(action, outcome)

	log := h.logger.WithContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("landing: action failed", "action", action, "error", err)
	} else {
		log.Debug("landing: action rejected", "action", action, "error", err)
	}
	writeError(w, status, msg)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.metrics.ObserveInteraction(action, "bad_request")
	h.logger.WithContext(r.Context()).Debug("landing: bad request", "action", action, "error", err)
	writeError(w, http.StatusBadRequest, "invalid request body")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
