package webchat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/observability/metrics"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/websocket"
)

var tracer = otel.Tracer("cosmo-wb-landing/webchat")

// Conversation is the chat side of one mounted page. Implementations lock
// internally. Subscribe callbacks run while the page is locked and must not block.
type Conversation interface {
	OpenChat() (View, error)
	CloseChat() (View, error)
	ChatView() View
	Subscribe(fn func()) (unsubscribe func())
}

// Resolver finds the conversation for the visitor making the request.
type Resolver interface {
	Conversation(r *http.Request) (Conversation, error)
}

// ErrNoConversation is returned by a Resolver when the visitor has no mounted
// page, and by a Conversation whose page has been torn down.
var ErrNoConversation = errors.New("webchat: no conversation for request")

// NoSessionMessage is the error text of every 404 for a missing page. The
// page script reloads when it sees it.
const NoSessionMessage = "no active page session"

// Handler serves the chat panel: a websocket that pushes state changes and
// plain HTTP endpoints for browsers without websocket support.
type Handler struct {
	resolver Resolver
	metrics  *metrics.LandingMetrics
	logger   *logging.Logger
}

// InboundMessage is what the page sends over the socket.
type InboundMessage struct {
	Type string `json:"type"` // "open", "close", "ping"
}

// OutboundMessage is what we push to the page.
type OutboundMessage struct {
	Type      string `json:"type"` // "state", "pong", "error"
	Chat      *View  `json:"chat,omitempty"`
	Text      string `json:"text,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewHandler creates a chat handler.
func NewHandler(resolver Resolver, m *metrics.LandingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{resolver: resolver, metrics: m, logger: logger}
}

func stateMessage(v View) OutboundMessage {
	return OutboundMessage{Type: "state", Chat: &v, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

// HandleWebSocket upgrades to WebSocket and streams chat state until the page goes away.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conv, err := h.resolver.Conversation(r)
	if err != nil {
		writeError(w, http.StatusNotFound, NoSessionMessage)
		return
	}
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, conv)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, conv Conversation) {
	h.metrics.ChatConnected()
	defer h.metrics.ChatDisconnected()

	// Change notifications arrive under the page lock; coalesce them into a
	// one-slot channel and let the writer read the latest view.
	changed := make(chan struct{}, 1)
	unsubscribe := conv.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-changed:
				if err := websocket.JSON.Send(conn, stateMessage(conv.ChatView())); err != nil {
					h.logger.Debug("webchat: push failed", "error", err)
					return
				}
			}
		}
	}()

	if err := websocket.JSON.Send(conn, stateMessage(conv.ChatView())); err != nil {
		return
	}
	h.logger.Info("webchat: connection opened")

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "error", err)
			return
		}

		var err error
		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "open":
			_, err = conv.OpenChat()
			h.metrics.ObserveInteraction("chat_open", outcome(err))
		case "close":
			_, err = conv.CloseChat()
			h.metrics.ObserveInteraction("chat_close", outcome(err))
		default:
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "unknown message type"})
		}
		if err != nil {
			// The page is gone; tell the script and hang up.
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: NoSessionMessage})
			return
		}
	}
}

// HandleOpen is the HTTP fallback for opening the chat panel.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "chat_open", Conversation.OpenChat)
}

// HandleClose is the HTTP fallback for closing the chat panel.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "chat_close", Conversation.CloseChat)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, action string, fn func(Conversation) (View, error)) {
	ctx, span := tracer.Start(r.Context(), "webchat."+action)
	defer span.End()

	conv, err := h.resolver.Conversation(r)
	var view View
	if err == nil {
		view, err = fn(conv)
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("session.found", false))
		h.metrics.ObserveInteraction(action, outcome(err))
		if !errors.Is(err, ErrNoConversation) {
			h.logger.WithContext(ctx).Error("webchat: action failed", "action", action, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeError(w, http.StatusNotFound, NoSessionMessage)
		return
	}
	h.metrics.ObserveInteraction(action, "ok")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]View{"chat": view})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoConversation):
		return "no_session"
	}
	return "error"
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
