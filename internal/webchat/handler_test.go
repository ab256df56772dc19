package webchat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
	"golang.org/x/net/websocket"
)

// fakeConversation drives a real Script behind one mutex, the way a page does.
type fakeConversation struct {
	mu     sync.Mutex
	script *Script
	subs   map[int]func()
	nextID int
	ended  bool
}

func newFakeConversation(c clock.Clock) *fakeConversation {
	fc := &fakeConversation{subs: make(map[int]func())}
	fc.script = NewScript(ScriptOptions{Clock: c, Lock: &fc.mu, OnChange: fc.notify})
	return fc
}

func (f *fakeConversation) notify() {
	for _, fn := range f.subs {
		fn()
	}
}

func (f *fakeConversation) OpenChat() (View, error) {
	return f.change(f.script.Open)
}

func (f *fakeConversation) CloseChat() (View, error) {
	return f.change(f.script.Close)
}

func (f *fakeConversation) change(fn func()) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ended {
		return View{}, ErrNoConversation
	}
	fn()
	f.notify()
	return f.script.View(), nil
}

func (f *fakeConversation) end() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = true
	f.script.Stop()
}

func (f *fakeConversation) ChatView() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.script.View()
}

func (f *fakeConversation) Subscribe(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

type staticResolver struct {
	conv Conversation
}

func (s staticResolver) Conversation(*http.Request) (Conversation, error) {
	if s.conv == nil {
		return nil, ErrNoConversation
	}
	return s.conv, nil
}

func TestHandleOpenAndClose_HTTP(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	conv := newFakeConversation(fake)
	h := NewHandler(staticResolver{conv: conv}, nil, logging.New("error"))

	w := httptest.NewRecorder()
	h.HandleOpen(w, httptest.NewRequest(http.MethodPost, "/api/chat/open", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, View{Open: true}, resp["chat"])

	fake.Advance(DefaultReplyDelay)
	assert.True(t, conv.ChatView().SecondBubble)

	w = httptest.NewRecorder()
	h.HandleClose(w, httptest.NewRequest(http.MethodPost, "/api/chat/close", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, View{}, resp["chat"])
}

func TestHandleOpen_NoSession(t *testing.T) {
	h := NewHandler(staticResolver{}, nil, logging.New("error"))

	w := httptest.NewRecorder()
	h.HandleOpen(w, httptest.NewRequest(http.MethodPost, "/api/chat/open", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestHandleOpenAndClose_EndedConversation(t *testing.T) {
	conv := newFakeConversation(clock.NewFake(time.Unix(0, 0)))
	conv.end()
	h := NewHandler(staticResolver{conv: conv}, nil, logging.New("error"))

	for _, handle := range []http.HandlerFunc{h.HandleOpen, h.HandleClose} {
		w := httptest.NewRecorder()
		handle(w, httptest.NewRequest(http.MethodPost, "/api/chat/open", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, NoSessionMessage, resp["error"])
	}
}

func TestHandleWebSocket_NoSession(t *testing.T) {
	h := NewHandler(staticResolver{}, nil, logging.New("error"))

	w := httptest.NewRecorder()
	h.HandleWebSocket(w, httptest.NewRequest(http.MethodGet, "/api/chat/ws", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleWebSocket_HangsUpWhenConversationEnds(t *testing.T) {
	conv := newFakeConversation(clock.NewFake(time.Unix(0, 0)))
	h := NewHandler(staticResolver{conv: conv}, nil, logging.New("error"))

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	conn, err := websocket.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	require.Equal(t, "state", msg.Type)

	conv.end()
	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "open"}))
	msg = OutboundMessage{}
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, NoSessionMessage, msg.Text)

	assert.Error(t, websocket.JSON.Receive(conn, &msg), "server closes the socket")
}

func TestHandleWebSocket_PushesState(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	conv := newFakeConversation(fake)
	h := NewHandler(staticResolver{conv: conv}, nil, logging.New("error"))

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	require.Equal(t, "state", msg.Type)
	assert.Equal(t, View{}, *msg.Chat)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	assert.Equal(t, "pong", msg.Type)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "open"}))
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	require.Equal(t, "state", msg.Type)
	assert.Equal(t, View{Open: true}, *msg.Chat)

	fake.Advance(DefaultReplyDelay)
	msg = OutboundMessage{}
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	require.Equal(t, "state", msg.Type)
	assert.Equal(t, View{Open: true, SecondBubble: true}, *msg.Chat)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "bogus"}))
	msg = OutboundMessage{}
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	assert.Equal(t, "error", msg.Type)
}
