package landing

import (
	"fmt"
	"net/http"

	"github.com/wolfman30/cosmo-wb-landing/internal/session"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
)

// ChatResolver finds the chat conversation of the visitor's mounted page.
type ChatResolver struct {
	Store *session.Store
}

func (c ChatResolver) Conversation(r *http.Request) (webchat.Conversation, error) {
	ctrl, err := c.Store.FromRequest(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", webchat.ErrNoConversation, err)
	}
	return ctrl, nil
}
