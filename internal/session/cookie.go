package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/wolfman30/cosmo-wb-landing/internal/page"
)

// CookieName carries the session id.
const CookieName = "wb_session"

// IDFromRequest returns the session id from the request cookie, or "".
func IDFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie. secure should be true behind HTTPS.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest resolves the page mounted for the request's cookie.
func (s *Store) FromRequest(r *http.Request) (*page.Controller, error) {
	id := IDFromRequest(r)
	if id == "" {
		return nil, fmt.Errorf("session: no %s cookie: %w", CookieName, ErrNotFound)
	}
	return s.Get(id)
}
