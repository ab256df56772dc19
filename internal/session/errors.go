package session

import "errors"

// ErrNotFound is returned when no page is mounted for a session id
var ErrNotFound = errors.New("session not found")
