package helpers

import (
	"net/http"

	"github.com/google/uuid"
)

// NewSessionToken generates a fresh client-side session token.
func NewSessionToken() string {
	return uuid.New().String()
}

// WithSession sets the session header on a request and returns it.
func WithSession(req *http.Request, token string) *http.Request {
	req.Header.Set("X-Session-ID", token)
	return req
}
