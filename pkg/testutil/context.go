package testutil

import (
	"net/http"
	"time"

	"bloodlink/pkg/domain"
	"bloodlink/pkg/requestcontext"
)

// WithIdentity places an authenticated identity on the request, as the auth
// middleware would for a valid bearer token.
func WithIdentity(req *http.Request, identity requestcontext.Identity) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), identity))
}

// WithUser is WithIdentity for a plain user of the given role.
func WithUser(req *http.Request, userID string, role domain.Role) *http.Request {
	return WithIdentity(req, requestcontext.Identity{UserID: userID, Role: role})
}

// WithTime pins the request time read by requestcontext.Now.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
