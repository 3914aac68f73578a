package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"bloodlink/pkg/domain"
	"bloodlink/pkg/requestcontext"
)

type stubValidator struct {
	identity requestcontext.Identity
	err      error
}

func (s stubValidator) ValidateIdentity(string) (requestcontext.Identity, error) {
	return s.identity, s.err
}

type AuthMiddlewareSuite struct {
	suite.Suite
	logger *slog.Logger
	seen   *requestcontext.Identity
	next   http.Handler
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.seen = nil
	s.next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := requestcontext.IdentityFrom(r.Context()); ok {
			s.seen = &identity
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *AuthMiddlewareSuite) serve(mw func(http.Handler) http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	mw(s.next).ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareSuite) TestRequireAuth() {
	valid := stubValidator{identity: requestcontext.Identity{UserID: "u1", Role: domain.RoleDonor}}

	s.Run("missing header is unauthorized", func() {
		w := s.serve(RequireAuth(valid, s.logger), "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("invalid token is unauthorized", func() {
		w := s.serve(RequireAuth(stubValidator{err: errors.New("bad")}, s.logger), "Bearer nope")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("valid token sets identity", func() {
		w := s.serve(RequireAuth(valid, s.logger), "Bearer ok")
		s.Equal(http.StatusNoContent, w.Code)
		s.Require().NotNil(s.seen)
		s.Equal("u1", s.seen.UserID)
	})
}

func (s *AuthMiddlewareSuite) TestOptionalAuth() {
	s.Run("anonymous passes through", func() {
		s.seen = nil
		w := s.serve(OptionalAuth(stubValidator{err: errors.New("unused")}, s.logger), "")
		s.Equal(http.StatusNoContent, w.Code)
		s.Nil(s.seen)
	})

	s.Run("invalid token still rejected", func() {
		w := s.serve(OptionalAuth(stubValidator{err: errors.New("bad")}, s.logger), "Bearer nope")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}
