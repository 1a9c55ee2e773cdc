package middleware

import (
	"context"
	"net/http"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

// SessionCookie carries the signed session token.
const SessionCookie = "session"

type sessionKey struct{}

// SessionMiddleware verifies the session cookie when present and stores
// the identity in the request context. It never rejects: handlers decide
// what an anonymous request may do.
func SessionMiddleware(auth domain.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				if session, err := auth.ParseSession(cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey{}, session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the verified session, or nil for anonymous
// requests.
func SessionFromContext(ctx context.Context) *domain.Session {
	if session, ok := ctx.Value(sessionKey{}).(*domain.Session); ok {
		return session
	}
	return nil
}

// RequireUser is the capability predicate for authenticated routes.
func RequireUser(r *http.Request) (*domain.Session, error) {
	session := SessionFromContext(r.Context())
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

// RequireAdmin gates the admin surface: authenticated and flagged admin.
func RequireAdmin(r *http.Request) (*domain.Session, error) {
	session := SessionFromContext(r.Context())
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return session, nil
}
