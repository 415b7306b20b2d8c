package guard

import (
	"context"
	"net/http"

	"vitrina/models"
)

// SessionCookieName carries the admin session token
const SessionCookieName = "vitrina_session"

type ctxKey string

const ctxKeySession ctxKey = "session"

// WithSession stores the session in context
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the session attached by Middleware, or nil
func SessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxKeySession).(*models.Session)
	return s
}

// SessionToken reads the session token from the request cookie
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Middleware runs Resolve before every request and redirects when told to
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := g.Resolve(r.Context(), r.URL.Path, SessionToken(r))
		if t.State == StateRedirected {
			http.Redirect(w, r, t.Location, http.StatusFound)
			return
		}
		ctx := r.Context()
		if t.Session != nil {
			ctx = WithSession(ctx, t.Session)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ConfigLoader is the part of the site config loader the public layout needs
type ConfigLoader interface {
	Loaded() bool
	Fetch(ctx context.Context) error
}

// PublicLayout loads the site configuration before public pages are served.
// A failed load does not block the page.
func PublicLayout(loader ConfigLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !loader.Loaded() {
				_ = loader.Fetch(r.Context())
			}
			next.ServeHTTP(w, r)
		})
	}
}
