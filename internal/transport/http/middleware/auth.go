package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// EmailKey carries the authenticated email address.
const EmailKey contextKey = "email"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "mrem_token"

// SessionValidator is what the middleware needs from the auth service.
type SessionValidator interface {
	ValidateSession(token string) (email string, ok bool)
	Enabled() bool
}

// Auth returns middleware that validates the session token from the session
// cookie or the Authorization bearer header and injects the bound email into
// the request context. When authentication is disabled it passes requests
// through untouched.
func Auth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			email, ok := sessions.ValidateSession(TokenFromRequest(r))
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), EmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest prefers the session cookie, then the bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// EmailFromContext extracts the authenticated email from the request context.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
