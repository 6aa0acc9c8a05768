package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	email   string
	valid   bool
	enabled bool
	seen    string
}

func (s *stubValidator) ValidateSession(token string) (string, bool) {
	s.seen = token
	return s.email, s.valid
}

func (s *stubValidator) Enabled() bool { return s.enabled }

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuth_MissingToken(t *testing.T) {
	v := &stubValidator{enabled: true}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "auth_required")
}

func TestAuth_InvalidToken(t *testing.T) {
	v := &stubValidator{enabled: true}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "not-a-real-token", v.seen)
}

func TestAuth_CookieToken_InjectsEmail(t *testing.T) {
	v := &stubValidator{enabled: true, valid: true, email: "user@example.com"}

	var gotEmail string
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok123"})
	rr := httptest.NewRecorder()
	Auth(v)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "tok123", v.seen)
	assert.Equal(t, "user@example.com", gotEmail)
}

func TestAuth_CookiePreferredOverHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "cookie-token", TokenFromRequest(req))
}

func TestAuth_DisabledPassesThrough(t *testing.T) {
	v := &stubValidator{enabled: false}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Auth(v)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
