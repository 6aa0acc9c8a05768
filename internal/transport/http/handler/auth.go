package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-med-reminder/internal/application/auth"
	"github.com/go-med-reminder/internal/transport/http/middleware"
)

// AuthHandler handles the passwordless login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Check reports whether the caller holds a valid session.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Enabled() {
		writeJSON(w, http.StatusOK, AuthCheckEnvelope{Authenticated: true, AuthEnabled: false})
		return
	}
	email, ok := h.svc.ValidateSession(middleware.TokenFromRequest(r))
	writeJSON(w, http.StatusOK, AuthCheckEnvelope{Authenticated: ok, AuthEnabled: true, Email: email})
}

// Request issues a one-time code. The response is identical whether or not
// the address is registered.
func (h *AuthHandler) Request(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Enabled() {
		writeError(w, http.StatusBadRequest, "auth not enabled")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.RequestOTP(r.Context(), req.Email, middleware.ClientIP(r)); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "If email is registered, OTP was sent"})
}

// Verify checks a one-time code and sets the session cookie.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Enabled() {
		writeError(w, http.StatusBadRequest, "auth not enabled")
		return
	}
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, email, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionExpiry.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Email   string `json:"email"`
	}{Success: true, Email: email})
}

// Logout destroys the caller's session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(middleware.TokenFromRequest(r))
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true})
}
