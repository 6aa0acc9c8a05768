package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-med-reminder/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthCheckEnvelope wraps /auth/check responses.
type AuthCheckEnvelope struct {
	Authenticated bool   `json:"authenticated"`
	AuthEnabled   bool   `json:"auth_enabled"`
	Email         string `json:"email,omitempty"`
}

// HistoryEnvelope wraps intake history responses.
type HistoryEnvelope struct {
	History []domain.IntakeRecord `json:"history"`
	Days    int                   `json:"days"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusConflict, struct {
			Error     string `json:"error"`
			Duplicate bool   `json:"duplicate"`
		}{Error: err.Error(), Duplicate: true})
	case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
