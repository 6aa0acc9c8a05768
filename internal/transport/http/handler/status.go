package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-med-reminder/internal/application/status"
)

// StatusHandler handles the reminder status and snooze endpoints.
type StatusHandler struct {
	svc status.Service
}

func NewStatusHandler(svc status.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Get returns the classified status report for right now.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Snooze suppresses one dose occurrence for five minutes.
func (h *StatusHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Medication string `json:"medication"`
		Time       string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	until, err := h.svc.Snooze(r.Context(), req.Medication, req.Time)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success     bool   `json:"success"`
		SnoozeUntil string `json:"snooze_until"`
	}{Success: true, SnoozeUntil: until.Format("15:04")})
}
