package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-med-reminder/internal/application/intake"
)

// IntakeHandler handles intake confirmation and history endpoints.
type IntakeHandler struct {
	svc intake.Service
}

func NewIntakeHandler(svc intake.Service) *IntakeHandler {
	return &IntakeHandler{svc: svc}
}

// Confirm logs an intake for today.
func (h *IntakeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Medication string `json:"medication"`
		Time       string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.svc.Confirm(r.Context(), req.Medication, req.Time)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success       bool   `json:"success"`
		Medication    string `json:"medication"`
		ScheduledTime string `json:"scheduled_time"`
		ActualTime    string `json:"actual_time"`
	}{Success: true, Medication: rec.Medication, ScheduledTime: rec.ScheduledTime, ActualTime: rec.ActualTime})
}

// History returns recent intake records. A missing or out-of-range days
// parameter falls back to the default window.
func (h *IntakeHandler) History(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		days = 0 // out of range, the service clamps to its default
	}
	records, days, err := h.svc.History(r.Context(), days)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryEnvelope{History: records, Days: days})
}
