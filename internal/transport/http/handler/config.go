package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-med-reminder/internal/application/schedule"
	"github.com/go-med-reminder/internal/domain"
)

// ConfigHandler handles schedule configuration endpoints.
type ConfigHandler struct {
	svc schedule.Service
}

func NewConfigHandler(svc schedule.Service) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// Update replaces the whole configuration.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ScheduleConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Replace(r.Context(), &cfg); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                   `json:"success"`
		Config  *domain.ScheduleConfig `json:"config"`
	}{Success: true, Config: &cfg})
}
