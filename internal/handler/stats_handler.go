package handlers

import (
	"net/http"

	"forumCPT/internal/models"
)

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type StatsResponse struct {
	Stats *models.Stats `json:"stats"`
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Forum API is running", http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		writeSuccess(w, HealthResponse{Status: "unavailable", Error: err.Error()}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		writeError(w, "Database error", err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, StatsResponse{Stats: stats}, http.StatusOK)
}
