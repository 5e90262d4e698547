package handlers

import (
	"net/http"

	"github.com/taskflow-app/taskflow/internal/tasks"
)

// StatsHandler handles aggregate task statistics requests
type StatsHandler struct {
	service *tasks.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *tasks.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats returns an aggregate snapshot over all tasks
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Stats())
}
