package handlers

import (
	"errors"
	"net/http"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/services/ai"
	"github.com/taskflow-app/taskflow/internal/tasks"
)

// SuggestHandler handles AI task breakdown requests
type SuggestHandler struct {
	service *tasks.Service
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(service *tasks.Service) *SuggestHandler {
	return &SuggestHandler{service: service}
}

// SuggestRequest represents a breakdown request for a draft task
type SuggestRequest struct {
	Title string `json:"title" validate:"required,min=1,max=500"`
	Type  string `json:"type" validate:"required,task_type"`
}

// Suggest requests an AI breakdown for a draft task title. The draft is
// never persisted here; the client applies the suggestion locally.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, req) {
		return
	}

	suggestion, err := h.service.Suggest(r.Context(), req.Title, models.TaskType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrSuggestionInFlight):
			respondJSONError(w, http.StatusConflict, "Conflict", "A suggestion for this title is already being generated")
		case errors.Is(err, tasks.ErrNoProvider):
			respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "AI suggestions are not configured")
		case ai.IsGenerationError(err):
			respondJSONError(w, http.StatusBadGateway, "Bad Gateway", "Failed to generate suggestion")
		default:
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to generate suggestion")
		}
		return
	}

	respondJSON(w, http.StatusOK, suggestion)
}
