package handlers

import (
	"net/http"

	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/tasks"
)

// ProfileHandler handles user profile and theme requests
type ProfileHandler struct {
	service *tasks.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *tasks.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// OnboardRequest represents an onboarding request
type OnboardRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url,max=2000"`
}

// ThemeRequest represents a theme preference update
type ThemeRequest struct {
	Dark bool `json:"dark"`
}

// GetProfile returns the stored profile. Before onboarding the data field
// is null; the frontend treats that as "show the onboarding flow".
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Profile())
}

// Onboard saves the user profile
func (h *ProfileHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, req) {
		return
	}

	profile, err := h.service.Onboard(r.Context(), models.UserProfile{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

// ResetProfile clears the profile and all tasks
func (h *ProfileHandler) ResetProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetProfile(r.Context()); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to reset profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// GetTheme returns the stored dark-mode flag, null when never set
func (h *ProfileHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.service.Theme()
	if theme == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, ThemeRequest{Dark: *theme})
}

// SetTheme persists the dark-mode flag
func (h *ProfileHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.SetTheme(r.Context(), req.Dark); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save theme")
		return
	}
	respondJSON(w, http.StatusOK, ThemeRequest{Dark: req.Dark})
}
