package handlers

import (
	"errors"
	"net/http"

	"github.com/taskflow-app/taskflow/internal/engine"
	"github.com/taskflow-app/taskflow/internal/models"
)

// ConvertHandler handles duration conversion requests
type ConvertHandler struct{}

// NewConvertHandler creates a new convert handler
func NewConvertHandler() *ConvertHandler {
	return &ConvertHandler{}
}

// ConvertRequest represents a duration conversion request
type ConvertRequest struct {
	Value float64 `json:"value" validate:"gt=0"`
	From  string  `json:"from" validate:"required,duration_unit"`
	To    string  `json:"to" validate:"required,duration_unit"`
}

// ConvertResponse represents a duration conversion result
type ConvertResponse struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Convert converts a duration value between units
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validateBody(w, req) {
		return
	}

	value, err := engine.Convert(req.Value, models.DurationUnit(req.From), models.DurationUnit(req.To))
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedConversion) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to convert duration")
		return
	}

	respondJSON(w, http.StatusOK, ConvertResponse{Value: value, Unit: req.To})
}
