package ai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/taskflow-app/taskflow/internal/models"
)

// breakdownResponse is the wire shape the service must return. Pointer
// fields let a missing required field be told apart from a zero value.
type breakdownResponse struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedValue *float64 `json:"estimatedValue"`
	EstimatedUnit  *string  `json:"estimatedUnit"`
	Priority       *string  `json:"priority"`
	Substeps       []string `json:"substeps"`
}

// parseBreakdownResponse validates the raw model output and maps it into a
// Suggestion. title, estimatedValue, estimatedUnit, and priority are
// required; absent substeps degrade to an empty slice. Unit and priority
// strings outside the closed vocabulary default silently rather than
// failing the call.
func parseBreakdownResponse(content string) (*Suggestion, error) {
	var resp breakdownResponse
	raw := content
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		// Models occasionally wrap the object in prose or fences; salvage
		// the outermost braces before giving up.
		if len(raw) > 0 && raw[0] != '{' {
			start := bytes.Index([]byte(raw), []byte("{"))
			end := bytes.LastIndex([]byte(raw), []byte("}"))
			if start != -1 && end != -1 && end > start {
				raw = raw[start : end+1]
			}
		}
		if err := json.Unmarshal([]byte(raw), &resp); err != nil {
			return nil, generationErr("malformed response", err)
		}
	}

	if resp.Title == "" {
		return nil, generationErr("response missing required field title", nil)
	}
	if resp.EstimatedValue == nil {
		return nil, generationErr("response missing required field estimatedValue", nil)
	}
	if resp.EstimatedUnit == nil {
		return nil, generationErr("response missing required field estimatedUnit", nil)
	}
	if resp.Priority == nil {
		return nil, generationErr("response missing required field priority", nil)
	}
	if *resp.EstimatedValue <= 0 {
		return nil, generationErr(fmt.Sprintf("estimatedValue %v is not positive", *resp.EstimatedValue), nil)
	}

	substeps := resp.Substeps
	if substeps == nil {
		substeps = []string{}
	}

	return &Suggestion{
		Title:       resp.Title,
		Description: resp.Description,
		Duration: models.Duration{
			Value: *resp.EstimatedValue,
			Unit:  mapUnit(*resp.EstimatedUnit),
		},
		Priority: mapPriority(*resp.Priority),
		Substeps: substeps,
	}, nil
}

// mapUnit maps a unit string from the closed response vocabulary into the
// domain enum. Anything unrecognized defaults to minutes.
func mapUnit(s string) models.DurationUnit {
	switch models.DurationUnit(s) {
	case models.UnitHours:
		return models.UnitHours
	case models.UnitDays:
		return models.UnitDays
	case models.UnitWeeks:
		return models.UnitWeeks
	default:
		return models.UnitMinutes
	}
}

// mapPriority maps a priority string into the domain enum. Anything
// unrecognized defaults to medium.
func mapPriority(s string) models.Priority {
	switch models.Priority(s) {
	case models.PriorityLow:
		return models.PriorityLow
	case models.PriorityHigh:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}
