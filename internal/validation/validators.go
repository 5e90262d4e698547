package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/taskflow-app/taskflow/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	if err := Validate.RegisterValidation("task_type", validateTaskType); err != nil {
		panic(fmt.Sprintf("failed to register task_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("duration_unit", validateDurationUnit); err != nil {
		panic(fmt.Sprintf("failed to register duration_unit validator: %v", err))
	}
	if err := Validate.RegisterValidation("priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register priority validator: %v", err))
	}
}

func validateTaskType(fl validator.FieldLevel) bool {
	return models.TaskType(fl.Field().String()).Valid()
}

func validateDurationUnit(fl validator.FieldLevel) bool {
	return models.DurationUnit(fl.Field().String()).Valid()
}

func validatePriority(fl validator.FieldLevel) bool {
	return models.Priority(fl.Field().String()).Valid()
}

// SanitizeText sanitizes text input by trimming whitespace and removing
// control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskType validates a TaskType string value
func ValidateTaskType(value string) error {
	if !models.TaskType(value).Valid() {
		return fmt.Errorf("invalid type: %s (must be 'DAILY' or 'LONG_TERM')", value)
	}
	return nil
}

// ValidateDurationUnit validates a DurationUnit string value
func ValidateDurationUnit(value string) error {
	if !models.DurationUnit(value).Valid() {
		return fmt.Errorf("invalid unit: %s (must be 'minutes', 'hours', 'days', or 'weeks')", value)
	}
	return nil
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	if !models.Priority(value).Valid() {
		return fmt.Errorf("invalid priority: %s (must be 'low', 'medium', or 'high')", value)
	}
	return nil
}
