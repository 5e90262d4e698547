package validation

import (
	"testing"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  buy milk  ", "buy milk"},
		{"keeps newlines and tabs", "step one\n\tstep two", "step one\n\tstep two"},
		{"strips control characters", "title\x00with\x07noise", "titlewithnoise"},
		{"whitespace only becomes empty", "   \t  ", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEnums(t *testing.T) {
	t.Parallel()

	if err := ValidateTaskType("DAILY"); err != nil {
		t.Errorf("ValidateTaskType(DAILY) returned error: %v", err)
	}
	if err := ValidateTaskType("daily"); err == nil {
		t.Error("ValidateTaskType(daily) should fail, enum strings are case sensitive")
	}
	if err := ValidateDurationUnit("weeks"); err != nil {
		t.Errorf("ValidateDurationUnit(weeks) returned error: %v", err)
	}
	if err := ValidateDurationUnit("fortnights"); err == nil {
		t.Error("ValidateDurationUnit(fortnights) should fail")
	}
	if err := ValidatePriority("high"); err != nil {
		t.Errorf("ValidatePriority(high) returned error: %v", err)
	}
	if err := ValidatePriority("urgent"); err == nil {
		t.Error("ValidatePriority(urgent) should fail")
	}
}

func TestValidatorTags(t *testing.T) {
	t.Parallel()

	type payload struct {
		Type     string `validate:"required,task_type"`
		Unit     string `validate:"required,duration_unit"`
		Priority string `validate:"required,priority"`
	}

	good := payload{Type: "LONG_TERM", Unit: "days", Priority: "low"}
	if err := Validate.Struct(good); err != nil {
		t.Errorf("valid payload failed validation: %v", err)
	}

	bad := payload{Type: "SOMEDAY", Unit: "days", Priority: "low"}
	if err := Validate.Struct(bad); err == nil {
		t.Error("invalid task type passed validation")
	}
}
