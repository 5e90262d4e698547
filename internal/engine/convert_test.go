package engine

import (
	"errors"
	"testing"

	"github.com/taskflow-app/taskflow/internal/models"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		from  models.DurationUnit
		to    models.DurationUnit
		want  float64
	}{
		{"same unit is a no-op", 42.5, models.UnitHours, models.UnitHours, 42.5},
		{"90 minutes is 1.5 hours", 90, models.UnitMinutes, models.UnitHours, 1.5},
		{"1.5 hours is 90 minutes", 1.5, models.UnitHours, models.UnitMinutes, 90},
		{"minutes to hours rounds to 2 decimals", 100, models.UnitMinutes, models.UnitHours, 1.67},
		{"hours to minutes rounds to whole number", 1.333, models.UnitHours, models.UnitMinutes, 80},
		{"10 days is 1.43 weeks", 10, models.UnitDays, models.UnitWeeks, 1.43},
		{"2 weeks is 14 days", 2, models.UnitWeeks, models.UnitDays, 14},
		{"36 hours is 1.5 days", 36, models.UnitHours, models.UnitDays, 1.5},
		{"1.5 days is 36 hours", 1.5, models.UnitDays, models.UnitHours, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Convert(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert(%v, %s, %s) returned error: %v", tt.value, tt.from, tt.to, err)
			}
			if got != tt.want {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_UnsupportedPairs(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		from models.DurationUnit
		to   models.DurationUnit
	}{
		{models.UnitMinutes, models.UnitDays},
		{models.UnitMinutes, models.UnitWeeks},
		{models.UnitWeeks, models.UnitMinutes},
		{models.UnitWeeks, models.UnitHours},
		{models.UnitHours, models.UnitWeeks},
		{models.UnitDays, models.UnitMinutes},
	}

	for _, p := range pairs {
		if _, err := Convert(1, p.from, p.to); !errors.Is(err, ErrUnsupportedConversion) {
			t.Errorf("Convert(1, %s, %s): expected ErrUnsupportedConversion, got %v", p.from, p.to, err)
		}
	}
}

// Round-trips through the exact direction of the table must return the
// original value when it has no fractional component finer than the
// rounding granularity.
func TestConvert_RoundTrips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		a     models.DurationUnit
		b     models.DurationUnit
	}{
		{"hours -> minutes -> hours", 1.5, models.UnitHours, models.UnitMinutes},
		{"hours -> minutes -> hours whole", 3, models.UnitHours, models.UnitMinutes},
		{"weeks -> days -> weeks", 2, models.UnitWeeks, models.UnitDays},
		{"days -> hours -> days", 1.5, models.UnitDays, models.UnitHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mid, err := Convert(tt.value, tt.a, tt.b)
			if err != nil {
				t.Fatalf("forward conversion failed: %v", err)
			}
			back, err := Convert(mid, tt.b, tt.a)
			if err != nil {
				t.Fatalf("reverse conversion failed: %v", err)
			}
			if back != tt.value {
				t.Errorf("round-trip %s: got %v, want %v", tt.name, back, tt.value)
			}
		})
	}
}
