// Package engine holds the pure task domain logic: duration conversion,
// filtering and display ordering, progress aggregation, and due-date
// countdown formatting. Nothing in this package performs I/O; every
// function is deterministic given its inputs.
package engine

import (
	"errors"
	"math"

	"github.com/taskflow-app/taskflow/internal/models"
)

// ErrUnsupportedConversion is returned for unit pairs outside the defined
// conversion table (e.g. minutes to weeks). Callers are expected to never
// convert across the daily/long-term unit categories except hours<->days.
var ErrUnsupportedConversion = errors.New("unsupported duration conversion")

// Convert converts a duration value between units.
//
// The table is intentionally asymmetric: shrinking conversions round to two
// decimals, growing conversions round to the nearest whole number, so
// hours->minutes->hours round-trips exactly while minutes->hours->minutes
// may not. This mirrors how the duration picker behaves and is not generic
// unit math.
func Convert(value float64, from, to models.DurationUnit) (float64, error) {
	if from == to {
		return value, nil
	}

	switch {
	case from == models.UnitMinutes && to == models.UnitHours:
		return round2(value / 60), nil
	case from == models.UnitHours && to == models.UnitMinutes:
		return math.Round(value * 60), nil
	case from == models.UnitDays && to == models.UnitWeeks:
		return round2(value / 7), nil
	case from == models.UnitWeeks && to == models.UnitDays:
		return math.Round(value * 7), nil
	case from == models.UnitHours && to == models.UnitDays:
		return round2(value / 24), nil
	case from == models.UnitDays && to == models.UnitHours:
		return math.Round(value * 24), nil
	}

	return 0, ErrUnsupportedConversion
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
