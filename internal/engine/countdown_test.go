package engine

import (
	"testing"
	"time"

	"github.com/taskflow-app/taskflow/internal/models"
)

func TestDescribeTimeLeft(t *testing.T) {
	t.Parallel()

	const now = int64(1700000000000)

	tests := []struct {
		name      string
		dueDate   *int64
		completed bool
		want      string
	}{
		{"no due date", nil, false, ""},
		{"completed takes precedence over overdue", millis(now - 5000), true, ""},
		{"completed with future due date", millis(now + 86400000), true, ""},
		{"past due is overdue", millis(now - 1), false, "Overdue"},
		{"90 minutes left", millis(now + 90*60000), false, "1h 30m left"},
		{"three days left", millis(now + 3*86400000 + 3600000), false, "3 days left"},
		{"exactly one day left", millis(now + 86400000), false, "1 day left"},
		{"under an hour", millis(now + 45*60000), false, "45m left"},
		{"under a minute floors to zero", millis(now + 30000), false, "0m left"},
		{"hours and minutes", millis(now + 5*3600000 + 7*60000), false, "5h 7m left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DescribeTimeLeft(tt.dueDate, tt.completed, now); got != tt.want {
				t.Errorf("DescribeTimeLeft = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDueLabel(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, loc).UnixMilli()

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"same calendar day", time.Date(2024, 3, 15, 23, 59, 59, 0, loc), "Today"},
		{"early today still today", time.Date(2024, 3, 15, 0, 0, 1, 0, loc), "Today"},
		{"next calendar day", time.Date(2024, 3, 16, 23, 59, 59, 0, loc), "Tomorrow"},
		{"later this month", time.Date(2024, 3, 22, 23, 59, 59, 0, loc), "Mar 22"},
		{"across month boundary", time.Date(2024, 4, 1, 23, 59, 59, 0, loc), "Apr 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDueLabel(tt.due.UnixMilli(), now, loc); got != tt.want {
				t.Errorf("FormatDueLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    models.Duration
		want string
	}{
		{"plain minutes", models.Duration{Value: 30, Unit: models.UnitMinutes}, "30 min"},
		{"minutes collapse to hours", models.Duration{Value: 90, Unit: models.UnitMinutes}, "1h 30m"},
		{"minutes collapse to whole hours", models.Duration{Value: 120, Unit: models.UnitMinutes}, "2h"},
		{"fractional minutes round", models.Duration{Value: 90.7, Unit: models.UnitMinutes}, "1h 31m"},
		{"fractional minutes round down", models.Duration{Value: 120.4, Unit: models.UnitMinutes}, "2h"},
		{"plain hours", models.Duration{Value: 2, Unit: models.UnitHours}, "2 hr"},
		{"days collapse to weeks", models.Duration{Value: 10, Unit: models.UnitDays}, "1.4w"},
		{"plain days", models.Duration{Value: 3, Unit: models.UnitDays}, "3 days"},
		{"weeks", models.Duration{Value: 2, Unit: models.UnitWeeks}, "2 wks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%+v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
