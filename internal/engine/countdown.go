package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/taskflow-app/taskflow/internal/models"
)

const (
	millisPerMinute int64 = 60 * 1000
	millisPerHour   int64 = 60 * millisPerMinute
	millisPerDay    int64 = 24 * millisPerHour
)

// OverdueLabel is the countdown text for tasks past their due date.
const OverdueLabel = "Overdue"

// DescribeTimeLeft renders the remaining time until dueDate as a short
// human-readable bucket. It returns "" when there is no due date or the
// task is already completed; the completed check takes precedence over the
// overdue check. Consumers are expected to recompute at least once per
// minute; the function itself is pure given now.
func DescribeTimeLeft(dueDate *int64, completed bool, now int64) string {
	if dueDate == nil || completed {
		return ""
	}

	diff := *dueDate - now
	if diff < 0 {
		return OverdueLabel
	}

	days := diff / millisPerDay
	hours := (diff % millisPerDay) / millisPerHour
	minutes := (diff % millisPerHour) / millisPerMinute

	switch {
	case days > 1:
		return fmt.Sprintf("%d days left", days)
	case days == 1:
		return "1 day left"
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	default:
		return fmt.Sprintf("%dm left", minutes)
	}
}

// FormatDueLabel renders a due date as "Today", "Tomorrow", or a short
// month-day label. Calendar-day equality is resolved against now's local
// day in loc, independent of time-of-day.
func FormatDueLabel(dueDate, now int64, loc *time.Location) string {
	due := time.UnixMilli(dueDate).In(loc)
	today := time.UnixMilli(now).In(loc)
	tomorrow := today.AddDate(0, 0, 1)

	if sameDay(due, today) {
		return "Today"
	}
	if sameDay(due, tomorrow) {
		return "Tomorrow"
	}
	return due.Format("Jan 2")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FormatDuration renders a duration compactly the way the task card does:
// 60+ minutes collapse into hours ("2h 30m"), 7+ days collapse into weeks
// ("1.5w"), everything else prints the value with a short unit suffix.
func FormatDuration(d models.Duration) string {
	if d.Unit == models.UnitMinutes && d.Value >= 60 {
		hours := int(math.Floor(d.Value / 60))
		mins := int(math.Round(math.Mod(d.Value, 60)))
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d.Unit == models.UnitDays && d.Value >= 7 {
		return fmt.Sprintf("%vw", round1(d.Value/7))
	}
	return fmt.Sprintf("%v %s", d.Value, shortUnit(d.Unit))
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func shortUnit(u models.DurationUnit) string {
	switch u {
	case models.UnitMinutes:
		return "min"
	case models.UnitHours:
		return "hr"
	case models.UnitDays:
		return "days"
	case models.UnitWeeks:
		return "wks"
	default:
		return string(u)
	}
}
