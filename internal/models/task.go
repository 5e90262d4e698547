package models

import (
	"time"
)

// TaskType distinguishes short daily tasks from long-term projects
type TaskType string

const (
	TaskTypeDaily    TaskType = "DAILY"
	TaskTypeLongTerm TaskType = "LONG_TERM"
)

// Valid reports whether the value is a known task type
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeDaily, TaskTypeLongTerm:
		return true
	default:
		return false
	}
}

// DurationUnit is the unit of a task's estimated duration
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitHours   DurationUnit = "hours"
	UnitDays    DurationUnit = "days"
	UnitWeeks   DurationUnit = "weeks"
)

// Valid reports whether the value is a known duration unit
func (u DurationUnit) Valid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitDays, UnitWeeks:
		return true
	default:
		return false
	}
}

// Priority represents a task's priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the value is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Duration is a task's estimated duration. It is always attached to a task,
// never stored standalone.
type Duration struct {
	Value float64      `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

// Subtask is a single checklist entry. Slice order is display order.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is the central entity. Timestamps are epoch milliseconds, matching
// the wire and storage format the frontend persists.
//
// DueDate, when set, always encodes 23:59:59.999 local time of the chosen
// calendar day, so a task never goes overdue before its due day has fully
// elapsed.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        TaskType  `json:"type"`
	Completed   bool      `json:"completed"`
	CreatedAt   int64     `json:"createdAt"`
	Duration    Duration  `json:"duration"`
	Priority    Priority  `json:"priority"`
	DueDate     *int64    `json:"dueDate,omitempty"`
	Subtasks    []Subtask `json:"subtasks,omitempty"`
}

// EndOfDay returns the epoch-millisecond timestamp for 23:59:59.999 of the
// given calendar day in loc.
func EndOfDay(year int, month time.Month, day int, loc *time.Location) int64 {
	t := time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), loc)
	return t.UnixMilli()
}

// NormalizeDueDate snaps an arbitrary due timestamp to 23:59:59.999 of its
// calendar day in loc.
func NormalizeDueDate(ms int64, loc *time.Location) int64 {
	t := time.UnixMilli(ms).In(loc)
	return EndOfDay(t.Year(), t.Month(), t.Day(), loc)
}

// NowMilli returns the current time as epoch milliseconds.
func NowMilli() int64 {
	return time.Now().UnixMilli()
}
