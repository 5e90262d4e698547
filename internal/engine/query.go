package engine

import (
	"math"
	"sort"

	"github.com/taskflow-app/taskflow/internal/models"
)

// SelectTasks returns the tasks matching the requested type, preserving
// the relative order of the input.
func SelectTasks(tasks []models.Task, typ models.TaskType) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// ComputeProgress returns the completion percentage of the collection,
// rounded to the nearest integer. An empty collection is 0, not NaN.
func ComputeProgress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// SortForDisplay returns a new slice in display order:
//
//  1. incomplete tasks before completed tasks
//  2. tasks with a due date before tasks without one
//  3. both due: ascending due date (soonest first)
//  4. neither due: descending creation time (newest first)
//
// The sort is stable, so tasks with equal keys keep their input order and
// sorting an already-sorted list is a no-op.
func SortForDisplay(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			return *a.DueDate < *b.DueDate
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		default:
			return a.CreatedAt > b.CreatedAt
		}
	})

	return out
}

// CountByType returns the number of daily and long-term tasks.
func CountByType(tasks []models.Task) (daily, longTerm int) {
	for _, t := range tasks {
		switch t.Type {
		case models.TaskTypeDaily:
			daily++
		case models.TaskTypeLongTerm:
			longTerm++
		}
	}
	return daily, longTerm
}

// CountCompleted returns the number of completed tasks.
func CountCompleted(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
