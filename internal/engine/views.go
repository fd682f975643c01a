package engine

import (
	"math"
	"time"
)

// FilteredTasks returns the tasks visible under filter, in collection order.
// It never modifies tasks and always returns a fresh slice.
func FilteredTasks(tasks []Task, filter Filter, now time.Time) []Task {
	keep := func(Task) bool { return true }
	switch filter {
	case FilterToday:
		today := dateOf(now)
		keep = func(t Task) bool { return dateOf(t.CreatedAt) == today }
	case FilterImportant:
		keep = func(t Task) bool { return t.Priority == PriorityHigh }
	case FilterPlanned:
		keep = func(t Task) bool { return t.DueDate != nil }
	case FilterAssigned:
		keep = func(t Task) bool { return t.AssignedTo != nil }
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TodayCount is the number of tasks created on now's date.
func TodayCount(tasks []Task, now time.Time) int {
	today := dateOf(now)
	n := 0
	for _, t := range tasks {
		if dateOf(t.CreatedAt) == today {
			n++
		}
	}
	return n
}

func CompletionStats(tasks []Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

// Percentage is the rounded completion percentage; 0 for an empty collection.
func (s Stats) Percentage() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
}

// dateOf is the UTC calendar date (YYYY-MM-DD) of t, matching the date portion
// of its ISO-8601 form.
func dateOf(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
