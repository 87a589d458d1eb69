package task

import (
	"sort"
	"time"
)

// Urgency buckets a task by how close its due date is.
type Urgency int

const (
	Urgent  Urgency = iota // less than 24h away, or overdue
	Warning                // 24h to 72h away
	Normal                 // 72h or more away
)

func (u Urgency) String() string {
	switch u {
	case Urgent:
		return "urgent"
	case Warning:
		return "warning"
	default:
		return "normal"
	}
}

// ClassifyUrgency buckets a due date relative to now. Overdue counts as
// Urgent. Boundaries are half-open: exactly 24h is Warning, exactly 72h is
// Normal.
func ClassifyUrgency(due, now time.Time) Urgency {
	diff := due.Sub(now)
	switch {
	case diff < 24*time.Hour:
		return Urgent
	case diff < 72*time.Hour:
		return Warning
	default:
		return Normal
	}
}

// Partition splits tasks strictly on the soft-delete flag.
func Partition(tasks []Task) (active, trashed []Task) {
	for _, t := range tasks {
		if t.IsDeleted {
			trashed = append(trashed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, trashed
}

// GroupByCategory counts non-deleted tasks per category label.
func GroupByCategory(tasks []Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.IsDeleted {
			continue
		}
		counts[CategoryLabel(t)]++
	}
	return counts
}

// SortByDueDate returns a copy sorted by due date ascending. The sort is
// stable, so equal due dates keep their original relative order. Tasks whose
// due date does not parse sort after everything else.
func SortByDueDate(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, iok := sorted[i].DueTime()
		dj, jok := sorted[j].DueTime()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return di.Before(dj)
	})
	return sorted
}

// Upcoming returns the first limit active tasks by due date. A limit of zero
// or less means the default of five.
func Upcoming(tasks []Task, limit int) []Task {
	if limit <= 0 {
		limit = 5
	}
	active, _ := Partition(tasks)
	sorted := SortByDueDate(active)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// DueWithin reports whether the task's due date falls in [start, end). Tasks
// without a parsable due date are never in range.
func DueWithin(t Task, start, end time.Time) bool {
	due, ok := t.DueTime()
	if !ok {
		return false
	}
	return !due.Before(start) && due.Before(end)
}
