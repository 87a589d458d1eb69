package task

import "time"

// Summary is the dashboard snapshot. All counts exclude trashed tasks except
// TrashCount itself.
type Summary struct {
	Total      int
	Completed  int
	Pending    int
	TrashCount int
	TodayCount int
	WeekCount  int
	Categories map[string]int
	Upcoming   []Task
}

// Summarize recomputes the dashboard from a full fetch. It is a pure function
// of the snapshot: nothing is cached or incrementally maintained.
func Summarize(tasks []Task, now time.Time) Summary {
	active, trashed := Partition(tasks)

	sum := Summary{
		Total:      len(active),
		TrashCount: len(trashed),
		Categories: GroupByCategory(active),
		Upcoming:   Upcoming(active, 5),
	}
	for _, t := range active {
		if t.Completed {
			sum.Completed++
		}
	}
	sum.Pending = sum.Total - sum.Completed

	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, t := range active {
		if DueWithin(t, today, tomorrow) {
			sum.TodayCount++
		}
		if DueWithin(t, weekStart, weekEnd) {
			sum.WeekCount++
		}
	}
	return sum
}

// StartOfDay truncates to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent Sunday midnight at or before t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}
