package task

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	// Wednesday; the Sunday-start week runs 2024-03-10 .. 2024-03-17.
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	day := func(offset int) string {
		return StartOfDay(now).AddDate(0, 0, offset).Format("2006-01-02")
	}

	tasks := []Task{
		// two due today, completed or not
		{ID: 1, DueDate: day(0), Completed: true, Category: "Work"},
		{ID: 2, DueDate: day(0), Category: "Work"},
		// two more inside the week
		{ID: 3, DueDate: day(1), Category: "Study"},
		{ID: 4, DueDate: day(3), Completed: true},
		// outside the week
		{ID: 5, DueDate: day(10), Completed: true, Category: "Life"},
		{ID: 6, DueDate: day(14)},
		{ID: 7, DueDate: day(-20)},
		// no usable due date
		{ID: 8, DueDate: ""},
		{ID: 9, DueDate: "garbage"},
		{ID: 10, DueDate: day(30), Category: "Work"},
		// trashed tasks count only toward TrashCount
		{ID: 11, DueDate: day(0), IsDeleted: true, Category: "Work"},
		{ID: 12, DueDate: day(1), IsDeleted: true},
	}

	sum := Summarize(tasks, now)

	if sum.Total != 10 {
		t.Errorf("Total = %d, want 10", sum.Total)
	}
	if sum.Completed != 3 {
		t.Errorf("Completed = %d, want 3", sum.Completed)
	}
	if sum.Pending != 7 {
		t.Errorf("Pending = %d, want 7", sum.Pending)
	}
	if sum.TrashCount != 2 {
		t.Errorf("TrashCount = %d, want 2", sum.TrashCount)
	}
	if sum.TodayCount != 2 {
		t.Errorf("TodayCount = %d, want 2", sum.TodayCount)
	}
	if sum.WeekCount != 4 {
		t.Errorf("WeekCount = %d, want 4", sum.WeekCount)
	}

	if sum.Categories["Work"] != 3 {
		t.Errorf("Categories[Work] = %d, want 3", sum.Categories["Work"])
	}
	if sum.Categories["Study"] != 1 {
		t.Errorf("Categories[Study] = %d, want 1", sum.Categories["Study"])
	}
	if sum.Categories["Life"] != 1 {
		t.Errorf("Categories[Life] = %d, want 1", sum.Categories["Life"])
	}
	if sum.Categories[Uncategorized] != 5 {
		t.Errorf("Categories[%s] = %d, want 5", Uncategorized, sum.Categories[Uncategorized])
	}

	if len(sum.Upcoming) != 5 {
		t.Fatalf("Upcoming has %d tasks, want 5", len(sum.Upcoming))
	}
	// sorted ascending, overdue first, trashed excluded
	wantOrder := []int{7, 1, 2, 3, 4}
	for i, id := range wantOrder {
		if sum.Upcoming[i].ID != id {
			t.Errorf("Upcoming[%d] = id %d, want %d", i, sum.Upcoming[i].ID, id)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil, time.Now())
	if sum.Total != 0 || sum.Pending != 0 || sum.TrashCount != 0 {
		t.Errorf("empty summary has nonzero counts: %+v", sum)
	}
	if len(sum.Upcoming) != 0 {
		t.Errorf("empty summary has upcoming tasks")
	}
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC), // Wednesday
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),   // previous Sunday
		},
		{
			"sunday stays put",
			time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"saturday reaches back six days",
			time.Date(2024, 3, 16, 1, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfWeek(tc.in); !got.Equal(tc.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
