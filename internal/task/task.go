package task

import (
	"strings"
	"time"
)

// Uncategorized is the display label for tasks without a category.
const Uncategorized = "Uncategorized"

// Task is a single record as the server returns it. The id is assigned by the
// server on creation and never changes. Due dates travel as strings; some
// records carry a time suffix that is truncated for day-level comparisons.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
	Completed   bool   `json:"completed"`
	IsDeleted   bool   `json:"isDeleted"`
}

// Draft holds the fields a user supplies when creating a task.
type Draft struct {
	Title       string `json:"title"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
}

// Patch is a partial update. Nil fields are left untouched by the server and
// by Apply.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Tags        *string `json:"tags,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	IsDeleted   *bool   `json:"isDeleted,omitempty"`
}

// Apply merges the non-nil patch fields into t.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.IsDeleted != nil {
		t.IsDeleted = *p.IsDeleted
	}
}

var dueLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DueTime parses the task's due date. The second return is false when the
// field is empty or does not match any layout the API is known to emit.
func (t Task) DueTime() (time.Time, bool) {
	s := strings.TrimSpace(t.DueDate)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CategoryLabel returns the task's category, or Uncategorized when it is
// empty.
func CategoryLabel(t Task) string {
	if strings.TrimSpace(t.Category) == "" {
		return Uncategorized
	}
	return t.Category
}
