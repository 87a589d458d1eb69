package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/task"
)

type taskMode int

const (
	taskModeList taskMode = iota
	taskModeDraft
	taskModeConfirmDelete
)

// taskPane owns the active-task collection for its view session. Rows carry
// a purely local expanded flag that resets on every reload.
type taskPane struct {
	items      []task.Task
	cursor     int
	expanded   map[int]bool
	mode       taskMode
	draft      draftState
	input      textinput.Model
	pendingDel *task.Task
	seq        int
	loading    bool
}

func newTaskPane() taskPane {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	return taskPane{
		expanded: make(map[int]bool),
		input:    ti,
	}
}

const (
	fieldTitle = iota
	fieldDue
	fieldCategory
	fieldTags
	fieldDescription
	fieldCount
)

func draftLabels() []string {
	return []string{"title", "due date (YYYY-MM-DD)", "category", "tags (comma separated)", "description"}
}

// draftState walks the user through the task fields one input at a time,
// both for new tasks and edits of an existing row.
type draftState struct {
	taskID int // zero while creating
	values [fieldCount]string
	index  int
}

func (ds draftState) label() string {
	return draftLabels()[ds.index]
}

func (ds draftState) value() string {
	return ds.values[ds.index]
}

func (ds *draftState) setValue(v string) {
	ds.values[ds.index] = v
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.tasks.mode {
	case taskModeDraft:
		return m.updateTaskDraft(msg)
	case taskModeConfirmDelete:
		return m.updateTaskDeleteConfirm(msg.String())
	}
	return m.updateTaskList(msg.String())
}

func (m Model) updateTaskList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.PaneNext:
		return m.switchPane(m.nextPane())
	case m.cfg.Keys.Logout:
		return m.logout()
	case m.cfg.Keys.Refresh:
		return m.switchPane(paneTasks)
	case m.cfg.Keys.Down, "down":
		if len(m.tasks.items) == 0 {
			return m, nil
		}
		m.tasks.cursor = clampCursor(m.tasks.cursor+1, len(m.tasks.items))
	case m.cfg.Keys.Up, "up":
		if m.tasks.cursor > 0 {
			m.tasks.cursor = clampCursor(m.tasks.cursor-1, len(m.tasks.items))
		}
	case m.cfg.Keys.Add:
		m.tasks.draft = draftState{}
		m.tasks.mode = taskModeDraft
		m.tasks.input.SetValue("")
		m.tasks.input.Placeholder = m.tasks.draft.label()
		m.tasks.input.Focus()
		m.status = "New task: enter to advance, esc to cancel"
	case m.cfg.Keys.Edit:
		if len(m.tasks.items) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := m.tasks.items[m.tasks.cursor]
		m.tasks.draft = draftState{
			taskID: t.ID,
			values: [fieldCount]string{t.Title, t.DueDate, t.Category, t.Tags, t.Description},
		}
		m.tasks.mode = taskModeDraft
		m.tasks.input.SetValue(m.tasks.draft.value())
		m.tasks.input.Placeholder = m.tasks.draft.label()
		m.tasks.input.Focus()
		m.status = "Edit task: enter to advance, esc to cancel"
	case m.cfg.Keys.Toggle:
		if len(m.tasks.items) == 0 {
			return m, nil
		}
		t := m.tasks.items[m.tasks.cursor]
		completed := !t.Completed
		m.status = "Saving..."
		return m, updateTaskCmd(m.client, t.ID, task.Patch{Completed: &completed})
	case m.cfg.Keys.Expand:
		if len(m.tasks.items) == 0 {
			return m, nil
		}
		id := m.tasks.items[m.tasks.cursor].ID
		m.tasks.expanded[id] = !m.tasks.expanded[id]
	case m.cfg.Keys.Delete:
		if len(m.tasks.items) == 0 {
			return m, nil
		}
		t := m.tasks.items[m.tasks.cursor]
		m.tasks.mode = taskModeConfirmDelete
		m.tasks.pendingDel = &t
		m.status = fmt.Sprintf("Move %q to trash? y/n", t.Title)
	}
	return m, nil
}

func (m Model) updateTaskDraft(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel, "esc":
		m.tasks.mode = taskModeList
		m.tasks.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.tasks.draft.setValue(m.tasks.input.Value())
		m.tasks.draft.index = wrapIndex(m.tasks.draft.index+1, fieldCount)
		m.tasks.input.SetValue(m.tasks.draft.value())
		m.tasks.input.Placeholder = m.tasks.draft.label()
		return m, nil
	case "shift+tab", "up":
		m.tasks.draft.setValue(m.tasks.input.Value())
		m.tasks.draft.index = wrapIndex(m.tasks.draft.index-1, fieldCount)
		m.tasks.input.SetValue(m.tasks.draft.value())
		m.tasks.input.Placeholder = m.tasks.draft.label()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.tasks.draft.setValue(m.tasks.input.Value())
		if m.tasks.draft.index < fieldCount-1 {
			m.tasks.draft.index++
			m.tasks.input.SetValue(m.tasks.draft.value())
			m.tasks.input.Placeholder = m.tasks.draft.label()
			return m, nil
		}
		return m.submitTaskDraft()
	default:
		var cmd tea.Cmd
		m.tasks.input, cmd = m.tasks.input.Update(msg)
		return m, cmd
	}
}

// submitTaskDraft validates locally and only then talks to the server. An
// empty title or due date declines the submit without a network call.
func (m Model) submitTaskDraft() (tea.Model, tea.Cmd) {
	ds := m.tasks.draft
	title := strings.TrimSpace(ds.values[fieldTitle])
	due := strings.TrimSpace(ds.values[fieldDue])
	if title == "" || due == "" {
		m.status = "Title and due date are required"
		m.tasks.draft.index = fieldTitle
		m.tasks.input.SetValue(ds.values[fieldTitle])
		m.tasks.input.Placeholder = m.tasks.draft.label()
		return m, nil
	}

	m.tasks.mode = taskModeList
	m.tasks.input.Blur()

	if ds.taskID == 0 {
		m.status = "Adding task..."
		return m, createTaskCmd(m.client, task.Draft{
			Title:       title,
			DueDate:     due,
			Category:    strings.TrimSpace(ds.values[fieldCategory]),
			Tags:        strings.TrimSpace(ds.values[fieldTags]),
			Description: ds.values[fieldDescription],
		})
	}

	patch := task.Patch{
		Title:       &title,
		DueDate:     &due,
		Category:    &ds.values[fieldCategory],
		Tags:        &ds.values[fieldTags],
		Description: &ds.values[fieldDescription],
	}
	m.status = "Saving..."
	return m, updateTaskCmd(m.client, ds.taskID, patch)
}

func (m Model) updateTaskDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.tasks.mode = taskModeList
		m.tasks.pendingDel = nil
		m.status = "Delete cancelled"
		return m, nil
	case "y", "Y":
		if m.tasks.pendingDel == nil {
			m.tasks.mode = taskModeList
			m.status = "Nothing to delete"
			return m, nil
		}
		id := m.tasks.pendingDel.ID
		m.tasks.mode = taskModeList
		m.tasks.pendingDel = nil
		m.status = "Deleting..."
		return m, deleteTaskCmd(m.client, id)
	default:
		return m, nil
	}
}

func (m Model) applyTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.tasks.seq {
		// reply from a superseded load
		return m, nil
	}
	m.tasks.loading = false
	if msg.err != nil {
		m.status = errorStatus("Load failed", msg.err)
		return m, nil
	}
	active, _ := task.Partition(msg.tasks)
	m.tasks.items = active
	m.tasks.expanded = make(map[int]bool)
	m.tasks.cursor = clampCursor(m.tasks.cursor, len(active))
	m.status = fmt.Sprintf("%d tasks", len(active))
	return m, nil
}

func (m Model) applyTaskCreated(msg taskCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = errorStatus("Add failed", msg.err)
		return m, nil
	}
	m.tasks.items = append(m.tasks.items, msg.created)
	m.tasks.cursor = clampCursor(len(m.tasks.items)-1, len(m.tasks.items))
	m.status = "Added task"
	return m, nil
}

func (m Model) applyTaskUpdated(msg taskUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = errorStatus("Update failed", msg.err)
		return m, nil
	}
	for i := range m.tasks.items {
		if m.tasks.items[i].ID == msg.id {
			msg.patch.Apply(&m.tasks.items[i])
			break
		}
	}
	m.status = "Saved"
	return m, nil
}

func (m Model) applyTaskDeleted(msg taskDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = errorStatus("Delete failed", msg.err)
		return m, nil
	}
	m.tasks.items = removeByID(m.tasks.items, msg.id)
	delete(m.tasks.expanded, msg.id)
	m.tasks.cursor = clampCursor(m.tasks.cursor, len(m.tasks.items))
	m.status = "Moved to trash"
	return m, nil
}

func (m Model) renderTasks() string {
	var b strings.Builder

	if m.tasks.mode == taskModeDraft {
		b.WriteString(m.renderTaskDraft())
		return b.String()
	}

	if m.tasks.loading && len(m.tasks.items) == 0 {
		return "Loading..."
	}
	if len(m.tasks.items) == 0 {
		return fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)
	}

	now := time.Now()
	for i, t := range m.tasks.items {
		cursor := " "
		if m.tasks.cursor == i && m.tasks.mode == taskModeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}

		due := t.DueDate
		if dueTime, ok := t.DueTime(); ok {
			due = urgencyStyle(task.ClassifyUrgency(dueTime, now)).Render(dueTime.Format("2006-01-02"))
		}

		b.WriteString(fmt.Sprintf("%s %s %s  %s", cursor, checkbox, title, due))

		extras := make([]string, 0, 2)
		if task.CategoryLabel(t) != task.Uncategorized {
			extras = append(extras, t.Category)
		}
		if strings.TrimSpace(t.Tags) != "" {
			extras = append(extras, "#"+t.Tags)
		}
		if len(extras) > 0 {
			b.WriteString(faintStyle.Render("  [" + strings.Join(extras, " | ") + "]"))
		}
		b.WriteString("\n")

		if m.tasks.expanded[t.ID] {
			desc := t.Description
			if strings.TrimSpace(desc) == "" {
				desc = "(no description)"
			}
			for _, line := range strings.Split(desc, "\n") {
				b.WriteString(faintStyle.Render("      " + line))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m Model) renderTaskDraft() string {
	var b strings.Builder
	if m.tasks.draft.taskID == 0 {
		b.WriteString("New task\n\n")
	} else {
		b.WriteString(fmt.Sprintf("Edit task #%d\n\n", m.tasks.draft.taskID))
	}

	labels := draftLabels()
	for i, name := range labels {
		prefix := " "
		if i == m.tasks.draft.index {
			prefix = ">"
		}
		val := m.tasks.draft.values[i]
		if i == m.tasks.draft.index {
			val = m.tasks.input.Value()
		}
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-24s : %s\n", prefix, name, val))
	}
	b.WriteString("\n")
	b.WriteString(m.tasks.input.View())
	return b.String()
}

func removeByID(items []task.Task, id int) []task.Task {
	kept := items[:0]
	for _, t := range items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
