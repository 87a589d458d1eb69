package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/task"
)

// trashPane owns the deleted-task collection. Restore and purge both drop the
// row locally only after the server confirms; a restored task reappears in
// the task pane on its next reload.
type trashPane struct {
	items        []task.Task
	cursor       int
	pendingPurge *task.Task
	seq          int
	loading      bool
}

func newTrashPane() trashPane {
	return trashPane{}
}

func (m Model) updateTrash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trash.pendingPurge != nil {
		return m.updatePurgeConfirm(msg.String())
	}

	switch msg.String() {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.PaneNext:
		return m.switchPane(m.nextPane())
	case m.cfg.Keys.Logout:
		return m.logout()
	case m.cfg.Keys.Refresh:
		return m.switchPane(paneTrash)
	case m.cfg.Keys.Down, "down":
		if len(m.trash.items) == 0 {
			return m, nil
		}
		m.trash.cursor = clampCursor(m.trash.cursor+1, len(m.trash.items))
	case m.cfg.Keys.Up, "up":
		if m.trash.cursor > 0 {
			m.trash.cursor = clampCursor(m.trash.cursor-1, len(m.trash.items))
		}
	case m.cfg.Keys.Restore:
		if len(m.trash.items) == 0 {
			return m, nil
		}
		t := m.trash.items[m.trash.cursor]
		m.status = "Restoring..."
		return m, restoreTaskCmd(m.client, t.ID)
	case m.cfg.Keys.Purge:
		if len(m.trash.items) == 0 {
			return m, nil
		}
		t := m.trash.items[m.trash.cursor]
		m.trash.pendingPurge = &t
		m.status = fmt.Sprintf("Permanently delete %q? This cannot be undone. y/n", t.Title)
	}
	return m, nil
}

func (m Model) updatePurgeConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.trash.pendingPurge = nil
		m.status = "Purge cancelled"
		return m, nil
	case "y", "Y":
		id := m.trash.pendingPurge.ID
		m.trash.pendingPurge = nil
		m.status = "Purging..."
		return m, purgeTaskCmd(m.client, id)
	default:
		return m, nil
	}
}

func (m Model) applyTrashLoaded(msg trashLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.trash.seq {
		return m, nil
	}
	m.trash.loading = false
	if msg.err != nil {
		m.status = errorStatus("Load failed", msg.err)
		return m, nil
	}
	_, trashed := task.Partition(msg.tasks)
	m.trash.items = trashed
	m.trash.cursor = clampCursor(m.trash.cursor, len(trashed))
	m.status = fmt.Sprintf("%d tasks in trash", len(trashed))
	return m, nil
}

func (m Model) applyTaskRestored(msg taskRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = errorStatus("Restore failed", msg.err)
		return m, nil
	}
	m.trash.items = removeByID(m.trash.items, msg.id)
	m.trash.cursor = clampCursor(m.trash.cursor, len(m.trash.items))
	m.status = "Task restored"
	return m, nil
}

func (m Model) applyTaskPurged(msg taskPurgedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = errorStatus("Purge failed", msg.err)
		return m, nil
	}
	m.trash.items = removeByID(m.trash.items, msg.id)
	m.trash.cursor = clampCursor(m.trash.cursor, len(m.trash.items))
	m.status = "Task permanently deleted"
	return m, nil
}

func (m Model) renderTrash() string {
	if m.trash.loading && len(m.trash.items) == 0 {
		return "Loading..."
	}
	if len(m.trash.items) == 0 {
		return "Trash is empty."
	}

	var b strings.Builder
	for i, t := range m.trash.items {
		cursor := " "
		if m.trash.cursor == i {
			cursor = ">"
		}
		due := ""
		if dueTime, ok := t.DueTime(); ok {
			due = "  due " + dueTime.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("%s %s%s\n", cursor, t.Title, faintStyle.Render(due)))
	}
	return b.String()
}
