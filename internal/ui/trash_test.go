package ui

import (
	"errors"
	"testing"

	"taskdeck/internal/task"
)

func newTrashTestModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m.pane = paneTrash
	return m
}

func TestTrashLoadKeepsOnlyDeletedTasks(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.seq = 1

	updated, _ := m.applyTrashLoaded(trashLoadedMsg{seq: 1, tasks: []task.Task{
		{ID: 1, Title: "active"},
		{ID: 7, Title: "binned", IsDeleted: true},
	}})
	m = asModel(t, updated)

	if len(m.trash.items) != 1 || m.trash.items[0].ID != 7 {
		t.Fatalf("trash collection wrong: %+v", m.trash.items)
	}
	if !m.trash.items[0].IsDeleted {
		t.Errorf("trash row lost its deleted flag")
	}
}

func TestTrashStaleLoadIsDropped(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.seq = 3
	m.trash.items = []task.Task{{ID: 7, IsDeleted: true}}

	updated, _ := m.applyTrashLoaded(trashLoadedMsg{seq: 2, tasks: nil})
	m = asModel(t, updated)

	if len(m.trash.items) != 1 {
		t.Errorf("stale trash response was applied")
	}
}

func TestRestoreRemovesTaskFromTrash(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.items = []task.Task{
		{ID: 7, IsDeleted: true},
		{ID: 8, IsDeleted: true},
	}

	updated, _ := m.applyTaskRestored(taskRestoredMsg{id: 7})
	m = asModel(t, updated)

	if len(m.trash.items) != 1 || m.trash.items[0].ID != 8 {
		t.Errorf("restore did not remove the task: %+v", m.trash.items)
	}
}

func TestRestoreFailureLeavesTrashUnchanged(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.items = []task.Task{{ID: 7, IsDeleted: true}}

	updated, _ := m.applyTaskRestored(taskRestoredMsg{id: 7, err: errors.New("boom")})
	m = asModel(t, updated)

	if len(m.trash.items) != 1 {
		t.Errorf("failed restore removed the task anyway")
	}
	if m.status == "" {
		t.Errorf("failure not surfaced in status")
	}
}

func TestPurgeRemovesTaskFromTrash(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.items = []task.Task{{ID: 7, IsDeleted: true}}

	updated, _ := m.applyTaskPurged(taskPurgedMsg{id: 7})
	m = asModel(t, updated)

	if len(m.trash.items) != 0 {
		t.Errorf("purge did not remove the task: %+v", m.trash.items)
	}
}

func TestPurgeFailureLeavesTrashUnchanged(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.items = []task.Task{{ID: 7, IsDeleted: true}}

	updated, _ := m.applyTaskPurged(taskPurgedMsg{id: 7, err: errors.New("boom")})
	m = asModel(t, updated)

	if len(m.trash.items) != 1 {
		t.Errorf("failed purge removed the task anyway")
	}
}

func TestPurgeRequiresConfirmation(t *testing.T) {
	m := newTrashTestModel(t)
	m.trash.items = []task.Task{{ID: 7, Title: "binned", IsDeleted: true}}

	// purge key arms the confirm prompt, nothing is sent yet
	updated, cmd := m.updateTrash(keyMsg("x"))
	m = asModel(t, updated)
	if cmd != nil {
		t.Fatalf("purge fired without confirmation")
	}
	if m.trash.pendingPurge == nil {
		t.Fatalf("confirm prompt not armed")
	}

	// declining clears the prompt and keeps the row
	updated, cmd = m.updateTrash(keyMsg("n"))
	m = asModel(t, updated)
	if cmd != nil || m.trash.pendingPurge != nil {
		t.Errorf("decline did not cancel the purge")
	}
	if len(m.trash.items) != 1 {
		t.Errorf("decline removed the row")
	}

	// confirming issues the request but still does not touch the
	// collection until the server answers
	updated, _ = m.updateTrash(keyMsg("x"))
	m = asModel(t, updated)
	updated, cmd = m.updateTrash(keyMsg("y"))
	m = asModel(t, updated)
	if cmd == nil {
		t.Errorf("confirmed purge produced no command")
	}
	if len(m.trash.items) != 1 {
		t.Errorf("row removed before the server confirmed")
	}
}
