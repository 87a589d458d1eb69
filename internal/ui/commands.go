package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/task"
)

// credentialHolder hands the current bearer token to the API client. Commands
// run in their own goroutines, so reads and writes are locked.
type credentialHolder struct {
	mu    sync.Mutex
	token string
}

func (c *credentialHolder) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *credentialHolder) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Messages produced by API commands. Load results carry the sequence number
// of the request that produced them so replies from a superseded load can be
// dropped instead of overwriting newer state.

type tasksLoadedMsg struct {
	seq   int
	tasks []task.Task
	err   error
}

type taskCreatedMsg struct {
	created task.Task
	err     error
}

type taskUpdatedMsg struct {
	id    int
	patch task.Patch
	err   error
}

type taskDeletedMsg struct {
	id  int
	err error
}

type trashLoadedMsg struct {
	seq   int
	tasks []task.Task
	err   error
}

type taskRestoredMsg struct {
	id  int
	err error
}

type taskPurgedMsg struct {
	id  int
	err error
}

type summaryLoadedMsg struct {
	seq int
	sum task.Summary
	err error
}

type loginMsg struct {
	creds api.Credentials
	err   error
}

type registerMsg struct {
	err error
}

func loadTasksCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		return tasksLoadedMsg{seq: seq, tasks: tasks, err: err}
	}
}

func createTaskCmd(client *api.Client, draft task.Draft) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateTask(context.Background(), draft)
		return taskCreatedMsg{created: created, err: err}
	}
}

func updateTaskCmd(client *api.Client, id int, patch task.Patch) tea.Cmd {
	return func() tea.Msg {
		err := client.UpdateTask(context.Background(), id, patch)
		return taskUpdatedMsg{id: id, patch: patch, err: err}
	}
}

func deleteTaskCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.SoftDeleteTask(context.Background(), id)
		return taskDeletedMsg{id: id, err: err}
	}
}

func loadTrashCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		return trashLoadedMsg{seq: seq, tasks: tasks, err: err}
	}
}

func restoreTaskCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		restored := false
		patch := task.Patch{IsDeleted: &restored}
		err := client.UpdateTask(context.Background(), id, patch)
		return taskRestoredMsg{id: id, err: err}
	}
}

func purgeTaskCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.PurgeTask(context.Background(), id)
		return taskPurgedMsg{id: id, err: err}
	}
}

func loadSummaryCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		if err != nil {
			return summaryLoadedMsg{seq: seq, err: err}
		}
		return summaryLoadedMsg{seq: seq, sum: task.Summarize(tasks, time.Now())}
	}
}

func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		creds, err := client.Login(context.Background(), username, password)
		return loginMsg{creds: creds, err: err}
	}
}

func registerCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := client.Register(context.Background(), username, password)
		return registerMsg{err: err}
	}
}
