package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
)

type pane int

const (
	paneLogin pane = iota
	paneTasks
	paneTrash
	paneDashboard
)

// Model is the root program state. Each pane owns its own collection
// snapshot; switching panes re-fetches, so cross-pane consistency is
// eventual, never live.
type Model struct {
	client *api.Client
	store  *session.Store
	cfg    config.Config
	cred   *credentialHolder

	pane   pane
	user   string
	status string
	width  int

	tasks taskPane
	trash trashPane
	dash  dashPane
	auth  authPane
}

func Run(cfg config.Config, store *session.Store) error {
	m, err := NewModel(cfg, store)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func NewModel(cfg config.Config, store *session.Store) (Model, error) {
	cred := &credentialHolder{}
	client := api.NewClient(cfg.ServerURL, cfg.Timeout(), cred.Token)

	m := Model{
		client: client,
		store:  store,
		cfg:    cfg,
		cred:   cred,
		pane:   paneLogin,
		status: "Sign in to continue",
		tasks:  newTaskPane(),
		trash:  newTrashPane(),
		auth:   newAuthPane(),
	}

	if store != nil {
		sess, ok, err := store.Current()
		if err != nil {
			return Model{}, err
		}
		if ok {
			cred.Set(sess.Token)
			m.user = displayName(sess)
			m.pane = paneTasks
			m.tasks.seq = 1
			m.tasks.loading = true
			m.status = "Loading tasks..."
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	if m.pane == paneTasks {
		return loadTasksCmd(m.client, m.tasks.seq)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tasks.input.Width = msg.Width - 10
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.pane {
		case paneLogin:
			return m.updateAuth(msg)
		case paneTasks:
			return m.updateTasks(msg)
		case paneTrash:
			return m.updateTrash(msg)
		default:
			return m.updateDashboard(msg)
		}
	case tasksLoadedMsg:
		return m.applyTasksLoaded(msg)
	case taskCreatedMsg:
		return m.applyTaskCreated(msg)
	case taskUpdatedMsg:
		return m.applyTaskUpdated(msg)
	case taskDeletedMsg:
		return m.applyTaskDeleted(msg)
	case trashLoadedMsg:
		return m.applyTrashLoaded(msg)
	case taskRestoredMsg:
		return m.applyTaskRestored(msg)
	case taskPurgedMsg:
		return m.applyTaskPurged(msg)
	case summaryLoadedMsg:
		return m.applySummaryLoaded(msg)
	case loginMsg:
		return m.applyLogin(msg)
	case registerMsg:
		return m.applyRegister(msg)
	}
	return m, nil
}

// switchPane activates a pane and kicks off its wholesale re-fetch.
func (m Model) switchPane(p pane) (Model, tea.Cmd) {
	m.pane = p
	switch p {
	case paneTasks:
		m.tasks.seq++
		m.tasks.loading = true
		m.status = "Loading tasks..."
		return m, loadTasksCmd(m.client, m.tasks.seq)
	case paneTrash:
		m.trash.seq++
		m.trash.loading = true
		m.status = "Loading trash..."
		return m, loadTrashCmd(m.client, m.trash.seq)
	case paneDashboard:
		m.dash.seq++
		m.dash.loading = true
		m.status = "Loading dashboard..."
		return m, loadSummaryCmd(m.client, m.dash.seq)
	default:
		return m, nil
	}
}

func (m Model) nextPane() pane {
	switch m.pane {
	case paneTasks:
		return paneTrash
	case paneTrash:
		return paneDashboard
	default:
		return paneTasks
	}
}

func (m Model) logout() (Model, tea.Cmd) {
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.status = fmt.Sprintf("sign out failed: %v", err)
			return m, nil
		}
	}
	m.cred.Set("")
	m.user = ""
	m.pane = paneLogin
	m.tasks = newTaskPane()
	m.trash = newTrashPane()
	m.dash = dashPane{}
	m.auth = newAuthPane()
	m.status = "Signed out"
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Taskdeck"))
	if m.pane != paneLogin {
		b.WriteString("  ")
		b.WriteString(m.renderTabs())
		if m.user != "" {
			b.WriteString(faintStyle.Render("  " + m.user))
		}
	}
	b.WriteString("\n\n")

	switch m.pane {
	case paneLogin:
		b.WriteString(m.renderAuth())
	case paneTasks:
		b.WriteString(m.renderTasks())
	case paneTrash:
		b.WriteString(m.renderTrash())
	default:
		b.WriteString(m.renderDashboard())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"Tasks", "Trash", "Dashboard"}
	panes := []pane{paneTasks, paneTrash, paneDashboard}
	parts := make([]string, 0, len(names))
	for i, name := range names {
		if panes[i] == m.pane {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return strings.Join(parts, " | ")
}

func (m Model) helpLine() string {
	k := m.cfg.Keys
	switch m.pane {
	case paneLogin:
		return "enter submit • tab switch field • ctrl+r login/register • ctrl+c quit"
	case paneTasks:
		return fmt.Sprintf("%s/%s move • %s add • %s edit • %s done • %s expand • %s delete • %s refresh • %s pane • %s logout • %s quit",
			k.Up, k.Down, k.Add, k.Edit, keyName(k.Toggle), k.Expand, k.Delete, k.Refresh, k.PaneNext, k.Logout, k.Quit)
	case paneTrash:
		return fmt.Sprintf("%s/%s move • %s restore • %s purge • %s refresh • %s pane • %s logout • %s quit",
			k.Up, k.Down, k.Restore, k.Purge, k.Refresh, k.PaneNext, k.Logout, k.Quit)
	default:
		return fmt.Sprintf("%s refresh • %s pane • %s logout • %s quit",
			k.Refresh, k.PaneNext, k.Logout, k.Quit)
	}
}

func keyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// errorStatus prefers the server's own message for application failures and
// degrades to a generic line for transport errors.
func errorStatus(action string, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return action + ": " + apiErr.Msg
	}
	return action + ": network or server error"
}

func displayName(sess session.Session) string {
	if sess.Nickname != "" {
		return sess.Nickname
	}
	return sess.Username
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
