package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/session"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeRegister
)

type authPane struct {
	mode     authMode
	username textinput.Model
	password textinput.Model
	focus    int // 0 = username, 1 = password
	busy     bool
}

func newAuthPane() authPane {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 30
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.Width = 30
	password.EchoMode = textinput.EchoPassword

	return authPane{username: username, password: password}
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.auth.focus = 1 - m.auth.focus
		m.syncAuthFocus()
		return m, nil
	case "ctrl+r":
		if m.auth.mode == authModeLogin {
			m.auth.mode = authModeRegister
			m.status = "Create an account"
		} else {
			m.auth.mode = authModeLogin
			m.status = "Sign in to continue"
		}
		return m, nil
	case "enter":
		if m.auth.focus == 0 {
			m.auth.focus = 1
			m.syncAuthFocus()
			return m, nil
		}
		return m.submitAuth()
	default:
		if m.auth.busy {
			return m, nil
		}
		var cmd tea.Cmd
		if m.auth.focus == 0 {
			m.auth.username, cmd = m.auth.username.Update(msg)
		} else {
			m.auth.password, cmd = m.auth.password.Update(msg)
		}
		return m, cmd
	}
}

func (m *Model) syncAuthFocus() {
	if m.auth.focus == 0 {
		m.auth.username.Focus()
		m.auth.password.Blur()
	} else {
		m.auth.username.Blur()
		m.auth.password.Focus()
	}
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}
	username := strings.TrimSpace(m.auth.username.Value())
	password := m.auth.password.Value()
	if username == "" || password == "" {
		m.status = "Username and password are required"
		return m, nil
	}
	m.auth.busy = true
	if m.auth.mode == authModeRegister {
		m.status = "Creating account..."
		return m, registerCmd(m.client, username, password)
	}
	m.status = "Signing in..."
	return m, loginCmd(m.client, username, password)
}

func (m Model) applyLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.auth.busy = false
	if msg.err != nil {
		m.status = errorStatus("Sign in failed", msg.err)
		return m, nil
	}

	sess := session.Session{
		Token:    msg.creds.Token,
		Username: msg.creds.User.Username,
		Nickname: msg.creds.User.Nickname,
	}
	m.cred.Set(sess.Token)
	m.user = displayName(sess)
	saveErr := error(nil)
	if m.store != nil {
		saveErr = m.store.Save(sess)
	}
	next, cmd := m.switchPane(paneTasks)
	if saveErr != nil {
		// signed in for this run; only persistence failed
		next.status = "Signed in (session not saved)"
	}
	return next, cmd
}

func (m Model) applyRegister(msg registerMsg) (tea.Model, tea.Cmd) {
	m.auth.busy = false
	if msg.err != nil {
		m.status = errorStatus("Registration failed", msg.err)
		return m, nil
	}
	m.auth.mode = authModeLogin
	m.auth.password.SetValue("")
	m.status = "Account created, sign in"
	return m, nil
}

func (m Model) renderAuth() string {
	var b strings.Builder
	if m.auth.mode == authModeRegister {
		b.WriteString("Create account")
	} else {
		b.WriteString("Sign in")
	}
	b.WriteString("\n\n")
	b.WriteString("  ")
	b.WriteString(m.auth.username.View())
	b.WriteString("\n  ")
	b.WriteString(m.auth.password.View())
	b.WriteString("\n")
	return b.String()
}
