package ui

import (
	"errors"
	"testing"

	"taskdeck/internal/api"
)

func TestSubmitAuthRequiresBothFields(t *testing.T) {
	m := newTestModel(t)
	m.pane = paneLogin
	m.auth.username.SetValue("ada")
	m.auth.password.SetValue("")

	updated, cmd := m.submitAuth()
	m = asModel(t, updated)

	if cmd != nil {
		t.Errorf("incomplete credentials still produced a request")
	}
	if m.auth.busy {
		t.Errorf("pane marked busy with nothing in flight")
	}
}

func TestLoginSuccessEntersTaskPane(t *testing.T) {
	m := newTestModel(t)
	m.pane = paneLogin

	updated, cmd := m.applyLogin(loginMsg{creds: api.Credentials{
		Token: "jwt-abc",
		User:  api.User{Username: "ada", Nickname: "Ada"},
	}})
	m = asModel(t, updated)

	if m.pane != paneTasks {
		t.Errorf("pane = %v, want tasks", m.pane)
	}
	if m.user != "Ada" {
		t.Errorf("user = %q, want nickname", m.user)
	}
	if cmd == nil {
		t.Errorf("entering the task pane should trigger a load")
	}
	if m.cred.Token() != "jwt-abc" {
		t.Errorf("credential holder not updated")
	}
}

func TestLoginFailureStaysOnLoginPane(t *testing.T) {
	m := newTestModel(t)
	m.pane = paneLogin
	m.auth.busy = true

	updated, _ := m.applyLogin(loginMsg{err: &api.APIError{Code: 1, Msg: "bad credentials"}})
	m = asModel(t, updated)

	if m.pane != paneLogin {
		t.Errorf("failed login left the login pane")
	}
	if m.auth.busy {
		t.Errorf("busy flag not cleared")
	}
	if m.status != "Sign in failed: bad credentials" {
		t.Errorf("status = %q", m.status)
	}
}

func TestRegisterSuccessSwitchesToLoginMode(t *testing.T) {
	m := newTestModel(t)
	m.pane = paneLogin
	m.auth.mode = authModeRegister
	m.auth.busy = true

	updated, _ := m.applyRegister(registerMsg{})
	m = asModel(t, updated)

	if m.auth.mode != authModeLogin {
		t.Errorf("register success did not return to login mode")
	}
}

func TestRegisterFailureKeepsRegisterMode(t *testing.T) {
	m := newTestModel(t)
	m.pane = paneLogin
	m.auth.mode = authModeRegister

	updated, _ := m.applyRegister(registerMsg{err: errors.New("boom")})
	m = asModel(t, updated)

	if m.auth.mode != authModeRegister {
		t.Errorf("failed register switched modes")
	}
	if m.status != "Registration failed: network or server error" {
		t.Errorf("status = %q", m.status)
	}
}
