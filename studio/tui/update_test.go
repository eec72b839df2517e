package tui

import (
	"strings"
	"testing"

	"echochamber/types"
	"echochamber/workflow"
)

func newTestModel() Model {
	m := NewModel("http://localhost:0")
	return m
}

func TestSignUpMovesToVerifyScreen(t *testing.T) {
	m := newTestModel()
	m.Email = "a@b.com"

	next, _ := m.Update(AuthResultMsg{SignUp: true})
	got := next.(Model)

	if got.Screen != ViewVerify {
		t.Fatalf("screen after signup = %q, want %q", got.Screen, ViewVerify)
	}
	if !strings.Contains(got.View(), "Verify your account") {
		t.Error("verify screen should render the verification prompt")
	}
}

func TestLogInMovesToAppScreen(t *testing.T) {
	m := newTestModel()
	user := &types.User{ID: "u1", Email: "a@b.com", Verified: true}

	next, _ := m.Update(AuthResultMsg{User: user})
	got := next.(Model)

	if got.Screen != ViewApp {
		t.Fatalf("screen after login = %q, want %q", got.Screen, ViewApp)
	}
	if !strings.Contains(got.View(), "Logged in as a@b.com") {
		t.Error("app screen should render the logged-in account")
	}
}

func TestAuthFailureStaysOnAuthScreen(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(AuthResultMsg{Err: errString("invalid email or password")})
	got := next.(Model)

	if got.Screen != ViewAuth {
		t.Fatalf("screen after failed login = %q, want %q", got.Screen, ViewAuth)
	}
	if !strings.Contains(got.View(), "invalid email or password") {
		t.Error("auth screen should surface the error")
	}
}

func TestStatusResultFetchesAssets(t *testing.T) {
	m := newTestModel()
	m.Screen = ViewApp

	next, cmd := m.Update(StatusUpdateMsg{
		Status: &workflow.Status{Phase: workflow.PhaseResult, HasResult: true},
	})
	got := next.(Model)

	if got.Phase != workflow.PhaseResult {
		t.Fatalf("phase = %q, want %q", got.Phase, workflow.PhaseResult)
	}
	if cmd == nil {
		t.Error("a result status without held assets should trigger a fetch")
	}
}
