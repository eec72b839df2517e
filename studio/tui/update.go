package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"echochamber/workflow"
)

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case AuthResultMsg:
		return m.handleAuthResult(msg)
	case SubmitAcceptedMsg:
		return m.handleSubmitAccepted(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case ResultMsg:
		return m.handleResult(msg)
	case BundleSavedMsg:
		return m.handleBundleSaved(msg)
	case ResetDoneMsg:
		return m.handleResetDone(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress routes keyboard input by the active view.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.Screen {
	case ViewAuth:
		return m.handleAuthKey(msg)
	case ViewVerify:
		return m.handleVerifyKey(msg)
	case ViewApp:
		return m.handleAppKey(msg)
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		m.Focus = (m.Focus + 1) % 2
		return m, nil
	case tea.KeyCtrlS:
		if m.AuthMode == ModeLogIn {
			m.AuthMode = ModeSignUp
		} else {
			m.AuthMode = ModeLogIn
		}
		m.Err = nil
		m.Notice = ""
		return m, nil
	case tea.KeyEnter:
		if strings.TrimSpace(m.Email) == "" || m.Password == "" {
			return m, nil
		}
		m.Busy = true
		m.Err = nil
		m.Notice = ""
		if m.AuthMode == ModeSignUp {
			return m, signUp(m.Client, m.Email, m.Password)
		}
		return m, logIn(m.Client, m.Email, m.Password)
	case tea.KeyBackspace:
		f := m.focusedField()
		if len(*f) > 0 {
			*f = (*f)[:len(*f)-1]
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		f := m.focusedField()
		*f += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handleVerifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Busy = true
		m.Err = nil
		return m, verify(m.Client, m.Email)
	case tea.KeyEsc:
		m.Screen = ViewAuth
		return m, nil
	}
	return m, nil
}

func (m Model) handleAppKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if strings.TrimSpace(m.Source) == "" || m.Phase == workflow.PhaseLoading {
			return m, nil
		}
		m.Busy = true
		m.Err = nil
		m.Notice = ""
		return m, submit(m.Client, strings.TrimSpace(m.Source))
	case tea.KeyBackspace:
		if len(m.Source) > 0 {
			m.Source = m.Source[:len(m.Source)-1]
		}
		return m, nil
	case tea.KeyLeft:
		if m.Assets != nil {
			m.ActiveTab = (m.ActiveTab + len(resultTabs) - 1) % len(resultTabs)
		}
		return m, nil
	case tea.KeyRight, tea.KeyTab:
		if m.Assets != nil {
			m.ActiveTab = (m.ActiveTab + 1) % len(resultTabs)
		}
		return m, nil
	case tea.KeyCtrlD:
		if m.Assets != nil {
			m.Notice = "Saving bundle..."
			return m, downloadBundle(m.Client)
		}
		return m, nil
	case tea.KeyCtrlR:
		return m, reset(m.Client)
	case tea.KeyEsc:
		m.Screen = ViewAuth
		m.User = nil
		m.Password = ""
		return m, func() tea.Msg { _ = m.Client.LogOut(); return nil }
	case tea.KeyRunes, tea.KeySpace:
		m.Source += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	if msg.SignUp {
		// Account exists but is unverified; walk the user through the
		// verification step next.
		m.Screen = ViewVerify
		m.Notice = "Account created. Check the server log for the verification token, then press Enter to verify."
		return m, nil
	}
	m.User = msg.User
	m.Screen = ViewApp
	m.Err = nil
	m.Notice = ""
	return m, pollStatus(m.Client)
}

func (m Model) handleSubmitAccepted(msg SubmitAcceptedMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Phase = workflow.PhaseLoading
	m.Assets = nil
	m.ActiveTab = 0
	m.Source = ""
	return m, pollStatus(m.Client)
}

func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Polling failures are transient; keep the last known state.
		return m, nil
	}
	m.Phase = msg.Status.Phase
	m.Logs = msg.Status.Logs
	if msg.Status.Phase == workflow.PhaseError && msg.Status.Error != "" {
		m.Err = errString(msg.Status.Error)
	}
	if msg.Status.HasResult && m.Assets == nil {
		return m, fetchResult(m.Client)
	}
	return m, nil
}

func (m Model) handleResult(msg ResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Assets = msg.Assets
	m.Phase = workflow.PhaseResult
	return m, nil
}

func (m Model) handleBundleSaved(msg BundleSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		m.Notice = ""
		return m, nil
	}
	m.Notice = "Bundle saved to " + msg.Filename
	return m, nil
}

func (m Model) handleResetDone(msg ResetDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Phase = workflow.PhaseIdle
	m.Assets = nil
	m.Logs = nil
	m.Err = nil
	m.Notice = ""
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	if m.Screen == ViewApp {
		if m.Phase == workflow.PhaseLoading {
			m.LoadingFrame++
		}
		cmds = append(cmds, pollStatus(m.Client))
	}
	return m, tea.Batch(cmds...)
}

// errString wraps a server-side error message as an error value.
type errString string

func (e errString) Error() string { return string(e) }
