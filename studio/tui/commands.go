package tui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// signUp creates a command to register a new account.
func signUp(client *APIClient, email, password string) tea.Cmd {
	return func() tea.Msg {
		err := client.SignUp(email, password)
		return AuthResultMsg{SignUp: true, Err: err}
	}
}

// logIn creates a command to authenticate.
func logIn(client *APIClient, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := client.LogIn(email, password)
		return AuthResultMsg{User: user, Err: err}
	}
}

// verify creates a command to verify the account and log in.
func verify(client *APIClient, email string) tea.Cmd {
	return func() tea.Msg {
		user, err := client.Verify(email)
		return AuthResultMsg{User: user, Err: err}
	}
}

// submit creates a command to kick off a generation request. Input that
// names an existing local file is uploaded; everything else goes up as
// the source text.
func submit(client *APIClient, input string) tea.Cmd {
	return func() tea.Msg {
		source, filePath := input, ""
		if info, err := os.Stat(input); err == nil && !info.IsDir() {
			source, filePath = "", input
		}
		return SubmitAcceptedMsg{Err: client.Generate(source, filePath)}
	}
}

// pollStatus creates a command to poll the request state.
func pollStatus(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

// fetchResult creates a command to pull the generated assets.
func fetchResult(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		assets, err := client.GetResult()
		return ResultMsg{Assets: assets, Err: err}
	}
}

// downloadBundle creates a command to save the zip export locally.
func downloadBundle(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		name, err := client.DownloadBundle()
		return BundleSavedMsg{Filename: name, Err: err}
	}
}

// reset creates a command to discard the current result.
func reset(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		return ResetDoneMsg{Err: client.Reset()}
	}
}

// tickCmd creates a command that ticks every 2s for polling and the
// rotating loading message.
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
