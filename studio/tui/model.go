package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"echochamber/types"
	"echochamber/workflow"
)

// View is the top-level screen the client is showing.
type View string

const (
	ViewAuth   View = "auth"
	ViewVerify View = "verify"
	ViewApp    View = "app"
)

// AuthMode toggles the auth screen between login and signup.
type AuthMode string

const (
	ModeLogIn  AuthMode = "login"
	ModeSignUp AuthMode = "signup"
)

// resultTabs are the panels the result view cycles through.
var resultTabs = []string{
	"Summary",
	"Transcript",
	"Takeaways",
	"Clips",
	"Audiograms",
	"Social",
	"Email",
	"Strategy",
}

// loadingMessages rotate while a generation call is outstanding.
var loadingMessages = []string{
	"Analyzing content...",
	"Transcribing audio...",
	"Identifying key moments...",
	"Scoring clips for virality...",
	"Drafting social posts...",
	"Writing the email draft...",
	"Assembling the campaign strategy...",
}

// Model represents the TUI client state (thin client)
type Model struct {
	Client *APIClient

	Screen   View
	AuthMode AuthMode

	// Auth form fields; focus 0 is email, 1 is password.
	Email    string
	Password string
	Focus    int

	// Content input on the app screen.
	Source string

	// Local UI state synced from the server.
	User      *types.User
	Phase     workflow.Phase
	Logs      []workflow.LogEntry
	Assets    *types.GeneratedAssets
	ActiveTab int

	// Rotating loading message index, advanced on ticks.
	LoadingFrame int

	Notice string
	Err    error

	Busy bool
}

// NewModel creates a new TUI model.
func NewModel(serverURL string) Model {
	return Model{
		Client:   NewAPIClient(serverURL),
		Screen:   ViewAuth,
		AuthMode: ModeLogIn,
		Phase:    workflow.PhaseIdle,
	}
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// focusedField returns a pointer to the auth field under the cursor.
func (m *Model) focusedField() *string {
	if m.Focus == 0 {
		return &m.Email
	}
	return &m.Password
}

// loadingMessage returns the current rotating progress line.
func (m Model) loadingMessage() string {
	return loadingMessages[m.LoadingFrame%len(loadingMessages)]
}
