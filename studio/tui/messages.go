package tui

import (
	"time"

	"echochamber/types"
	"echochamber/workflow"
)

// Messages for the tea program (polling-based)

// AuthResultMsg is sent when a signup/login/verify call finishes.
type AuthResultMsg struct {
	User   *types.User
	SignUp bool
	Err    error
}

// SubmitAcceptedMsg is sent when the generate call was accepted.
type SubmitAcceptedMsg struct {
	Err error
}

// StatusUpdateMsg is sent when we receive the request state from the server.
type StatusUpdateMsg struct {
	Status *workflow.Status
	Err    error
}

// ResultMsg carries the fetched generated assets.
type ResultMsg struct {
	Assets *types.GeneratedAssets
	Err    error
}

// BundleSavedMsg is sent after a bundle download attempt.
type BundleSavedMsg struct {
	Filename string
	Err      error
}

// ResetDoneMsg is sent after the reset call.
type ResetDoneMsg struct {
	Err error
}

// TickMsg is sent periodically to drive polling and the loading spinner.
type TickMsg struct {
	Time time.Time
}
