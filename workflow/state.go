// Package workflow drives one account's content-analysis requests
// through the idle → loading → result|error state machine and holds the
// latest generated result.
package workflow

import (
	"fmt"
	"sync"
	"time"

	"echochamber/types"
)

// Phase is the request lifecycle state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseResult  Phase = "result"
)

// LogEntry is one progress line with its timestamp.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Status is a snapshot of the state machine for clients to poll.
type Status struct {
	Phase     Phase      `json:"phase"`
	Source    string     `json:"source,omitempty"`
	Error     string     `json:"error,omitempty"`
	HasResult bool       `json:"has_result"`
	Logs      []LogEntry `json:"logs,omitempty"`
}

// Manager holds one account's request state with thread-safe access.
// At most one call is outstanding at a time; a new submission is
// rejected while one is loading rather than queued or cancelled.
type Manager struct {
	mu sync.RWMutex

	phase   Phase
	source  string
	lastErr error
	assets  *types.GeneratedAssets

	logs    []LogEntry
	maxLogs int
}

// NewManager creates an idle manager.
func NewManager() *Manager {
	return &Manager{
		phase:   PhaseIdle,
		maxLogs: 50,
	}
}

// ErrBusy is returned when a submission arrives while a call is outstanding.
var ErrBusy = fmt.Errorf("a generation request is already in progress")

// BeginSubmit transitions to loading. The previous result and error are
// cleared first: a submission replaces state wholesale, so a failed call
// can never leave a stale result behind.
func (m *Manager) BeginSubmit(source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseLoading {
		return ErrBusy
	}
	m.phase = PhaseLoading
	m.source = source
	m.assets = nil
	m.lastErr = nil
	m.addLogLocked(fmt.Sprintf("Analyzing %s...", source))
	return nil
}

// SetResult stores the finished assets and transitions to result.
func (m *Manager) SetResult(assets *types.GeneratedAssets) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = assets
	m.phase = PhaseResult
	m.addLogLocked("Generation complete")
}

// SetError records the failure and transitions to error.
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err
	m.phase = PhaseError
	m.addLogLocked(fmt.Sprintf("Error: %v", err))
}

// Reset discards the result or error and returns to idle.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = PhaseIdle
	m.source = ""
	m.assets = nil
	m.lastErr = nil
}

// Result returns the held assets, or nil when none are stored.
func (m *Manager) Result() *types.GeneratedAssets {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assets
}

// GetStatus returns a snapshot of the current state.
func (m *Manager) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Status{
		Phase:     m.phase,
		Source:    m.source,
		HasResult: m.assets != nil,
		Logs:      append([]LogEntry{}, m.logs...),
	}
	if m.lastErr != nil {
		s.Error = m.lastErr.Error()
	}
	return s
}

// addLogLocked appends to the ring buffer; caller holds the lock.
func (m *Manager) addLogLocked(message string) {
	m.logs = append(m.logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(m.logs) > m.maxLogs {
		m.logs = m.logs[len(m.logs)-m.maxLogs:]
	}
}
