package auth

import (
	"context"
	"sync"

	"echochamber/types"
)

// MemoryRepository is an in-process Repository for development and tests.
type MemoryRepository struct {
	mu      sync.Mutex
	users   []types.User
	session *types.Session
}

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) LoadUsers(ctx context.Context) ([]types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *MemoryRepository) SaveUsers(ctx context.Context, users []types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make([]types.User, len(users))
	copy(m.users, users)
	return nil
}

func (m *MemoryRepository) LoadSession(ctx context.Context) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryRepository) SaveSession(ctx context.Context, s types.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryRepository) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *MemoryRepository) Close() error { return nil }
