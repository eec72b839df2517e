// Package auth implements the account and session store: signup with
// email verification, login, logout and session resolution over an
// injected repository.
package auth

import (
	"context"

	"echochamber/types"
)

// Repository persists the user collection and the single active session.
// The stored shape mirrors the two key-value records of the original
// client-local store: a JSON array of users and a JSON session record.
//
// Implementations do not need to be atomic themselves; the Service
// serializes every read-modify-write cycle.
type Repository interface {
	LoadUsers(ctx context.Context) ([]types.User, error)
	SaveUsers(ctx context.Context, users []types.User) error

	// LoadSession returns nil without error when no session exists.
	LoadSession(ctx context.Context) (*types.Session, error)
	SaveSession(ctx context.Context, s types.Session) error
	ClearSession(ctx context.Context) error

	Close() error
}
