package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"echochamber/types"
)

var (
	// ErrEmailTaken is returned when signup finds a case-insensitive email match.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned when no matching email+password pair exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotVerified is returned when a login matches an unverified account.
	ErrNotVerified = errors.New("account not verified")
	// ErrUserNotFound is returned by verification for an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoSession is returned when no active session resolves to a user.
	ErrNoSession = errors.New("no active session")
)

// Service implements signup, login, logout, verification and current-user
// lookup over an injected Repository. Every operation performs its
// read-modify-write cycle under one lock, so two concurrent signups with
// the same email cannot both succeed.
type Service struct {
	mu   sync.Mutex
	repo Repository
}

// NewService constructs a Service over the given repository. The caller
// owns the repository lifecycle and closes it after the service is done.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SignUp creates an unverified account with a fresh verification token.
// Emails are stored lowercased; uniqueness is case-insensitive.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return err
	}
	if findUserByEmail(users, email) != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := types.User{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(email),
		PasswordHash:      string(hash),
		Verified:          false,
		VerificationToken: "verify_" + uuid.NewString(),
	}
	users = append(users, user)
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return err
	}

	// There is no outbound mail in this system; the verification step is
	// driven by the client, so surface the token in the server log.
	log.Printf("verification token for %s: %s", user.Email, user.VerificationToken)
	return nil
}

// LogIn verifies credentials, requires a verified account, creates the
// session and returns the sanitized user plus the session token.
func (s *Service) LogIn(ctx context.Context, email, password string) (*types.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	user := findUserByEmail(users, email)
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, "", ErrNotVerified
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	sanitized := user.Sanitized()
	return &sanitized, token, nil
}

// LogOut clears the active session. Idempotent.
func (s *Service) LogOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ClearSession(ctx)
}

// CurrentUser resolves the active session to its user. The presented
// token must match the stored session; a stale token or a session whose
// user no longer exists yields ErrNoSession.
func (s *Service) CurrentUser(ctx context.Context, token string) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || token == "" || session.Token != token {
		return nil, ErrNoSession
	}

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == session.UserID {
			sanitized := users[i].Sanitized()
			return &sanitized, nil
		}
	}
	return nil, ErrNoSession
}

// VerifyEmail marks the account verified, consumes the verification
// token and logs the user in. Verification of an already-verified
// account is harmless and still refreshes the session.
func (s *Service) VerifyEmail(ctx context.Context, email string) (*types.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.LoadUsers(ctx)
	if err != nil {
		return nil, "", err
	}
	user := findUserByEmail(users, email)
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	user.Verified = true
	user.VerificationToken = ""
	if err := s.repo.SaveUsers(ctx, users); err != nil {
		return nil, "", err
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	sanitized := user.Sanitized()
	return &sanitized, token, nil
}

func (s *Service) createSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.repo.SaveSession(ctx, types.Session{UserID: userID, Token: token}); err != nil {
		return "", err
	}
	return token, nil
}

// findUserByEmail returns a pointer into users, so mutations through it
// are visible to a subsequent SaveUsers of the same slice.
func findUserByEmail(users []types.User, email string) *types.User {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}
