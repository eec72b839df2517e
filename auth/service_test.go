package auth

import (
	"context"
	"errors"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewMemoryRepository()
	t.Cleanup(func() { _ = repo.Close() })
	return NewService(repo)
}

func signUpAndVerify(t *testing.T, s *Service, email, password string) string {
	t.Helper()
	ctx := context.Background()
	if err := s.SignUp(ctx, email, password); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, token, err := s.VerifyEmail(ctx, email)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	return token
}

func TestSignUpDuplicateEmailCaseInsensitive(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.SignUp(ctx, "Alice@Example.com", "pw1"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	err := s.SignUp(ctx, "alice@example.COM", "pw2")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second SignUp = %v, want ErrEmailTaken", err)
	}
}

func TestLogInRequiresVerification(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.SignUp(ctx, "bob@example.com", "secret"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, _, err := s.LogIn(ctx, "bob@example.com", "secret")
	if !errors.Is(err, ErrNotVerified) {
		t.Fatalf("LogIn before verify = %v, want ErrNotVerified", err)
	}

	if _, _, err := s.VerifyEmail(ctx, "bob@example.com"); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	user, token, err := s.LogIn(ctx, "bob@example.com", "secret")
	if err != nil {
		t.Fatalf("LogIn after verify: %v", err)
	}
	if token == "" {
		t.Fatal("LogIn returned empty session token")
	}
	if user.Email != "bob@example.com" {
		t.Errorf("user email = %q", user.Email)
	}
	if user.PasswordHash != "" || user.VerificationToken != "" {
		t.Error("returned user was not sanitized")
	}
}

func TestLogInBadCredentials(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	signUpAndVerify(t, s, "carol@example.com", "rightpw")

	if _, _, err := s.LogIn(ctx, "carol@example.com", "wrongpw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := s.LogIn(ctx, "nobody@example.com", "rightpw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyAutoLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if err := s.SignUp(ctx, "dave@example.com", "pw"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	user, token, err := s.VerifyEmail(ctx, "dave@example.com")
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !user.Verified {
		t.Error("user not marked verified")
	}
	if user.VerificationToken != "" {
		t.Error("verification token leaked on returned user")
	}

	// Verification auto-logs-in: the returned token resolves the session.
	current, err := s.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("CurrentUser after verify: %v", err)
	}
	if current.ID != user.ID {
		t.Errorf("current user %q, want %q", current.ID, user.ID)
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	s := newTestService(t)
	if _, _, err := s.VerifyEmail(context.Background(), "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("VerifyEmail = %v, want ErrUserNotFound", err)
	}
}

func TestLogOutThenCurrentUserAbsent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	token := signUpAndVerify(t, s, "erin@example.com", "pw")

	if _, err := s.CurrentUser(ctx, token); err != nil {
		t.Fatalf("CurrentUser while logged in: %v", err)
	}
	if err := s.LogOut(ctx); err != nil {
		t.Fatalf("LogOut: %v", err)
	}
	if _, err := s.CurrentUser(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser after logout = %v, want ErrNoSession", err)
	}
	// Idempotent.
	if err := s.LogOut(ctx); err != nil {
		t.Fatalf("second LogOut: %v", err)
	}
}

func TestLogInDisplacesPreviousSession(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	firstToken := signUpAndVerify(t, s, "gina@example.com", "pw")
	signUpAndVerify(t, s, "hank@example.com", "pw")

	// One session record per store: the later login wins.
	user, err := s.CurrentUser(ctx, firstToken)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser with displaced token = (%v, %v), want ErrNoSession", user, err)
	}
}

func TestCurrentUserStaleToken(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	signUpAndVerify(t, s, "frank@example.com", "pw")

	if _, err := s.CurrentUser(ctx, "not-the-token"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("CurrentUser with stale token = %v, want ErrNoSession", err)
	}
}
