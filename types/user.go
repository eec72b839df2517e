package types

// User is an account record. PasswordHash holds a bcrypt hash, never the
// raw credential. Email is unique case-insensitively across all users.
// Users are created unverified; Verified flips true exactly once, which
// consumes VerificationToken.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	PasswordHash      string `json:"passwordHash,omitempty"`
	Verified          bool   `json:"verified"`
	VerificationToken string `json:"verificationToken,omitempty"`
}

// Sanitized returns a copy safe to hand back to clients: credential and
// verification token stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.VerificationToken = ""
	return u
}

// Session points at the active user. At most one session exists per
// store; Token is the opaque value a client presents to resolve it.
type Session struct {
	UserID string `json:"userId"`
	Token  string `json:"token,omitempty"`
}
