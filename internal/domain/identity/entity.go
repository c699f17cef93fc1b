// internal/domain/identity/entity.go
package identity

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity is an authentication account. Customer rows share the identity
// id when the account was created through registration, which is what makes
// session-based customer lookup possible later.
type Identity struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Session is the explicit session value handed to components that need the
// caller's identity. There is no ambient global auth state.
type Session struct {
	Token      string    `json:"token,omitempty"`
	JTI        string    `json:"-"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session belongs to a back-office account.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
