// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by an access token.
type Claims struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin checks the role claim. Admin access is decided here, never by a
// client-side constant comparison.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
