// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Authenticator resolves a bearer token into a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Session, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Auth is the base authentication middleware that validates bearer tokens
// and checks the session is still live.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		sess, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireAdmin restricts the route to back-office accounts.
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "authentication required", nil)
			return
		}
		if !sess.IsAdmin() {
			response.Forbidden(c, "admin access required")
			return
		}

		c.Next()
	}
}

// AdminOnly returns middlewares for admin-only routes (Auth + RequireAdmin)
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireAdmin(),
	}
}

// OptionalAuth resolves a session when a token is present but never aborts.
// The public quote form uses it to link submissions from signed-in
// customers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		sess, err := m.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			// Don't abort, just continue without setting user context
			c.Next()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param, used by the websocket handshake
	token := c.Query("token")
	if token != "" {
		return token
	}

	return ""
}

// GetSession returns the caller's session from context.
func GetSession(c *gin.Context) (*identity.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}

	sess, ok := v.(*identity.Session)
	return sess, ok
}
