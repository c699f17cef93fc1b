// internal/middleware/helpers.go
package middleware

import (
	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/identity"

	"github.com/gin-gonic/gin"
)

// MustGetSession gets the caller's session from context or panics. Only
// for handlers behind Auth(); the recovery middleware backstops misuse.
func MustGetSession(c *gin.Context) *identity.Session {
	sess, exists := GetSession(c)
	if !exists {
		panic("session not found in context")
	}
	return sess
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := GetSession(c)
	return exists
}

// IsAdmin checks if the caller is a back-office account
func IsAdmin(c *gin.Context) bool {
	sess, exists := GetSession(c)
	return exists && sess.IsAdmin()
}
