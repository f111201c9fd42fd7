// In file: internal/auth/middleware.go
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key the verified Identity is stored under.
const identityKey = "auth.identity"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromHeader(m, c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through.
func OptionalAuth(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, ok := identityFromHeader(m, c); ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// CurrentIdentity returns the verified caller, if any.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}

func identityFromHeader(m *Manager, c *gin.Context) (*Identity, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}
	identity, err := m.VerifyToken(token)
	if err != nil {
		return nil, false
	}
	return identity, true
}
