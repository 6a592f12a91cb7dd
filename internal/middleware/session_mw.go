package middleware

import (
	"context"
	"net/http"

	"creditsea/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "creditsea.sid"
	IdentityKey       = "identity"
)

// IdentityResolver maps a session token to the identity behind it
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*policy.Identity, error)
}

// SessionMiddleware resolves the session cookie, if any, and stores the
// identity in the context. Anonymous requests pass through untouched.
func SessionMiddleware(resolver IdentityResolver, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := resolver.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Error("failed to resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if identity != nil {
			c.Set(IdentityKey, identity)
		}
		c.Next()
	}
}

// GetIdentity returns the identity resolved by SessionMiddleware, or nil.
func GetIdentity(c *gin.Context) *policy.Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := val.(*policy.Identity)
	return identity
}

// RequireSession rejects anonymous requests with 401
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": policy.ErrUnauthenticated.Error()})
			return
		}
		c.Next()
	}
}
