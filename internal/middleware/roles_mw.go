package middleware

import (
	"net/http"

	"creditsea/internal/policy"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on a single policy operation. Anonymous callers get
// 401, callers whose role lacks the operation get 403.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy.Decide(GetIdentity(c), op) {
		case policy.Allow:
			c.Next()
		case policy.Unauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": policy.ErrUnauthenticated.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		}
	}
}

// AnyOf passes when the caller may perform at least one of ops. Used for
// routes whose final check depends on the request, like reading a loan list
// by owner.
func AnyOf(ops ...policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": policy.ErrUnauthenticated.Error()})
			return
		}
		for _, op := range ops {
			if policy.Permit(identity, op) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
