package middleware

import (
	"net/http"

	"dukapos/internal/access"
	"dukapos/internal/apierror"
	"dukapos/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionRequired rejects requests when no operator is signed in on this
// terminal.
func SessionRequired(sess *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}
		c.Next()
	}
}

// RequireRole allows the request only when the signed-in operator holds one
// of the given roles. The denial message is fixed and never echoes the
// attempted path.
func RequireRole(sess *session.Store, allowed ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sess.Identity()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}
		if !id.Role.In(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("access denied"))
			return
		}
		c.Next()
	}
}
