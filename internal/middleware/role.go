package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "boardapi/internal/errors"
	"boardapi/internal/models"
)

// RequireRole enforces a minimum role on a route that already resolved the
// caller's membership. It must run after RequireProjectMembership or
// RequireTaskMembership; without that binding, GetMembership panics.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		member := GetMembership(c)

		if !member.Role.AtLeast(required) {
			apierrors.ForbiddenRole(c, string(required))
			c.Abort()
			return
		}

		c.Next()
	}
}
