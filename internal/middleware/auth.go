package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"boardapi/internal/constants"
	apierrors "boardapi/internal/errors"
	"boardapi/internal/utils"
)

// RequireAuth verifies the bearer token and stores the caller's user id in
// the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, jwtSecret)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}
