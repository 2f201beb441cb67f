package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"boardapi/internal/constants"
	"boardapi/internal/database"
	apierrors "boardapi/internal/errors"
	"boardapi/internal/models"
)

// RequireProjectMembership resolves the caller's membership for the project
// in the URL and stores the (project, membership) binding in the context.
// A missing membership responds 404, never 403: to a non-member, a project
// they cannot see does not exist.
func RequireProjectMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		var member models.Membership
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", projectID, userID).
			First(&member).Error
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// GetMembership retrieves the membership binding placed by the resolution
// middleware. Calling it on a route without that middleware is a programming
// error, so the failure is fatal rather than a user-facing response.
func GetMembership(c *gin.Context) models.Membership {
	memberInterface, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		panic("membership binding missing: route is not behind a membership-resolution middleware")
	}
	return memberInterface.(models.Membership)
}
