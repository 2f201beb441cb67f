package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"boardapi/internal/constants"
	"boardapi/internal/database"
	apierrors "boardapi/internal/errors"
	"boardapi/internal/models"
)

// RequireTaskMembership resolves the task in the URL to its project, then
// resolves the caller's membership for that project. Both a missing task and
// a missing membership respond 404 so task existence never leaks to
// non-members.
func RequireTaskMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		var member models.Membership
		err = database.GetDB().
			Where("project_id = ? AND user_id = ?", task.ProjectID, userID).
			First(&member).Error
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Set(constants.ContextKeyMembership, member)
		c.Next()
	}
}

// GetTask retrieves the task placed in context by RequireTaskMembership.
func GetTask(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	return task, ok
}
