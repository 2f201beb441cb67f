package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardapi/internal/constants"
	"boardapi/internal/dto"
	apierrors "boardapi/internal/errors"
	"boardapi/internal/middleware"
	"boardapi/internal/models"
	"boardapi/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns a project's tasks ordered by column, then position.
// Requires any membership (VIEWER or above).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project := getProject(c)

	tasks, err := h.taskService.ListTasks(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// CreateTask appends a task to the end of its target column.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project := getProject(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Priority    string  `json:"priority"`
		Status      string  `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestField(c, "title", "title is required")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		CreatorID:   userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask edits a task's title, description and/or priority. Status and
// position are not editable here; reordering goes through MoveTask.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, member, ok := taskBinding(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var priority *models.TaskPriority
	if req.Priority != nil {
		p := models.TaskPriority(*req.Priority)
		priority = &p
	}

	updated, err := h.taskService.UpdateTask(task.ID, member.ProjectID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*updated)})
}

// DeleteTask removes a task; the rest of its column shifts down to close the gap.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, member, ok := taskBinding(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID, member.ProjectID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveTask relocates a task to (status, position). Only the moved task is
// returned; clients re-fetch the list to observe the shifted neighbors.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	task, member, ok := taskBinding(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type MoveTaskRequest struct {
		Status   string `json:"status" binding:"required"`
		Position *int   `json:"position" binding:"required"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestField(c, "position", "status and a non-negative integer position are required")
		return
	}

	moved, err := h.taskService.MoveTask(task.ID, member.ProjectID,
		models.TaskStatus(req.Status), *req.Position)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*moved)})
}

// taskBinding extracts the task and membership resolved by RequireTaskMembership.
func taskBinding(c *gin.Context) (models.Task, models.Membership, bool) {
	task, ok := middleware.GetTask(c)
	if !ok {
		return models.Task{}, models.Membership{}, false
	}
	return task, middleware.GetMembership(c), true
}

// getProject extracts the project resolved by RequireProjectMembership.
func getProject(c *gin.Context) models.Project {
	projectInterface, _ := c.Get(constants.ContextKeyProject)
	return projectInterface.(models.Project)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong):
		apierrors.BadRequestField(c, "title", err.Error())
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequestField(c, "priority", err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestField(c, "status", err.Error())
	case errors.Is(err, services.ErrNegativePosition):
		apierrors.BadRequestField(c, "position", err.Error())
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
