package services

import (
	"errors"
	"fmt"
	"strings"

	"boardapi/internal/constants"
	"boardapi/internal/models"
	"boardapi/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title must be at most 255 characters")
	ErrInvalidPriority  = errors.New("priority must be one of LOW, MEDIUM, HIGH")
	ErrInvalidStatus    = errors.New("status must be one of TO_DO, IN_PROGRESS, DONE")
	ErrNegativePosition = errors.New("position must be a non-negative integer")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided")
)

// TaskService handles task business logic. Every mutation is scoped to the
// project the caller was authorized for; a task that exists under a different
// project behaves exactly like a missing task.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description *string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	CreatorID   uint64
}

// UpdateTaskInput represents input for editing a task's content. Status and
// position are deliberately absent; reordering goes through Move only.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
}

// ListTasks returns a project's tasks ordered by column, then position.
func (s *TaskService) ListTasks(projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates the payload and appends the task at the end of its column.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: normalizeDescription(input.Description),
		Priority:    input.Priority,
		Status:      input.Status,
		CreatedBy:   input.CreatorID,
	}

	if err := s.taskRepo.CreateAtTail(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator")
}

// UpdateTask edits title, description and/or priority. At least one field is
// required. The fresh row is re-read and returned.
func (s *TaskService) UpdateTask(taskID, projectID uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.Title == nil && input.Description == nil && input.Priority == nil {
		return nil, ErrNoFieldsToUpdate
	}

	task, err := s.findInProject(taskID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = normalizeDescription(input.Description)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator")
}

// DeleteTask removes a task and closes the gap it leaves in its column.
func (s *TaskService) DeleteTask(taskID, projectID uint64) error {
	if _, err := s.findInProject(taskID, projectID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteClosingGap(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// MoveTask relocates a task to (status, position). The requested position is
// validated at this boundary; the engine clamps it to the destination column.
// Only the moved task is returned; positions of other tasks change as a side
// effect and callers must re-fetch the list to observe them.
func (s *TaskService) MoveTask(taskID, projectID uint64, status models.TaskStatus, position int) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if position < 0 {
		return nil, ErrNegativePosition
	}

	if _, err := s.findInProject(taskID, projectID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Move(taskID, status, position)
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	return task, nil
}

// findInProject fetches the task and verifies it belongs to the authorized
// project. A mismatch is indistinguishable from a missing task.
func (s *TaskService) findInProject(taskID, projectID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

// normalizeDescription trims and converts empty descriptions to NULL.
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
