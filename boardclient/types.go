// Package boardclient is a Go client for the board API. It mirrors the
// server's position semantics so a UI can reorder optimistically and
// reconcile against the authoritative list afterwards.
package boardclient

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TO_DO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Task is a board task as it appears on the wire.
type Task struct {
	ID          uint64       `json:"id"`
	ProjectID   uint64       `json:"project_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Position    int          `json:"position"`
	CreatedBy   uint64       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
}

// UpdateTaskRequest is the payload for editing a task's content. At least one
// field must be set; status and position cannot be edited this way.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
}

// MoveTaskRequest is the payload for relocating a task.
type MoveTaskRequest struct {
	Status   TaskStatus `json:"status"`
	Position int        `json:"position"`
}
