package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is a known column.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	ProjectID   uint64       `gorm:"not null;index:idx_tasks_column" json:"project_id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'TO_DO';index:idx_tasks_column" json:"status"`
	// Position is the zero-based ordinal within the (project, status) column.
	// Dense between transactions; no unique constraint because shifts pass
	// through duplicate values mid-transaction.
	Position  int       `gorm:"not null" json:"position"`
	CreatedBy uint64    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
