package repository

import (
	"boardapi/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
//
// Positions are always recomputed from live aggregates inside the mutating
// transaction, never cached across transaction boundaries. Range shifts use
// UpdateColumn so that rows whose content did not change keep their
// updated_at.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// lockForUpdate applies a row-level FOR UPDATE lock. SQLite rejects the
// clause and takes a database-level write lock anyway, so it is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateAtTail creates a task at position max+1 of its (project, status)
// column, or 0 if the column is empty. No existing row is renumbered.
func (r *GormTaskRepository) CreateAtTail(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		err := tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ?", task.ProjectID, task.Status).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPos).Error
		if err != nil {
			return err
		}

		task.Position = maxPos + 1
		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject returns tasks ordered by column (TO_DO, IN_PROGRESS, DONE),
// then by position within each column.
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_id = ?", projectID).
		Order("CASE status WHEN 'TO_DO' THEN 0 WHEN 'IN_PROGRESS' THEN 1 ELSE 2 END, position ASC").
		Preload("Creator").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists content edits. Status and position stay out of this path so
// a plain edit can never reorder a column.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Model(task).
		Select("title", "description", "priority").
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"priority":    task.Priority,
		}).Error
}

// DeleteClosingGap removes the task and decrements every position above it in
// the same column, inside one transaction.
func (r *GormTaskRepository) DeleteClosingGap(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := lockForUpdate(tx).First(&task, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Task{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ? AND position > ?",
				task.ProjectID, task.Status, task.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// Move relocates a task within or across columns. The moving row is read
// FOR UPDATE first so two concurrent moves of the same task cannot compute
// stale shift ranges. Shifts and the final row update commit atomically.
func (r *GormTaskRepository) Move(id uint64, status models.TaskStatus, requested int) (*models.Task, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := lockForUpdate(tx).First(&task, id).Error; err != nil {
			return err
		}

		if task.Status == status {
			return reorderWithinColumn(tx, &task, requested)
		}
		return moveAcrossColumns(tx, &task, status, requested)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(id, "Creator")
}

// reorderWithinColumn relocates the task to the clamped target position,
// shifting only the interval between old and new position.
func reorderWithinColumn(tx *gorm.DB, task *models.Task, requested int) error {
	var others int64
	err := tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ? AND id <> ?", task.ProjectID, task.Status, task.ID).
		Count(&others).Error
	if err != nil {
		return err
	}

	target := clampPosition(requested, int(others))
	if target == task.Position {
		// No-op move still succeeds.
		return nil
	}

	if task.Position < target {
		// Everything in (old, target] steps down one.
		err = tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ? AND position > ? AND position <= ?",
				task.ProjectID, task.Status, task.Position, target).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	} else {
		// Everything in [target, old) steps up one.
		err = tx.Model(&models.Task{}).
			Where("project_id = ? AND status = ? AND position >= ? AND position < ?",
				task.ProjectID, task.Status, target, task.Position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(task).Update("position", target).Error
}

// moveAcrossColumns closes the gap in the origin column, opens a slot in the
// destination column, then lands the task at the clamped target. The two
// shifts touch disjoint partitions, so their relative order does not matter.
func moveAcrossColumns(tx *gorm.DB, task *models.Task, status models.TaskStatus, requested int) error {
	var destCount int64
	err := tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", task.ProjectID, status).
		Count(&destCount).Error
	if err != nil {
		return err
	}

	// The task is not counted in the destination yet, so appending at the
	// end means position == destCount.
	target := clampPosition(requested, int(destCount))

	err = tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ? AND position > ?",
			task.ProjectID, task.Status, task.Position).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
	if err != nil {
		return err
	}

	err = tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ? AND position >= ?",
			task.ProjectID, status, target).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
	if err != nil {
		return err
	}

	return tx.Model(task).Updates(map[string]interface{}{
		"status":   status,
		"position": target,
	}).Error
}

// clampPosition bounds a requested position to [0, max]. Out-of-range
// requests are clamped, never rejected.
func clampPosition(requested, max int) int {
	if requested < 0 {
		return 0
	}
	if requested > max {
		return max
	}
	return requested
}
