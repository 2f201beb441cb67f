package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes. Postgres only; the checks
// query pg_indexes and the pending-invitation index is partial.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		sql     string
	}{
		// Range shifts in the position engine scan a single (project, status)
		// partition ordered by position.
		{"tasks", "idx_tasks_project_status_position",
			"CREATE INDEX idx_tasks_project_status_position ON tasks (project_id, status, position)"},

		{"memberships", "idx_memberships_user_id",
			"CREATE INDEX idx_memberships_user_id ON memberships (user_id)"},

		// At most one PENDING invitation per (project, invitee).
		{"invitations", "idx_invitations_pending_unique",
			"CREATE UNIQUE INDEX idx_invitations_pending_unique ON invitations (project_id, invitee_id) WHERE status = 'PENDING'"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logrus.WithField("index", idx.name).Info("created index")
	}

	return nil
}
