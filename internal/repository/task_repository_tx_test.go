package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"boardapi/internal/models"
)

// Storage-level failures mid-shift must roll the whole transaction back so
// a half-shifted column is never committed. Verified against a mocked
// postgres connection since sqlite cannot fail a single statement on cue.

func newMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func taskRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "project_id", "title", "priority", "status", "position", "created_by"}).
		AddRow(7, 1, "Doomed", "MEDIUM", "TO_DO", 1, 1)
}

func TestDeleteClosingGap_RollsBackWhenShiftFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	shiftErr := errors.New("connection reset")

	mock.ExpectBegin()
	// The doomed row is read under a row-level lock.
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE .* FOR UPDATE`).
		WillReturnRows(taskRow())
	mock.ExpectExec(`DELETE FROM "tasks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position - 1`).
		WillReturnError(shiftErr)
	mock.ExpectRollback()

	err := repo.DeleteClosingGap(7)
	assert.ErrorIs(t, err, shiftErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMove_RollsBackWhenDestinationShiftFails(t *testing.T) {
	repo, mock := newMockRepo(t)
	shiftErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE .* FOR UPDATE`).
		WillReturnRows(taskRow())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	// Origin gap closes first.
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Destination slot-opening fails; nothing may remain applied.
	mock.ExpectExec(`UPDATE "tasks" SET "position"=position \+ 1`).
		WillReturnError(shiftErr)
	mock.ExpectRollback()

	_, err := repo.Move(7, models.TaskStatusDone, 0)
	assert.ErrorIs(t, err, shiftErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
