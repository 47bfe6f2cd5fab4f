package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimeSlotRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimeSlotRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "label", "start_time", "end_time", "is_period", "position", "created_at", "updated_at"}).
		AddRow("ts1", "First Period", "09:00", "10:30", true, 1, now, now).
		AddRow("ts2", "Lunch", nil, nil, false, 2, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, label, start_time, end_time, is_period, position, created_at, updated_at FROM time_slots ORDER BY position ASC, label ASC")).
		WillReturnRows(rows)

	slots, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)

	require.NotNil(t, slots[0].StartTime)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.True(t, slots[0].IsPeriod)

	assert.Nil(t, slots[1].StartTime)
	assert.Nil(t, slots[1].EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeSlotRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimeSlotRepository(db)

	start, err := models.ParseTimeOfDay("09:00")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO time_slots").
		WithArgs(sqlmock.AnyArg(), "First Period", sqlmock.AnyArg(), sqlmock.AnyArg(), true, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.TimeSlot{Label: "First Period", StartTime: &start, IsPeriod: true, Position: 1}
	require.NoError(t, repo.Create(context.Background(), slot))
	assert.NotEmpty(t, slot.ID, "an id is assigned when absent")

	mock.ExpectExec("DELETE FROM time_slots").
		WithArgs("ts1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Delete(context.Background(), "ts1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeSlotRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimeSlotRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, label, start_time, end_time, is_period, position, created_at, updated_at FROM time_slots WHERE id = $1")).
		WithArgs("ts1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "start_time", "end_time", "is_period", "position", "created_at", "updated_at"}).
			AddRow("ts1", "First Period", "09:00", "10:30", true, 1, now, now))

	slot, err := repo.FindByID(context.Background(), "ts1")
	require.NoError(t, err)
	assert.Equal(t, "First Period", slot.Label)
	require.NotNil(t, slot.EndTime)
	assert.Equal(t, "10:30", slot.EndTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
