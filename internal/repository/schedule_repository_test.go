package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_id", "course_code", "course_name", "day_of_week", "start_time", "end_time", "semester", "academic_year", "instructor", "created_at", "updated_at"}).
		AddRow("s1", "r1", "CS101", "Intro to CS", "MONDAY", "09:00", "11:00", "1", "2024/2025", "Dr. Ada", time.Now(), time.Now())
}

// The overlap predicate is start_time < windowEnd AND end_time > windowStart,
// so the bound arguments are the window end first, then the window start.
func TestScheduleRepositoryFindConflictingArgOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 AND day_of_week = $2 AND start_time < $3 AND end_time > $4")).
		WithArgs("r1", "MONDAY", "11:00", "10:00").
		WillReturnRows(scheduleRows())

	schedules, err := repo.FindConflicting(context.Background(), "r1", models.Monday, "10:00", "11:00")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	require.Equal(t, "CS101", schedules[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO academic_schedules")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.AcademicSchedule{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"}
	require.NoError(t, repo.Create(context.Background(), schedule))
	require.NotEmpty(t, schedule.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListByRoom(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 ORDER BY day_of_week ASC, start_time ASC")).
		WithArgs("r1").
		WillReturnRows(scheduleRows())

	schedules, err := repo.ListByRoom(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
