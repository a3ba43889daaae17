package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_id", "organization_name", "event_title", "event_date", "start_time", "end_time", "status", "requested_by", "requested_at", "approved_by", "approved_at", "purpose", "expected_attendees", "created_at", "updated_at"}).
		AddRow("res1", "r1", "Chess Club", "Tournament", time.Now(), "10:00", "12:00", "PENDING", "student1", time.Now(), "", nil, "", 0, time.Now(), time.Now())
}

func TestReservationRepositoryFindConflictingExpandsStatuses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	eventDate := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 AND event_date = $2 AND status IN ($3, $4, $5) AND start_time < $6 AND end_time > $7")).
		WithArgs("r1", eventDate, "PENDING", "ADVISOR_APPROVED", "APPROVED", "12:00", "10:00").
		WillReturnRows(reservationRows())

	reservations, err := repo.FindConflicting(context.Background(), "r1", eventDate, "10:00", "12:00", models.OccupyingStatuses)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryListApprovedBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("status IN ('APPROVED', 'ADVISOR_APPROVED') ORDER BY event_date ASC, start_time ASC")).
		WithArgs(start, end).
		WillReturnRows(reservationRows())

	_, err := repo.ListApprovedBetween(context.Background(), start, end)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryUpdateStatusWithLogCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE event_reservations SET status =")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO approval_logs")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reservation := &models.EventReservation{ID: "res1", Status: models.StatusAdvisorApproved}
	log := &models.ApprovalLog{
		ReservationID:  "res1",
		PreviousStatus: models.StatusPending,
		NewStatus:      models.StatusAdvisorApproved,
		ApprovedBy:     "advisor1",
		ApproverRole:   models.RoleAdvisor,
	}
	require.NoError(t, repo.UpdateStatusWithLog(context.Background(), reservation, log))
	require.NotEmpty(t, log.ID)
	require.False(t, log.ApprovedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryUpdateStatusWithLogRollsBackOnLogFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE event_reservations SET status =")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO approval_logs")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	reservation := &models.EventReservation{ID: "res1", Status: models.StatusAdvisorApproved}
	log := &models.ApprovalLog{ReservationID: "res1", PreviousStatus: models.StatusPending, NewStatus: models.StatusAdvisorApproved}
	require.Error(t, repo.UpdateStatusWithLog(context.Background(), reservation, log))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryCreateDefaultsTimestamps(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_reservations")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reservation := &models.EventReservation{RoomID: "r1", OrganizationName: "Chess Club", EventTitle: "Tournament", Status: models.StatusPending}
	require.NoError(t, repo.Create(context.Background(), reservation))
	require.NotEmpty(t, reservation.ID)
	require.False(t, reservation.RequestedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
