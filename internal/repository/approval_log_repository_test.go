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

func TestApprovalLogRepositoryListByReservationNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApprovalLogRepository(db)
	rows := sqlmock.NewRows([]string{"id", "reservation_id", "previous_status", "new_status", "approved_by", "approver_role", "approved_at", "comments"}).
		AddRow("l2", "res1", "ADVISOR_APPROVED", "APPROVED", "admin1", "ADMIN", time.Now(), "").
		AddRow("l1", "res1", "PENDING", "ADVISOR_APPROVED", "advisor1", "ADVISOR", time.Now().Add(-time.Hour), "ok")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE reservation_id = $1 ORDER BY approved_at DESC")).
		WithArgs("res1").
		WillReturnRows(rows)

	logs, err := repo.ListByReservation(context.Background(), "res1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, models.StatusApproved, logs[0].NewStatus)
	require.Equal(t, models.StatusAdvisorApproved, logs[1].NewStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalLogRepositoryListByActor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApprovalLogRepository(db)
	rows := sqlmock.NewRows([]string{"id", "reservation_id", "previous_status", "new_status", "approved_by", "approver_role", "approved_at", "comments"}).
		AddRow("l1", "res1", "PENDING", "ADVISOR_APPROVED", "advisor1", "ADVISOR", time.Now(), "")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE approved_by = $1 ORDER BY approved_at DESC")).
		WithArgs("advisor1").
		WillReturnRows(rows)

	logs, err := repo.ListByActor(context.Background(), "advisor1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
