package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

type approvalRepoStub struct {
	reservations map[string]models.EventReservation
	logs         []models.ApprovalLog
	updateErr    error
}

func (s *approvalRepoStub) FindByID(ctx context.Context, id string) (*models.EventReservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (s *approvalRepoStub) UpdateStatusWithLog(ctx context.Context, reservation *models.EventReservation, log *models.ApprovalLog) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.reservations[reservation.ID] = *reservation
	s.logs = append(s.logs, *log)
	return nil
}

func (s *approvalRepoStub) ListByReservation(ctx context.Context, reservationID string) ([]models.ApprovalLog, error) {
	var out []models.ApprovalLog
	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].ReservationID == reservationID {
			out = append(out, s.logs[i])
		}
	}
	return out, nil
}

func newApprovalFixture(status models.ReservationStatus) (*ApprovalService, *approvalRepoStub) {
	repo := &approvalRepoStub{reservations: map[string]models.EventReservation{
		"res1": {ID: "res1", RoomID: "r1", Status: status},
	}}
	return NewApprovalService(repo, repo, nil, nil), repo
}

func TestApproveReservationTransitionTable(t *testing.T) {
	all := []models.ReservationStatus{
		models.StatusPending, models.StatusAdvisorApproved, models.StatusApproved,
		models.StatusRejected, models.StatusCancelled,
	}
	allowed := map[models.ReservationStatus][]models.ReservationStatus{
		models.StatusPending:         {models.StatusAdvisorApproved, models.StatusRejected, models.StatusCancelled},
		models.StatusAdvisorApproved: {models.StatusApproved, models.StatusRejected},
		models.StatusApproved:        {models.StatusCancelled},
		models.StatusRejected:        {},
		models.StatusCancelled:       {},
	}

	for _, current := range all {
		for _, next := range all {
			legal := false
			for _, a := range allowed[current] {
				if a == next {
					legal = true
				}
			}

			t.Run(string(current)+"_to_"+string(next), func(t *testing.T) {
				svc, _ := newApprovalFixture(current)

				// ADMIN passes every role gate, isolating the transition check.
				result, err := svc.ApproveReservation(context.Background(), "res1", next, "admin1", models.RoleAdmin, "")
				require.NoError(t, err)
				if legal {
					assert.True(t, result.Success)
					assert.Equal(t, "Status changed from "+string(current)+" to "+string(next), result.Message)
				} else {
					assert.False(t, result.Success)
					assert.Equal(t, "Invalid status transition: "+string(current)+" -> "+string(next), result.Message)
				}
			})
		}
	}
}

func TestApproveReservationRoleTable(t *testing.T) {
	cases := []struct {
		current models.ReservationStatus
		next    models.ReservationStatus
		role    models.UserRole
		allowed bool
	}{
		{models.StatusPending, models.StatusAdvisorApproved, models.RoleAdvisor, true},
		{models.StatusPending, models.StatusAdvisorApproved, models.RoleAdmin, true},
		{models.StatusPending, models.StatusAdvisorApproved, models.RoleStudent, false},
		{models.StatusAdvisorApproved, models.StatusApproved, models.RoleAdmin, true},
		{models.StatusAdvisorApproved, models.StatusApproved, models.RoleAdvisor, false},
		{models.StatusAdvisorApproved, models.StatusApproved, models.RoleStudent, false},
		{models.StatusPending, models.StatusRejected, models.RoleAdvisor, true},
		{models.StatusPending, models.StatusRejected, models.RoleAdmin, true},
		{models.StatusPending, models.StatusRejected, models.RoleStudent, false},
		{models.StatusPending, models.StatusCancelled, models.RoleStudent, true},
		{models.StatusPending, models.StatusCancelled, models.RoleAdmin, true},
		{models.StatusPending, models.StatusCancelled, models.RoleAdvisor, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role)+"_"+string(tc.next), func(t *testing.T) {
			svc, _ := newApprovalFixture(tc.current)

			result, err := svc.ApproveReservation(context.Background(), "res1", tc.next, "u1", tc.role, "")
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, result.Success)
			if !tc.allowed {
				assert.Equal(t, "Role '"+string(tc.role)+"' cannot transition to "+string(tc.next), result.Message)
			}
		})
	}
}

func TestApproveReservationChecksTransitionBeforeRole(t *testing.T) {
	// Illegal transition attempted by a role that could never perform it;
	// the transition message must win.
	svc, _ := newApprovalFixture(models.StatusRejected)

	result, err := svc.ApproveReservation(context.Background(), "res1", models.StatusApproved, "u1", models.RoleStudent, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid status transition: REJECTED -> APPROVED", result.Message)
}

func TestApproveReservationStampsApproverOnlyOnFinalApproval(t *testing.T) {
	svc, repo := newApprovalFixture(models.StatusPending)

	result, err := svc.ApproveReservation(context.Background(), "res1", models.StatusAdvisorApproved, "advisor1", models.RoleAdvisor, "looks fine")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Empty(t, result.Reservation.ApprovedBy)
	assert.Nil(t, result.Reservation.ApprovedAt)

	result, err = svc.ApproveReservation(context.Background(), "res1", models.StatusApproved, "admin1", models.RoleAdmin, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "admin1", result.Reservation.ApprovedBy)
	require.NotNil(t, result.Reservation.ApprovedAt)

	stored := repo.reservations["res1"]
	assert.Equal(t, models.StatusApproved, stored.Status)
	assert.Equal(t, "admin1", stored.ApprovedBy)
}

func TestApproveReservationWritesLogWithPreviousStatus(t *testing.T) {
	svc, repo := newApprovalFixture(models.StatusPending)

	_, err := svc.ApproveReservation(context.Background(), "res1", models.StatusAdvisorApproved, "advisor1", models.RoleAdvisor, "ok")
	require.NoError(t, err)

	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, "res1", log.ReservationID)
	assert.Equal(t, models.StatusPending, log.PreviousStatus)
	assert.Equal(t, models.StatusAdvisorApproved, log.NewStatus)
	assert.Equal(t, "advisor1", log.ApprovedBy)
	assert.Equal(t, models.RoleAdvisor, log.ApproverRole)
	assert.Equal(t, "ok", log.Comments)
	assert.False(t, log.ApprovedAt.IsZero())
}

func TestApproveReservationFailedAttemptLeavesNoTrace(t *testing.T) {
	svc, repo := newApprovalFixture(models.StatusPending)

	result, err := svc.ApproveReservation(context.Background(), "res1", models.StatusApproved, "admin1", models.RoleAdmin, "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, repo.logs)
	assert.Equal(t, models.StatusPending, repo.reservations["res1"].Status)
}

func TestApproveReservationNotFound(t *testing.T) {
	svc, _ := newApprovalFixture(models.StatusPending)

	_, err := svc.ApproveReservation(context.Background(), "missing", models.StatusAdvisorApproved, "u1", models.RoleAdvisor, "")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "missing")
}

func TestApproveReservationRejectsUnknownInputs(t *testing.T) {
	svc, _ := newApprovalFixture(models.StatusPending)

	_, err := svc.ApproveReservation(context.Background(), "res1", "SHIPPED", "u1", models.RoleAdmin, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.ApproveReservation(context.Background(), "res1", models.StatusAdvisorApproved, "u1", "JANITOR", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApproveReservationWrapsStoreFailure(t *testing.T) {
	repo := &approvalRepoStub{
		reservations: map[string]models.EventReservation{"res1": {ID: "res1", Status: models.StatusPending}},
		updateErr:    errors.New("tx failed"),
	}
	svc := NewApprovalService(repo, repo, nil, nil)

	_, err := svc.ApproveReservation(context.Background(), "res1", models.StatusAdvisorApproved, "u1", models.RoleAdvisor, "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestRejectReservationPrefixesReason(t *testing.T) {
	svc, repo := newApprovalFixture(models.StatusPending)

	result, err := svc.RejectReservation(context.Background(), "res1", "advisor1", models.RoleAdvisor, "room under renovation")
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, "REJECTED: room under renovation", repo.logs[0].Comments)
}

func TestCancelReservationUsesStudentRole(t *testing.T) {
	svc, repo := newApprovalFixture(models.StatusPending)

	result, err := svc.CancelReservation(context.Background(), "res1", "student1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, models.RoleStudent, repo.logs[0].ApproverRole)
	assert.Equal(t, "Cancelled by requester", repo.logs[0].Comments)
}

func TestCancelApprovedReservationSucceedsViaStudentRule(t *testing.T) {
	// APPROVED -> CANCELLED is a legal transition and CANCELLED permits
	// STUDENT, so cancellation of an approved reservation goes through even
	// though the actual caller might be an admin.
	svc, repo := newApprovalFixture(models.StatusApproved)

	result, err := svc.CancelReservation(context.Background(), "res1", "admin1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StatusCancelled, repo.reservations["res1"].Status)
}

func TestGetApprovalHistoryNewestFirst(t *testing.T) {
	svc, _ := newApprovalFixture(models.StatusPending)

	_, err := svc.ApproveReservation(context.Background(), "res1", models.StatusAdvisorApproved, "advisor1", models.RoleAdvisor, "")
	require.NoError(t, err)
	_, err = svc.ApproveReservation(context.Background(), "res1", models.StatusApproved, "admin1", models.RoleAdmin, "")
	require.NoError(t, err)

	history, err := svc.GetApprovalHistory(context.Background(), "res1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusApproved, history[0].NewStatus)
	assert.Equal(t, models.StatusAdvisorApproved, history[1].NewStatus)
}
