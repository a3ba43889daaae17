package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

type reservationStoreStub struct {
	items   map[string]models.EventReservation
	created *models.EventReservation
	updated *models.EventReservation
}

func (s *reservationStoreStub) List(ctx context.Context, page, pageSize int) ([]models.EventReservation, int, error) {
	var out []models.EventReservation
	for _, r := range s.items {
		out = append(out, r)
	}
	return out, len(s.items), nil
}

func (s *reservationStoreStub) FindByID(ctx context.Context, id string) (*models.EventReservation, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (s *reservationStoreStub) ListByStatus(ctx context.Context, status models.ReservationStatus) ([]models.EventReservation, error) {
	var out []models.EventReservation
	for _, r := range s.items {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationStoreStub) ListByOrganization(ctx context.Context, organizationName string) ([]models.EventReservation, error) {
	var out []models.EventReservation
	for _, r := range s.items {
		if r.OrganizationName == organizationName {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationStoreStub) ListApprovedBetween(ctx context.Context, startDate, endDate time.Time) ([]models.EventReservation, error) {
	var out []models.EventReservation
	for _, r := range s.items {
		if (r.Status == models.StatusApproved || r.Status == models.StatusAdvisorApproved) &&
			!r.EventDate.Before(startDate) && !r.EventDate.After(endDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationStoreStub) Create(ctx context.Context, reservation *models.EventReservation) error {
	if s.items == nil {
		s.items = map[string]models.EventReservation{}
	}
	s.items[reservation.ID] = *reservation
	s.created = reservation
	return nil
}

func (s *reservationStoreStub) Update(ctx context.Context, reservation *models.EventReservation) error {
	s.items[reservation.ID] = *reservation
	s.updated = reservation
	return nil
}

func (s *reservationStoreStub) Delete(ctx context.Context, id string) error {
	delete(s.items, id)
	return nil
}

// fixedConflictStub always answers with the same conflict result.
type fixedConflictStub struct {
	result *ConflictResult
}

func (s *fixedConflictStub) FindConflicts(ctx context.Context, roomID string, eventDate time.Time, startTime, endTime string) (*ConflictResult, error) {
	return s.result, nil
}

func (s *fixedConflictStub) HasConflict(ctx context.Context, roomID string, eventDate time.Time, startTime, endTime string) (bool, error) {
	return s.result.HasConflict, nil
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RoomID:           "r1",
		OrganizationName: "Chess Club",
		EventTitle:       "Tournament",
		EventDate:        "2025-03-03",
		StartTime:        "10:00",
		EndTime:          "12:00",
	}
}

func TestCreateReservationStartsPending(t *testing.T) {
	store := &reservationStoreStub{}
	svc := NewReservationService(store, &conflictCheckerStub{}, nil, nil, nil)

	reservation, conflicts, err := svc.Create(context.Background(), validCreateRequest(), "student1")
	require.NoError(t, err)
	require.NotNil(t, reservation)
	assert.Equal(t, models.StatusPending, reservation.Status)
	assert.Equal(t, "student1", reservation.RequestedBy)
	assert.NotEmpty(t, reservation.ID)
	assert.False(t, conflicts.HasConflict)
	require.NotNil(t, store.created)
	assert.Equal(t, reservation.ID, store.created.ID)
}

func TestCreateReservationRejectedWhenRoomOccupied(t *testing.T) {
	store := &reservationStoreStub{}
	conflicts := &conflictCheckerStub{occupied: map[string][]string{"r1": {"Course CS101 on MONDAY from 09:00 to 11:00"}}}
	svc := NewReservationService(store, conflicts, nil, nil, nil)

	reservation, result, err := svc.Create(context.Background(), validCreateRequest(), "student1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, appErrors.FromError(err).Code)
	assert.Nil(t, reservation)
	require.NotNil(t, result)
	assert.True(t, result.HasConflict)
	assert.Nil(t, store.created)
}

func TestCreateReservationValidatesPayload(t *testing.T) {
	svc := NewReservationService(&reservationStoreStub{}, &conflictCheckerStub{}, nil, nil, nil)

	req := validCreateRequest()
	req.EventDate = "03/03/2025"
	_, _, err := svc.Create(context.Background(), req, "student1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validCreateRequest()
	req.RoomID = ""
	_, _, err = svc.Create(context.Background(), req, "student1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateReservationOnlyWhilePending(t *testing.T) {
	store := &reservationStoreStub{items: map[string]models.EventReservation{
		"res1": {ID: "res1", RoomID: "r1", Status: models.StatusApproved, EventDate: date(t, "2025-03-03"), StartTime: "10:00", EndTime: "12:00"},
	}}
	svc := NewReservationService(store, &conflictCheckerStub{}, nil, nil, nil)

	_, _, err := svc.Update(context.Background(), "res1", dto.UpdateReservationRequest{
		EventTitle: "Moved", EventDate: "2025-03-04", StartTime: "10:00", EndTime: "12:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, store.updated)
}

func TestUpdateReservationReappliesConflictGate(t *testing.T) {
	store := &reservationStoreStub{items: map[string]models.EventReservation{
		"res1": {ID: "res1", RoomID: "r1", Status: models.StatusPending, EventDate: date(t, "2025-03-03"), StartTime: "10:00", EndTime: "12:00"},
	}}
	conflicts := &conflictCheckerStub{occupied: map[string][]string{"r1": {"Course CS101 on MONDAY from 09:00 to 11:00"}}}
	svc := NewReservationService(store, conflicts, nil, nil, nil)

	_, result, err := svc.Update(context.Background(), "res1", dto.UpdateReservationRequest{
		EventTitle: "Moved", EventDate: "2025-03-03", StartTime: "09:00", EndTime: "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomOccupied.Code, appErrors.FromError(err).Code)
	require.NotNil(t, result)
	assert.True(t, result.HasConflict)
}

func TestUpdateReservationIgnoresItsOwnOverlap(t *testing.T) {
	existing := models.EventReservation{
		ID: "res1", RoomID: "r1", Status: models.StatusPending,
		EventTitle: "Tournament", OrganizationName: "Chess Club",
		EventDate: date(t, "2025-03-03"), StartTime: "10:00", EndTime: "12:00",
	}
	store := &reservationStoreStub{items: map[string]models.EventReservation{"res1": existing}}
	// The conflict scan reports the reservation's own current window.
	conflicts := &fixedConflictStub{result: &ConflictResult{
		HasConflict:          true,
		AcademicConflicts:    []string{},
		ReservationConflicts: []string{describeReservation(existing)},
	}}
	svc := NewReservationService(store, conflicts, nil, nil, nil)

	updated, _, err := svc.Update(context.Background(), "res1", dto.UpdateReservationRequest{
		EventTitle: "Tournament", EventDate: "2025-03-03", StartTime: "10:00", EndTime: "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.EndTime)
	require.NotNil(t, store.updated)
}

func TestGetReservationNotFound(t *testing.T) {
	svc := NewReservationService(&reservationStoreStub{}, &conflictCheckerStub{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "missing")
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewReservationService(&reservationStoreStub{}, &conflictCheckerStub{}, nil, nil, nil)

	_, err := svc.ListByStatus(context.Background(), "SHIPPED")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCheckConflictsIsReadOnly(t *testing.T) {
	store := &reservationStoreStub{}
	conflicts := &conflictCheckerStub{occupied: map[string][]string{"r1": {"busy"}}}
	svc := NewReservationService(store, conflicts, nil, nil, nil)

	result, err := svc.CheckConflicts(context.Background(), dto.CheckConflictsRequest{
		RoomID: "r1", EventDate: "2025-03-03", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Nil(t, store.created)
}
