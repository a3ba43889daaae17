package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

const eventDateLayout = "2006-01-02"

type reservationStore interface {
	List(ctx context.Context, page, pageSize int) ([]models.EventReservation, int, error)
	FindByID(ctx context.Context, id string) (*models.EventReservation, error)
	ListByStatus(ctx context.Context, status models.ReservationStatus) ([]models.EventReservation, error)
	ListByOrganization(ctx context.Context, organizationName string) ([]models.EventReservation, error)
	ListApprovedBetween(ctx context.Context, startDate, endDate time.Time) ([]models.EventReservation, error)
	Create(ctx context.Context, reservation *models.EventReservation) error
	Update(ctx context.Context, reservation *models.EventReservation) error
	Delete(ctx context.Context, id string) error
}

// ReservationService manages the lifecycle of event reservations up to the
// approval workflow: conflict-gated creation, edits while still pending, and
// the read paths used by dashboards.
type ReservationService struct {
	repo      reservationStore
	conflicts conflictChecker
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReservationService builds a ReservationService with sane defaults.
func NewReservationService(repo reservationStore, conflicts conflictChecker, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{repo: repo, conflicts: conflicts, cache: cache, validator: validate, logger: logger}
}

// List returns reservations in reverse chronological order with pagination
// metadata.
func (s *ReservationService) List(ctx context.Context, pagination models.Pagination) ([]models.EventReservation, *models.Pagination, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 || pagination.PageSize > 100 {
		pagination.PageSize = 20
	}

	items, total, err := s.repo.List(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reservations")
	}

	pagination.TotalCount = total
	return items, &pagination, nil
}

// Get returns one reservation by id.
func (s *ReservationService) Get(ctx context.Context, id string) (*models.EventReservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("reservation not found: %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}
	return reservation, nil
}

// ListByStatus returns reservations currently in the given status.
func (s *ReservationService) ListByStatus(ctx context.Context, status models.ReservationStatus) ([]models.EventReservation, error) {
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reservation status: %s", status))
	}

	items, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reservations by status")
	}
	return items, nil
}

// ListByOrganization returns every reservation requested by an organization.
func (s *ReservationService) ListByOrganization(ctx context.Context, organizationName string) ([]models.EventReservation, error) {
	if organizationName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "organization name is required")
	}

	items, err := s.repo.ListByOrganization(ctx, organizationName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reservations by organization")
	}
	return items, nil
}

// Upcoming returns approved and advisor-approved reservations inside the
// next `days` days, for the occupancy board.
func (s *ReservationService) Upcoming(ctx context.Context, days int) ([]models.EventReservation, error) {
	if days <= 0 {
		days = 7
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, days)

	items, err := s.repo.ListApprovedBetween(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming reservations")
	}
	return items, nil
}

// CheckConflicts performs a dry-run conflict lookup without creating
// anything.
func (s *ReservationService) CheckConflicts(ctx context.Context, req dto.CheckConflictsRequest) (*ConflictResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check request")
	}

	date, err := time.Parse(eventDateLayout, req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event date must use the YYYY-MM-DD format")
	}

	return s.conflicts.FindConflicts(ctx, req.RoomID, date, req.StartTime, req.EndTime)
}

// Create registers a new reservation in PENDING status. Creation is gated on
// the conflict engine: any overlapping occupancy rejects the request and the
// returned error carries the full conflict detail.
func (s *ReservationService) Create(ctx context.Context, req dto.CreateReservationRequest, requestedBy string) (*models.EventReservation, *ConflictResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation request")
	}

	date, err := time.Parse(eventDateLayout, req.EventDate)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "event date must use the YYYY-MM-DD format")
	}

	result, err := s.conflicts.FindConflicts(ctx, req.RoomID, date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	if result.HasConflict {
		return nil, result, appErrors.ErrRoomOccupied
	}

	now := time.Now().UTC()
	reservation := &models.EventReservation{
		ID:                uuid.NewString(),
		RoomID:            req.RoomID,
		OrganizationName:  req.OrganizationName,
		EventTitle:        req.EventTitle,
		EventDate:         date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Status:            models.StatusPending,
		RequestedBy:       requestedBy,
		RequestedAt:       now,
		Purpose:           req.Purpose,
		ExpectedAttendees: req.ExpectedAttendees,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reservation")
	}

	s.invalidateAvailability(ctx)
	s.logger.Info("reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("room_id", reservation.RoomID),
		zap.String("organization", reservation.OrganizationName))

	return reservation, result, nil
}

// Update edits the request fields of a reservation that is still pending.
// The updated window is re-checked against the conflict engine.
func (s *ReservationService) Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (*models.EventReservation, *ConflictResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation update")
	}

	reservation, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if reservation.Status != models.StatusPending {
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("only pending reservations can be edited, current status is %s", reservation.Status))
	}

	date, err := time.Parse(eventDateLayout, req.EventDate)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "event date must use the YYYY-MM-DD format")
	}

	result, err := s.conflicts.FindConflicts(ctx, reservation.RoomID, date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	if conflictsWithOthers(result, reservation) {
		return nil, result, appErrors.ErrRoomOccupied
	}

	reservation.EventTitle = req.EventTitle
	reservation.EventDate = date
	reservation.StartTime = req.StartTime
	reservation.EndTime = req.EndTime
	reservation.Purpose = req.Purpose
	reservation.ExpectedAttendees = req.ExpectedAttendees
	reservation.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reservation")
	}

	s.invalidateAvailability(ctx)
	return reservation, result, nil
}

// Delete removes a reservation outright. Cancellation through the approval
// workflow is the normal path; deletion exists for administrative cleanup.
func (s *ReservationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete reservation")
	}

	s.invalidateAvailability(ctx)
	return nil
}

func (s *ReservationService) invalidateAvailability(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}

// conflictsWithOthers reports whether the conflict result contains any record
// beyond the reservation being edited. The edited reservation still occupies
// its old window, so it legitimately shows up in its own conflict scan when
// the window is unchanged or overlapping.
func conflictsWithOthers(result *ConflictResult, reservation *models.EventReservation) bool {
	if result == nil || !result.HasConflict {
		return false
	}
	if len(result.AcademicConflicts) > 0 {
		return true
	}

	self := describeReservation(*reservation)
	for _, desc := range result.ReservationConflicts {
		if desc != self {
			return true
		}
	}
	return false
}
