package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

type approvalReservationRepository interface {
	FindByID(ctx context.Context, id string) (*models.EventReservation, error)
	UpdateStatusWithLog(ctx context.Context, reservation *models.EventReservation, log *models.ApprovalLog) error
}

type approvalLogReader interface {
	ListByReservation(ctx context.Context, reservationID string) ([]models.ApprovalLog, error)
}

// ApprovalResult is the outcome of a status transition attempt. Rule
// violations (illegal transition, insufficient role) come back as
// Success=false with a message rather than an error; only missing
// reservations and infrastructure failures surface as errors.
type ApprovalResult struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	Reservation *models.EventReservation `json:"reservation,omitempty"`
}

// ApprovalService executes the reservation status state machine and appends
// one approval log row per transition.
type ApprovalService struct {
	reservations approvalReservationRepository
	logs         approvalLogReader
	cache        *CacheService
	logger       *zap.Logger
}

// NewApprovalService instantiates ApprovalService.
func NewApprovalService(reservations approvalReservationRepository, logs approvalLogReader, cache *CacheService, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{reservations: reservations, logs: logs, cache: cache, logger: logger}
}

// ApproveReservation validates and applies a status transition. The
// transition check runs before the role check; both must pass. The
// reservation's approver fields are stamped only when the new status is
// APPROVED; for every other transition the actor is recorded in the log
// alone. Status update and log append commit as one transaction.
func (s *ApprovalService) ApproveReservation(ctx context.Context, reservationID string, newStatus models.ReservationStatus, approvedBy string, approverRole models.UserRole, comments string) (*ApprovalResult, error) {
	if !newStatus.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reservation status: %s", newStatus))
	}
	if !approverRole.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role: %s", approverRole))
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("reservation not found: %s", reservationID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}

	if !transitionAllowed(reservation.Status, newStatus) {
		return &ApprovalResult{
			Success: false,
			Message: fmt.Sprintf("Invalid status transition: %s -> %s", reservation.Status, newStatus),
		}, nil
	}
	if !rolePermits(approverRole, newStatus) {
		return &ApprovalResult{
			Success: false,
			Message: fmt.Sprintf("Role '%s' cannot transition to %s", approverRole, newStatus),
		}, nil
	}

	previous := reservation.Status
	updated := *reservation
	updated.Status = newStatus
	if newStatus == models.StatusApproved {
		now := time.Now().UTC()
		updated.ApprovedBy = approvedBy
		updated.ApprovedAt = &now
	}

	log := &models.ApprovalLog{
		ReservationID:  reservation.ID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ApprovedBy:     approvedBy,
		ApproverRole:   approverRole,
		ApprovedAt:     time.Now().UTC(),
		Comments:       comments,
	}

	if err := s.reservations.UpdateStatusWithLog(ctx, &updated, log); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply status transition")
	}

	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}

	return &ApprovalResult{
		Success:     true,
		Message:     fmt.Sprintf("Status changed from %s to %s", previous, newStatus),
		Reservation: &updated,
	}, nil
}

// RejectReservation rejects with a prefixed reason comment.
func (s *ApprovalService) RejectReservation(ctx context.Context, reservationID, rejectedBy string, rejectorRole models.UserRole, reason string) (*ApprovalResult, error) {
	return s.ApproveReservation(ctx, reservationID, models.StatusRejected, rejectedBy, rejectorRole, "REJECTED: "+reason)
}

// CancelReservation cancels on behalf of the requester. The actor's real
// role is discarded and STUDENT is used for the permission check, matching
// the long-standing behavior of the approval workflow.
func (s *ApprovalService) CancelReservation(ctx context.Context, reservationID, cancelledBy string) (*ApprovalResult, error) {
	return s.ApproveReservation(ctx, reservationID, models.StatusCancelled, cancelledBy, models.RoleStudent, "Cancelled by requester")
}

// GetApprovalHistory returns the audit trail, most recent transition first.
func (s *ApprovalService) GetApprovalHistory(ctx context.Context, reservationID string) ([]models.ApprovalLog, error) {
	logs, err := s.logs.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approval history")
	}
	return logs, nil
}

// transitionAllowed is the exhaustive transition table. REJECTED and
// CANCELLED are terminal.
func transitionAllowed(current, next models.ReservationStatus) bool {
	switch current {
	case models.StatusPending:
		return next == models.StatusAdvisorApproved || next == models.StatusRejected || next == models.StatusCancelled
	case models.StatusAdvisorApproved:
		return next == models.StatusApproved || next == models.StatusRejected
	case models.StatusApproved:
		return next == models.StatusCancelled
	case models.StatusRejected, models.StatusCancelled:
		return false
	}
	return false
}

// rolePermits is the exhaustive role permission table for target statuses.
func rolePermits(role models.UserRole, next models.ReservationStatus) bool {
	switch next {
	case models.StatusAdvisorApproved:
		return role == models.RoleAdvisor || role == models.RoleAdmin
	case models.StatusApproved:
		return role == models.RoleAdmin
	case models.StatusRejected:
		return role == models.RoleAdvisor || role == models.RoleAdmin
	case models.StatusCancelled:
		return role == models.RoleStudent || role == models.RoleAdmin
	case models.StatusPending:
		return false
	}
	return false
}
