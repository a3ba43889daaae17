package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

const approvalLogColumns = `id, reservation_id, previous_status, new_status, approved_by, approver_role, approved_at, comments`

// ApprovalLogRepository reads the append-only approval audit trail. Writes
// happen inside the reservation status transaction.
type ApprovalLogRepository struct {
	db *sqlx.DB
}

// NewApprovalLogRepository creates a new approval log repository.
func NewApprovalLogRepository(db *sqlx.DB) *ApprovalLogRepository {
	return &ApprovalLogRepository{db: db}
}

// ListByReservation returns the audit trail of a reservation, most recent
// entry first.
func (r *ApprovalLogRepository) ListByReservation(ctx context.Context, reservationID string) ([]models.ApprovalLog, error) {
	query := fmt.Sprintf("SELECT %s FROM approval_logs WHERE reservation_id = $1 ORDER BY approved_at DESC", approvalLogColumns)
	var logs []models.ApprovalLog
	if err := r.db.SelectContext(ctx, &logs, query, reservationID); err != nil {
		return nil, fmt.Errorf("list approval logs: %w", err)
	}
	return logs, nil
}

// ListByActor returns all transitions performed by an actor.
func (r *ApprovalLogRepository) ListByActor(ctx context.Context, approvedBy string) ([]models.ApprovalLog, error) {
	query := fmt.Sprintf("SELECT %s FROM approval_logs WHERE approved_by = $1 ORDER BY approved_at DESC", approvalLogColumns)
	var logs []models.ApprovalLog
	if err := r.db.SelectContext(ctx, &logs, query, approvedBy); err != nil {
		return nil, fmt.Errorf("list approval logs by actor: %w", err)
	}
	return logs, nil
}
