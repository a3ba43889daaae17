package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

const reservationColumns = `id, room_id, organization_name, event_title, event_date, start_time, end_time, status, requested_by, requested_at, approved_by, approved_at, purpose, expected_attendees, created_at, updated_at`

// ReservationRepository provides persistence for event reservations and their
// approval log entries.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// List returns reservations ordered by event date, most recent first.
func (r *ReservationRepository) List(ctx context.Context, page, pageSize int) ([]models.EventReservation, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("SELECT %s FROM event_reservations ORDER BY event_date DESC, start_time DESC LIMIT %d OFFSET %d", reservationColumns, pageSize, offset)
	var reservations []models.EventReservation
	if err := r.db.SelectContext(ctx, &reservations, query); err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM event_reservations"); err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	return reservations, total, nil
}

// FindByID loads a reservation by id.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*models.EventReservation, error) {
	query := fmt.Sprintf("SELECT %s FROM event_reservations WHERE id = $1", reservationColumns)
	var reservation models.EventReservation
	if err := r.db.GetContext(ctx, &reservation, query, id); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByStatus returns reservations in the given status.
func (r *ReservationRepository) ListByStatus(ctx context.Context, status models.ReservationStatus) ([]models.EventReservation, error) {
	query := fmt.Sprintf("SELECT %s FROM event_reservations WHERE status = $1 ORDER BY event_date ASC, start_time ASC", reservationColumns)
	var reservations []models.EventReservation
	if err := r.db.SelectContext(ctx, &reservations, query, status); err != nil {
		return nil, fmt.Errorf("list reservations by status: %w", err)
	}
	return reservations, nil
}

// ListByOrganization returns reservations requested by an organization.
func (r *ReservationRepository) ListByOrganization(ctx context.Context, organizationName string) ([]models.EventReservation, error) {
	query := fmt.Sprintf("SELECT %s FROM event_reservations WHERE organization_name = $1 ORDER BY event_date ASC, start_time ASC", reservationColumns)
	var reservations []models.EventReservation
	if err := r.db.SelectContext(ctx, &reservations, query, organizationName); err != nil {
		return nil, fmt.Errorf("list reservations by organization: %w", err)
	}
	return reservations, nil
}

// ListApprovedBetween returns advisor-approved and approved reservations in
// the inclusive date range, ordered chronologically.
func (r *ReservationRepository) ListApprovedBetween(ctx context.Context, startDate, endDate time.Time) ([]models.EventReservation, error) {
	query := fmt.Sprintf("SELECT %s FROM event_reservations WHERE event_date >= $1 AND event_date <= $2 AND status IN ('APPROVED', 'ADVISOR_APPROVED') ORDER BY event_date ASC, start_time ASC", reservationColumns)
	var reservations []models.EventReservation
	if err := r.db.SelectContext(ctx, &reservations, query, startDate, endDate); err != nil {
		return nil, fmt.Errorf("list approved reservations: %w", err)
	}
	return reservations, nil
}

// FindConflicting returns reservations for the room and date that hold one of
// the provided statuses and overlap the half-open window [startTime, endTime).
func (r *ReservationRepository) FindConflicting(ctx context.Context, roomID string, date time.Time, startTime, endTime string, statuses []models.ReservationStatus) ([]models.EventReservation, error) {
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM event_reservations WHERE room_id = ? AND event_date = ? AND status IN (?) AND start_time < ? AND end_time > ?", reservationColumns),
		roomID, date, statuses, endTime, startTime,
	)
	if err != nil {
		return nil, fmt.Errorf("build conflicting reservations query: %w", err)
	}
	query = r.db.Rebind(query)

	var reservations []models.EventReservation
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, fmt.Errorf("find conflicting reservations: %w", err)
	}
	return reservations, nil
}

// Create stores a new reservation request.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.EventReservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if reservation.RequestedAt.IsZero() {
		reservation.RequestedAt = now
	}
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = now

	const query = `INSERT INTO event_reservations (id, room_id, organization_name, event_title, event_date, start_time, end_time, status, requested_by, requested_at, approved_by, approved_at, purpose, expected_attendees, created_at, updated_at) VALUES (:id, :room_id, :organization_name, :event_title, :event_date, :start_time, :end_time, :status, :requested_by, :requested_at, :approved_by, :approved_at, :purpose, :expected_attendees, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reservation); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// Update modifies the mutable request fields of a reservation.
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.EventReservation) error {
	reservation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE event_reservations SET event_title = :event_title, event_date = :event_date, start_time = :start_time, end_time = :end_time, purpose = :purpose, expected_attendees = :expected_attendees, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, reservation); err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	return nil
}

// UpdateStatusWithLog applies a status transition and appends its approval
// log entry as one atomic unit. Either both rows commit or neither does.
func (r *ReservationRepository) UpdateStatusWithLog(ctx context.Context, reservation *models.EventReservation, log *models.ApprovalLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin status transition: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	reservation.UpdatedAt = time.Now().UTC()
	const updateQuery = `UPDATE event_reservations SET status = :status, approved_by = :approved_by, approved_at = :approved_at, updated_at = :updated_at WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, updateQuery, reservation); err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.ApprovedAt.IsZero() {
		log.ApprovedAt = time.Now().UTC()
	}
	const logQuery = `INSERT INTO approval_logs (id, reservation_id, previous_status, new_status, approved_by, approver_role, approved_at, comments) VALUES (:id, :reservation_id, :previous_status, :new_status, :approved_by, :approver_role, :approved_at, :comments)`
	if _, err = tx.NamedExecContext(ctx, logQuery, log); err != nil {
		return fmt.Errorf("append approval log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit status transition: %w", err)
	}
	return nil
}

// Delete removes a reservation by id.
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM event_reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}
