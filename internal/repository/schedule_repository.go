package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

const scheduleColumns = `id, room_id, course_code, course_name, day_of_week, start_time, end_time, semester, academic_year, instructor, created_at, updated_at`

// ScheduleRepository provides persistence for recurring academic schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns all academic schedules ordered by day and start time.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.AcademicSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_schedules ORDER BY day_of_week ASC, start_time ASC", scheduleColumns)
	var schedules []models.AcademicSchedule
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ListByRoom returns the recurring schedules of a room.
func (r *ScheduleRepository) ListByRoom(ctx context.Context, roomID string) ([]models.AcademicSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_schedules WHERE room_id = $1 ORDER BY day_of_week ASC, start_time ASC", scheduleColumns)
	var schedules []models.AcademicSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, roomID); err != nil {
		return nil, fmt.Errorf("list schedules by room: %w", err)
	}
	return schedules, nil
}

// FindConflicting returns schedules for the room and weekday whose interval
// overlaps the half-open window [startTime, endTime). A schedule that ends
// exactly when the window starts, or starts exactly when it ends, does not
// overlap.
func (r *ScheduleRepository) FindConflicting(ctx context.Context, roomID string, dayOfWeek models.DayOfWeek, startTime, endTime string) ([]models.AcademicSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM academic_schedules WHERE room_id = $1 AND day_of_week = $2 AND start_time < $3 AND end_time > $4", scheduleColumns)
	var schedules []models.AcademicSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, roomID, dayOfWeek, endTime, startTime); err != nil {
		return nil, fmt.Errorf("find conflicting schedules: %w", err)
	}
	return schedules, nil
}

// Create stores a new recurring schedule.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.AcademicSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	const query = `INSERT INTO academic_schedules (id, room_id, course_code, course_name, day_of_week, start_time, end_time, semester, academic_year, instructor, created_at, updated_at) VALUES (:id, :room_id, :course_code, :course_name, :day_of_week, :start_time, :end_time, :semester, :academic_year, :instructor, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Delete removes a recurring schedule by id.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM academic_schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
