package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

type conflictScheduleRepository interface {
	FindConflicting(ctx context.Context, roomID string, dayOfWeek models.DayOfWeek, startTime, endTime string) ([]models.AcademicSchedule, error)
}

type conflictReservationRepository interface {
	FindConflicting(ctx context.Context, roomID string, date time.Time, startTime, endTime string, statuses []models.ReservationStatus) ([]models.EventReservation, error)
}

// ConflictResult describes the occupancy overlapping a requested window. Both
// conflict lists are always populated, even when empty.
type ConflictResult struct {
	HasConflict          bool     `json:"has_conflict"`
	AcademicConflicts    []string `json:"academic_conflicts"`
	ReservationConflicts []string `json:"reservation_conflicts"`
}

// ConflictService decides whether a room is occupied for a date and time
// window by combining two occupancy sources: recurring weekly academic
// schedules and one-time event reservations in an occupying status.
type ConflictService struct {
	schedules    conflictScheduleRepository
	reservations conflictReservationRepository
	logger       *zap.Logger
}

// NewConflictService instantiates ConflictService.
func NewConflictService(schedules conflictScheduleRepository, reservations conflictReservationRepository, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{schedules: schedules, reservations: reservations, logger: logger}
}

// FindConflicts returns every overlapping occupancy record for the room on
// the requested window. Overlap is half-open: an existing block ending
// exactly at the requested start, or starting exactly at the requested end,
// is not a conflict. Only PENDING, ADVISOR_APPROVED, and APPROVED
// reservations occupy a room.
func (s *ConflictService) FindConflicts(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (*ConflictResult, error) {
	if err := validateWindow(startTime, endTime); err != nil {
		return nil, err
	}

	dayOfWeek := models.DayOfWeekFromDate(date)

	schedules, err := s.schedules.FindConflicting(ctx, roomID, dayOfWeek, startTime, endTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query academic schedules")
	}

	reservations, err := s.reservations.FindConflicting(ctx, roomID, date, startTime, endTime, models.OccupyingStatuses)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query reservations")
	}

	result := &ConflictResult{
		HasConflict:          len(schedules) > 0 || len(reservations) > 0,
		AcademicConflicts:    make([]string, 0, len(schedules)),
		ReservationConflicts: make([]string, 0, len(reservations)),
	}
	for _, sched := range schedules {
		result.AcademicConflicts = append(result.AcademicConflicts, describeSchedule(sched))
	}
	for _, res := range reservations {
		result.ReservationConflicts = append(result.ReservationConflicts, describeReservation(res))
	}
	return result, nil
}

// HasConflict is a boolean-only variant that skips the reservation query
// entirely when an academic conflict already exists. Its outcome always
// matches FindConflicts(...).HasConflict.
func (s *ConflictService) HasConflict(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (bool, error) {
	if err := validateWindow(startTime, endTime); err != nil {
		return false, err
	}

	dayOfWeek := models.DayOfWeekFromDate(date)

	schedules, err := s.schedules.FindConflicting(ctx, roomID, dayOfWeek, startTime, endTime)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query academic schedules")
	}
	if len(schedules) > 0 {
		return true, nil
	}

	reservations, err := s.reservations.FindConflicting(ctx, roomID, date, startTime, endTime, models.OccupyingStatuses)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query reservations")
	}
	return len(reservations) > 0, nil
}

func validateWindow(startTime, endTime string) error {
	if !models.ValidClock(startTime) || !models.ValidClock(endTime) {
		return appErrors.Clone(appErrors.ErrValidation, "times must be HH:MM values")
	}
	if startTime >= endTime {
		return appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	return nil
}

func describeSchedule(s models.AcademicSchedule) string {
	return fmt.Sprintf("Course %s on %s from %s to %s", s.CourseCode, s.DayOfWeek, s.StartTime, s.EndTime)
}

func describeReservation(r models.EventReservation) string {
	return fmt.Sprintf("%s by %s on %s from %s to %s (%s)",
		r.EventTitle, r.OrganizationName, r.EventDate.Format("2006-01-02"), r.StartTime, r.EndTime, r.Status)
}
