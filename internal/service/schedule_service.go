package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

type scheduleStore interface {
	List(ctx context.Context) ([]models.AcademicSchedule, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.AcademicSchedule, error)
	FindConflicting(ctx context.Context, roomID string, dayOfWeek models.DayOfWeek, startTime, endTime string) ([]models.AcademicSchedule, error)
	Create(ctx context.Context, schedule *models.AcademicSchedule) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService manages recurring academic occupancy blocks.
type ScheduleService struct {
	repo      scheduleStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService builds a ScheduleService with sane defaults.
func NewScheduleService(repo scheduleStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every academic schedule block.
func (s *ScheduleService) List(ctx context.Context) ([]models.AcademicSchedule, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return items, nil
}

// ListByRoom returns the weekly blocks for one room.
func (s *ScheduleService) ListByRoom(ctx context.Context, roomID string) ([]models.AcademicSchedule, error) {
	items, err := s.repo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules for room")
	}
	return items, nil
}

// Create registers a recurring block. The block is rejected when it overlaps
// an existing academic schedule for the same room and weekday; event
// reservations are not consulted because recurring academic use takes
// precedence over one-time events.
func (s *ScheduleService) Create(ctx context.Context, req dto.CreateScheduleRequest) (*models.AcademicSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule request")
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	day := models.DayOfWeek(req.DayOfWeek)
	switch day {
	case models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday, models.Sunday:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day of week: %s", req.DayOfWeek))
	}

	existing, err := s.repo.FindConflicting(ctx, req.RoomID, day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check schedule overlap")
	}
	if len(existing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("schedule overlaps %s on %s", existing[0].CourseCode, day))
	}

	now := time.Now().UTC()
	schedule := &models.AcademicSchedule{
		ID:           uuid.NewString(),
		RoomID:       req.RoomID,
		CourseCode:   req.CourseCode,
		CourseName:   req.CourseName,
		DayOfWeek:    day,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Instructor:   req.Instructor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}

	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
	return schedule, nil
}

// Delete removes a recurring block.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}

	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
	return nil
}
