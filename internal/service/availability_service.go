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

type availabilityRoomRepository interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
	FindCandidates(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
}

type conflictChecker interface {
	FindConflicts(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (*ConflictResult, error)
	HasConflict(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (bool, error)
}

// AvailableRoomInfo is the summary projection of a free room.
type AvailableRoomInfo struct {
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	BuildingName string          `json:"building_name"`
	RoomType     models.RoomType `json:"room_type"`
	Capacity     int             `json:"capacity"`
	Floor        int             `json:"floor"`
	Description  string          `json:"description,omitempty"`
}

// RoomAvailabilityStatus reports whether one room is free for a window.
type RoomAvailabilityStatus struct {
	IsAvailable bool     `json:"is_available"`
	Reason      string   `json:"reason,omitempty"`
	Conflicts   []string `json:"conflicts"`
}

// AvailabilityService answers "which rooms are free" queries by filtering
// candidate rooms through the conflict engine.
type AvailabilityService struct {
	rooms     availabilityRoomRepository
	conflicts conflictChecker
	cache     *CacheService
	logger    *zap.Logger
}

// NewAvailabilityService instantiates AvailabilityService.
func NewAvailabilityService(rooms availabilityRoomRepository, conflicts conflictChecker, cache *CacheService, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{rooms: rooms, conflicts: conflicts, cache: cache, logger: logger}
}

// FindAvailableRooms returns all candidate rooms without a conflict for the
// window. Candidates keep the repository's natural order; no extra sorting
// is applied here.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, date time.Time, startTime, endTime string, filter models.RoomFilter) ([]AvailableRoomInfo, error) {
	if err := validateWindow(startTime, endTime); err != nil {
		return nil, err
	}

	cacheKey := availabilityCacheKey(date, startTime, endTime, filter)
	var cached []AvailableRoomInfo
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	candidates, err := s.rooms.FindCandidates(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load candidate rooms")
	}

	available := make([]AvailableRoomInfo, 0, len(candidates))
	for _, room := range candidates {
		conflict, err := s.conflicts.HasConflict(ctx, room.ID, date, startTime, endTime)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}
		available = append(available, AvailableRoomInfo{
			RoomID:       room.ID,
			RoomNumber:   room.RoomNumber,
			BuildingName: room.BuildingName,
			RoomType:     room.RoomType,
			Capacity:     room.Capacity,
			Floor:        room.Floor,
			Description:  room.Description,
		})
	}

	if err := s.cache.Set(ctx, cacheKey, available, 0); err != nil {
		s.logger.Warn("failed to cache availability", zap.Error(err))
	}
	return available, nil
}

// IsRoomAvailable checks a single room. A missing room or one with its
// availability flag cleared reports unavailable before any conflict query
// runs.
func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (*RoomAvailabilityStatus, error) {
	if err := validateWindow(startTime, endTime); err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &RoomAvailabilityStatus{IsAvailable: false, Reason: "Room not found", Conflicts: []string{}}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	if !room.IsAvailable {
		return &RoomAvailabilityStatus{IsAvailable: false, Reason: "Room is marked as unavailable", Conflicts: []string{}}, nil
	}

	result, err := s.conflicts.FindConflicts(ctx, roomID, date, startTime, endTime)
	if err != nil {
		return nil, err
	}

	if result.HasConflict {
		conflicts := make([]string, 0, len(result.AcademicConflicts)+len(result.ReservationConflicts))
		conflicts = append(conflicts, result.AcademicConflicts...)
		conflicts = append(conflicts, result.ReservationConflicts...)
		return &RoomAvailabilityStatus{IsAvailable: false, Reason: "Room has conflicts", Conflicts: conflicts}, nil
	}

	return &RoomAvailabilityStatus{IsAvailable: true, Conflicts: []string{}}, nil
}

func availabilityCacheKey(date time.Time, startTime, endTime string, filter models.RoomFilter) string {
	return fmt.Sprintf("availability:%s:%s:%s:b=%s:t=%s:c=%d",
		date.Format("2006-01-02"), startTime, endTime, filter.BuildingID, filter.RoomType, filter.MinCapacity)
}
