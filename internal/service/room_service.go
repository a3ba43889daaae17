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

type roomStore interface {
	List(ctx context.Context, page, pageSize int) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

type roomBuildingReader interface {
	FindByID(ctx context.Context, id string) (*models.Building, error)
}

// RoomService manages the room catalog.
type RoomService struct {
	repo      roomStore
	buildings roomBuildingReader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService builds a RoomService with sane defaults.
func NewRoomService(repo roomStore, buildings roomBuildingReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, buildings: buildings, cache: cache, validator: validate, logger: logger}
}

// List returns rooms ordered by building and room number.
func (s *RoomService) List(ctx context.Context, pagination models.Pagination) ([]models.Room, *models.Pagination, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize < 1 || pagination.PageSize > 100 {
		pagination.PageSize = 20
	}

	items, total, err := s.repo.List(ctx, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	pagination.TotalCount = total
	return items, &pagination, nil
}

// Get returns one room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room not found: %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// Create registers a new room under an existing building.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room request")
	}

	roomType := models.RoomType(req.RoomType)
	if !roomType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown room type: %s", req.RoomType))
	}

	building, err := s.buildings.FindByID(ctx, req.BuildingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building not found: %s", req.BuildingID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	now := time.Now().UTC()
	room := &models.Room{
		ID:           uuid.NewString(),
		BuildingID:   building.ID,
		BuildingName: building.Name,
		RoomNumber:   req.RoomNumber,
		RoomType:     roomType,
		Capacity:     req.Capacity,
		Floor:        req.Floor,
		Description:  req.Description,
		IsAvailable:  available,
		HasProjector: req.HasProjector,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}

	s.invalidateAvailability(ctx)
	return room, nil
}

// Update edits a room's bookable attributes.
func (s *RoomService) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room update")
	}

	roomType := models.RoomType(req.RoomType)
	if !roomType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown room type: %s", req.RoomType))
	}

	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	room.RoomType = roomType
	room.Capacity = req.Capacity
	room.Floor = req.Floor
	room.Description = req.Description
	room.HasProjector = req.HasProjector
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	room.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}

	s.invalidateAvailability(ctx)
	return room, nil
}

// Delete removes a room from the catalog.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}

	s.invalidateAvailability(ctx)
	return nil
}

func (s *RoomService) invalidateAvailability(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
