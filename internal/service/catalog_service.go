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

type buildingStore interface {
	List(ctx context.Context) ([]models.Building, error)
	FindByID(ctx context.Context, id string) (*models.Building, error)
	Create(ctx context.Context, building *models.Building) error
}

type organizationStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Organization, error)
	FindByID(ctx context.Context, id string) (*models.Organization, error)
	Create(ctx context.Context, organization *models.Organization) error
}

// BuildingService manages the building catalog.
type BuildingService struct {
	repo      buildingStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBuildingService builds a BuildingService with sane defaults.
func NewBuildingService(repo buildingStore, validate *validator.Validate, logger *zap.Logger) *BuildingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{repo: repo, validator: validate, logger: logger}
}

// List returns every building.
func (s *BuildingService) List(ctx context.Context) ([]models.Building, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
	}
	return items, nil
}

// Get returns one building by id.
func (s *BuildingService) Get(ctx context.Context, id string) (*models.Building, error) {
	building, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("building not found: %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load building")
	}
	return building, nil
}

// Create registers a building.
func (s *BuildingService) Create(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid building request")
	}

	now := time.Now().UTC()
	building := &models.Building{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Location:  req.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create building")
	}
	return building, nil
}

// OrganizationService manages requesting organizations.
type OrganizationService struct {
	repo      organizationStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrganizationService builds an OrganizationService with sane defaults.
func NewOrganizationService(repo organizationStore, validate *validator.Validate, logger *zap.Logger) *OrganizationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrganizationService{repo: repo, validator: validate, logger: logger}
}

// List returns organizations, optionally limited to active ones.
func (s *OrganizationService) List(ctx context.Context, activeOnly bool) ([]models.Organization, error) {
	items, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list organizations")
	}
	return items, nil
}

// Get returns one organization by id.
func (s *OrganizationService) Get(ctx context.Context, id string) (*models.Organization, error) {
	organization, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("organization not found: %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load organization")
	}
	return organization, nil
}

// Create registers an organization in active state.
func (s *OrganizationService) Create(ctx context.Context, req dto.CreateOrganizationRequest) (*models.Organization, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid organization request")
	}

	now := time.Now().UTC()
	organization := &models.Organization{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		Department:   req.Department,
		IsActive:     true,
		AdvisorName:  req.AdvisorName,
		MemberCount:  req.MemberCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, organization); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create organization")
	}
	return organization, nil
}
