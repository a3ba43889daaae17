package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

// BuildingRepository provides persistence for buildings.
type BuildingRepository struct {
	db *sqlx.DB
}

// NewBuildingRepository creates a new building repository.
func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// List returns all buildings ordered by name.
func (r *BuildingRepository) List(ctx context.Context) ([]models.Building, error) {
	const query = `SELECT id, name, location, created_at, updated_at FROM buildings ORDER BY name ASC`
	var buildings []models.Building
	if err := r.db.SelectContext(ctx, &buildings, query); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

// FindByID loads a building by id.
func (r *BuildingRepository) FindByID(ctx context.Context, id string) (*models.Building, error) {
	const query = `SELECT id, name, location, created_at, updated_at FROM buildings WHERE id = $1`
	var building models.Building
	if err := r.db.GetContext(ctx, &building, query, id); err != nil {
		return nil, err
	}
	return &building, nil
}

// Create stores a new building record.
func (r *BuildingRepository) Create(ctx context.Context, building *models.Building) error {
	if building.ID == "" {
		building.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if building.CreatedAt.IsZero() {
		building.CreatedAt = now
	}
	building.UpdatedAt = now

	const query = `INSERT INTO buildings (id, name, location, created_at, updated_at) VALUES (:id, :name, :location, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, building); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}
