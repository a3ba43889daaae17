package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

const organizationColumns = `id, name, description, contact_email, department, is_active, advisor_name, member_count, created_at, updated_at`

// OrganizationRepository provides persistence for organizations.
type OrganizationRepository struct {
	db *sqlx.DB
}

// NewOrganizationRepository creates a new organization repository.
func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// List returns organizations, optionally restricted to active ones.
func (r *OrganizationRepository) List(ctx context.Context, activeOnly bool) ([]models.Organization, error) {
	query := fmt.Sprintf("SELECT %s FROM organizations", organizationColumns)
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	var organizations []models.Organization
	if err := r.db.SelectContext(ctx, &organizations, query); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return organizations, nil
}

// FindByID loads an organization by id.
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*models.Organization, error) {
	query := fmt.Sprintf("SELECT %s FROM organizations WHERE id = $1", organizationColumns)
	var organization models.Organization
	if err := r.db.GetContext(ctx, &organization, query, id); err != nil {
		return nil, err
	}
	return &organization, nil
}

// Create stores a new organization record.
func (r *OrganizationRepository) Create(ctx context.Context, organization *models.Organization) error {
	if organization.ID == "" {
		organization.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if organization.CreatedAt.IsZero() {
		organization.CreatedAt = now
	}
	organization.UpdatedAt = now

	const query = `INSERT INTO organizations (id, name, description, contact_email, department, is_active, advisor_name, member_count, created_at, updated_at) VALUES (:id, :name, :description, :contact_email, :department, :is_active, :advisor_name, :member_count, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, organization); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	return nil
}
