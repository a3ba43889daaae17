package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/chronos-room-api/internal/models"
)

const documentColumns = `id, reservation_id, document_type, file_path, file_name, file_size, uploaded_at, is_verified`

// DocumentRepository provides persistence for reservation documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListByReservation returns the documents attached to a reservation.
func (r *DocumentRepository) ListByReservation(ctx context.Context, reservationID string) ([]models.RequiredDocument, error) {
	query := fmt.Sprintf("SELECT %s FROM required_documents WHERE reservation_id = $1 ORDER BY uploaded_at DESC", documentColumns)
	var documents []models.RequiredDocument
	if err := r.db.SelectContext(ctx, &documents, query, reservationID); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

// FindByID loads a document by id.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.RequiredDocument, error) {
	query := fmt.Sprintf("SELECT %s FROM required_documents WHERE id = $1", documentColumns)
	var document models.RequiredDocument
	if err := r.db.GetContext(ctx, &document, query, id); err != nil {
		return nil, err
	}
	return &document, nil
}

// Create stores a new document record.
func (r *DocumentRepository) Create(ctx context.Context, document *models.RequiredDocument) error {
	if document.ID == "" {
		document.ID = uuid.NewString()
	}
	if document.UploadedAt.IsZero() {
		document.UploadedAt = time.Now().UTC()
	}

	const query = `INSERT INTO required_documents (id, reservation_id, document_type, file_path, file_name, file_size, uploaded_at, is_verified) VALUES (:id, :reservation_id, :document_type, :file_path, :file_name, :file_size, :uploaded_at, :is_verified)`
	if _, err := r.db.NamedExecContext(ctx, query, document); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Delete removes a document record by id.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM required_documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
