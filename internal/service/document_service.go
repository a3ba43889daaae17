package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/storage"
)

type documentStore interface {
	ListByReservation(ctx context.Context, reservationID string) ([]models.RequiredDocument, error)
	FindByID(ctx context.Context, id string) (*models.RequiredDocument, error)
	Create(ctx context.Context, document *models.RequiredDocument) error
	Delete(ctx context.Context, id string) error
}

type documentReservationReader interface {
	FindByID(ctx context.Context, id string) (*models.EventReservation, error)
}

// DocumentDownload resolves a verified signed token to the stored file.
type DocumentDownload struct {
	Document *models.RequiredDocument
	FilePath string
}

// DocumentService stores supporting documents for reservations on local disk
// and hands out time-limited signed download tokens instead of raw paths.
type DocumentService struct {
	repo         documentStore
	reservations documentReservationReader
	files        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	maxFileSize  int64
	logger       *zap.Logger
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(repo documentStore, reservations documentReservationReader, files *storage.LocalStorage, signer *storage.SignedURLSigner, maxFileSize int64, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{repo: repo, reservations: reservations, files: files, signer: signer, maxFileSize: maxFileSize, logger: logger}
}

// ListByReservation returns the documents attached to a reservation.
func (s *DocumentService) ListByReservation(ctx context.Context, reservationID string) ([]models.RequiredDocument, error) {
	if _, err := s.findReservation(ctx, reservationID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	return items, nil
}

// Upload stores a file for a reservation and records its metadata. Files over
// the configured size limit are rejected before anything touches disk.
func (s *DocumentService) Upload(ctx context.Context, reservationID, documentType, fileName string, size int64, r io.Reader) (*models.RequiredDocument, error) {
	if documentType == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "document type is required")
	}
	if fileName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file name is required")
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return nil, appErrors.ErrFileTooLarge
	}

	if _, err := s.findReservation(ctx, reservationID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	relPath := filepath.Join(reservationID, id+filepath.Ext(fileName))

	limited := io.Reader(r)
	if s.maxFileSize > 0 {
		limited = io.LimitReader(r, s.maxFileSize+1)
	}
	stored, err := s.files.SaveStream(relPath, limited)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}

	document := &models.RequiredDocument{
		ID:            id,
		ReservationID: reservationID,
		DocumentType:  documentType,
		FilePath:      stored,
		FileName:      fileName,
		FileSize:      size,
		UploadedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, document); err != nil {
		if removeErr := s.files.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned document file", zap.String("path", relPath), zap.Error(removeErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record document")
	}

	return document, nil
}

// SignedDownloadURL issues a time-limited token for downloading a document.
func (s *DocumentService) SignedDownloadURL(ctx context.Context, documentID string) (string, time.Time, error) {
	document, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("document not found: %s", documentID))
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}

	token, expiresAt, err := s.signer.Generate(document.ID, document.FilePath)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// ResolveDownload verifies a signed token and returns the stored file path.
func (s *DocumentService) ResolveDownload(ctx context.Context, token string) (*DocumentDownload, error) {
	documentID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	document, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("document not found: %s", documentID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	if document.FilePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	return &DocumentDownload{Document: document, FilePath: s.files.Path(relPath)}, nil
}

// Delete removes a document record and its stored file.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("document not found: %s", id))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document")
	}
	if err := s.files.Delete(document.FilePath); err != nil {
		s.logger.Warn("failed to remove document file", zap.String("path", document.FilePath), zap.Error(err))
	}
	return nil
}

func (s *DocumentService) findReservation(ctx context.Context, id string) (*models.EventReservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("reservation not found: %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}
	return reservation, nil
}
