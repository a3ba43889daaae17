package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/service"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type documentService interface {
	ListByReservation(ctx context.Context, reservationID string) ([]models.RequiredDocument, error)
	Upload(ctx context.Context, reservationID, documentType, fileName string, size int64, r io.Reader) (*models.RequiredDocument, error)
	SignedDownloadURL(ctx context.Context, documentID string) (string, time.Time, error)
	ResolveDownload(ctx context.Context, token string) (*service.DocumentDownload, error)
	Delete(ctx context.Context, id string) error
}

// DocumentHandler exposes reservation document endpoints.
type DocumentHandler struct {
	documents documentService
}

// NewDocumentHandler builds a new handler.
func NewDocumentHandler(documents documentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// List godoc
// @Summary List documents of a reservation
// @Tags Documents
// @Produce json
// @Param id path string true "Reservation id"
// @Success 200 {object} response.Envelope
// @Router /reservations/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	items, err := h.documents.ListByReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Upload godoc
// @Summary Upload a supporting document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Reservation id"
// @Param documentType formData string true "Document type"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /reservations/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing document file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file"))
		return
	}
	defer file.Close()

	document, err := h.documents.Upload(c.Request.Context(), c.Param("id"), c.PostForm("documentType"), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, document)
}

// DownloadURL godoc
// @Summary Issue a signed download URL for a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} response.Envelope
// @Router /documents/{id}/download-url [get]
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	token, expiresAt, err := h.documents.SignedDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":        "/api/v1/documents/download?token=" + token,
		"expires_at": expiresAt,
	}, nil)
}

// Download godoc
// @Summary Download a document via signed token
// @Tags Documents
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200
// @Router /documents/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "download token is required"))
		return
	}

	download, err := h.documents.ResolveDownload(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(download.FilePath, download.Document.FileName)
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Param id path string true "Document id"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
