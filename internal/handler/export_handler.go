package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/service"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type exportService interface {
	ReservationSchedule(ctx context.Context, startDate, endDate time.Time, format service.ExportFormat) (*service.ExportFile, error)
}

// ExportHandler streams rendered reservation schedule exports.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ReservationSchedule godoc
// @Summary Export the approved reservation schedule
// @Tags Exports
// @Produce octet-stream
// @Param startDate query string true "Range start (YYYY-MM-DD)"
// @Param endDate query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf (default csv)"
// @Success 200
// @Router /exports/reservations [get]
func (h *ExportHandler) ReservationSchedule(c *gin.Context) {
	startDate, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "startDate must use the YYYY-MM-DD format"))
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "endDate must use the YYYY-MM-DD format"))
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	file, err := h.exports.ReservationSchedule(c.Request.Context(), startDate, endDate, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
