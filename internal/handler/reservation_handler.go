package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/service"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type reservationService interface {
	List(ctx context.Context, pagination models.Pagination) ([]models.EventReservation, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.EventReservation, error)
	ListByStatus(ctx context.Context, status models.ReservationStatus) ([]models.EventReservation, error)
	ListByOrganization(ctx context.Context, organizationName string) ([]models.EventReservation, error)
	Upcoming(ctx context.Context, days int) ([]models.EventReservation, error)
	CheckConflicts(ctx context.Context, req dto.CheckConflictsRequest) (*service.ConflictResult, error)
	Create(ctx context.Context, req dto.CreateReservationRequest, requestedBy string) (*models.EventReservation, *service.ConflictResult, error)
	Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (*models.EventReservation, *service.ConflictResult, error)
	Delete(ctx context.Context, id string) error
}

// ReservationHandler exposes reservation request endpoints.
type ReservationHandler struct {
	reservations reservationService
}

// NewReservationHandler builds a new handler.
func NewReservationHandler(reservations reservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// List godoc
// @Summary List reservations
// @Tags Reservations
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Param status query string false "Status filter"
// @Param organization query string false "Organization filter"
// @Success 200 {object} response.Envelope
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		items, err := h.reservations.ListByStatus(c.Request.Context(), models.ReservationStatus(status))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, items, nil)
		return
	}
	if organization := c.Query("organization"); organization != "" {
		items, err := h.reservations.ListByOrganization(c.Request.Context(), organization)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, items, nil)
		return
	}

	items, page, err := h.reservations.List(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, page)
}

// Get godoc
// @Summary Get reservation by id
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation id"
// @Success 200 {object} response.Envelope
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	reservation, err := h.reservations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reservation, nil)
}

// Upcoming godoc
// @Summary List upcoming approved reservations
// @Tags Reservations
// @Produce json
// @Param days query int false "Days ahead (default 7)"
// @Success 200 {object} response.Envelope
// @Router /reservations/upcoming [get]
func (h *ReservationHandler) Upcoming(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	items, err := h.reservations.Upcoming(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CheckConflicts godoc
// @Summary Dry-run conflict check for a window
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.CheckConflictsRequest true "Conflict check payload"
// @Success 200 {object} response.Envelope
// @Router /reservations/check-conflicts [post]
func (h *ReservationHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict check payload"))
		return
	}
	result, err := h.reservations.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Create reservation request
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.CreateReservationRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reservation payload"))
		return
	}

	requestedBy := ""
	if claims := claimsFromContext(c); claims != nil {
		requestedBy = claims.UserID
	}

	reservation, conflicts, err := h.reservations.Create(c.Request.Context(), req, requestedBy)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrRoomOccupied.Code {
			c.JSON(http.StatusConflict, response.Envelope{
				Error: appErr,
				Meta:  map[string]interface{}{"conflicts": conflicts},
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, reservation)
}

// Update godoc
// @Summary Update a pending reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation id"
// @Param payload body dto.UpdateReservationRequest true "Reservation payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reservation payload"))
		return
	}

	reservation, conflicts, err := h.reservations.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrRoomOccupied.Code {
			c.JSON(http.StatusConflict, response.Envelope{
				Error: appErr,
				Meta:  map[string]interface{}{"conflicts": conflicts},
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reservation, nil)
}

// Delete godoc
// @Summary Delete reservation
// @Tags Reservations
// @Param id path string true "Reservation id"
// @Success 204
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	if err := h.reservations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
