package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/service"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/response"
)

type roomService interface {
	List(ctx context.Context, pagination models.Pagination) ([]models.Room, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

type availabilityService interface {
	FindAvailableRooms(ctx context.Context, date time.Time, startTime, endTime string, filter models.RoomFilter) ([]service.AvailableRoomInfo, error)
	IsRoomAvailable(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (*service.RoomAvailabilityStatus, error)
}

// RoomHandler exposes room catalog and availability endpoints.
type RoomHandler struct {
	rooms        roomService
	availability availabilityService
}

// NewRoomHandler builds a new handler.
func NewRoomHandler(rooms roomService, availability availabilityService) *RoomHandler {
	return &RoomHandler{rooms: rooms, availability: availability}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	pagination := paginationFromQuery(c)
	items, page, err := h.rooms.List(c.Request.Context(), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, page)
}

// Get godoc
// @Summary Get room by id
// @Tags Rooms
// @Produce json
// @Param id path string true "Room id"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Create godoc
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room id"
// @Param payload body dto.UpdateRoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Delete godoc
// @Summary Delete room
// @Tags Rooms
// @Param id path string true "Room id"
// @Success 204
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Available godoc
// @Summary Find available rooms for a window
// @Tags Availability
// @Produce json
// @Param date query string true "Event date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:MM)"
// @Param endTime query string true "End time (HH:MM)"
// @Param buildingId query string false "Building filter"
// @Param roomType query string false "Room type filter"
// @Param minCapacity query int false "Minimum capacity filter"
// @Success 200 {object} response.Envelope
// @Router /rooms/available [get]
func (h *RoomHandler) Available(c *gin.Context) {
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability query"))
		return
	}

	date, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format"))
		return
	}
	if query.RoomType != "" && !models.RoomType(query.RoomType).Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown room type: "+query.RoomType))
		return
	}

	filter := models.RoomFilter{
		BuildingID:  query.BuildingID,
		RoomType:    models.RoomType(query.RoomType),
		MinCapacity: query.MinCapacity,
	}
	rooms, err := h.availability.FindAvailableRooms(c.Request.Context(), date, query.StartTime, query.EndTime, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Availability godoc
// @Summary Check one room's availability for a window
// @Tags Availability
// @Produce json
// @Param id path string true "Room id"
// @Param date query string true "Event date (YYYY-MM-DD)"
// @Param startTime query string true "Start time (HH:MM)"
// @Param endTime query string true "End time (HH:MM)"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	var query dto.RoomAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability query"))
		return
	}

	date, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format"))
		return
	}

	status, err := h.availability.IsRoomAvailable(c.Request.Context(), c.Param("id"), date, query.StartTime, query.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}
