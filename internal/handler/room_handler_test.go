package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/dto"
	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/service"
)

type roomServiceMock struct {
	rooms []models.Room
}

func (m *roomServiceMock) List(ctx context.Context, pagination models.Pagination) ([]models.Room, *models.Pagination, error) {
	pagination.TotalCount = len(m.rooms)
	return m.rooms, &pagination, nil
}

func (m *roomServiceMock) Get(ctx context.Context, id string) (*models.Room, error) {
	for _, r := range m.rooms {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (m *roomServiceMock) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	return &models.Room{ID: "new", RoomNumber: req.RoomNumber}, nil
}

func (m *roomServiceMock) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (*models.Room, error) {
	return &models.Room{ID: id}, nil
}

func (m *roomServiceMock) Delete(ctx context.Context, id string) error {
	return nil
}

type availabilityServiceMock struct {
	available  []service.AvailableRoomInfo
	status     *service.RoomAvailabilityStatus
	lastFilter models.RoomFilter
	err        error
}

func (m *availabilityServiceMock) FindAvailableRooms(ctx context.Context, date time.Time, startTime, endTime string, filter models.RoomFilter) ([]service.AvailableRoomInfo, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.available, nil
}

func (m *availabilityServiceMock) IsRoomAvailable(ctx context.Context, roomID string, date time.Time, startTime, endTime string) (*service.RoomAvailabilityStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func TestRoomHandlerAvailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	availability := &availabilityServiceMock{available: []service.AvailableRoomInfo{
		{RoomID: "r1", RoomNumber: "101", BuildingName: "Science"},
	}}
	handler := NewRoomHandler(&roomServiceMock{}, availability)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms/available?date=2025-03-03&startTime=09:00&endTime=11:00&buildingId=b1&minCapacity=30", nil)
	c.Request = req

	handler.Available(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoomFilter{BuildingID: "b1", MinCapacity: 30}, availability.lastFilter)

	var envelope struct {
		Data []service.AvailableRoomInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "101", envelope.Data[0].RoomNumber)
}

func TestRoomHandlerAvailableRejectsMissingWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoomHandler(&roomServiceMock{}, &availabilityServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms/available?date=2025-03-03", nil)
	c.Request = req

	handler.Available(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomHandlerAvailableRejectsUnknownRoomType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoomHandler(&roomServiceMock{}, &availabilityServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms/available?date=2025-03-03&startTime=09:00&endTime=11:00&roomType=BALLROOM", nil)
	c.Request = req

	handler.Available(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomHandlerAvailabilityStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	availability := &availabilityServiceMock{status: &service.RoomAvailabilityStatus{
		IsAvailable: false,
		Reason:      "Room has conflicts",
		Conflicts:   []string{"Course CS101 on MONDAY from 09:00 to 11:00"},
	}}
	handler := NewRoomHandler(&roomServiceMock{}, availability)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/rooms/r1/availability?date=2025-03-03&startTime=09:00&endTime=11:00", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "r1"}}

	handler.Availability(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.RoomAvailabilityStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.IsAvailable)
	assert.Equal(t, "Room has conflicts", envelope.Data.Reason)
	require.Len(t, envelope.Data.Conflicts, 1)
}
