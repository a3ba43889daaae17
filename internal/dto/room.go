package dto

// AvailabilityQuery carries the search window and optional room filters for
// availability lookups.
type AvailabilityQuery struct {
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `form:"startTime" validate:"required"`
	EndTime     string `form:"endTime" validate:"required"`
	BuildingID  string `form:"buildingId"`
	RoomType    string `form:"roomType"`
	MinCapacity int    `form:"minCapacity" validate:"omitempty,min=0"`
}

// RoomAvailabilityQuery carries the window for a single-room status check.
type RoomAvailabilityQuery struct {
	Date      string `form:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `form:"startTime" validate:"required"`
	EndTime   string `form:"endTime" validate:"required"`
}

// CreateRoomRequest defines payload for registering a room.
type CreateRoomRequest struct {
	BuildingID   string `json:"buildingId" validate:"required"`
	RoomNumber   string `json:"roomNumber" validate:"required"`
	RoomType     string `json:"roomType" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	Floor        int    `json:"floor"`
	Description  string `json:"description"`
	HasProjector bool   `json:"hasProjector"`
	IsAvailable  *bool  `json:"isAvailable"`
}

// UpdateRoomRequest defines payload for editing a room.
type UpdateRoomRequest struct {
	RoomType     string `json:"roomType" validate:"required"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	Floor        int    `json:"floor"`
	Description  string `json:"description"`
	HasProjector bool   `json:"hasProjector"`
	IsAvailable  *bool  `json:"isAvailable"`
}
