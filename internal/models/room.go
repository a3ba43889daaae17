package models

import "time"

// RoomType categorises rooms for filtering and booking policies.
type RoomType string

const (
	RoomTypeClassroom   RoomType = "CLASSROOM"
	RoomTypeLaboratory  RoomType = "LABORATORY"
	RoomTypeAuditorium  RoomType = "AUDITORIUM"
	RoomTypeSeminarRoom RoomType = "SEMINAR_ROOM"
	RoomTypeMeetingRoom RoomType = "MEETING_ROOM"
)

// Valid reports whether the value is a known room type.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeClassroom, RoomTypeLaboratory, RoomTypeAuditorium, RoomTypeSeminarRoom, RoomTypeMeetingRoom:
		return true
	}
	return false
}

// Room is a bookable space. Every room belongs to exactly one building.
type Room struct {
	ID           string    `db:"id" json:"id"`
	BuildingID   string    `db:"building_id" json:"building_id"`
	BuildingName string    `db:"building_name" json:"building_name,omitempty"`
	RoomNumber   string    `db:"room_number" json:"room_number"`
	RoomType     RoomType  `db:"room_type" json:"room_type"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Floor        int       `db:"floor" json:"floor"`
	Description  string    `db:"description" json:"description,omitempty"`
	IsAvailable  bool      `db:"is_available" json:"is_available"`
	HasProjector bool      `db:"has_projector" json:"has_projector"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures static candidate filters applied before conflict testing.
// Combinations are mutually exclusive and resolved in a fixed precedence order:
// building+type, building, type, minimum capacity, then all available rooms.
type RoomFilter struct {
	BuildingID  string
	RoomType    RoomType
	MinCapacity int
}
