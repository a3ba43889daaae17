package models

import "time"

// ReservationStatus tracks an event reservation through its approval lifecycle.
// The status is the single source of truth for whether the reservation holds
// the room.
type ReservationStatus string

const (
	StatusPending         ReservationStatus = "PENDING"
	StatusAdvisorApproved ReservationStatus = "ADVISOR_APPROVED"
	StatusApproved        ReservationStatus = "APPROVED"
	StatusRejected        ReservationStatus = "REJECTED"
	StatusCancelled       ReservationStatus = "CANCELLED"
)

// Valid reports whether the value is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAdvisorApproved, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// OccupyingStatuses are the statuses under which a reservation blocks its room.
// REJECTED and CANCELLED reservations never occupy.
var OccupyingStatuses = []ReservationStatus{StatusPending, StatusAdvisorApproved, StatusApproved}

// EventReservation is a one-time occupancy request for a room.
type EventReservation struct {
	ID                string            `db:"id" json:"id"`
	RoomID            string            `db:"room_id" json:"room_id"`
	OrganizationName  string            `db:"organization_name" json:"organization_name"`
	EventTitle        string            `db:"event_title" json:"event_title"`
	EventDate         time.Time         `db:"event_date" json:"event_date"`
	StartTime         string            `db:"start_time" json:"start_time"`
	EndTime           string            `db:"end_time" json:"end_time"`
	Status            ReservationStatus `db:"status" json:"status"`
	RequestedBy       string            `db:"requested_by" json:"requested_by,omitempty"`
	RequestedAt       time.Time         `db:"requested_at" json:"requested_at"`
	ApprovedBy        string            `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt        *time.Time        `db:"approved_at" json:"approved_at,omitempty"`
	Purpose           string            `db:"purpose" json:"purpose,omitempty"`
	ExpectedAttendees int               `db:"expected_attendees" json:"expected_attendees,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}
