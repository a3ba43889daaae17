package dto

// CreateReservationRequest defines payload for requesting a room.
type CreateReservationRequest struct {
	RoomID            string `json:"roomId" validate:"required"`
	OrganizationName  string `json:"organizationName" validate:"required"`
	EventTitle        string `json:"eventTitle" validate:"required"`
	EventDate         string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime         string `json:"startTime" validate:"required"`
	EndTime           string `json:"endTime" validate:"required"`
	Purpose           string `json:"purpose"`
	ExpectedAttendees int    `json:"expectedAttendees" validate:"omitempty,min=1"`
}

// UpdateReservationRequest defines payload for editing a pending request.
// The approval workflow owns the status field, so it is never accepted here.
type UpdateReservationRequest struct {
	EventTitle        string `json:"eventTitle" validate:"required"`
	EventDate         string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime         string `json:"startTime" validate:"required"`
	EndTime           string `json:"endTime" validate:"required"`
	Purpose           string `json:"purpose"`
	ExpectedAttendees int    `json:"expectedAttendees" validate:"omitempty,min=1"`
}

// CheckConflictsRequest defines payload for a dry-run conflict lookup.
type CheckConflictsRequest struct {
	RoomID    string `json:"roomId" validate:"required"`
	EventDate string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ApprovalRequest defines payload for approve/reject/cancel transitions.
// Status names the target status for approve calls; when omitted the
// handler derives it from the caller's role.
type ApprovalRequest struct {
	Status   string `json:"status"`
	Comments string `json:"comments"`
	Reason   string `json:"reason"`
}
