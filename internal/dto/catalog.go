package dto

// CreateBuildingRequest defines payload for registering a building.
type CreateBuildingRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

// CreateOrganizationRequest defines payload for registering an organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Department   string `json:"department"`
	AdvisorName  string `json:"advisorName"`
	MemberCount  int    `json:"memberCount" validate:"omitempty,min=0"`
}

// CreateScheduleRequest defines payload for registering a recurring
// academic occupancy block.
type CreateScheduleRequest struct {
	RoomID       string `json:"roomId" validate:"required"`
	CourseCode   string `json:"courseCode" validate:"required"`
	CourseName   string `json:"courseName"`
	DayOfWeek    string `json:"dayOfWeek" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	Semester     string `json:"semester"`
	AcademicYear string `json:"academicYear"`
	Instructor   string `json:"instructor"`
}
