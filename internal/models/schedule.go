package models

import "time"

// DayOfWeek enumerates the fixed Mon-Sun recurrence calendar.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// DayOfWeekFromDate maps a calendar date onto the recurrence enum. Dates are
// treated as naive calendar dates; no timezone conversion is applied.
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// AcademicSchedule is a recurring weekly occupancy block for a room. It recurs
// every week indefinitely; there is no date range.
type AcademicSchedule struct {
	ID           string    `db:"id" json:"id"`
	RoomID       string    `db:"room_id" json:"room_id"`
	CourseCode   string    `db:"course_code" json:"course_code"`
	CourseName   string    `db:"course_name" json:"course_name,omitempty"`
	DayOfWeek    DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	Semester     string    `db:"semester" json:"semester,omitempty"`
	AcademicYear string    `db:"academic_year" json:"academic_year,omitempty"`
	Instructor   string    `db:"instructor" json:"instructor,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
