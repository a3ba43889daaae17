package models

import "time"

// Organization is a student group or department that requests reservations.
type Organization struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description,omitempty"`
	ContactEmail string    `db:"contact_email" json:"contact_email,omitempty"`
	Department   string    `db:"department" json:"department,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	AdvisorName  string    `db:"advisor_name" json:"advisor_name,omitempty"`
	MemberCount  int       `db:"member_count" json:"member_count,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
