package models

import "time"

// ApprovalLog is an append-only audit record of a reservation status
// transition. Rows are never mutated or deleted, and their lifetime is
// independent of the reservation they document.
type ApprovalLog struct {
	ID             string            `db:"id" json:"id"`
	ReservationID  string            `db:"reservation_id" json:"reservation_id"`
	PreviousStatus ReservationStatus `db:"previous_status" json:"previous_status"`
	NewStatus      ReservationStatus `db:"new_status" json:"new_status"`
	ApprovedBy     string            `db:"approved_by" json:"approved_by"`
	ApproverRole   UserRole          `db:"approver_role" json:"approver_role"`
	ApprovedAt     time.Time         `db:"approved_at" json:"approved_at"`
	Comments       string            `db:"comments" json:"comments,omitempty"`
}
