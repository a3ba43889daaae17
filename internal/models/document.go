package models

import "time"

// RequiredDocument is a supporting file attached to a reservation request,
// stored on local disk and downloaded through signed URLs.
type RequiredDocument struct {
	ID            string    `db:"id" json:"id"`
	ReservationID string    `db:"reservation_id" json:"reservation_id"`
	DocumentType  string    `db:"document_type" json:"document_type"`
	FilePath      string    `db:"file_path" json:"-"`
	FileName      string    `db:"file_name" json:"file_name"`
	FileSize      int64     `db:"file_size" json:"file_size"`
	UploadedAt    time.Time `db:"uploaded_at" json:"uploaded_at"`
	IsVerified    bool      `db:"is_verified" json:"is_verified"`
}
