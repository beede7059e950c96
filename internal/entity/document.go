package entity

import "time"

// Document is one uploaded file bound to a lead. At most one document may
// exist per (lead, type); the registry enforces it both by pre-check and by
// the storage unique constraint.
type Document struct {
	ID         int64     `json:"id"`
	LeadID     int64     `json:"leadId"`
	Type       string    `json:"type"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}
