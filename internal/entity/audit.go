package entity

import (
	"encoding/json"
	"time"
)

// AuditEntry is one append-only audit log record. Entries are written by
// every mutating operation and never read back programmatically; a failed
// write must not abort the operation that produced it.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Endpoint  string    `json:"endpoint"`
	Method    string    `json:"method"`
	Status    int       `json:"status"`
	UserID    int64     `json:"userId"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAuditEntry marshals details to JSON; marshal failures degrade to an
// empty detail payload rather than losing the entry.
func NewAuditEntry(action, endpoint, method string, status int, userID int64, details map[string]any) *AuditEntry {
	body, err := json.Marshal(details)
	if err != nil {
		body = []byte("{}")
	}
	return &AuditEntry{
		Action:   action,
		Endpoint: endpoint,
		Method:   method,
		Status:   status,
		UserID:   userID,
		Details:  string(body),
	}
}
