package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Pipeline holds the fixed 12-step placement pipeline in order. Storage keeps
// stages unordered; this slice is the only source of ordering.
var Pipeline = []string{
	"Registration",
	"Academic Documents",
	"Medical Check",
	"Video CV",
	"IELTS Test",
	"Partner Submission",
	"Contract Processing",
	"Visa Processing",
	"Work Permit Processing",
	"Air Ticket",
	"Train Ticket",
	"Airport Transfer",
}

// CanonicalStageName resolves free-text input against the pipeline vocabulary
// case-insensitively and returns the canonical spelling.
func CanonicalStageName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, s := range Pipeline {
		if strings.EqualFold(s, trimmed) {
			return s, true
		}
	}
	return "", false
}

// StageNameEqual is the one canonical stage-name comparison: trimmed and
// case-insensitive.
func StageNameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

type Stage struct {
	ID          int64           `json:"id"`
	LeadID      int64           `json:"leadId"`
	StageName   string          `json:"stageName"`
	Completed   bool            `json:"completed"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Complete flips the stage to done. CompletedAt is set iff Completed is true.
func (s *Stage) Complete(now time.Time) {
	s.Completed = true
	s.CompletedAt = &now
}

// Revert clears completion state, used when a backing document is deleted.
func (s *Stage) Revert() {
	s.Completed = false
	s.CompletedAt = nil
}
