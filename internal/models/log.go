package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity types that carry logs and actions.
const (
	EntityTypeIssue      = "issue"
	EntityTypeRisk       = "risk"
	EntityTypeChange     = "change"
	EntityTypeEscalation = "escalation"
	EntityTypeFault      = "fault"
)

func IsValidEntityType(s string) bool {
	switch s {
	case EntityTypeIssue, EntityTypeRisk, EntityTypeChange, EntityTypeEscalation, EntityTypeFault:
		return true
	}
	return false
}

// Log entry types
const (
	LogTypeStatusChange = "Status Change"
	LogTypeComment      = "Comment"
)

// EntityLog is one append-only row in an entity's history. Rows are never
// updated or deleted within the parent's lifetime; deleting the parent
// cascades to its log.
type EntityLog struct {
	ID             uuid.UUID  `json:"id"`
	EntityType     string     `json:"entity_type"`
	EntityID       uuid.UUID  `json:"entity_id"`
	LogType        string     `json:"log_type"`
	PreviousStatus *string    `json:"previous_status,omitempty"`
	NewStatus      *string    `json:"new_status,omitempty"`
	Comments       *string    `json:"comments,omitempty"`
	LoggedBy       *uuid.UUID `json:"logged_by,omitempty"`
	LogDate        time.Time  `json:"log_date"`
}

// ReplayStatus reconstructs the current status from log entries ordered
// oldest-first. Comment rows are skipped.
func ReplayStatus(initial string, entries []EntityLog) string {
	status := initial
	for _, e := range entries {
		if e.LogType != LogTypeStatusChange || e.NewStatus == nil {
			continue
		}
		status = *e.NewStatus
	}
	return status
}
