package models

import (
	"time"

	"github.com/google/uuid"
)

// Action statuses. Actions have no state machine; any status is settable
// at any time regardless of the parent's workflow state.
const (
	ActionStatusPending    = "Pending"
	ActionStatusInProgress = "In Progress"
	ActionStatusCompleted  = "Completed"
	ActionStatusCancelled  = "Cancelled"
)

func IsValidActionStatus(s string) bool {
	switch s {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted, ActionStatusCancelled:
		return true
	}
	return false
}

// Action is a sub-task attached to any tracked entity, keyed by
// (entity_type, entity_id).
type Action struct {
	ID          uuid.UUID  `json:"id"`
	EntityType  string     `json:"entity_type"`
	EntityID    uuid.UUID  `json:"entity_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
