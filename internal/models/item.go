package models

import (
	"time"

	"github.com/google/uuid"
)

// Statuses shared by issues, escalations and faults. These items carry no
// approval gates; any status is settable through a generic update.
const (
	ItemStatusOpen       = "Open"
	ItemStatusInProgress = "In Progress"
	ItemStatusResolved   = "Resolved"
	ItemStatusClosed     = "Closed"
)

// Priorities shared across tracked items and actions.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

func IsValidItemStatus(s string) bool {
	switch s {
	case ItemStatusOpen, ItemStatusInProgress, ItemStatusResolved, ItemStatusClosed:
		return true
	}
	return false
}

// TrackedItem holds the columns common to issues, escalations and faults.
type TrackedItem struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	RaisedBy    *uuid.UUID `json:"raised_by,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Resolution  *string    `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Issue struct {
	TrackedItem
	Severity *string `json:"severity,omitempty"`
}

type Escalation struct {
	TrackedItem
	EscalatedTo     *uuid.UUID `json:"escalated_to,omitempty"`
	EscalationLevel int        `json:"escalation_level"`
}

type Fault struct {
	TrackedItem
	Severity   *string `json:"severity,omitempty"`
	RootCause  *string `json:"root_cause,omitempty"`
	DetectedIn *string `json:"detected_in,omitempty"`
}
