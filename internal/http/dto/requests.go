package dto

import (
	"time"

	"github.com/google/uuid"
)

// Auth

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Projects

type CreateProjectRequest struct {
	Code        string     `json:"code" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description,omitempty"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type UpdateProjectRequest struct {
	Code        string     `json:"code" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description,omitempty"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof='Active' 'On Hold' 'Closed'"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Changes

type CreateChangeRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
}

// UpdateChangeRequest is the generic edit. Status is accepted here only so
// the mark-implemented transition can run through it; gated statuses are
// refused by the workflow guard, not silently dropped.
type UpdateChangeRequest struct {
	Title                 *string `json:"title,omitempty"`
	Description           *string `json:"description,omitempty"`
	Priority              *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Status                *string `json:"status,omitempty"`
	ImplementationSummary *string `json:"implementation_summary,omitempty"`
}

type RequestApprovalRequest struct {
	ApprovalJustification string `json:"approval_justification" validate:"required"`
}

type ApproveRequest struct {
	ApprovalComments string `json:"approval_comments" validate:"required"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
}

type RequestClosureRequest struct {
	ClosureJustification string `json:"closure_justification" validate:"required"`
}

// Risks

type CreateRiskRequest struct {
	ProjectID      uuid.UUID  `json:"project_id" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	Description    *string    `json:"description,omitempty"`
	Probability    int        `json:"probability" validate:"required,min=1,max=5"`
	Impact         int        `json:"impact" validate:"required,min=1,max=5"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
	MitigationPlan *string    `json:"mitigation_plan,omitempty"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
}

type UpdateRiskRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Probability    *int       `json:"probability,omitempty" validate:"omitempty,min=1,max=5"`
	Impact         *int       `json:"impact,omitempty" validate:"omitempty,min=1,max=5"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
	MitigationPlan *string    `json:"mitigation_plan,omitempty"`
	TargetDate     *time.Time `json:"target_date,omitempty"`
}

// Issues / escalations / faults

type CreateIssueRequest struct {
	ProjectID   uuid.UUID  `json:"project_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Severity    *string    `json:"severity,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateIssueRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status" validate:"required"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Severity    *string    `json:"severity,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Resolution  *string    `json:"resolution,omitempty"`
}

type CreateEscalationRequest struct {
	ProjectID       uuid.UUID  `json:"project_id" validate:"required"`
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description,omitempty"`
	Priority        string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	EscalatedTo     *uuid.UUID `json:"escalated_to,omitempty"`
	EscalationLevel int        `json:"escalation_level,omitempty" validate:"omitempty,min=1,max=5"`
	AssignedTo      *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

type UpdateEscalationRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description,omitempty"`
	Status          string     `json:"status" validate:"required"`
	Priority        string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	EscalatedTo     *uuid.UUID `json:"escalated_to,omitempty"`
	EscalationLevel int        `json:"escalation_level,omitempty" validate:"omitempty,min=1,max=5"`
	AssignedTo      *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Resolution      *string    `json:"resolution,omitempty"`
}

type CreateFaultRequest struct {
	ProjectID   uuid.UUID  `json:"project_id" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Severity    *string    `json:"severity,omitempty"`
	DetectedIn  *string    `json:"detected_in,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateFaultRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status" validate:"required"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
	Severity    *string    `json:"severity,omitempty"`
	RootCause   *string    `json:"root_cause,omitempty"`
	DetectedIn  *string    `json:"detected_in,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Resolution  *string    `json:"resolution,omitempty"`
}

// Actions

type CreateActionRequest struct {
	Description string     `json:"description" validate:"required"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Completed Cancelled"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
}

type UpdateActionRequest struct {
	Description string     `json:"description" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=Pending 'In Progress' Completed Cancelled"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Critical"`
}

// Log

type CommentRequest struct {
	Comments string `json:"comments" validate:"required"`
}
