package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/workflow"
)

// Change statuses
const (
	ChangeStatusRequested   = "Requested"
	ChangeStatusUnderReview = "Under Review"
	ChangeStatusApproved    = "Approved"
	ChangeStatusRejected    = "Rejected"
	ChangeStatusImplemented = "Implemented"
	ChangeStatusClosed      = "Closed"
)

// ChangeWorkflow governs the change approval lifecycle. A rejected change
// is terminal for that review cycle but may be resubmitted for review.
// Closed is reached only through the closure approval sub-flow; the
// closure request itself does not move the status off Implemented.
var ChangeWorkflow = workflow.Definition{
	Entity:   "change",
	Initial:  ChangeStatusRequested,
	Terminal: []string{ChangeStatusClosed},
	Transitions: map[string][]string{
		ChangeStatusRequested:   {ChangeStatusUnderReview},
		ChangeStatusUnderReview: {ChangeStatusApproved, ChangeStatusRejected},
		ChangeStatusApproved:    {ChangeStatusImplemented},
		ChangeStatusRejected:    {ChangeStatusUnderReview},
		ChangeStatusImplemented: {ChangeStatusClosed},
		ChangeStatusClosed:      {},
	},
	Gated: []string{ChangeStatusApproved, ChangeStatusClosed},
}

type Change struct {
	ID                    uuid.UUID  `json:"id"`
	ProjectID             uuid.UUID  `json:"project_id"`
	Title                 string     `json:"title"`
	Description           *string    `json:"description,omitempty"`
	Status                string     `json:"status"`
	Priority              string     `json:"priority"`
	RequestedBy           *uuid.UUID `json:"requested_by,omitempty"`
	ApprovedBy            *uuid.UUID `json:"approved_by,omitempty"`
	RejectedBy            *uuid.UUID `json:"rejected_by,omitempty"`
	RequestDate           *time.Time `json:"request_date,omitempty"`
	ApprovalDate          *time.Time `json:"approval_date,omitempty"`
	ImplementationDate    *time.Time `json:"implementation_date,omitempty"`
	ClosureDate           *time.Time `json:"closure_date,omitempty"`
	ApprovalJustification *string    `json:"approval_justification,omitempty"`
	ApprovalComments      *string    `json:"approval_comments,omitempty"`
	RejectionReason       *string    `json:"rejection_reason,omitempty"`
	ImplementationSummary *string    `json:"implementation_summary,omitempty"`
	ClosurePending        bool       `json:"closure_pending"`
	ClosureRequestedBy    *uuid.UUID `json:"closure_requested_by,omitempty"`
	ClosureJustification  *string    `json:"closure_justification,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NextStep is the hint string returned with every workflow response.
func (c *Change) NextStep() string {
	switch c.Status {
	case ChangeStatusRequested:
		return "submit the change for approval"
	case ChangeStatusUnderReview:
		return "awaiting approval decision"
	case ChangeStatusApproved:
		return "implement the change and set status to Implemented"
	case ChangeStatusRejected:
		return "revise the request and resubmit for approval"
	case ChangeStatusImplemented:
		if c.ClosurePending {
			return "awaiting closure decision"
		}
		return "request closure"
	case ChangeStatusClosed:
		return "no further action"
	}
	return ""
}
