package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/workflow"
)

// Workflow operations on Change. Each method validates the guard, mutates
// the struct and returns the single log row the transition produces. The
// caller persists both inside one transaction; on error the struct must be
// discarded.

func (c *Change) statusChangeLog(prev string, actor uuid.UUID, comments string) *EntityLog {
	entry := &EntityLog{
		EntityType:     EntityTypeChange,
		EntityID:       c.ID,
		LogType:        LogTypeStatusChange,
		PreviousStatus: &prev,
		NewStatus:      &c.Status,
		LoggedBy:       &actor,
	}
	if comments != "" {
		entry.Comments = &comments
	}
	return entry
}

// RequestApproval moves Requested (or Rejected, on resubmit) to Under Review.
func (c *Change) RequestApproval(actor uuid.UUID, justification string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("approval_justification", justification); err != nil {
		return nil, err
	}
	if err := ChangeWorkflow.Step("request-approval", c.Status, ChangeStatusUnderReview); err != nil {
		return nil, err
	}

	prev := c.Status
	c.Status = ChangeStatusUnderReview
	c.RequestedBy = &actor
	c.RequestDate = &now
	c.ApprovalJustification = &justification
	c.RejectedBy = nil
	c.RejectionReason = nil
	return c.statusChangeLog(prev, actor, justification), nil
}

// Approve moves Under Review to Approved. The approver must not be the
// requester: approval is a second pair of eyes.
func (c *Change) Approve(actor uuid.UUID, comments string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("approval_comments", comments); err != nil {
		return nil, err
	}
	if err := ChangeWorkflow.Step("approve", c.Status, ChangeStatusApproved); err != nil {
		return nil, err
	}
	if c.RequestedBy != nil && *c.RequestedBy == actor {
		return nil, apperr.Validation("approved_by", "cannot approve own request")
	}

	prev := c.Status
	c.Status = ChangeStatusApproved
	c.ApprovedBy = &actor
	c.ApprovalDate = &now
	c.ApprovalComments = &comments
	return c.statusChangeLog(prev, actor, comments), nil
}

// Reject moves Under Review to Rejected. The change may be resubmitted.
func (c *Change) Reject(actor uuid.UUID, reason string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("rejection_reason", reason); err != nil {
		return nil, err
	}
	if err := ChangeWorkflow.Step("reject", c.Status, ChangeStatusRejected); err != nil {
		return nil, err
	}

	prev := c.Status
	c.Status = ChangeStatusRejected
	c.RejectedBy = &actor
	c.RejectionReason = &reason
	return c.statusChangeLog(prev, actor, reason), nil
}

// MarkImplemented is the one status change a generic update may perform:
// Approved to Implemented, stamping the implementation date.
func (c *Change) MarkImplemented(actor uuid.UUID, summary string, now time.Time) (*EntityLog, error) {
	if err := ChangeWorkflow.Step("mark-implemented", c.Status, ChangeStatusImplemented); err != nil {
		return nil, err
	}

	prev := c.Status
	c.Status = ChangeStatusImplemented
	c.ImplementationDate = &now
	if summary != "" {
		c.ImplementationSummary = &summary
	}
	return c.statusChangeLog(prev, actor, summary), nil
}

// RequestClosure flags an Implemented change as pending closure. The
// primary status does not move; only approving closure sets Closed.
func (c *Change) RequestClosure(actor uuid.UUID, justification string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("closure_justification", justification); err != nil {
		return nil, err
	}
	if err := ChangeWorkflow.RequireStatus("request-closure", c.Status, ChangeStatusImplemented); err != nil {
		return nil, err
	}
	if c.ClosurePending {
		return nil, apperr.InvalidState("change", "request-closure", c.Status, "")
	}

	c.ClosurePending = true
	c.ClosureRequestedBy = &actor
	c.ClosureJustification = &justification
	entry := c.statusChangeLog(c.Status, actor, "closure requested: "+justification)
	return entry, nil
}

// ApproveClosure is the only transition that sets Closed.
func (c *Change) ApproveClosure(actor uuid.UUID, comments string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("approval_comments", comments); err != nil {
		return nil, err
	}
	if !c.ClosurePending {
		return nil, apperr.InvalidState("change", "approve-closure", c.Status, ChangeStatusClosed)
	}
	if err := ChangeWorkflow.Step("approve-closure", c.Status, ChangeStatusClosed); err != nil {
		return nil, err
	}
	if c.ClosureRequestedBy != nil && *c.ClosureRequestedBy == actor {
		return nil, apperr.Validation("approved_by", "cannot approve own closure request")
	}

	prev := c.Status
	c.Status = ChangeStatusClosed
	c.ClosurePending = false
	c.ClosureDate = &now
	return c.statusChangeLog(prev, actor, comments), nil
}

// RejectClosure clears the pending flag; the change stays Implemented and
// closure may be requested again.
func (c *Change) RejectClosure(actor uuid.UUID, reason string) (*EntityLog, error) {
	if err := workflow.RequireText("rejection_reason", reason); err != nil {
		return nil, err
	}
	if !c.ClosurePending {
		return nil, apperr.InvalidState("change", "reject-closure", c.Status, "")
	}

	c.ClosurePending = false
	c.ClosureRequestedBy = nil
	c.ClosureJustification = nil
	entry := c.statusChangeLog(c.Status, actor, "closure rejected: "+reason)
	return entry, nil
}

// ChangeUpdate carries the fields a generic update may touch.
type ChangeUpdate struct {
	Title                 *string
	Description           *string
	Priority              *string
	Status                *string
	ImplementationSummary *string
}

// ApplyUpdate performs a generic field edit. Status changes through this
// path are refused except the Approved -> Implemented edge; gated statuses
// surface the direct-mutation policy error. A Closed change refuses all
// workflow-field mutation.
func (c *Change) ApplyUpdate(actor uuid.UUID, upd ChangeUpdate, now time.Time) (*EntityLog, error) {
	if c.Status == ChangeStatusClosed {
		return nil, apperr.InvalidState("change", "update", c.Status, "")
	}

	var entry *EntityLog
	if upd.Status != nil && *upd.Status != c.Status {
		target := *upd.Status
		switch {
		case !ChangeWorkflow.ValidStatus(target):
			return nil, apperr.Validation("status", "unknown status "+target)
		case ChangeWorkflow.IsGated(target):
			return nil, apperr.ErrDirectMutation
		case target == ChangeStatusImplemented:
			summary := ""
			if upd.ImplementationSummary != nil {
				summary = *upd.ImplementationSummary
			}
			var err error
			entry, err = c.MarkImplemented(actor, summary, now)
			if err != nil {
				return nil, err
			}
		default:
			// Requested, Under Review and Rejected are owned by the
			// request/approve/reject operations.
			return nil, apperr.ErrDirectMutation
		}
	}

	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = upd.Description
	}
	if upd.Priority != nil {
		c.Priority = *upd.Priority
	}
	return entry, nil
}
