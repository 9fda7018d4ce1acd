package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/apperr"
	"github.com/pmtrack/backend/internal/workflow"
)

func (r *Risk) statusChangeLog(prev string, actor uuid.UUID, comments string) *EntityLog {
	entry := &EntityLog{
		EntityType:     EntityTypeRisk,
		EntityID:       r.ID,
		LogType:        LogTypeStatusChange,
		PreviousStatus: &prev,
		NewStatus:      &r.Status,
		LoggedBy:       &actor,
	}
	if comments != "" {
		entry.Comments = &comments
	}
	return entry
}

// RequestClosure flags a Mitigated risk as pending closure.
func (r *Risk) RequestClosure(actor uuid.UUID, justification string) (*EntityLog, error) {
	if err := workflow.RequireText("closure_justification", justification); err != nil {
		return nil, err
	}
	if err := RiskWorkflow.RequireStatus("request-closure", r.Status, RiskStatusMitigated); err != nil {
		return nil, err
	}
	if r.ClosurePending {
		return nil, apperr.InvalidState("risk", "request-closure", r.Status, "")
	}

	r.ClosurePending = true
	r.ClosureRequestedBy = &actor
	r.ClosureJustification = &justification
	return r.statusChangeLog(r.Status, actor, "closure requested: "+justification), nil
}

// ApproveClosure is the only transition that sets a risk Closed.
func (r *Risk) ApproveClosure(actor uuid.UUID, comments string, now time.Time) (*EntityLog, error) {
	if err := workflow.RequireText("approval_comments", comments); err != nil {
		return nil, err
	}
	if !r.ClosurePending {
		return nil, apperr.InvalidState("risk", "approve-closure", r.Status, RiskStatusClosed)
	}
	if err := RiskWorkflow.Step("approve-closure", r.Status, RiskStatusClosed); err != nil {
		return nil, err
	}
	if r.ClosureRequestedBy != nil && *r.ClosureRequestedBy == actor {
		return nil, apperr.Validation("approved_by", "cannot approve own closure request")
	}

	prev := r.Status
	r.Status = RiskStatusClosed
	r.ClosurePending = false
	r.ClosureDate = &now
	return r.statusChangeLog(prev, actor, comments), nil
}

// RejectClosure clears the pending flag; the risk stays Mitigated.
func (r *Risk) RejectClosure(actor uuid.UUID, reason string) (*EntityLog, error) {
	if err := workflow.RequireText("rejection_reason", reason); err != nil {
		return nil, err
	}
	if !r.ClosurePending {
		return nil, apperr.InvalidState("risk", "reject-closure", r.Status, "")
	}

	r.ClosurePending = false
	r.ClosureRequestedBy = nil
	r.ClosureJustification = nil
	return r.statusChangeLog(r.Status, actor, "closure rejected: "+reason), nil
}

// RiskUpdate carries the fields a generic update may touch.
type RiskUpdate struct {
	Title          *string
	Description    *string
	Status         *string
	Probability    *int
	Impact         *int
	OwnerID        *uuid.UUID
	MitigationPlan *string
	TargetDate     *time.Time
}

// ApplyUpdate performs a generic field edit. Non-gated status changes are
// permitted but still validated against the lifecycle edges and produce a
// log row; Closed can only be reached through the closure sub-flow.
func (r *Risk) ApplyUpdate(actor uuid.UUID, upd RiskUpdate) (*EntityLog, error) {
	if r.Status == RiskStatusClosed {
		return nil, apperr.InvalidState("risk", "update", r.Status, "")
	}

	var entry *EntityLog
	if upd.Status != nil && *upd.Status != r.Status {
		target := *upd.Status
		switch {
		case !RiskWorkflow.ValidStatus(target):
			return nil, apperr.Validation("status", "unknown status "+target)
		case RiskWorkflow.IsGated(target):
			return nil, apperr.ErrDirectMutation
		default:
			if err := RiskWorkflow.Step("update", r.Status, target); err != nil {
				return nil, err
			}
			prev := r.Status
			r.Status = target
			// Leaving Mitigated invalidates any open closure request.
			if prev == RiskStatusMitigated && r.ClosurePending {
				r.ClosurePending = false
				r.ClosureRequestedBy = nil
				r.ClosureJustification = nil
			}
			entry = r.statusChangeLog(prev, actor, "")
		}
	}

	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.Description != nil {
		r.Description = upd.Description
	}
	if upd.Probability != nil {
		if *upd.Probability < 1 || *upd.Probability > 5 {
			return nil, apperr.Validation("probability", "must be between 1 and 5")
		}
		r.Probability = *upd.Probability
	}
	if upd.Impact != nil {
		if *upd.Impact < 1 || *upd.Impact > 5 {
			return nil, apperr.Validation("impact", "must be between 1 and 5")
		}
		r.Impact = *upd.Impact
	}
	if upd.OwnerID != nil {
		r.OwnerID = upd.OwnerID
	}
	if upd.MitigationPlan != nil {
		r.MitigationPlan = upd.MitigationPlan
	}
	if upd.TargetDate != nil {
		r.TargetDate = upd.TargetDate
	}
	r.Rescore()
	return entry, nil
}
