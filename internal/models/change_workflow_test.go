package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/apperr"
)

func TestChangeWorkflowTransitions(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ChangeStatusRequested, ChangeStatusUnderReview, true},
		{ChangeStatusUnderReview, ChangeStatusApproved, true},
		{ChangeStatusUnderReview, ChangeStatusRejected, true},
		{ChangeStatusApproved, ChangeStatusImplemented, true},
		{ChangeStatusImplemented, ChangeStatusClosed, true},

		// Resubmission after rejection
		{ChangeStatusRejected, ChangeStatusUnderReview, true},

		// Invalid edges
		{ChangeStatusRequested, ChangeStatusApproved, false},
		{ChangeStatusRequested, ChangeStatusImplemented, false},
		{ChangeStatusApproved, ChangeStatusClosed, false},
		{ChangeStatusRejected, ChangeStatusApproved, false},
		{ChangeStatusClosed, ChangeStatusUnderReview, false},
		{ChangeStatusClosed, ChangeStatusImplemented, false},
		{ChangeStatusImplemented, ChangeStatusApproved, false},
		{"nonexistent", ChangeStatusUnderReview, false},
		{ChangeStatusRequested, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := ChangeWorkflow.CanTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func newTestChange(status string) *Change {
	return &Change{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Title:     "upgrade database version",
		Status:    status,
		Priority:  PriorityMedium,
	}
}

func TestChangeRequestApproval(t *testing.T) {
	actor := uuid.New()
	now := time.Now()

	c := newTestChange(ChangeStatusRequested)
	entry, err := c.RequestApproval(actor, "needed for security patches", now)
	if err != nil {
		t.Fatalf("RequestApproval: %v", err)
	}
	if c.Status != ChangeStatusUnderReview {
		t.Errorf("status = %q, want %q", c.Status, ChangeStatusUnderReview)
	}
	if entry == nil || entry.LogType != LogTypeStatusChange {
		t.Fatalf("expected a status change log row, got %+v", entry)
	}
	if *entry.PreviousStatus != ChangeStatusRequested || *entry.NewStatus != ChangeStatusUnderReview {
		t.Errorf("log edge = %q -> %q", *entry.PreviousStatus, *entry.NewStatus)
	}

	// A second request while under review must fail and change nothing.
	if _, err := c.RequestApproval(actor, "again", now); err == nil {
		t.Fatal("expected error on double request-approval")
	}
	var ise *apperr.InvalidStateError
	if _, err := c.RequestApproval(actor, "again", now); !errors.As(err, &ise) {
		t.Errorf("expected InvalidStateError, got %v", err)
	}
	if c.Status != ChangeStatusUnderReview {
		t.Errorf("failed transition mutated status to %q", c.Status)
	}
}

func TestChangeRequestApprovalRequiresJustification(t *testing.T) {
	c := newTestChange(ChangeStatusRequested)
	_, err := c.RequestApproval(uuid.New(), "   ", time.Now())
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if c.Status != ChangeStatusRequested {
		t.Errorf("failed guard mutated status to %q", c.Status)
	}
}

func TestChangeApproveRejectsSelfApproval(t *testing.T) {
	requester := uuid.New()
	now := time.Now()

	c := newTestChange(ChangeStatusRequested)
	if _, err := c.RequestApproval(requester, "reasons", now); err != nil {
		t.Fatal(err)
	}

	var ve *apperr.ValidationError
	if _, err := c.Approve(requester, "looks fine", now); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on self approval, got %v", err)
	}
	if c.Status != ChangeStatusUnderReview {
		t.Errorf("status = %q after rejected self approval", c.Status)
	}

	approver := uuid.New()
	entry, err := c.Approve(approver, "looks fine", now)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if c.Status != ChangeStatusApproved {
		t.Errorf("status = %q, want %q", c.Status, ChangeStatusApproved)
	}
	if *entry.NewStatus != ChangeStatusApproved {
		t.Errorf("log new status = %q", *entry.NewStatus)
	}
	if c.ApprovedBy == nil || *c.ApprovedBy != approver {
		t.Error("approved_by not stamped")
	}
}

func TestChangeRejectAndResubmit(t *testing.T) {
	requester := uuid.New()
	approver := uuid.New()
	now := time.Now()

	c := newTestChange(ChangeStatusRequested)
	if _, err := c.RequestApproval(requester, "reasons", now); err != nil {
		t.Fatal(err)
	}

	entry, err := c.Reject(approver, "scope too broad", now)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if c.Status != ChangeStatusRejected {
		t.Errorf("status = %q, want %q", c.Status, ChangeStatusRejected)
	}
	if *entry.PreviousStatus != ChangeStatusUnderReview {
		t.Errorf("log previous status = %q", *entry.PreviousStatus)
	}

	// Resubmit clears the rejection fields.
	if _, err := c.RequestApproval(requester, "narrowed scope", now); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if c.Status != ChangeStatusUnderReview {
		t.Errorf("status = %q after resubmit", c.Status)
	}
	if c.RejectedBy != nil || c.RejectionReason != nil {
		t.Error("rejection fields not cleared on resubmit")
	}
}

func TestChangeClosureFlow(t *testing.T) {
	requester := uuid.New()
	approver := uuid.New()
	now := time.Now()

	c := newTestChange(ChangeStatusRequested)
	mustStep := func(label string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
	}
	_, err := c.RequestApproval(requester, "reasons", now)
	mustStep("request-approval", err)
	_, err = c.Approve(approver, "ok", now)
	mustStep("approve", err)
	_, err = c.MarkImplemented(requester, "rolled out", now)
	mustStep("mark-implemented", err)

	// Closure cannot be approved before it is requested.
	if _, err := c.ApproveClosure(approver, "done", now); err == nil {
		t.Fatal("expected error approving closure without a pending request")
	}

	entry, err := c.RequestClosure(requester, "all tasks complete", now)
	mustStep("request-closure", err)
	if !c.ClosurePending {
		t.Fatal("closure_pending not set")
	}
	if c.Status != ChangeStatusImplemented {
		t.Errorf("closure request moved status to %q", c.Status)
	}
	if *entry.PreviousStatus != *entry.NewStatus {
		t.Error("closure request log row should not record a status move")
	}

	// Double closure request rejected.
	if _, err := c.RequestClosure(requester, "again", now); err == nil {
		t.Fatal("expected error on double closure request")
	}

	// Requester cannot approve their own closure.
	var ve *apperr.ValidationError
	if _, err := c.RejectClosure(approver, "actions still open"); err != nil {
		t.Fatalf("reject-closure: %v", err)
	}
	if c.ClosurePending {
		t.Error("closure_pending not cleared by rejection")
	}
	if c.Status != ChangeStatusImplemented {
		t.Errorf("status = %q after closure rejection", c.Status)
	}

	_, err = c.RequestClosure(requester, "actions now complete", now)
	mustStep("re-request closure", err)
	if _, err := c.ApproveClosure(requester, "done", now); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on self closure approval, got %v", err)
	}

	entry, err = c.ApproveClosure(approver, "verified", now)
	mustStep("approve-closure", err)
	if c.Status != ChangeStatusClosed {
		t.Errorf("status = %q, want %q", c.Status, ChangeStatusClosed)
	}
	if c.ClosurePending {
		t.Error("closure_pending still set after close")
	}
	if *entry.NewStatus != ChangeStatusClosed {
		t.Errorf("log new status = %q", *entry.NewStatus)
	}
	if c.ClosureDate == nil {
		t.Error("closure_date not stamped")
	}
}

func TestChangeApplyUpdateStatusPolicy(t *testing.T) {
	actor := uuid.New()
	now := time.Now()

	statusOf := func(s string) *string { return &s }

	tests := []struct {
		name    string
		current string
		target  string
		wantErr error
	}{
		{"direct approved", ChangeStatusUnderReview, ChangeStatusApproved, apperr.ErrDirectMutation},
		{"direct closed", ChangeStatusImplemented, ChangeStatusClosed, apperr.ErrDirectMutation},
		{"direct requested", ChangeStatusUnderReview, ChangeStatusRequested, apperr.ErrDirectMutation},
		{"direct under review", ChangeStatusRequested, ChangeStatusUnderReview, apperr.ErrDirectMutation},
		{"direct rejected", ChangeStatusUnderReview, ChangeStatusRejected, apperr.ErrDirectMutation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChange(tt.current)
			_, err := c.ApplyUpdate(actor, ChangeUpdate{Status: statusOf(tt.target)}, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyUpdate status %q from %q: got %v, want %v", tt.target, tt.current, err, tt.wantErr)
			}
			if c.Status != tt.current {
				t.Errorf("refused update mutated status to %q", c.Status)
			}
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		c := newTestChange(ChangeStatusRequested)
		var ve *apperr.ValidationError
		if _, err := c.ApplyUpdate(actor, ChangeUpdate{Status: statusOf("Done")}, now); !errors.As(err, &ve) {
			t.Errorf("expected ValidationError for unknown status, got %v", err)
		}
	})

	t.Run("mark implemented through update", func(t *testing.T) {
		c := newTestChange(ChangeStatusApproved)
		summary := "rolled out to production"
		entry, err := c.ApplyUpdate(actor, ChangeUpdate{
			Status:                statusOf(ChangeStatusImplemented),
			ImplementationSummary: &summary,
		}, now)
		if err != nil {
			t.Fatalf("ApplyUpdate: %v", err)
		}
		if c.Status != ChangeStatusImplemented {
			t.Errorf("status = %q, want %q", c.Status, ChangeStatusImplemented)
		}
		if entry == nil {
			t.Fatal("expected a log row for the implemented edge")
		}
		if c.ImplementationDate == nil {
			t.Error("implementation_date not stamped")
		}
	})

	t.Run("closed refuses edits", func(t *testing.T) {
		c := newTestChange(ChangeStatusClosed)
		title := "new title"
		var ise *apperr.InvalidStateError
		if _, err := c.ApplyUpdate(actor, ChangeUpdate{Title: &title}, now); !errors.As(err, &ise) {
			t.Errorf("expected InvalidStateError on closed change, got %v", err)
		}
	})

	t.Run("field edit without status", func(t *testing.T) {
		c := newTestChange(ChangeStatusUnderReview)
		title := "upgrade database to v16"
		entry, err := c.ApplyUpdate(actor, ChangeUpdate{Title: &title}, now)
		if err != nil {
			t.Fatalf("ApplyUpdate: %v", err)
		}
		if entry != nil {
			t.Error("field-only edit should not produce a log row")
		}
		if c.Title != title {
			t.Errorf("title = %q", c.Title)
		}
	})
}

func TestChangeNextStep(t *testing.T) {
	c := newTestChange(ChangeStatusImplemented)
	if got := c.NextStep(); got != "request closure" {
		t.Errorf("NextStep() = %q", got)
	}
	c.ClosurePending = true
	if got := c.NextStep(); got != "awaiting closure decision" {
		t.Errorf("NextStep() with pending closure = %q", got)
	}
}
