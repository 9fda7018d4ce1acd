package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/apperr"
)

func newTestRisk(status string) *Risk {
	r := &Risk{
		ID:          uuid.New(),
		ProjectID:   uuid.New(),
		Title:       "vendor may miss delivery date",
		Status:      status,
		Probability: 3,
		Impact:      4,
	}
	r.Rescore()
	return r
}

func TestRiskWorkflowTransitions(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		{RiskStatusIdentified, RiskStatusAssessed, true},
		{RiskStatusIdentified, RiskStatusMitigating, true},
		{RiskStatusAssessed, RiskStatusMitigating, true},
		{RiskStatusMitigating, RiskStatusMitigated, true},
		{RiskStatusMitigated, RiskStatusClosed, true},
		{RiskStatusMitigated, RiskStatusMitigating, true},

		{RiskStatusIdentified, RiskStatusMitigated, false},
		{RiskStatusIdentified, RiskStatusClosed, false},
		{RiskStatusAssessed, RiskStatusClosed, false},
		{RiskStatusMitigating, RiskStatusClosed, false},
		{RiskStatusClosed, RiskStatusMitigating, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := RiskWorkflow.CanTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestRiskRequestClosureRequiresMitigated(t *testing.T) {
	actor := uuid.New()

	for _, status := range []string{RiskStatusIdentified, RiskStatusAssessed, RiskStatusMitigating} {
		r := newTestRisk(status)
		_, err := r.RequestClosure(actor, "no longer relevant")
		var ise *apperr.InvalidStateError
		if !errors.As(err, &ise) {
			t.Errorf("status %q: expected InvalidStateError, got %v", status, err)
		}
		if r.ClosurePending {
			t.Errorf("status %q: failed request set closure_pending", status)
		}
	}

	r := newTestRisk(RiskStatusMitigated)
	entry, err := r.RequestClosure(actor, "mitigation held for a full quarter")
	if err != nil {
		t.Fatalf("RequestClosure: %v", err)
	}
	if !r.ClosurePending {
		t.Fatal("closure_pending not set")
	}
	if r.Status != RiskStatusMitigated {
		t.Errorf("closure request moved status to %q", r.Status)
	}
	if *entry.PreviousStatus != *entry.NewStatus {
		t.Error("closure request log row should not record a status move")
	}
}

func TestRiskClosureDecision(t *testing.T) {
	requester := uuid.New()
	approver := uuid.New()
	now := time.Now()

	r := newTestRisk(RiskStatusMitigated)

	// Approval without a pending request fails.
	if _, err := r.ApproveClosure(approver, "ok", now); err == nil {
		t.Fatal("expected error approving closure without a pending request")
	}

	if _, err := r.RequestClosure(requester, "mitigation verified"); err != nil {
		t.Fatal(err)
	}

	// Requester cannot close their own request.
	var ve *apperr.ValidationError
	if _, err := r.ApproveClosure(requester, "ok", now); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on self approval, got %v", err)
	}

	entry, err := r.ApproveClosure(approver, "confirmed", now)
	if err != nil {
		t.Fatalf("ApproveClosure: %v", err)
	}
	if r.Status != RiskStatusClosed {
		t.Errorf("status = %q, want %q", r.Status, RiskStatusClosed)
	}
	if r.ClosurePending {
		t.Error("closure_pending still set")
	}
	if *entry.PreviousStatus != RiskStatusMitigated || *entry.NewStatus != RiskStatusClosed {
		t.Errorf("log edge = %q -> %q", *entry.PreviousStatus, *entry.NewStatus)
	}
}

func TestRiskRejectClosure(t *testing.T) {
	requester := uuid.New()
	approver := uuid.New()

	r := newTestRisk(RiskStatusMitigated)
	if _, err := r.RequestClosure(requester, "looks settled"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RejectClosure(approver, "monitor one more sprint"); err != nil {
		t.Fatal(err)
	}
	if r.ClosurePending {
		t.Error("closure_pending not cleared")
	}
	if r.Status != RiskStatusMitigated {
		t.Errorf("status = %q after rejected closure", r.Status)
	}
	if r.ClosureRequestedBy != nil || r.ClosureJustification != nil {
		t.Error("closure request fields not cleared")
	}
}

func TestRiskApplyUpdate(t *testing.T) {
	actor := uuid.New()
	statusOf := func(s string) *string { return &s }
	intOf := func(n int) *int { return &n }

	t.Run("direct closed refused", func(t *testing.T) {
		r := newTestRisk(RiskStatusMitigated)
		_, err := r.ApplyUpdate(actor, RiskUpdate{Status: statusOf(RiskStatusClosed)})
		if !errors.Is(err, apperr.ErrDirectMutation) {
			t.Errorf("got %v, want ErrDirectMutation", err)
		}
		if r.Status != RiskStatusMitigated {
			t.Errorf("refused update mutated status to %q", r.Status)
		}
	})

	t.Run("lifecycle edge allowed and logged", func(t *testing.T) {
		r := newTestRisk(RiskStatusIdentified)
		entry, err := r.ApplyUpdate(actor, RiskUpdate{Status: statusOf(RiskStatusAssessed)})
		if err != nil {
			t.Fatalf("ApplyUpdate: %v", err)
		}
		if r.Status != RiskStatusAssessed {
			t.Errorf("status = %q", r.Status)
		}
		if entry == nil || entry.LogType != LogTypeStatusChange {
			t.Fatal("expected a status change log row")
		}
	})

	t.Run("skipping states refused", func(t *testing.T) {
		r := newTestRisk(RiskStatusIdentified)
		var ise *apperr.InvalidStateError
		if _, err := r.ApplyUpdate(actor, RiskUpdate{Status: statusOf(RiskStatusMitigated)}); !errors.As(err, &ise) {
			t.Errorf("expected InvalidStateError, got %v", err)
		}
	})

	t.Run("rescore on probability change", func(t *testing.T) {
		r := newTestRisk(RiskStatusAssessed)
		if _, err := r.ApplyUpdate(actor, RiskUpdate{Probability: intOf(5), Impact: intOf(5)}); err != nil {
			t.Fatal(err)
		}
		if r.Score != 25 {
			t.Errorf("score = %d, want 25", r.Score)
		}
	})

	t.Run("probability out of range", func(t *testing.T) {
		r := newTestRisk(RiskStatusAssessed)
		var ve *apperr.ValidationError
		if _, err := r.ApplyUpdate(actor, RiskUpdate{Probability: intOf(6)}); !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("closed risk refuses edits", func(t *testing.T) {
		r := newTestRisk(RiskStatusClosed)
		title := "updated"
		var ise *apperr.InvalidStateError
		if _, err := r.ApplyUpdate(actor, RiskUpdate{Title: &title}); !errors.As(err, &ise) {
			t.Errorf("expected InvalidStateError, got %v", err)
		}
	})

	t.Run("leaving mitigated clears pending closure", func(t *testing.T) {
		requester := uuid.New()
		approver := uuid.New()

		r := newTestRisk(RiskStatusMitigated)
		if _, err := r.RequestClosure(requester, "mitigation held for a quarter"); err != nil {
			t.Fatalf("RequestClosure: %v", err)
		}

		if _, err := r.ApplyUpdate(actor, RiskUpdate{Status: statusOf(RiskStatusMitigating)}); err != nil {
			t.Fatalf("ApplyUpdate to Mitigating: %v", err)
		}
		if r.ClosurePending {
			t.Error("closure request survived leaving Mitigated")
		}
		if r.ClosureRequestedBy != nil || r.ClosureJustification != nil {
			t.Error("closure request fields not cleared")
		}

		if _, err := r.ApplyUpdate(actor, RiskUpdate{Status: statusOf(RiskStatusMitigated)}); err != nil {
			t.Fatalf("ApplyUpdate back to Mitigated: %v", err)
		}
		var ise *apperr.InvalidStateError
		if _, err := r.ApproveClosure(approver, "looks done", time.Now()); !errors.As(err, &ise) {
			t.Errorf("approve after lifecycle detour: got %v, want InvalidStateError", err)
		}
		if r.Status != RiskStatusMitigated {
			t.Errorf("status = %q, want %q", r.Status, RiskStatusMitigated)
		}
	})
}
