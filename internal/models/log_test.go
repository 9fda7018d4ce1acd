package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReplayStatus(t *testing.T) {
	requester := uuid.New()
	approver := uuid.New()
	now := time.Now()

	c := newTestChange(ChangeStatusRequested)
	var entries []EntityLog

	step := func(label string, entry *EntityLog, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
		entries = append(entries, *entry)
	}

	entry, err := c.RequestApproval(requester, "reasons", now)
	step("request-approval", entry, err)
	entry, err = c.Reject(approver, "too vague", now)
	step("reject", entry, err)
	entry, err = c.RequestApproval(requester, "clarified", now)
	step("resubmit", entry, err)
	entry, err = c.Approve(approver, "ok", now)
	step("approve", entry, err)
	entry, err = c.MarkImplemented(requester, "shipped", now)
	step("mark-implemented", entry, err)
	entry, err = c.RequestClosure(requester, "complete", now)
	step("request-closure", entry, err)

	// A comment in the middle must not affect replay.
	comment := "please verify in staging"
	entries = append(entries, EntityLog{
		EntityType: EntityTypeChange,
		EntityID:   c.ID,
		LogType:    LogTypeComment,
		Comments:   &comment,
	})

	entry, err = c.ApproveClosure(approver, "verified", now)
	step("approve-closure", entry, err)

	if got := ReplayStatus(ChangeWorkflow.Initial, entries); got != c.Status {
		t.Errorf("ReplayStatus = %q, entity status = %q", got, c.Status)
	}
	if c.Status != ChangeStatusClosed {
		t.Errorf("final status = %q, want %q", c.Status, ChangeStatusClosed)
	}
}

func TestReplayStatusEmpty(t *testing.T) {
	if got := ReplayStatus(RiskWorkflow.Initial, nil); got != RiskStatusIdentified {
		t.Errorf("ReplayStatus with no entries = %q", got)
	}
}
