package workflow

import (
	"errors"
	"testing"

	"github.com/pmtrack/backend/internal/apperr"
)

var testDef = Definition{
	Entity:   "ticket",
	Initial:  "new",
	Terminal: []string{"done"},
	Transitions: map[string][]string{
		"new":    {"active"},
		"active": {"done"},
		"done":   {},
	},
	Gated: []string{"done"},
}

func TestDefinitionStep(t *testing.T) {
	if err := testDef.Step("start", "new", "active"); err != nil {
		t.Errorf("valid edge rejected: %v", err)
	}

	err := testDef.Step("finish", "new", "done")
	var ise *apperr.InvalidStateError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if ise.Entity != "ticket" || ise.Op != "finish" || ise.Current != "new" || ise.Requested != "done" {
		t.Errorf("error detail = %+v", ise)
	}
}

func TestDefinitionPredicates(t *testing.T) {
	if !testDef.IsTerminal("done") || testDef.IsTerminal("active") {
		t.Error("IsTerminal misclassifies")
	}
	if !testDef.IsGated("done") || testDef.IsGated("new") {
		t.Error("IsGated misclassifies")
	}
	if !testDef.ValidStatus("active") || testDef.ValidStatus("bogus") {
		t.Error("ValidStatus misclassifies")
	}
}

func TestRequireStatus(t *testing.T) {
	if err := testDef.RequireStatus("close", "active", "active"); err != nil {
		t.Errorf("matching status rejected: %v", err)
	}
	if err := testDef.RequireStatus("close", "new", "active"); err == nil {
		t.Error("mismatched status accepted")
	}
}

func TestRequireText(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"justified", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
	}
	for _, tt := range tests {
		err := RequireText("reason", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("RequireText(%q) err = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}
