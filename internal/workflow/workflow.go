package workflow

import (
	"strings"

	"github.com/pmtrack/backend/internal/apperr"
)

// Definition is a table-driven state machine for one entity type.
// Transitions maps a source status to the statuses reachable from it.
// Gated statuses can never be assigned through a generic field update;
// only the workflow operation that owns the edge may set them.
type Definition struct {
	Entity      string
	Initial     string
	Terminal    []string
	Transitions map[string][]string
	Gated       []string
}

func (d Definition) CanTransition(from, to string) bool {
	allowed, ok := d.Transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func (d Definition) IsTerminal(status string) bool {
	for _, s := range d.Terminal {
		if s == status {
			return true
		}
	}
	return false
}

func (d Definition) IsGated(status string) bool {
	for _, s := range d.Gated {
		if s == status {
			return true
		}
	}
	return false
}

func (d Definition) ValidStatus(status string) bool {
	_, ok := d.Transitions[status]
	return ok
}

// Step validates the edge from -> to for the named operation and returns
// an InvalidStateError when the edge does not exist.
func (d Definition) Step(op, from, to string) error {
	if !d.CanTransition(from, to) {
		return apperr.InvalidState(d.Entity, op, from, to)
	}
	return nil
}

// RequireStatus guards operations that only make sense from one source state.
func (d Definition) RequireStatus(op, current, required string) error {
	if current != required {
		return apperr.InvalidState(d.Entity, op, current, required)
	}
	return nil
}

// RequireText guards justification and comment payloads.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field, "is required")
	}
	return nil
}
