package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", ErrNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("change: %w", ErrNotFound), fiber.StatusNotFound},
		{"direct mutation", ErrDirectMutation, fiber.StatusForbidden},
		{"validation", Validation("title", "is required"), fiber.StatusBadRequest},
		{"invalid state", InvalidState("change", "approve", "Requested", "Approved"), fiber.StatusConflict},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestInvalidStateErrorMessage(t *testing.T) {
	withTarget := InvalidState("change", "approve", "Requested", "Approved")
	if withTarget.Error() != `change: cannot approve from "Requested" to "Approved"` {
		t.Errorf("message = %q", withTarget.Error())
	}

	noTarget := InvalidState("risk", "request-closure", "Identified", "")
	if noTarget.Error() != `risk: cannot request-closure while status is "Identified"` {
		t.Errorf("message = %q", noTarget.Error())
	}
}
