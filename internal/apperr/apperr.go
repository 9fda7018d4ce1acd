package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors shared across services.
var (
	ErrNotFound = errors.New("not found")

	// ErrDirectMutation marks an attempt to set a gated status through a
	// generic update instead of the workflow operation that owns it.
	ErrDirectMutation = errors.New("status can only be changed through its workflow operation")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidStateError reports a workflow transition attempted from a state
// that does not permit it. Current status is carried so the caller can
// explain the blocked action to a user.
type InvalidStateError struct {
	Entity    string `json:"entity"`
	Op        string `json:"op"`
	Current   string `json:"current_status"`
	Requested string `json:"requested_status,omitempty"`
}

func (e *InvalidStateError) Error() string {
	if e.Requested != "" {
		return fmt.Sprintf("%s: cannot %s from %q to %q", e.Entity, e.Op, e.Current, e.Requested)
	}
	return fmt.Sprintf("%s: cannot %s while status is %q", e.Entity, e.Op, e.Current)
}

func InvalidState(entity, op, current, requested string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Op: op, Current: current, Requested: requested}
}

// HTTPStatus maps the error taxonomy to a response code.
func HTTPStatus(err error) int {
	var ve *ValidationError
	var ise *InvalidStateError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDirectMutation):
		return fiber.StatusForbidden
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &ise):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
