package dto

import "github.com/pmtrack/backend/internal/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ChangeResponse wraps a change together with the operation a caller is
// expected to run next, so clients do not have to re-derive the workflow.
type ChangeResponse struct {
	Change   *models.Change `json:"change"`
	NextStep string         `json:"next_step,omitempty"`
}

type RiskResponse struct {
	Risk     *models.Risk `json:"risk"`
	NextStep string       `json:"next_step,omitempty"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func NewChangeResponse(c *models.Change) ChangeResponse {
	return ChangeResponse{Change: c, NextStep: c.NextStep()}
}

func NewRiskResponse(r *models.Risk) RiskResponse {
	return RiskResponse{Risk: r, NextStep: r.NextStep()}
}
