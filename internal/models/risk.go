package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/workflow"
)

// Risk statuses
const (
	RiskStatusIdentified = "Identified"
	RiskStatusAssessed   = "Assessed"
	RiskStatusMitigating = "Mitigating"
	RiskStatusMitigated  = "Mitigated"
	RiskStatusClosed     = "Closed"
)

// RiskWorkflow governs the risk lifecycle. Non-gated statuses may be set
// through a generic update, which still validates the edge; Closed is
// reached only through the closure approval sub-flow out of Mitigated.
var RiskWorkflow = workflow.Definition{
	Entity:   "risk",
	Initial:  RiskStatusIdentified,
	Terminal: []string{RiskStatusClosed},
	Transitions: map[string][]string{
		RiskStatusIdentified: {RiskStatusAssessed, RiskStatusMitigating},
		RiskStatusAssessed:   {RiskStatusMitigating},
		RiskStatusMitigating: {RiskStatusMitigated},
		RiskStatusMitigated:  {RiskStatusMitigating, RiskStatusClosed},
		RiskStatusClosed:     {},
	},
	Gated: []string{RiskStatusClosed},
}

type Risk struct {
	ID                   uuid.UUID  `json:"id"`
	ProjectID            uuid.UUID  `json:"project_id"`
	Title                string     `json:"title"`
	Description          *string    `json:"description,omitempty"`
	Status               string     `json:"status"`
	Probability          int        `json:"probability"` // 1..5
	Impact               int        `json:"impact"`      // 1..5
	Score                int        `json:"score"`
	OwnerID              *uuid.UUID `json:"owner_id,omitempty"`
	MitigationPlan       *string    `json:"mitigation_plan,omitempty"`
	IdentifiedDate       *time.Time `json:"identified_date,omitempty"`
	TargetDate           *time.Time `json:"target_date,omitempty"`
	ClosurePending       bool       `json:"closure_pending"`
	ClosureRequestedBy   *uuid.UUID `json:"closure_requested_by,omitempty"`
	ClosureJustification *string    `json:"closure_justification,omitempty"`
	ClosureDate          *time.Time `json:"closure_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Rescore recomputes score from probability and impact.
func (r *Risk) Rescore() {
	r.Score = r.Probability * r.Impact
}

func (r *Risk) NextStep() string {
	switch r.Status {
	case RiskStatusIdentified:
		return "assess probability and impact"
	case RiskStatusAssessed:
		return "plan and start mitigation"
	case RiskStatusMitigating:
		return "complete mitigation and set status to Mitigated"
	case RiskStatusMitigated:
		if r.ClosurePending {
			return "awaiting closure decision"
		}
		return "request closure"
	case RiskStatusClosed:
		return "no further action"
	}
	return ""
}
