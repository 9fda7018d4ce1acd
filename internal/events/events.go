package events

import "context"

// Event types
const (
	EventWorkflowTransition = "workflow_transition"
	EventClosureRequested   = "closure_requested"
	EventCommentAdded       = "comment_added"
)

// StreamWorkflow carries all tracker events.
const StreamWorkflow = "events:workflow"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
