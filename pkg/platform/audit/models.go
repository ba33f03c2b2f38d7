// Package audit records what the service computed, for whom, and when.
package audit

import (
	"context"
	"time"
)

// EventCategory classifies events for routing and retention.
type EventCategory string

const (
	// CategoryOperations covers successful computations.
	CategoryOperations EventCategory = "operations"
	// CategoryRejection covers inputs the service refused to compute.
	CategoryRejection EventCategory = "rejection"
)

// Action names what happened.
type Action string

const (
	EventConversionPerformed  Action = "conversion_performed"
	EventComparisonPerformed  Action = "comparison_performed"
	EventTravelComputed       Action = "travel_computed"
	EventAccelerationComputed Action = "acceleration_computed"
	EventInputRejected        Action = "input_rejected"
)

// Event is transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Action    Action        `json:"action"`
	Timestamp time.Time     `json:"timestamp"`
	Dimension string        `json:"dimension"`
	Input     string        `json:"input"`
	Target    string        `json:"target,omitempty"`
	Result    string        `json:"result,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	TraceID   string        `json:"trace_id,omitempty"`
}

// CategoryFor returns the default category for an action.
func CategoryFor(a Action) EventCategory {
	if a == EventInputRejected {
		return CategoryRejection
	}
	return CategoryOperations
}

// Store persists events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
