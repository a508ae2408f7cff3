package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventValidationStart EventType = "validation_start"
	EventStep            EventType = "step"
	EventValidationEnd   EventType = "validation_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ValidationEvent marks the start or end of a validation run.
// Accepted and Steps are only meaningful on EventValidationEnd.
type ValidationEvent struct {
	EventBase
	Input    string `json:"input"`
	Accepted bool   `json:"accepted,omitempty"`
	Steps    int    `json:"steps,omitempty"`
}

// StepEvent reports one step of a validation run.
type StepEvent struct {
	EventBase
	Index int  `json:"index"`
	Step  Step `json:"step"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnValidationStart func(context.Context, *ValidationEvent)
	OnStep            func(context.Context, *StepEvent)
	OnValidationEnd   func(context.Context, *ValidationEvent)
}
