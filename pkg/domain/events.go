package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageStart     EventType = "stage_start"
	EventStageFinish    EventType = "stage_finish"
	EventOperationStart EventType = "operation_start"
	EventOperationEnd   EventType = "operation_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StageEvent represents the start or the end of a stage.
// Result and Duration are only meaningful on EventStageFinish.
type StageEvent struct {
	EventBase
	Operation Operation     `json:"operation"`
	Stage     Stage         `json:"stage"`
	Result    StageResult   `json:"result"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// OperationEvent represents the start or the end of an operation.
type OperationEvent struct {
	EventBase
	Operation Operation `json:"operation"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for pipeline observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnOperationStart func(context.Context, *OperationEvent)
	OnOperationEnd   func(context.Context, *OperationEvent)
	OnStageStart     func(context.Context, *StageEvent)
	OnStageFinish    func(context.Context, *StageEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnOperationStart: chainOperation(h.OnOperationStart, other.OnOperationStart),
		OnOperationEnd:   chainOperation(h.OnOperationEnd, other.OnOperationEnd),
		OnStageStart:     chainStage(h.OnStageStart, other.OnStageStart),
		OnStageFinish:    chainStage(h.OnStageFinish, other.OnStageFinish),
	}
}

func chainStage(a, b func(context.Context, *StageEvent)) func(context.Context, *StageEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StageEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainOperation(a, b func(context.Context, *OperationEvent)) func(context.Context, *OperationEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *OperationEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
