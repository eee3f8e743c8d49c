package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLineStart EventType = "line_start"
	EventNodeEnter EventType = "node_enter"
	EventNodeRun   EventType = "node_run"
	EventLineEnd   EventType = "line_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	LineID    string    `json:"line_id"`
}

// LineEvent represents the start or the end of a line evaluation.
type LineEvent struct {
	EventBase
	Command  string        `json:"command"`
	Tokens   int           `json:"tokens"`
	Outcome  Outcome       `json:"outcome,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// StepEvent represents the executor visiting a node with a token.
type StepEvent struct {
	EventBase
	Command  string `json:"command"`
	Position int    `json:"position"`
	Token    string `json:"token"`
	NodeKind Kind   `json:"node_kind"`
}

// LifecycleHooks defines callbacks for executor observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnLineStart func(context.Context, *LineEvent)
	OnNodeEnter func(context.Context, *StepEvent)
	OnNodeRun   func(context.Context, *StepEvent)
	OnLineEnd   func(context.Context, *LineEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLineStart: chain(h.OnLineStart, other.OnLineStart),
		OnNodeEnter: chain(h.OnNodeEnter, other.OnNodeEnter),
		OnNodeRun:   chain(h.OnNodeRun, other.OnNodeRun),
		OnLineEnd:   chain(h.OnLineEnd, other.OnLineEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
