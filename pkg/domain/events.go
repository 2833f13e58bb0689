package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventMacroEnter  EventType = "macro_enter"
	EventMacroLeave  EventType = "macro_leave"
	EventGesture     EventType = "gesture"
	EventGestureDone EventType = "gesture_done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"` // Location of the script that owns the macro
}

// MacroEvent represents entry or exit from a macro playback.
type MacroEvent struct {
	EventBase
	Macro string `json:"macro"` // Empty for nameless macros
	Depth int    `json:"depth"`
	Err   error  `json:"-"` // Only set on leave
}

// GestureEvent represents the execution of a single script line.
type GestureEvent struct {
	EventBase
	Command  string        `json:"command"`
	Line     int           `json:"line"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnMacroEnter  func(context.Context, *MacroEvent)
	OnMacroLeave  func(context.Context, *MacroEvent)
	OnGesture     func(context.Context, *GestureEvent)
	OnGestureDone func(context.Context, *GestureEvent)
}
