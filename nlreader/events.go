package nlreader

import (
	"sync"
	"time"
)

// EventType represents the type of reader event.
type EventType string

const (
	EventReadStarted      EventType = "read_started"
	EventHeaderRead       EventType = "header_read"
	EventSegmentStarted   EventType = "segment_started"
	EventSegmentCompleted EventType = "segment_completed"
	EventReadCompleted    EventType = "read_completed"
	EventReadFailed       EventType = "read_failed"
)

// Event is an observable reader state transition.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events.
type EventEmitter struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make([]func(Event), 0),
	}
}

// On registers a listener function to receive events.
// Listeners are called synchronously in registration order.
func (e *EventEmitter) On(listener func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners. A nil emitter
// drops the event.
func (e *EventEmitter) Emit(event Event) {
	if e == nil {
		return
	}
	e.mu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// ReadStartedEvent creates a read_started event.
func ReadStartedEvent(source string) Event {
	return Event{
		Type:      EventReadStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"source": source,
		},
	}
}

// HeaderReadEvent creates a header_read event.
func HeaderReadEvent(source string, h Header) Event {
	return Event{
		Type:      EventHeaderRead,
		Timestamp: time.Now(),
		Data: map[string]any{
			"source":      source,
			"format":      h.Format.String(),
			"num_options": h.NumOptions,
			"num_vars":    h.NumVars,
			"num_cons":    h.NumAlgebraicCons,
			"num_objs":    h.NumObjs,
		},
	}
}

// SegmentStartedEvent creates a segment_started event.
func SegmentStartedEvent(seg Segment, index int) Event {
	return Event{
		Type:      EventSegmentStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"kind":       seg.Kind.String(),
			"tag":        string(rune(seg.Kind)),
			"index":      index,
			"line":       seg.Pos.Line,
			"body_lines": seg.BodyLines,
		},
	}
}

// SegmentCompletedEvent creates a segment_completed event.
func SegmentCompletedEvent(seg Segment, index int) Event {
	return Event{
		Type:      EventSegmentCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"kind":  seg.Kind.String(),
			"tag":   string(rune(seg.Kind)),
			"index": index,
		},
	}
}

// ReadCompletedEvent creates a read_completed event.
func ReadCompletedEvent(source string, segments int, duration time.Duration) Event {
	return Event{
		Type:      EventReadCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"source":      source,
			"segments":    segments,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// ReadFailedEvent creates a read_failed event.
func ReadFailedEvent(source string, err error, state State) Event {
	return Event{
		Type:      EventReadFailed,
		Timestamp: time.Now(),
		Data: map[string]any{
			"source": source,
			"error":  err.Error(),
			"state":  state.String(),
		},
	}
}
