package client

import (
	"time"

	ai "github.com/spetersoncode/aidispatch"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a request is handed to an adapter.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a request fails.
	EventRequestError EventType = "request_error"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	Type EventType

	// Provider is the selected provider.
	Provider ai.Provider

	// Model is the requested model name, empty when the adapter default applies.
	// Completion events carry the model that answered.
	Model string

	// Duration is the elapsed time for finished requests.
	Duration time.Duration

	// Usage is set on completion when the response reported it.
	Usage *ai.Usage

	// Error contains the error for EventRequestError.
	Error error

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
