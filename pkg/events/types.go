// Package events provides a small in-memory publish/subscribe bus for
// verification progress. A Verifier publishes as it works; interested
// consumers, like the watch loop, subscribe with an optional type filter.
package events

import "time"

// EventType identifies the kind of event emitted during verification.
type EventType string

const (
	EventVerifyStart    EventType = "verify.start"
	EventVerifyEvidence EventType = "verify.evidence"
	EventVerifyEnd      EventType = "verify.end"
	EventWatchChange    EventType = "watch.change"
)

// Event represents a single runtime event.
type Event struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Data      any           `json:"data"`
	StepIndex int           `json:"step_index,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// NewEvent creates a new Event with the current timestamp.
func NewEvent(typ EventType, data any) Event {
	return Event{
		Type:      typ,
		Timestamp: time.Now(),
		Data:      data,
	}
}
