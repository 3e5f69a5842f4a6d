// Package domain defines events for the event-driven architecture.
// Events let adapters (window title, web status, logging) follow the
// visualization lifecycle without holding references to the driver.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Session lifecycle events
	EventSessionStarted EventType = "session.started"
	EventSessionStopped EventType = "session.stopped"

	// Input events
	EventMoodResolved EventType = "mood.resolved"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SessionStartedEvent is published when a new animation session enters Running.
type SessionStartedEvent struct {
	baseEvent
	SessionID     string
	Params        SessionParams
	Style         AnimationStyle
	ParticleCount int
}

// Type returns the event type.
func (e SessionStartedEvent) Type() EventType {
	return EventSessionStarted
}

// NewSessionStartedEvent creates a new SessionStartedEvent.
func NewSessionStartedEvent(id string, params SessionParams, style AnimationStyle, particles int) SessionStartedEvent {
	return SessionStartedEvent{
		baseEvent:     newBaseEvent(),
		SessionID:     id,
		Params:        params,
		Style:         style,
		ParticleCount: particles,
	}
}

// SessionStoppedEvent is published when a session is stopped or replaced.
type SessionStoppedEvent struct {
	baseEvent
	SessionID string
	Frames    uint64 // Frames rendered during the session
	Replaced  bool   // True if stopped because a new session started
}

// Type returns the event type.
func (e SessionStoppedEvent) Type() EventType {
	return EventSessionStopped
}

// NewSessionStoppedEvent creates a new SessionStoppedEvent.
func NewSessionStoppedEvent(id string, frames uint64, replaced bool) SessionStoppedEvent {
	return SessionStoppedEvent{
		baseEvent: newBaseEvent(),
		SessionID: id,
		Frames:    frames,
		Replaced:  replaced,
	}
}

// MoodResolvedEvent is published when the controller receives song attributes.
type MoodResolvedEvent struct {
	baseEvent
	Attributes SongAttributes
	Params     SessionParams
	Issues     int // Number of corrected attribute values
}

// Type returns the event type.
func (e MoodResolvedEvent) Type() EventType {
	return EventMoodResolved
}

// NewMoodResolvedEvent creates a new MoodResolvedEvent.
func NewMoodResolvedEvent(attrs SongAttributes, params SessionParams, issues int) MoodResolvedEvent {
	return MoodResolvedEvent{
		baseEvent:  newBaseEvent(),
		Attributes: attrs,
		Params:     params,
		Issues:     issues,
	}
}
