// Package domain defines events for loose coupling between services and the
// presentation layer.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
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
	EventTrackStarted   EventType = "track.started"
	EventTrackPaused    EventType = "track.paused"
	EventTrackStopped   EventType = "track.stopped"
	EventTrackCompleted EventType = "track.completed"
	EventTrackError     EventType = "track.error"
	EventTrackAdded     EventType = "track.added"

	EventVolumeChanged  EventType = "volume.changed"
	EventShuffleToggled EventType = "shuffle.toggled"
	EventRepeatToggled  EventType = "repeat.toggled"

	EventQueueChanged EventType = "queue.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackStartedEvent is published when playback starts or resumes.
type TrackStartedEvent struct {
	baseEvent
	Track   Track
	Resumed bool // true when resuming a paused stream
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType { return EventTrackStarted }

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(track Track, resumed bool) TrackStartedEvent {
	return TrackStartedEvent{baseEvent: newBaseEvent(), Track: track, Resumed: resumed}
}

// TrackPausedEvent is published when playback is paused.
type TrackPausedEvent struct {
	baseEvent
	Track    Track
	Position time.Duration // cursor recorded as the resume offset
}

// Type returns the event type.
func (e TrackPausedEvent) Type() EventType { return EventTrackPaused }

// NewTrackPausedEvent creates a new TrackPausedEvent.
func NewTrackPausedEvent(track Track, position time.Duration) TrackPausedEvent {
	return TrackPausedEvent{baseEvent: newBaseEvent(), Track: track, Position: position}
}

// TrackStoppedEvent is published when playback is stopped and the stream released.
type TrackStoppedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackStoppedEvent) Type() EventType { return EventTrackStopped }

// NewTrackStoppedEvent creates a new TrackStoppedEvent.
func NewTrackStoppedEvent(track Track) TrackStoppedEvent {
	return TrackStoppedEvent{baseEvent: newBaseEvent(), Track: track}
}

// TrackCompletedEvent is published when a track reaches end-of-media naturally.
type TrackCompletedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackCompletedEvent) Type() EventType { return EventTrackCompleted }

// NewTrackCompletedEvent creates a new TrackCompletedEvent.
func NewTrackCompletedEvent(track Track) TrackCompletedEvent {
	return TrackCompletedEvent{baseEvent: newBaseEvent(), Track: track}
}

// TrackErrorEvent is published when an engine or store error occurs for a track.
type TrackErrorEvent struct {
	baseEvent
	Track Track
	Error error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType { return EventTrackError }

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(track Track, err error) TrackErrorEvent {
	return TrackErrorEvent{baseEvent: newBaseEvent(), Track: track, Error: err}
}

// TrackAddedEvent is published when a track is added to the catalog.
type TrackAddedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackAddedEvent) Type() EventType { return EventTrackAdded }

// NewTrackAddedEvent creates a new TrackAddedEvent.
func NewTrackAddedEvent(track Track) TrackAddedEvent {
	return TrackAddedEvent{baseEvent: newBaseEvent(), Track: track}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume float64 // 0.0 to 1.0, already clamped
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType { return EventVolumeChanged }

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume float64) VolumeChangedEvent {
	return VolumeChangedEvent{baseEvent: newBaseEvent(), Volume: volume}
}

// ShuffleToggledEvent is published when shuffle mode changes.
type ShuffleToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e ShuffleToggledEvent) Type() EventType { return EventShuffleToggled }

// NewShuffleToggledEvent creates a new ShuffleToggledEvent.
func NewShuffleToggledEvent(enabled bool) ShuffleToggledEvent {
	return ShuffleToggledEvent{baseEvent: newBaseEvent(), Enabled: enabled}
}

// RepeatToggledEvent is published when repeat mode changes.
type RepeatToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e RepeatToggledEvent) Type() EventType { return EventRepeatToggled }

// NewRepeatToggledEvent creates a new RepeatToggledEvent.
func NewRepeatToggledEvent(enabled bool) RepeatToggledEvent {
	return RepeatToggledEvent{baseEvent: newBaseEvent(), Enabled: enabled}
}

// QueueChangedEvent is published when the playback queue is replaced or its
// current index moves.
type QueueChangedEvent struct {
	baseEvent
	Queue []Track
	Index int
}

// Type returns the event type.
func (e QueueChangedEvent) Type() EventType { return EventQueueChanged }

// NewQueueChangedEvent creates a new QueueChangedEvent.
func NewQueueChangedEvent(queue []Track, index int) QueueChangedEvent {
	return QueueChangedEvent{baseEvent: newBaseEvent(), Queue: queue, Index: index}
}
