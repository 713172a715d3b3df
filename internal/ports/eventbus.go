// Package ports defines the EventBus interface for event-driven communication.
package ports

import (
	"playr/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
// It decouples event producers (services) from consumers (presentation,
// logging) so neither knows about the other.
//
// Thread-safety: implementations must be thread-safe; events may be published
// and subscribed from multiple goroutines.
type EventBus interface {
	// Publish delivers an event to all subscribers of its type.
	// Handlers should process events quickly; slow work belongs in a
	// background goroutine.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type and
	// returns an id usable with Unsubscribe. The same handler may be
	// registered multiple times.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already removed ids are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event regardless of
	// type. Useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether any subscription exists for the type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the bus and clears all subscriptions.
	Close() error
}
