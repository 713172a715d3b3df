// Package eventbus provides implementations of the EventBus interface.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"playr/internal/domain"
	"playr/internal/ports"
)

// SyncEventBus is a synchronous implementation of the EventBus interface.
// Events are delivered to handlers in subscription order, on the publisher's
// goroutine.
//
// Thread-safety: multiple goroutines can publish and subscribe/unsubscribe
// concurrently. Slow handlers block event delivery.
type SyncEventBus struct {
	logger *slog.Logger

	// subscribers maps event types to their subscriptions
	subscribers map[domain.EventType][]subscription

	// allSubscribers receive every event
	allSubscribers []subscription

	mu     sync.RWMutex
	closed bool
}

// subscription is a single registered handler.
type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	return &SyncEventBus{
		logger:      logger,
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers an event to all subscribers of its type, then to wildcard
// subscribers. Panics in handlers are recovered and logged; remaining handlers
// still run. Publishing on a closed bus is a no-op.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}

	typed := make([]subscription, len(bus.subscribers[event.Type()]))
	copy(typed, bus.subscribers[event.Type()])

	wildcard := make([]subscription, len(bus.allSubscribers))
	copy(wildcard, bus.allSubscribers)
	bus.mu.RUnlock()

	for _, sub := range typed {
		bus.callHandler(sub.handler, event)
	}
	for _, sub := range wildcard {
		bus.callHandler(sub.handler, event)
	}
}

// callHandler calls an event handler and recovers from panics.
func (bus *SyncEventBus) callHandler(handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			if bus.logger != nil {
				bus.logger.Error("event handler panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
		}
	}()

	handler(event)
}

// Subscribe registers a handler for events of the specified type.
// Returns a unique subscription ID that can be used to unsubscribe.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(uuid.NewString())
	bus.subscribers[eventType] = append(bus.subscribers[eventType], subscription{id: id, handler: handler})

	return id
}

// Unsubscribe removes a previously registered event handler.
// Unknown or already removed ids are a no-op.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for eventType, subs := range bus.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				// Swap with the last element and truncate
				subs[i] = subs[len(subs)-1]
				bus.subscribers[eventType] = subs[:len(subs)-1]
				return
			}
		}
	}

	for i, sub := range bus.allSubscribers {
		if sub.id == id {
			bus.allSubscribers[i] = bus.allSubscribers[len(bus.allSubscribers)-1]
			bus.allSubscribers = bus.allSubscribers[:len(bus.allSubscribers)-1]
			return
		}
	}
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(uuid.NewString())
	bus.allSubscribers = append(bus.allSubscribers, subscription{id: id, handler: handler})

	return id
}

// HasSubscribers returns true if there are any active subscriptions for the
// given event type.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	if len(bus.subscribers[eventType]) > 0 {
		return true
	}
	return len(bus.allSubscribers) > 0
}

// SubscriberCount returns the total number of active subscriptions.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.allSubscribers)
	for _, subs := range bus.subscribers {
		count += len(subs)
	}
	return count
}

// Close shuts down the event bus and clears all subscriptions.
// Returns an error if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil

	return nil
}

// Verify that SyncEventBus implements the EventBus interface
var _ ports.EventBus = (*SyncEventBus)(nil)
