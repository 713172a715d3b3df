package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"playr/internal/domain"
	"playr/internal/logger"
)

func newTestBus() *SyncEventBus {
	return NewSyncEventBus(logger.NewTestLogger())
}

// TestNewSyncEventBus tests event bus creation.
func TestNewSyncEventBus(t *testing.T) {
	bus := newTestBus()

	if bus == nil {
		t.Fatal("NewSyncEventBus returned nil")
	}

	if bus.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got %d", bus.SubscriberCount())
	}

	if bus.closed {
		t.Error("New event bus should not be closed")
	}
}

// TestPublishSubscribe tests basic publish/subscribe functionality.
func TestPublishSubscribe(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var received domain.Event
	var callCount int

	handler := func(event domain.Event) {
		received = event
		callCount++
	}

	subID := bus.Subscribe(domain.EventTrackStarted, handler)
	if subID == "" {
		t.Fatal("Subscribe returned empty subscription ID")
	}

	track := domain.Track{ID: 7, Title: "Test Track"}
	bus.Publish(domain.NewTrackStartedEvent(track, false))

	if callCount != 1 {
		t.Errorf("Expected handler to be called once, got %d", callCount)
	}

	if received == nil {
		t.Fatal("Handler did not receive event")
	}

	if received.Type() != domain.EventTrackStarted {
		t.Errorf("Expected EventTrackStarted, got %s", received.Type())
	}

	receivedEvent := received.(domain.TrackStartedEvent)
	if receivedEvent.Track.ID != 7 {
		t.Errorf("Expected track ID 7, got %d", receivedEvent.Track.ID)
	}
}

// TestSubscribeOnlyReceivesMatchingType verifies type filtering.
func TestSubscribeOnlyReceivesMatchingType(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var callCount int
	bus.Subscribe(domain.EventTrackPaused, func(domain.Event) {
		callCount++
	})

	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))
	bus.Publish(domain.NewTrackStoppedEvent(domain.Track{ID: 1}))

	if callCount != 0 {
		t.Errorf("Expected 0 calls for unrelated events, got %d", callCount)
	}
}

// TestSubscribeAll verifies wildcard subscriptions receive every event.
func TestSubscribeAll(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var callCount int
	bus.SubscribeAll(func(domain.Event) {
		callCount++
	})

	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))
	bus.Publish(domain.NewVolumeChangedEvent(0.5))
	bus.Publish(domain.NewShuffleToggledEvent(true))

	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

// TestUnsubscribe verifies handlers stop receiving after unsubscribing.
func TestUnsubscribe(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var callCount int
	subID := bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {
		callCount++
	})

	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))
	bus.Unsubscribe(subID)
	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))

	if callCount != 1 {
		t.Errorf("Expected 1 call after unsubscribe, got %d", callCount)
	}

	// Unsubscribing an unknown id is a no-op
	bus.Unsubscribe("does-not-exist")
}

// TestHandlerPanicDoesNotStopDelivery verifies panic recovery.
func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var secondCalled bool
	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {
		panic("handler exploded")
	})
	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {
		secondCalled = true
	})

	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))

	if !secondCalled {
		t.Error("Second handler should run despite the first panicking")
	}
}

// TestPublishAfterClose verifies publishing on a closed bus is a no-op.
func TestPublishAfterClose(t *testing.T) {
	bus := newTestBus()

	var callCount int
	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {
		callCount++
	})

	if err := bus.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	bus.Publish(domain.NewTrackStartedEvent(domain.Track{ID: 1}, false))

	if callCount != 0 {
		t.Errorf("Expected 0 calls after close, got %d", callCount)
	}

	if err := bus.Close(); err == nil {
		t.Error("Second close should return an error")
	}
}

// TestConcurrentPublish verifies the bus is safe under concurrent publishers.
func TestConcurrentPublish(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var total atomic.Int64
	bus.Subscribe(domain.EventVolumeChanged, func(domain.Event) {
		total.Add(1)
	})

	const goroutines = 10
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				bus.Publish(domain.NewVolumeChangedEvent(0.5))
			}
		}()
	}
	wg.Wait()

	if total.Load() != goroutines*perGoroutine {
		t.Errorf("Expected %d deliveries, got %d", goroutines*perGoroutine, total.Load())
	}
}

// TestHasSubscribers checks subscriber presence reporting.
func TestHasSubscribers(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	if bus.HasSubscribers(domain.EventTrackStarted) {
		t.Error("Fresh bus should have no subscribers")
	}

	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {})

	if !bus.HasSubscribers(domain.EventTrackStarted) {
		t.Error("Expected subscribers for EventTrackStarted")
	}

	// Wildcard subscribers count for every type
	bus2 := newTestBus()
	defer bus2.Close()
	bus2.SubscribeAll(func(domain.Event) {})
	if !bus2.HasSubscribers(domain.EventRepeatToggled) {
		t.Error("Wildcard subscription should satisfy HasSubscribers")
	}
}
