package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playr/internal/adapter/eventbus"
	"playr/internal/adapter/store/sqlite"
	"playr/internal/domain"
	"playr/internal/logger"
)

func newTestSessionService(t *testing.T) (*SessionService, *sqlite.Store, *eventbus.SyncEventBus) {
	t.Helper()

	log := logger.NewTestLogger()

	store, err := sqlite.Open(log, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	return NewSessionService(log, store, bus), store, bus
}

func TestSessionService_DefaultsOnFreshDatabase(t *testing.T) {
	service, _, _ := newTestSessionService(t)

	state := service.State()
	assert.Equal(t, int64(0), state.LastTrackID)
	assert.Equal(t, 1.0, state.Volume)
	assert.False(t, state.Shuffle)
	assert.False(t, state.Repeat)
}

func TestSessionService_Toggles(t *testing.T) {
	service, _, bus := newTestSessionService(t)

	var shuffleEvent domain.ShuffleToggledEvent
	bus.Subscribe(domain.EventShuffleToggled, func(e domain.Event) {
		shuffleEvent = e.(domain.ShuffleToggledEvent)
	})

	assert.True(t, service.ToggleShuffle())
	assert.True(t, service.Shuffle())
	assert.True(t, shuffleEvent.Enabled)

	assert.False(t, service.ToggleShuffle())
	assert.False(t, service.Shuffle())

	assert.True(t, service.ToggleRepeat())
	assert.False(t, service.ToggleRepeat())
}

func TestSessionService_VolumeClamped(t *testing.T) {
	service, _, _ := newTestSessionService(t)

	service.SetVolume(2.0)
	assert.Equal(t, 1.0, service.State().Volume)

	service.SetVolume(-1.0)
	assert.Equal(t, 0.0, service.State().Volume)

	service.SetVolume(0.35)
	assert.Equal(t, 0.35, service.State().Volume)
}

func TestSessionService_SaveRoundTrip(t *testing.T) {
	service, store, _ := newTestSessionService(t)

	service.SetLastTrack(42)
	service.SetLastPlaylist(7)
	service.SetVolume(0.6)
	service.ToggleShuffle()
	service.ToggleRepeat()

	require.NoError(t, service.Save())

	// A fresh service over the same store sees the persisted row
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	reloaded := NewSessionService(log, store, bus)
	state := reloaded.State()
	assert.Equal(t, int64(42), state.LastTrackID)
	assert.Equal(t, int64(7), state.LastPlaylistID)
	assert.Equal(t, 0.6, state.Volume)
	assert.True(t, state.Shuffle)
	assert.True(t, state.Repeat)
}
