package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playr/internal/adapter/audio/mock"
	"playr/internal/adapter/eventbus"
	"playr/internal/adapter/store/sqlite"
	"playr/internal/domain"
	"playr/internal/logger"
)

// Helper to create a test playback service backed by an in-memory store
func newTestPlaybackService(t *testing.T) (*PlaybackService, *mock.Engine, *sqlite.Store, *eventbus.SyncEventBus) {
	t.Helper()

	log := logger.NewTestLogger()

	engine := mock.NewEngine()
	require.NoError(t, engine.Initialize(-1, 44100))

	store, err := sqlite.Open(log, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	service := NewPlaybackService(log, engine, store, bus)
	return service, engine, store, bus
}

// Helper to insert a track and return it with its assigned ID
func addTestTrack(t *testing.T, store *sqlite.Store, path string) domain.Track {
	t.Helper()

	track := domain.Track{
		FilePath:  path,
		Title:     "Test Song",
		Artist:    "Test Artist",
		Duration:  3 * time.Minute,
		DateAdded: domain.Now(),
	}
	id, err := store.AddTrack(track)
	require.NoError(t, err)
	track.ID = id
	return track
}

func TestPlaybackService_PlayFromStopped(t *testing.T) {
	service, engine, store, bus := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	var started domain.TrackStartedEvent
	bus.Subscribe(domain.EventTrackStarted, func(e domain.Event) {
		started = e.(domain.TrackStartedEvent)
	})

	require.NoError(t, service.Play(track))

	assert.Equal(t, domain.StatusPlaying, service.Status())
	require.NotNil(t, service.Current())
	assert.Equal(t, track.ID, service.Current().ID)
	assert.Equal(t, 1, engine.LoadedStreams())

	// Event carries the track and marks a fresh start
	assert.Equal(t, track.ID, started.Track.ID)
	assert.False(t, started.Resumed)

	// Play count was incremented
	stored, err := store.TrackByID(track.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PlayCount)
}

func TestPlaybackService_PlayTogglesToPause(t *testing.T) {
	service, _, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	require.NoError(t, service.Play(track))
	require.Equal(t, domain.StatusPlaying, service.Status())

	// Second play intent on a playing session pauses it
	require.NoError(t, service.Play(track))
	assert.Equal(t, domain.StatusPaused, service.Status())

	// Third resumes in place
	require.NoError(t, service.Play(track))
	assert.Equal(t, domain.StatusPlaying, service.Status())

	// Resuming must not bump the play count again
	stored, err := store.TrackByID(track.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PlayCount)
}

func TestPlaybackService_PauseRoundTripsCursor(t *testing.T) {
	service, engine, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	require.NoError(t, service.Play(track))

	// Advance the stream, then pause
	require.NoError(t, engine.SimulateProgress(1, 42*time.Second))
	require.NoError(t, service.Pause())

	offset, err := store.ResumeOffset(track.ID)
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, offset)

	// A later cold start seeks back to the recorded offset
	require.NoError(t, service.Stop())
	require.NoError(t, service.Play(track))
	assert.Equal(t, 42*time.Second, service.CurrentTime())
}

func TestPlaybackService_PlayDifferentTrackWhileActive(t *testing.T) {
	service, _, store, _ := newTestPlaybackService(t)
	first := addTestTrack(t, store, "/music/one.mp3")
	second := addTestTrack(t, store, "/music/two.mp3")

	require.NoError(t, service.Play(first))
	require.NoError(t, service.Pause())

	err := service.Play(second)
	assert.ErrorIs(t, err, domain.ErrTrackActive)
	assert.Equal(t, domain.StatusPaused, service.Status())
}

func TestPlaybackService_LoadFailureIsRecoverable(t *testing.T) {
	service, engine, store, bus := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/broken.mp3")

	var errEvent domain.TrackErrorEvent
	bus.Subscribe(domain.EventTrackError, func(e domain.Event) {
		errEvent = e.(domain.TrackErrorEvent)
	})

	engine.SetFailLoad(true)
	err := service.Play(track)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, track.FilePath, loadErr.Path)

	// Session stays Stopped and the stored track is untouched
	assert.Equal(t, domain.StatusStopped, service.Status())
	stored, err := store.TrackByID(track.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PlayCount)
	assert.NotNil(t, errEvent.Error)

	// The session recovers once the file loads again
	engine.SetFailLoad(false)
	require.NoError(t, service.Play(track))
	assert.Equal(t, domain.StatusPlaying, service.Status())
}

func TestPlaybackService_StopReleasesStream(t *testing.T) {
	service, engine, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	require.NoError(t, service.Play(track))
	require.Equal(t, 1, engine.LoadedStreams())

	require.NoError(t, service.Stop())
	assert.Equal(t, domain.StatusStopped, service.Status())
	assert.Equal(t, 0, engine.LoadedStreams())
	assert.Nil(t, service.Current())

	// Stop from Stopped is a no-op
	require.NoError(t, service.Stop())
}

func TestPlaybackService_Finished(t *testing.T) {
	service, engine, store, bus := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	var completed domain.TrackCompletedEvent
	bus.Subscribe(domain.EventTrackCompleted, func(e domain.Event) {
		completed = e.(domain.TrackCompletedEvent)
	})

	require.NoError(t, service.Play(track))
	assert.False(t, service.Finished())

	require.NoError(t, engine.FinishStream(1))
	assert.True(t, service.Finished())

	// Completion released the stream and stopped the session
	assert.Equal(t, domain.StatusStopped, service.Status())
	assert.Equal(t, 0, engine.LoadedStreams())
	assert.Equal(t, track.ID, completed.Track.ID)

	// Subsequent polls report false
	assert.False(t, service.Finished())
}

func TestPlaybackService_VolumeClamped(t *testing.T) {
	service, engine, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	require.NoError(t, service.SetVolume(1.5))
	assert.Equal(t, 1.0, service.GetVolume())

	require.NoError(t, service.SetVolume(-0.5))
	assert.Equal(t, 0.0, service.GetVolume())

	require.NoError(t, service.SetVolume(0.7))
	require.NoError(t, service.Play(track))

	// The stored volume is applied to the freshly loaded stream
	v, err := engine.Volume(1)
	require.NoError(t, err)
	assert.Equal(t, 0.7, v)

	// Live adjustment reaches the stream too
	require.NoError(t, service.SetVolume(0.2))
	v, err = engine.Volume(1)
	require.NoError(t, err)
	assert.Equal(t, 0.2, v)
}

func TestPlaybackService_SeekRequiresLoadedStream(t *testing.T) {
	service, _, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	err := service.Seek(10 * time.Second)
	assert.ErrorIs(t, err, domain.ErrNoTrackLoaded)

	require.NoError(t, service.Play(track))
	require.NoError(t, service.Seek(30*time.Second))
	assert.Equal(t, 30*time.Second, service.CurrentTime())

	// Out-of-range seeks surface the engine error
	err = service.Seek(-1 * time.Second)
	assert.Error(t, err)
}

func TestPlaybackService_TimesZeroWhenStopped(t *testing.T) {
	service, _, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	assert.Equal(t, time.Duration(0), service.CurrentTime())
	assert.Equal(t, time.Duration(0), service.MaxTime())

	require.NoError(t, service.Play(track))
	assert.Equal(t, 3*time.Minute, service.MaxTime())
}

func TestPlaybackService_ShutdownCheckpointsCursor(t *testing.T) {
	service, engine, store, _ := newTestPlaybackService(t)
	track := addTestTrack(t, store, "/music/song.mp3")

	require.NoError(t, service.Play(track))
	require.NoError(t, engine.SimulateProgress(1, 90*time.Second))

	require.NoError(t, service.Shutdown())

	offset, err := store.ResumeOffset(track.ID)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, offset)
	assert.Equal(t, 0, engine.LoadedStreams())
}
