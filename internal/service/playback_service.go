// Package service provides business logic for the playr application.
package service

import (
	"log/slog"
	"sync"
	"time"

	"playr/internal/domain"
	"playr/internal/ports"
)

// PlaybackService is the state machine wrapping one logical "now playing"
// stream. It owns the mapping from session state to engine calls and
// checkpoints the resume position back to the library store at pause, stop
// and shutdown boundaries.
//
// States are Stopped, Playing and Paused; see Play for the transition rules.
// All operations are thread-safe via sync.RWMutex.
type PlaybackService struct {
	// Dependencies (injected)
	logger *slog.Logger
	engine ports.AudioEngine
	store  ports.LibraryStore
	bus    ports.EventBus

	// State
	current *domain.Track
	handle  domain.StreamHandle
	status  domain.PlaybackStatus
	volume  float64

	mu sync.RWMutex
}

// NewPlaybackService creates a new playback service.
// The engine must already be initialized; engine initialization failure is
// fatal to the whole session and handled by the caller.
func NewPlaybackService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	store ports.LibraryStore,
	bus ports.EventBus,
) *PlaybackService {
	service := &PlaybackService{
		logger: logger,
		engine: engine,
		store:  store,
		bus:    bus,
		handle: domain.InvalidStreamHandle,
		status: domain.StatusStopped,
		volume: 1.0,
	}

	logger.Debug("playback service initialized")

	return service
}

// Play drives the state machine for a play intent on the given track:
//
//   - Stopped: load the file, seek to the track's persisted resume offset,
//     start playback, increment the play count, transition to Playing.
//     A load failure is recoverable: the session stays Stopped and the
//     track's stored state is untouched.
//   - Paused with the same track loaded: resume in place. No re-seek, no
//     play-count increment.
//   - Playing: toggle semantics, delegates to Pause.
//   - Paused/Playing with a different track: precondition violation, callers
//     must Stop first. Returns domain.ErrTrackActive without an engine call.
func (s *PlaybackService) Play(track domain.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case domain.StatusPlaying:
		return s.pauseLocked()

	case domain.StatusPaused:
		if s.current == nil || s.current.ID != track.ID {
			return domain.ErrTrackActive
		}
		if err := s.engine.Play(s.handle); err != nil {
			return domain.NewEngineError("play", "failed to resume stream", err)
		}
		s.status = domain.StatusPlaying
		s.bus.Publish(domain.NewTrackStartedEvent(track, true))
		return nil

	default: // Stopped
		return s.startLocked(track)
	}
}

// startLocked loads and starts a track from the Stopped state.
// Caller must hold the write lock.
func (s *PlaybackService) startLocked(track domain.Track) error {
	handle, err := s.engine.Load(track.FilePath)
	if err != nil {
		loadErr := domain.NewLoadError(track.FilePath, err)
		s.logger.Warn("cannot play track",
			slog.Int64("track_id", track.ID),
			slog.Any("error", loadErr))
		s.bus.Publish(domain.NewTrackErrorEvent(track, loadErr))
		return loadErr
	}

	// Resume where the track was last paused. A read failure degrades to a
	// start from the beginning.
	offset, err := s.store.ResumeOffset(track.ID)
	if err != nil {
		s.logger.Warn("failed to read resume offset", slog.Any("error", err))
		offset = 0
	}
	if offset > 0 {
		if err := s.engine.Seek(handle, offset); err != nil {
			s.logger.Warn("failed to seek to resume offset", slog.Any("error", err))
		}
	}

	if err := s.engine.SetVolume(handle, s.volume); err != nil {
		s.logger.Warn("failed to apply volume to stream", slog.Any("error", err))
	}

	if err := s.engine.Play(handle); err != nil {
		if unloadErr := s.engine.Unload(handle); unloadErr != nil {
			s.logger.Warn("failed to unload stream after play error", slog.Any("error", unloadErr))
		}
		return domain.NewEngineError("play", "failed to start stream", err)
	}

	if err := s.store.IncreasePlayCount(track.ID); err != nil {
		// Write failure abandons the count; playback continues.
		s.logger.Warn("failed to increase play count", slog.Any("error", err))
	}

	t := track
	s.current = &t
	s.handle = handle
	s.status = domain.StatusPlaying

	s.logger.Debug("started playback",
		slog.Int64("track_id", track.ID),
		slog.Duration("resume_offset", offset))

	s.bus.Publish(domain.NewTrackStartedEvent(track, false))
	return nil
}

// Pause halts the current stream and persists the cursor as the track's
// resume offset. No-op unless the engine reports the stream advancing.
func (s *PlaybackService) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pauseLocked()
}

// pauseLocked implements Pause. Caller must hold the write lock.
func (s *PlaybackService) pauseLocked() error {
	if s.status != domain.StatusPlaying || s.handle == domain.InvalidStreamHandle {
		return nil
	}

	advancing, err := s.engine.Playing(s.handle)
	if err != nil || !advancing {
		return nil
	}

	position, err := s.engine.Position(s.handle)
	if err != nil {
		position = 0
	}

	if s.current != nil {
		if err := s.store.SetResumeOffset(s.current.ID, position); err != nil {
			// The in-memory cursor is the only record until the next save.
			s.logger.Warn("failed to persist resume offset", slog.Any("error", err))
		}
	}

	if err := s.engine.Pause(s.handle); err != nil {
		return domain.NewEngineError("pause", "failed to halt stream", err)
	}

	s.status = domain.StatusPaused

	if s.current != nil {
		s.logger.Debug("paused",
			slog.Int64("track_id", s.current.ID),
			slog.Duration("position", position))
		s.bus.Publish(domain.NewTrackPausedEvent(*s.current, position))
	}

	return nil
}

// Stop releases the decoder for the current stream and transitions to
// Stopped. No-op when already Stopped.
func (s *PlaybackService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked()
}

// stopLocked implements Stop. Caller must hold the write lock.
func (s *PlaybackService) stopLocked() error {
	if s.status == domain.StatusStopped {
		return nil
	}

	stopped := s.current

	if s.handle != domain.InvalidStreamHandle {
		if err := s.engine.Unload(s.handle); err != nil {
			s.logger.Warn("failed to release stream", slog.Any("error", err))
		}
	}

	s.handle = domain.InvalidStreamHandle
	s.current = nil
	s.status = domain.StatusStopped

	if stopped != nil {
		s.bus.Publish(domain.NewTrackStoppedEvent(*stopped))
	}

	return nil
}

// Finished is the natural-completion poll: true only when the session is
// Playing and the engine reports end-of-media. As a side effect the stream is
// released and the session transitions to Stopped. Callers must poll this
// every tick; the engine pushes no notification.
func (s *PlaybackService) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusPlaying || s.handle == domain.InvalidStreamHandle {
		return false
	}

	ended, err := s.engine.HasEnded(s.handle)
	if err != nil || !ended {
		return false
	}

	completed := s.current

	if err := s.engine.Unload(s.handle); err != nil {
		s.logger.Warn("failed to release finished stream", slog.Any("error", err))
	}
	s.handle = domain.InvalidStreamHandle
	s.current = nil
	s.status = domain.StatusStopped

	if completed != nil {
		s.bus.Publish(domain.NewTrackCompletedEvent(*completed))
	}

	return true
}

// SetVolume clamps v to [0,1] and applies it immediately when a stream is
// loaded, independent of state.
func (s *PlaybackService) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0.0 {
		v = 0.0
	} else if v > 1.0 {
		v = 1.0
	}

	s.volume = v

	if s.handle != domain.InvalidStreamHandle {
		if err := s.engine.SetVolume(s.handle, v); err != nil {
			return domain.NewEngineError("set_volume", "failed to apply volume", err)
		}
	}

	s.bus.Publish(domain.NewVolumeChangedEvent(v))
	return nil
}

// GetVolume returns the current volume (0.0 to 1.0).
func (s *PlaybackService) GetVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.volume
}

// Seek moves the cursor; valid only when Playing or Paused.
// The new position is NOT persisted: resume offsets are checkpointed only at
// pause/stop/shutdown, so a crash after a manual seek loses that seek.
func (s *PlaybackService) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.StatusStopped || s.handle == domain.InvalidStreamHandle {
		return domain.ErrNoTrackLoaded
	}

	if err := s.engine.Seek(s.handle, position); err != nil {
		return domain.NewEngineError("seek", "failed to seek stream", err)
	}

	return nil
}

// CurrentTime returns the live cursor position, or 0 when Stopped.
func (s *PlaybackService) CurrentTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == domain.StatusStopped || s.handle == domain.InvalidStreamHandle {
		return 0
	}

	position, err := s.engine.Position(s.handle)
	if err != nil {
		return 0
	}
	return position
}

// MaxTime returns the total stream length, or 0 when Stopped.
func (s *PlaybackService) MaxTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == domain.StatusStopped || s.handle == domain.InvalidStreamHandle {
		return 0
	}

	duration, err := s.engine.Duration(s.handle)
	if err != nil {
		return 0
	}
	return duration
}

// Status returns the current playback status.
func (s *PlaybackService) Status() domain.PlaybackStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// Current returns the currently loaded track, or nil when Stopped.
func (s *PlaybackService) Current() *domain.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// Shutdown checkpoints the live cursor as the resume offset when a stream is
// active, then releases it. This is the quit boundary of the session.
func (s *PlaybackService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.handle != domain.InvalidStreamHandle {
		if position, err := s.engine.Position(s.handle); err == nil {
			if err := s.store.SetResumeOffset(s.current.ID, position); err != nil {
				s.logger.Warn("failed to checkpoint resume offset on shutdown", slog.Any("error", err))
			}
		}
	}

	return s.stopLocked()
}
