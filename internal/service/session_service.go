package service

import (
	"log/slog"
	"sync"

	"playr/internal/domain"
	"playr/internal/ports"
)

// SessionService holds the per-session preferences (volume, shuffle, repeat,
// last track and playlist) as an in-memory copy of the single persisted
// session row. Every mutation applies in memory, then writes the whole row
// back; a failed write is logged and abandoned, leaving the in-memory copy
// authoritative until the next mutation or the shutdown save.
type SessionService struct {
	logger *slog.Logger
	store  ports.LibraryStore
	bus    ports.EventBus

	state domain.SessionState

	mu sync.RWMutex
}

// NewSessionService loads the persisted session state. A read failure
// degrades to defaults so a corrupt row never blocks startup.
func NewSessionService(logger *slog.Logger, store ports.LibraryStore, bus ports.EventBus) *SessionService {
	state, err := store.LoadSessionState()
	if err != nil {
		logger.Warn("failed to load session state, using defaults", slog.Any("error", err))
		state = domain.DefaultSessionState()
	}

	return &SessionService{
		logger: logger,
		store:  store,
		bus:    bus,
		state:  state,
	}
}

// State returns a copy of the current session state.
func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// SetLastTrack records the track the session is positioned on.
func (s *SessionService) SetLastTrack(trackID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastTrackID = trackID
	s.persistLocked()
}

// SetLastPlaylist records the playlist the session is positioned on.
// Zero means the whole library.
func (s *SessionService) SetLastPlaylist(playlistID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastPlaylistID = playlistID
	s.persistLocked()
}

// SetVolume stores the session volume, clamped to [0,1].
func (s *SessionService) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0.0 {
		v = 0.0
	} else if v > 1.0 {
		v = 1.0
	}
	s.state.Volume = v
	s.persistLocked()
}

// ToggleShuffle flips shuffle mode and returns the new value.
func (s *SessionService) ToggleShuffle() bool {
	s.mu.Lock()
	s.state.Shuffle = !s.state.Shuffle
	enabled := s.state.Shuffle
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewShuffleToggledEvent(enabled))
	return enabled
}

// ToggleRepeat flips repeat mode and returns the new value.
func (s *SessionService) ToggleRepeat() bool {
	s.mu.Lock()
	s.state.Repeat = !s.state.Repeat
	enabled := s.state.Repeat
	s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewRepeatToggledEvent(enabled))
	return enabled
}

// Shuffle reports whether shuffle mode is on.
func (s *SessionService) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Shuffle
}

// Repeat reports whether repeat mode is on.
func (s *SessionService) Repeat() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Repeat
}

// Save writes the full session row back to the store. Called at shutdown as
// the final checkpoint.
func (s *SessionService) Save() error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	if err := s.store.SaveSessionState(state); err != nil {
		s.logger.Warn("failed to save session state", slog.Any("error", err))
		return err
	}

	s.logger.Debug("session state saved",
		slog.Int64("last_track_id", state.LastTrackID),
		slog.Float64("volume", state.Volume))

	return nil
}

// persistLocked writes the whole row after a mutation. Partial updates are
// not supported by the store, so the full record goes out every time.
// Failures are abandoned per the no-retry policy. Caller must hold the lock.
func (s *SessionService) persistLocked() {
	if err := s.store.SaveSessionState(s.state); err != nil {
		s.logger.Warn("failed to persist session state", slog.Any("error", err))
	}
}
