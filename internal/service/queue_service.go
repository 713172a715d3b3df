package service

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"playr/internal/domain"
	"playr/internal/ports"
)

// QueueService owns the active play queue and the advancement policy over
// it. The policy resolves, in order: repeat (replay the same track, natural
// completion only), shuffle (uniform pick excluding the current index when
// more than one track is queued), and sequential with wrap-around.
//
// Advancement is driven externally: the host calls Tick periodically and the
// queue reacts when the playback session reports natural completion.
type QueueService struct {
	logger   *slog.Logger
	playback *PlaybackService
	session  *SessionService
	bus      ports.EventBus

	queue []domain.Track
	index int

	// intn is the shuffle source, swappable in tests.
	intn func(n int) int

	mu sync.Mutex
}

// NewQueueService creates a queue service over the given playback session.
func NewQueueService(
	logger *slog.Logger,
	playback *PlaybackService,
	session *SessionService,
	bus ports.EventBus,
) *QueueService {
	return &QueueService{
		logger:   logger,
		playback: playback,
		session:  session,
		bus:      bus,
		index:    -1,
		intn:     rand.IntN,
	}
}

// SetQueue replaces the active queue and positions it at startIndex.
// An out-of-range startIndex clamps to the first track.
func (s *QueueService) SetQueue(tracks []domain.Track, startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = make([]domain.Track, len(tracks))
	copy(s.queue, tracks)

	if startIndex < 0 || startIndex >= len(s.queue) {
		startIndex = 0
	}
	if len(s.queue) == 0 {
		startIndex = -1
	}
	s.index = startIndex

	s.bus.Publish(domain.NewQueueChangedEvent(s.queue, s.index))

	s.logger.Debug("queue replaced",
		slog.Int("tracks", len(s.queue)),
		slog.Int("index", s.index))
}

// Queue returns a copy of the active queue and the current index.
func (s *QueueService) Queue() ([]domain.Track, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Track, len(s.queue))
	copy(out, s.queue)
	return out, s.index
}

// Current returns the track at the queue cursor, or false when the queue is
// empty.
func (s *QueueService) Current() (domain.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index < 0 || s.index >= len(s.queue) {
		return domain.Track{}, false
	}
	return s.queue[s.index], true
}

// PlayCurrent starts (or toggles) playback of the track at the cursor.
func (s *QueueService) PlayCurrent() error {
	s.mu.Lock()
	if s.index < 0 || s.index >= len(s.queue) {
		s.mu.Unlock()
		return domain.ErrQueueEmpty
	}
	track := s.queue[s.index]
	s.mu.Unlock()

	if err := s.playback.Play(track); err != nil {
		return err
	}
	s.session.SetLastTrack(track.ID)
	return nil
}

// Tick polls the playback session for natural completion and advances the
// queue when it occurs. With repeat on, the same track replays; otherwise
// the next index is resolved by shuffle or sequential order. Must be called
// periodically by the host loop.
func (s *QueueService) Tick() {
	if !s.playback.Finished() {
		return
	}

	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}

	if !s.session.Repeat() {
		s.index = s.nextIndexLocked()
	}
	track := s.queue[s.index]
	s.mu.Unlock()

	if err := s.playback.Play(track); err != nil {
		s.logger.Warn("failed to advance to next track", slog.Any("error", err))
		return
	}
	s.session.SetLastTrack(track.ID)
}

// Next skips to the next track, bypassing repeat. Shuffle still applies.
// Any current stream is stopped first so the new track starts cleanly.
func (s *QueueService) Next() error {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return domain.ErrQueueEmpty
	}
	s.index = s.nextIndexLocked()
	track := s.queue[s.index]
	s.mu.Unlock()

	if err := s.playback.Stop(); err != nil {
		return err
	}
	if err := s.playback.Play(track); err != nil {
		return err
	}
	s.session.SetLastTrack(track.ID)
	return nil
}

// Previous steps back one position with wrap-around. Always sequential;
// shuffle and repeat do not apply to backward movement.
func (s *QueueService) Previous() error {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return domain.ErrQueueEmpty
	}
	s.index = (s.index - 1 + len(s.queue)) % len(s.queue)
	track := s.queue[s.index]
	s.mu.Unlock()

	if err := s.playback.Stop(); err != nil {
		return err
	}
	if err := s.playback.Play(track); err != nil {
		return err
	}
	s.session.SetLastTrack(track.ID)
	return nil
}

// nextIndexLocked resolves the next queue position per the active mode.
// With shuffle on and more than one track queued the pick is uniform over
// the other indices, so the same track never plays twice back to back.
// Caller must hold the lock.
func (s *QueueService) nextIndexLocked() int {
	n := len(s.queue)
	if n == 1 {
		return 0
	}

	if s.session.Shuffle() {
		next := s.intn(n - 1)
		if next >= s.index {
			next++
		}
		return next
	}

	return (s.index + 1) % n
}
