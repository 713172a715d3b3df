package service

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"playr/internal/domain"
	"playr/internal/ports"
)

// LibraryService orchestrates the persistent music library: track ingestion
// through the metadata extractor, and playlist management on top of the
// store's membership tables.
type LibraryService struct {
	logger    *slog.Logger
	store     ports.LibraryStore
	extractor ports.MetadataExtractor
	bus       ports.EventBus

	mu sync.Mutex
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	logger *slog.Logger,
	store ports.LibraryStore,
	extractor ports.MetadataExtractor,
	bus ports.EventBus,
) *LibraryService {
	return &LibraryService{
		logger:    logger,
		store:     store,
		extractor: extractor,
		bus:       bus,
	}
}

// AddTrack ingests a file into the library. Metadata extraction is
// best-effort: when the file cannot be parsed the track is still added with
// empty title/artist and zero duration, so an unreadable tag never blocks
// ingestion.
func (s *LibraryService) AddTrack(path string) (domain.Track, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Track{}, domain.ErrInvalidFilePath
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.extractor.Extract(path)
	if err != nil {
		if !errors.Is(err, domain.ErrMetadataInvalid) {
			return domain.Track{}, err
		}
		s.logger.Warn("metadata extraction failed, adding with empty fields",
			slog.String("path", path),
			slog.Any("error", err))
		info = domain.TrackInfo{}
	}

	track := domain.Track{
		FilePath:  path,
		Title:     info.Title,
		Artist:    info.Artist,
		Duration:  info.Duration,
		DateAdded: domain.Now(),
	}

	id, err := s.store.AddTrack(track)
	if err != nil {
		return domain.Track{}, err
	}
	track.ID = id

	s.logger.Info("track added",
		slog.Int64("track_id", id),
		slog.String("title", track.Title))

	s.bus.Publish(domain.NewTrackAddedEvent(track))
	return track, nil
}

// Track returns one track by ID.
func (s *LibraryService) Track(id int64) (domain.Track, error) {
	return s.store.TrackByID(id)
}

// Tracks returns every track in the library.
func (s *LibraryService) Tracks() ([]domain.Track, error) {
	return s.store.AllTracks()
}

// DeleteTrack removes a track and its playlist memberships. Idempotent.
func (s *LibraryService) DeleteTrack(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeleteTrack(id)
}

// CreatePlaylist creates a named playlist and returns it.
func (s *LibraryService) CreatePlaylist(name string) (domain.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.AddPlaylist(name)
	if err != nil {
		return domain.Playlist{}, err
	}

	s.logger.Info("playlist created",
		slog.Int64("playlist_id", id),
		slog.String("name", name))

	return domain.Playlist{ID: id, Name: name, CreatedAt: domain.Now()}, nil
}

// DeletePlaylist removes a playlist and its memberships. Tracks themselves
// are untouched.
func (s *LibraryService) DeletePlaylist(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.DeletePlaylist(id)
}

// Playlists returns every playlist.
func (s *LibraryService) Playlists() ([]domain.Playlist, error) {
	return s.store.Playlists()
}

// PlaylistTracks returns a playlist's tracks in position order.
func (s *LibraryService) PlaylistTracks(playlistID int64) ([]domain.Track, error) {
	return s.store.PlaylistTracks(playlistID)
}

// AddTrackToPlaylist appends a track at the next free position. Positions
// only ever grow; removals leave gaps rather than renumbering.
func (s *LibraryService) AddTrackToPlaylist(playlistID, trackID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.AddTrackToPlaylist(playlistID, trackID)
}

// RemoveTrackFromPlaylist drops a single membership.
func (s *LibraryService) RemoveTrackFromPlaylist(playlistID, trackID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.RemoveTrackFromPlaylist(playlistID, trackID)
}
