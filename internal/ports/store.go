package ports

import (
	"time"

	"playr/internal/domain"
)

// LibraryStore is the durable catalog of tracks, playlists, playlist
// membership/order and the single persisted session-state record.
//
// Read failures degrade to empty/default results where semantically safe;
// write failures abandon the operation (no retry). One process owns the store
// at a time.
//
// Thread-safety: implementations must serialize concurrent reads/writes.
type LibraryStore interface {
	// AddTrack inserts a catalog row and returns the new track's id.
	// Title/Artist may be empty and Duration zero when metadata was unreadable.
	AddTrack(track domain.Track) (int64, error)

	// TrackByID returns a single track, or domain.ErrTrackNotFound.
	TrackByID(id int64) (domain.Track, error)

	// AllTracks returns the catalog in insertion order.
	// Empty slice, not an error, when the catalog is empty.
	AllTracks() ([]domain.Track, error)

	// DeleteTrack removes the track from every playlist first, then the
	// catalog row. Deleting a non-existent id is a no-op.
	DeleteTrack(id int64) error

	// IncreasePlayCount atomically increments a track's play count.
	IncreasePlayCount(id int64) error

	// SetResumeOffset records the cursor position a track was paused at.
	SetResumeOffset(id int64, offset time.Duration) error

	// ResumeOffset returns the recorded resume offset, 0 when none exists.
	ResumeOffset(id int64) (time.Duration, error)

	// AddPlaylist creates a playlist and returns its id.
	AddPlaylist(name string) (int64, error)

	// DeletePlaylist removes a playlist and cascades its membership rows.
	// Idempotent.
	DeletePlaylist(id int64) error

	// Playlists returns all playlists in creation order.
	Playlists() ([]domain.Playlist, error)

	// PlaylistTracks returns a playlist's tracks in position order.
	// Empty slice, not an error, when the playlist is empty or missing.
	PlaylistTracks(playlistID int64) ([]domain.Track, error)

	// AddTrackToPlaylist appends a track at position NextPosition.
	AddTrackToPlaylist(playlistID, trackID int64) error

	// RemoveTrackFromPlaylist removes one membership row. Remaining entries
	// keep their positions: the sequence stays ascending but not contiguous.
	RemoveTrackFromPlaylist(playlistID, trackID int64) error

	// NextPosition returns max(position)+1 for the playlist, or 1 when empty.
	NextPosition(playlistID int64) (int, error)

	// LoadSessionState returns the singleton session record, creating it with
	// defaults (volume 1.0, no shuffle, no repeat, no last track) when absent.
	LoadSessionState() (domain.SessionState, error)

	// SaveSessionState overwrites all five session fields. Partial updates are
	// not supported; callers read-modify-write the whole record.
	SaveSessionState(state domain.SessionState) error

	// Close releases the underlying storage handle.
	Close() error
}
