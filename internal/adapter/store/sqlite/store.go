// Package sqlite implements the LibraryStore interface over a SQLite database.
// One process owns the database file at a time; SQLite serializes access inside
// that process.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"playr/internal/domain"
	"playr/internal/ports"
)

// Store is the SQLite-backed library store.
type Store struct {
	logger *slog.Logger
	db     *sql.DB
}

// Open opens (or creates) the library database at path and applies the schema.
// The path can be ":memory:" for an ephemeral library.
func Open(logger *slog.Logger, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent and matches the
	// single-writer ownership model.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{logger: logger, db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddTrack inserts a catalog row and returns the new track's id.
// DateAdded is stamped here when the caller left it empty.
func (s *Store) AddTrack(track domain.Track) (int64, error) {
	dateAdded := track.DateAdded
	if dateAdded == "" {
		dateAdded = domain.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO tracks (file_path, title, artist, duration, date_added, last_played, play_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		track.FilePath,
		track.Title,
		track.Artist,
		track.Duration.Seconds(),
		dateAdded,
		track.LastPlayed.Seconds(),
		track.PlayCount,
	)
	if err != nil {
		return 0, domain.NewStorageError("add_track", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.NewStorageError("add_track", err)
	}

	return id, nil
}

// TrackByID returns a single track, or domain.ErrTrackNotFound.
func (s *Store) TrackByID(id int64) (domain.Track, error) {
	row := s.db.QueryRow(`
		SELECT id, file_path, title, artist, duration, date_added, last_played, play_count
		FROM tracks WHERE id = ?`, id)

	track, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Track{}, domain.ErrTrackNotFound
	}
	if err != nil {
		return domain.Track{}, domain.NewStorageError("track_by_id", err)
	}

	return track, nil
}

// AllTracks returns the catalog in insertion order.
func (s *Store) AllTracks() ([]domain.Track, error) {
	rows, err := s.db.Query(`
		SELECT id, file_path, title, artist, duration, date_added, last_played, play_count
		FROM tracks ORDER BY id`)
	if err != nil {
		return nil, domain.NewStorageError("all_tracks", err)
	}
	defer rows.Close()

	return collectTracks(rows, "all_tracks")
}

// DeleteTrack removes the track from every playlist, then the catalog row.
// Deleting a non-existent id is a no-op.
func (s *Store) DeleteTrack(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.NewStorageError("delete_track", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE track_id = ?`, id); err != nil {
		return domain.NewStorageError("delete_track", err)
	}

	if _, err := tx.Exec(`DELETE FROM tracks WHERE id = ?`, id); err != nil {
		return domain.NewStorageError("delete_track", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("delete_track", err)
	}

	return nil
}

// IncreasePlayCount atomically increments a track's play count.
func (s *Store) IncreasePlayCount(id int64) error {
	_, err := s.db.Exec(`UPDATE tracks SET play_count = play_count + 1 WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("increase_play_count", err)
	}
	return nil
}

// SetResumeOffset records the cursor position a track was paused at.
func (s *Store) SetResumeOffset(id int64, offset time.Duration) error {
	_, err := s.db.Exec(`UPDATE tracks SET last_played = ? WHERE id = ?`, offset.Seconds(), id)
	if err != nil {
		return domain.NewStorageError("set_resume_offset", err)
	}
	return nil
}

// ResumeOffset returns the recorded resume offset, 0 when the track has none
// or does not exist.
func (s *Store) ResumeOffset(id int64) (time.Duration, error) {
	var seconds float64
	err := s.db.QueryRow(`SELECT last_played FROM tracks WHERE id = ?`, id).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.NewStorageError("resume_offset", err)
	}

	return secondsToDuration(seconds), nil
}

// AddPlaylist creates a playlist and returns its id.
func (s *Store) AddPlaylist(name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO playlists (name, created_at) VALUES (?, ?)`, name, domain.Now())
	if err != nil {
		return 0, domain.NewStorageError("add_playlist", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.NewStorageError("add_playlist", err)
	}

	return id, nil
}

// DeletePlaylist removes a playlist and cascades its membership rows.
func (s *Store) DeletePlaylist(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.NewStorageError("delete_playlist", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
		return domain.NewStorageError("delete_playlist", err)
	}

	if _, err := tx.Exec(`DELETE FROM playlists WHERE id = ?`, id); err != nil {
		return domain.NewStorageError("delete_playlist", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("delete_playlist", err)
	}

	return nil
}

// Playlists returns all playlists in creation order.
func (s *Store) Playlists() ([]domain.Playlist, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM playlists ORDER BY id`)
	if err != nil {
		return nil, domain.NewStorageError("playlists", err)
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		var p domain.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, domain.NewStorageError("playlists", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("playlists", err)
	}

	return playlists, nil
}

// PlaylistTracks returns a playlist's tracks in position order.
func (s *Store) PlaylistTracks(playlistID int64) ([]domain.Track, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.file_path, t.title, t.artist, t.duration, t.date_added, t.last_played, t.play_count
		FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position`, playlistID)
	if err != nil {
		return nil, domain.NewStorageError("playlist_tracks", err)
	}
	defer rows.Close()

	return collectTracks(rows, "playlist_tracks")
}

// AddTrackToPlaylist appends a track at position NextPosition.
func (s *Store) AddTrackToPlaylist(playlistID, trackID int64) error {
	position, err := s.NextPosition(playlistID)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO playlist_tracks (playlist_id, track_id, position)
		VALUES (?, ?, ?)`, playlistID, trackID, position)
	if err != nil {
		return domain.NewStorageError("add_track_to_playlist", err)
	}

	return nil
}

// RemoveTrackFromPlaylist removes one membership row. Remaining positions are
// not renumbered.
func (s *Store) RemoveTrackFromPlaylist(playlistID, trackID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
		playlistID, trackID)
	if err != nil {
		return domain.NewStorageError("remove_track_from_playlist", err)
	}

	return nil
}

// NextPosition returns max(position)+1 for the playlist, or 1 when empty.
func (s *Store) NextPosition(playlistID int64) (int, error) {
	var maxPos sql.NullInt64
	err := s.db.QueryRow(`
		SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?`,
		playlistID).Scan(&maxPos)
	if err != nil {
		return 0, domain.NewStorageError("next_position", err)
	}

	if !maxPos.Valid {
		return 1, nil
	}
	return int(maxPos.Int64) + 1, nil
}

// LoadSessionState returns the singleton session record, creating it with
// defaults when absent.
func (s *Store) LoadSessionState() (domain.SessionState, error) {
	var (
		state           domain.SessionState
		shuffle, repeat int
	)

	err := s.db.QueryRow(`
		SELECT last_track_id, last_playlist_id, volume, shuffle_enabled, repeat_enabled
		FROM session_state WHERE id = 1`).
		Scan(&state.LastTrackID, &state.LastPlaylistID, &state.Volume, &shuffle, &repeat)

	if errors.Is(err, sql.ErrNoRows) {
		state = domain.DefaultSessionState()
		if err := s.SaveSessionState(state); err != nil {
			return state, err
		}
		return state, nil
	}
	if err != nil {
		return domain.DefaultSessionState(), domain.NewStorageError("load_session_state", err)
	}

	state.Shuffle = shuffle != 0
	state.Repeat = repeat != 0
	return state, nil
}

// SaveSessionState overwrites all five session fields.
func (s *Store) SaveSessionState(state domain.SessionState) error {
	_, err := s.db.Exec(`
		INSERT INTO session_state (id, last_track_id, last_playlist_id, volume, shuffle_enabled, repeat_enabled)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_track_id    = excluded.last_track_id,
			last_playlist_id = excluded.last_playlist_id,
			volume           = excluded.volume,
			shuffle_enabled  = excluded.shuffle_enabled,
			repeat_enabled   = excluded.repeat_enabled`,
		state.LastTrackID,
		state.LastPlaylistID,
		state.Volume,
		boolToInt(state.Shuffle),
		boolToInt(state.Repeat),
	)
	if err != nil {
		return domain.NewStorageError("save_session_state", err)
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for track scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(sc scanner) (domain.Track, error) {
	var (
		track              domain.Track
		duration, resumeAt float64
	)

	err := sc.Scan(
		&track.ID,
		&track.FilePath,
		&track.Title,
		&track.Artist,
		&duration,
		&track.DateAdded,
		&resumeAt,
		&track.PlayCount,
	)
	if err != nil {
		return domain.Track{}, err
	}

	track.Duration = secondsToDuration(duration)
	track.LastPlayed = secondsToDuration(resumeAt)
	return track, nil
}

func collectTracks(rows *sql.Rows, op string) ([]domain.Track, error) {
	tracks := make([]domain.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	return tracks, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Verify that Store implements the LibraryStore interface
var _ ports.LibraryStore = (*Store)(nil)
