// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the playr music player.
package domain

import (
	"time"
)

// Track is one catalog entry referencing a single audio file plus its metadata
// and play history. Catalog fields are immutable once added; only PlayCount and
// LastPlayed change over a track's lifetime.
type Track struct {
	// ID is the store-assigned stable identifier
	ID int64

	// FilePath is the absolute path to the audio file on the filesystem
	FilePath string

	// Title is the song title ("" when metadata extraction failed)
	Title string

	// Artist is the performing artist name ("" when metadata extraction failed)
	Artist string

	// Duration is the total length of the track (0 when unknown)
	Duration time.Duration

	// DateAdded is the catalog insertion timestamp ("2006-01-02 15:04:05")
	DateAdded string

	// LastPlayed is the resume offset: the cursor position at which the track
	// was last paused or stopped. Playback resumes from here.
	LastPlayed time.Duration

	// PlayCount is monotonically non-decreasing
	PlayCount int
}

// TrackInfo is the result of tag extraction for a single file.
// Fields the tag source cannot supply stay zero; Valid reports whether the
// file carried a readable tag at all.
type TrackInfo struct {
	Title       string
	Artist      string
	Album       string
	Genre       string
	Year        int
	TrackNumber int
	Duration    time.Duration
	BitRate     int
	SampleRate  int
	Channels    int
	Valid       bool
}

// Playlist is a named, ordered collection of track references.
type Playlist struct {
	// ID is the store-assigned stable identifier
	ID int64

	// Name is the playlist name
	Name string

	// CreatedAt is the creation timestamp ("2006-01-02 15:04:05")
	CreatedAt string
}

// SessionState is the single persisted record capturing cross-restart
// preferences. It is overwritten wholesale on every save; callers
// read-modify-write the whole record.
type SessionState struct {
	// LastTrackID is the last played track id (0 = none)
	LastTrackID int64

	// LastPlaylistID is the last played playlist id (0 = none)
	LastPlaylistID int64

	// Volume is the saved volume level (0.0 to 1.0)
	Volume float64

	// Shuffle reports whether shuffle mode is enabled
	Shuffle bool

	// Repeat reports whether repeat mode is enabled
	Repeat bool
}

// DefaultSessionState returns the state used when no session row exists yet.
func DefaultSessionState() SessionState {
	return SessionState{Volume: 1.0}
}

// PlaybackStatus is the closed state set of the playback session.
// A tagged enum replaces the boolean is_playing/is_paused pair so invalid
// combinations cannot be represented.
type PlaybackStatus int

const (
	// StatusStopped indicates no stream is loaded
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates a stream is loaded but halted
	StatusPaused
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// StreamHandle is an opaque identifier for a stream loaded in the audio engine.
type StreamHandle int64

const (
	// InvalidStreamHandle represents an invalid or uninitialized stream handle
	InvalidStreamHandle StreamHandle = 0
)

// TimestampFormat is the layout for DateAdded and CreatedAt fields.
const TimestampFormat = "2006-01-02 15:04:05"

// Now formats the current time in TimestampFormat.
func Now() string {
	return time.Now().Format(TimestampFormat)
}
