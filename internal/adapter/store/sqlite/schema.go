package sqlite

// schema is applied on every open; CREATE TABLE IF NOT EXISTS keeps it
// idempotent across restarts.
const schema = `
CREATE TABLE IF NOT EXISTS tracks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path   TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	artist      TEXT NOT NULL DEFAULT '',
	duration    REAL NOT NULL DEFAULT 0,
	date_added  TEXT NOT NULL DEFAULT '',
	last_played REAL NOT NULL DEFAULT 0,
	play_count  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS playlists (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id INTEGER NOT NULL,
	track_id    INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	PRIMARY KEY (playlist_id, track_id)
);

CREATE TABLE IF NOT EXISTS session_state (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	last_track_id    INTEGER NOT NULL DEFAULT 0,
	last_playlist_id INTEGER NOT NULL DEFAULT 0,
	volume           REAL NOT NULL DEFAULT 1.0,
	shuffle_enabled  INTEGER NOT NULL DEFAULT 0,
	repeat_enabled   INTEGER NOT NULL DEFAULT 0
);
`
