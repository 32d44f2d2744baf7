package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SqliteStore owns the SQLite handle and hands out the per-aggregate
// repositories. The relational store is the single source of truth for
// tracks, playlists, ratings, favourites and chat messages.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (or creates) the database at path.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Tracks returns the track catalog repository.
func (s *SqliteStore) Tracks() *TrackStore { return &TrackStore{db: s.db} }

// Playlists returns the playlist repository.
func (s *SqliteStore) Playlists() *PlaylistStore { return &PlaylistStore{db: s.db} }

// Ratings returns the rating repository.
func (s *SqliteStore) Ratings() *RatingStore { return &RatingStore{db: s.db} }

// Favourites returns the favourite repository.
func (s *SqliteStore) Favourites() *FavouriteStore { return &FavouriteStore{db: s.db} }

// Messages returns the chat message repository.
func (s *SqliteStore) Messages() *MessageStore { return &MessageStore{db: s.db} }

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			genre TEXT,
			duration INTEGER DEFAULT 0,
			preview_url TEXT,
			uploader_id INTEGER NOT NULL,
			uploaded_at TEXT
		);

		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at TEXT
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL,
			track_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			added_at TEXT,
			UNIQUE(playlist_id, track_id),
			FOREIGN KEY (playlist_id) REFERENCES playlists(id),
			FOREIGN KEY (track_id) REFERENCES tracks(id)
		);

		CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			track_id INTEGER NOT NULL,
			rating_value INTEGER NOT NULL,
			created_at TEXT,
			updated_at TEXT,
			UNIQUE(user_id, track_id),
			FOREIGN KEY (track_id) REFERENCES tracks(id)
		);

		CREATE TABLE IF NOT EXISTS favourites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			track_id INTEGER NOT NULL,
			created_at TEXT,
			UNIQUE(user_id, track_id),
			FOREIGN KEY (track_id) REFERENCES tracks(id)
		);

		CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			sent_at TEXT,
			previous_id INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_id);
		CREATE INDEX IF NOT EXISTS idx_playlists_owner ON playlists(owner_id);
		CREATE INDEX IF NOT EXISTS idx_ratings_track ON ratings(track_id);
		CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);
		CREATE INDEX IF NOT EXISTS idx_favourites_track ON favourites(track_id);
		CREATE INDEX IF NOT EXISTS idx_favourites_user ON favourites(user_id);
		CREATE INDEX IF NOT EXISTS idx_chat_messages_sent ON chat_messages(sent_at);
	`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation reports whether err is a sqlite uniqueness-constraint
// failure, which the repositories translate into music.ErrConflict.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
