package database

import (
	"context"
	"database/sql"
	"time"

	"musicchat/src/music"
)

// TrackStore implements music.TrackRepository on SQLite.
type TrackStore struct {
	db *sql.DB
}

func (s *TrackStore) Add(ctx context.Context, track *music.Track) error {
	if track.UploadedAt.IsZero() {
		track.UploadedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tracks (title, artist, album, genre, duration, preview_url, uploader_id, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		track.Title, track.Artist, track.Album, track.Genre, track.Duration,
		track.PreviewURL, track.UploaderID, track.UploadedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	track.ID = id
	return nil
}

func (s *TrackStore) Get(ctx context.Context, id int64) (*music.Track, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, artist, album, genre, duration, preview_url, uploader_id, uploaded_at
		FROM tracks WHERE id = ?`, id)
	track, err := scanTrack(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return track, nil
}

func (s *TrackStore) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tracks WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *TrackStore) GetAll(ctx context.Context) ([]*music.Track, error) {
	return s.queryTracks(ctx, `
		SELECT id, title, artist, album, genre, duration, preview_url, uploader_id, uploaded_at
		FROM tracks ORDER BY uploaded_at DESC, id DESC`)
}

func (s *TrackStore) SearchByTitle(ctx context.Context, query string) ([]*music.Track, error) {
	return s.queryTracks(ctx, `
		SELECT id, title, artist, album, genre, duration, preview_url, uploader_id, uploaded_at
		FROM tracks WHERE title LIKE ? ORDER BY id`, "%"+query+"%")
}

func (s *TrackStore) SearchByArtist(ctx context.Context, query string) ([]*music.Track, error) {
	return s.queryTracks(ctx, `
		SELECT id, title, artist, album, genre, duration, preview_url, uploader_id, uploaded_at
		FROM tracks WHERE artist LIKE ? ORDER BY id`, "%"+query+"%")
}

func (s *TrackStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&n)
	return n, err
}

func (s *TrackStore) queryTracks(ctx context.Context, query string, args ...any) ([]*music.Track, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []*music.Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

func scanTrack(row rowScanner) (*music.Track, error) {
	var t music.Track
	var album, genre, previewURL, uploadedAt sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Artist, &album, &genre, &t.Duration,
		&previewURL, &t.UploaderID, &uploadedAt)
	if err != nil {
		return nil, err
	}
	t.Album = album.String
	t.Genre = genre.String
	t.PreviewURL = previewURL.String
	if uploadedAt.Valid {
		t.UploadedAt = parseTime(uploadedAt.String)
	}
	return &t, nil
}
