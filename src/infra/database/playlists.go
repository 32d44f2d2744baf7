package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"musicchat/src/music"
)

// PlaylistStore implements music.PlaylistRepository on SQLite. The entry
// mutations run inside transactions so the dense 0..n-1 position invariant is
// never observable as broken.
type PlaylistStore struct {
	db *sql.DB
}

func (s *PlaylistStore) Create(ctx context.Context, playlist *music.Playlist) error {
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO playlists (owner_id, name, description, created_at)
		VALUES (?, ?, ?, ?)`,
		playlist.OwnerID, playlist.Name, playlist.Description,
		playlist.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	playlist.ID = id
	return nil
}

func (s *PlaylistStore) GetByID(ctx context.Context, id int64) (*music.Playlist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM playlists WHERE id = ?`, id)
	playlist, err := scanPlaylist(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.GetEntries(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Entries = entries
	return playlist, nil
}

func (s *PlaylistStore) GetAll(ctx context.Context) ([]*music.Playlist, error) {
	return s.queryPlaylists(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM playlists ORDER BY created_at DESC, id DESC`)
}

func (s *PlaylistStore) GetByOwner(ctx context.Context, ownerID int64) ([]*music.Playlist, error) {
	return s.queryPlaylists(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM playlists WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
}

func (s *PlaylistStore) SearchByName(ctx context.Context, name string) ([]*music.Playlist, error) {
	return s.queryPlaylists(ctx, `
		SELECT id, owner_id, name, description, created_at
		FROM playlists WHERE name LIKE ? ORDER BY id`, "%"+name+"%")
}

func (s *PlaylistStore) Update(ctx context.Context, playlist *music.Playlist) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE playlists SET name = ?, description = ? WHERE id = ?`,
		playlist.Name, playlist.Description, playlist.ID)
	return err
}

func (s *PlaylistStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PlaylistStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM playlists`).Scan(&n)
	return n, err
}

func (s *PlaylistStore) GetEntries(ctx context.Context, playlistID int64) ([]music.PlaylistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pt.id, pt.playlist_id, pt.track_id, pt.position, pt.added_at,
		       t.id, t.title, t.artist, t.album, t.genre, t.duration, t.preview_url, t.uploader_id, t.uploaded_at
		FROM playlist_tracks pt
		JOIN tracks t ON t.id = pt.track_id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []music.PlaylistEntry
	for rows.Next() {
		var e music.PlaylistEntry
		var addedAt sql.NullString
		var t music.Track
		var album, genre, previewURL, uploadedAt sql.NullString
		err := rows.Scan(&e.ID, &e.PlaylistID, &e.TrackID, &e.Position, &addedAt,
			&t.ID, &t.Title, &t.Artist, &album, &genre, &t.Duration,
			&previewURL, &t.UploaderID, &uploadedAt)
		if err != nil {
			return nil, err
		}
		if addedAt.Valid {
			e.AddedAt = parseTime(addedAt.String)
		}
		t.Album = album.String
		t.Genre = genre.String
		t.PreviewURL = previewURL.String
		if uploadedAt.Valid {
			t.UploadedAt = parseTime(uploadedAt.String)
		}
		e.Track = &t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendEntries adds the given tracks to the end of the playlist. Tracks
// already present are skipped; the rest are appended after the current maximum
// position in the order given.
func (s *PlaylistStore) AppendEntries(ctx context.Context, playlistID int64, trackIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxPos sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?`, playlistID).Scan(&maxPos)
	if err != nil {
		return err
	}
	next := 0
	if maxPos.Valid {
		next = int(maxPos.Int64) + 1
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, trackID := range trackIDs {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
			playlistID, trackID).Scan(&one)
		if err == nil {
			continue // already in the playlist
		}
		if err != sql.ErrNoRows {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO playlist_tracks (playlist_id, track_id, position, added_at)
			VALUES (?, ?, ?, ?)`, playlistID, trackID, next, now)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: track %d is already in playlist %d", music.ErrConflict, trackID, playlistID)
			}
			return err
		}
		next++
	}
	return tx.Commit()
}

// RemoveEntriesAndReindex deletes the given tracks from the playlist and
// renumbers the survivors to 0..n-1, preserving their relative order.
func (s *PlaylistStore) RemoveEntriesAndReindex(ctx context.Context, playlistID int64, trackIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, trackID := range trackIDs {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
			playlistID, trackID)
		if err != nil {
			return err
		}
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM playlist_tracks WHERE playlist_id = ? ORDER BY position`, playlistID)
	if err != nil {
		return err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE playlist_tracks SET position = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PlaylistStore) queryPlaylists(ctx context.Context, query string, args ...any) ([]*music.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []*music.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, playlist := range playlists {
		entries, err := s.GetEntries(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.Entries = entries
	}
	return playlists, nil
}

func scanPlaylist(row rowScanner) (*music.Playlist, error) {
	var p music.Playlist
	var description, createdAt sql.NullString
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &description, &createdAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	if createdAt.Valid {
		p.CreatedAt = parseTime(createdAt.String)
	}
	return &p, nil
}
