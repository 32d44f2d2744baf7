package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"musicchat/src/music"
)

// FavouriteStore implements music.FavouriteRepository on SQLite. The
// (user, track) uniqueness constraint is the arbiter for concurrent toggles;
// a losing insert surfaces as music.ErrConflict.
type FavouriteStore struct {
	db *sql.DB
}

func (s *FavouriteStore) Insert(ctx context.Context, favourite *music.Favourite) (*music.Favourite, error) {
	if favourite.CreatedAt.IsZero() {
		favourite.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO favourites (user_id, track_id, created_at)
		VALUES (?, ?, ?)`,
		favourite.UserID, favourite.TrackID, favourite.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %d already favourited track %d",
				music.ErrConflict, favourite.UserID, favourite.TrackID)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	favourite.ID = id
	return favourite, nil
}

func (s *FavouriteStore) GetByUserAndTrack(ctx context.Context, userID, trackID int64) (*music.Favourite, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, track_id, created_at
		FROM favourites WHERE user_id = ? AND track_id = ?`, userID, trackID)
	favourite, err := scanFavourite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return favourite, nil
}

func (s *FavouriteStore) GetByTrack(ctx context.Context, trackID int64) ([]*music.Favourite, error) {
	return s.queryFavourites(ctx, `
		SELECT id, user_id, track_id, created_at
		FROM favourites WHERE track_id = ? ORDER BY id`, trackID)
}

func (s *FavouriteStore) GetByUser(ctx context.Context, userID int64) ([]*music.Favourite, error) {
	return s.queryFavourites(ctx, `
		SELECT id, user_id, track_id, created_at
		FROM favourites WHERE user_id = ? ORDER BY id`, userID)
}

func (s *FavouriteStore) Exists(ctx context.Context, userID, trackID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favourites WHERE user_id = ? AND track_id = ?`,
		userID, trackID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavouriteStore) CountByTrack(ctx context.Context, trackID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favourites WHERE track_id = ?`, trackID).Scan(&n)
	return n, err
}

func (s *FavouriteStore) Delete(ctx context.Context, userID, trackID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favourites WHERE user_id = ? AND track_id = ?`, userID, trackID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *FavouriteStore) queryFavourites(ctx context.Context, query string, args ...any) ([]*music.Favourite, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favourites []*music.Favourite
	for rows.Next() {
		favourite, err := scanFavourite(rows)
		if err != nil {
			return nil, err
		}
		favourites = append(favourites, favourite)
	}
	return favourites, rows.Err()
}

func scanFavourite(row rowScanner) (*music.Favourite, error) {
	var f music.Favourite
	var createdAt sql.NullString
	if err := row.Scan(&f.ID, &f.UserID, &f.TrackID, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		f.CreatedAt = parseTime(createdAt.String)
	}
	return &f, nil
}
