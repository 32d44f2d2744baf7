package database

import (
	"context"
	"database/sql"
	"time"

	"musicchat/src/music"
)

// RatingStore implements music.RatingRepository on SQLite. The (user, track)
// uniqueness constraint makes Upsert a single atomic statement.
type RatingStore struct {
	db *sql.DB
}

func (s *RatingStore) Upsert(ctx context.Context, rating *music.Rating) (*music.Rating, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, track_id, rating_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, track_id) DO UPDATE SET
			rating_value = excluded.rating_value,
			updated_at = excluded.updated_at`,
		rating.UserID, rating.TrackID, rating.Value, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByUserAndTrack(ctx, rating.UserID, rating.TrackID)
}

func (s *RatingStore) GetByUserAndTrack(ctx context.Context, userID, trackID int64) (*music.Rating, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, track_id, rating_value, created_at, updated_at
		FROM ratings WHERE user_id = ? AND track_id = ?`, userID, trackID)
	rating, err := scanRating(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingStore) GetByTrack(ctx context.Context, trackID int64) ([]*music.Rating, error) {
	return s.queryRatings(ctx, `
		SELECT id, user_id, track_id, rating_value, created_at, updated_at
		FROM ratings WHERE track_id = ? ORDER BY id`, trackID)
}

func (s *RatingStore) GetByUser(ctx context.Context, userID int64) ([]*music.Rating, error) {
	return s.queryRatings(ctx, `
		SELECT id, user_id, track_id, rating_value, created_at, updated_at
		FROM ratings WHERE user_id = ? ORDER BY id`, userID)
}

func (s *RatingStore) Average(ctx context.Context, trackID int64) (float64, bool, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(rating_value) FROM ratings WHERE track_id = ?`, trackID).Scan(&avg)
	if err != nil {
		return 0, false, err
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

func (s *RatingStore) CountByTrack(ctx context.Context, trackID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ratings WHERE track_id = ?`, trackID).Scan(&n)
	return n, err
}

func (s *RatingStore) Delete(ctx context.Context, userID, trackID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = ? AND track_id = ?`, userID, trackID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *RatingStore) queryRatings(ctx context.Context, query string, args ...any) ([]*music.Rating, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*music.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func scanRating(row rowScanner) (*music.Rating, error) {
	var r music.Rating
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&r.ID, &r.UserID, &r.TrackID, &r.Value, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		r.CreatedAt = parseTime(createdAt.String)
	}
	if updatedAt.Valid {
		r.UpdatedAt = parseTime(updatedAt.String)
	}
	return &r, nil
}
