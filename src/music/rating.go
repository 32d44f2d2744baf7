package music

import (
	"context"
	"fmt"
	"time"
)

// Rating is one user's score for one track. At most one row exists per
// (user, track) pair; re-rating overwrites in place.
type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	TrackID   int64     `json:"trackId"`
	Value     int       `json:"ratingValue"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate validates the rating fields.
func (r *Rating) Validate() error {
	if r.Value < 1 || r.Value > 5 {
		return fmt.Errorf("%w: rating value must be between 1 and 5, got %d", ErrValidation, r.Value)
	}
	return nil
}

// RatingRepository defines the data access operations for ratings.
type RatingRepository interface {
	// Upsert inserts the rating or, when a row for (user, track) already
	// exists, overwrites its value and refreshes the updated timestamp.
	// The returned rating carries the persisted row's id and timestamps.
	Upsert(ctx context.Context, rating *Rating) (*Rating, error)
	GetByUserAndTrack(ctx context.Context, userID, trackID int64) (*Rating, error)
	GetByTrack(ctx context.Context, trackID int64) ([]*Rating, error)
	GetByUser(ctx context.Context, userID int64) ([]*Rating, error)
	// Average reports the mean value for the track; ok is false when the
	// track has no ratings at all.
	Average(ctx context.Context, trackID int64) (avg float64, ok bool, err error)
	CountByTrack(ctx context.Context, trackID int64) (int, error)
	Delete(ctx context.Context, userID, trackID int64) (bool, error)
}
