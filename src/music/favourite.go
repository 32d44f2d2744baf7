package music

import (
	"context"
	"time"
)

// Favourite marks a track as favourited by a user. Presence of the row is the
// whole signal; at most one exists per (user, track) pair.
type Favourite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	TrackID   int64     `json:"trackId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavouriteRepository defines the data access operations for favourites.
type FavouriteRepository interface {
	// Insert adds the favourite. If a row for (user, track) already exists,
	// including when a concurrent insert wins the race, it returns ErrConflict.
	Insert(ctx context.Context, favourite *Favourite) (*Favourite, error)
	GetByUserAndTrack(ctx context.Context, userID, trackID int64) (*Favourite, error)
	GetByTrack(ctx context.Context, trackID int64) ([]*Favourite, error)
	GetByUser(ctx context.Context, userID int64) ([]*Favourite, error)
	Exists(ctx context.Context, userID, trackID int64) (bool, error)
	CountByTrack(ctx context.Context, trackID int64) (int, error)
	Delete(ctx context.Context, userID, trackID int64) (bool, error)
}
