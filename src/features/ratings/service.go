package ratings

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"musicchat/src/music"
)

// Service is the domain service for track ratings. It keeps at most one rating
// per (user, track) pair and derives the aggregate statistics callers display.
type Service struct {
	ratingRepo music.RatingRepository
	trackRepo  music.TrackRepository
}

// NewService creates a new ratings service.
func NewService(ratingRepo music.RatingRepository, trackRepo music.TrackRepository) *Service {
	return &Service{
		ratingRepo: ratingRepo,
		trackRepo:  trackRepo,
	}
}

// Rate records or overwrites a user's rating for a track. Re-rating never
// creates a second row; the existing one gets the new value and a fresh
// updated timestamp.
func (s *Service) Rate(ctx context.Context, userID, trackID int64, value int) (*music.Rating, error) {
	slog.Debug("Rate service called", "userID", userID, "trackID", trackID, "value", value)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", music.ErrValidation)
	}

	exists, err := s.trackRepo.Exists(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: track %d", music.ErrNotFound, trackID)
	}

	rating := &music.Rating{
		UserID:  userID,
		TrackID: trackID,
		Value:   value,
	}
	if err := rating.Validate(); err != nil {
		slog.Error("Rate validation failed", "error", err)
		return nil, err
	}

	saved, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		slog.Error("Rate upsert failed", "userID", userID, "trackID", trackID, "error", err)
		return nil, err
	}

	slog.Info("Rate completed", "userID", userID, "trackID", trackID, "value", value)
	return saved, nil
}

// AverageRating returns the arithmetic mean of a track's ratings rounded to
// two decimal places. ok is false when the track has no ratings; callers must
// not conflate that with an average of zero.
func (s *Service) AverageRating(ctx context.Context, trackID int64) (float64, bool, error) {
	avg, ok, err := s.ratingRepo.Average(ctx, trackID)
	if err != nil {
		slog.Error("AverageRating failed", "trackID", trackID, "error", err)
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	return math.Round(avg*100) / 100, true, nil
}

// RatingCount returns the number of rating rows for a track.
func (s *Service) RatingCount(ctx context.Context, trackID int64) (int, error) {
	return s.ratingRepo.CountByTrack(ctx, trackID)
}

// RemoveRating deletes a user's rating for a track, reporting whether a row
// was actually removed.
func (s *Service) RemoveRating(ctx context.Context, userID, trackID int64) (bool, error) {
	slog.Debug("RemoveRating service called", "userID", userID, "trackID", trackID)

	removed, err := s.ratingRepo.Delete(ctx, userID, trackID)
	if err != nil {
		slog.Error("RemoveRating failed", "userID", userID, "trackID", trackID, "error", err)
		return false, err
	}
	if removed {
		slog.Info("RemoveRating completed", "userID", userID, "trackID", trackID)
	}
	return removed, nil
}

// GetUserRating returns a user's rating for a track, nil when unrated.
func (s *Service) GetUserRating(ctx context.Context, userID, trackID int64) (*music.Rating, error) {
	return s.ratingRepo.GetByUserAndTrack(ctx, userID, trackID)
}

// TrackRatings returns all ratings for a track.
func (s *Service) TrackRatings(ctx context.Context, trackID int64) ([]*music.Rating, error) {
	return s.ratingRepo.GetByTrack(ctx, trackID)
}

// UserRatings returns all ratings created by a user.
func (s *Service) UserRatings(ctx context.Context, userID int64) ([]*music.Rating, error) {
	return s.ratingRepo.GetByUser(ctx, userID)
}
