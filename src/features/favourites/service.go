package favourites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"musicchat/src/music"
)

// Service is the domain service for favourites. Presence of a row means
// "favourited"; the uniqueness of (user, track) is enforced by the storage
// layer, and races against it are translated back into toggle semantics here.
type Service struct {
	favouriteRepo music.FavouriteRepository
	trackRepo     music.TrackRepository
}

// NewService creates a new favourites service.
func NewService(favouriteRepo music.FavouriteRepository, trackRepo music.TrackRepository) *Service {
	return &Service{
		favouriteRepo: favouriteRepo,
		trackRepo:     trackRepo,
	}
}

// Toggle flips the favourite state for (user, track) and returns the resulting
// state: true means the track is now favourited. Two concurrent toggles can
// both observe "absent"; the loser's insert hits the uniqueness constraint and
// is treated as the post-toggle favourited state rather than an error.
func (s *Service) Toggle(ctx context.Context, userID, trackID int64) (bool, error) {
	slog.Debug("Toggle service called", "userID", userID, "trackID", trackID)

	if userID <= 0 {
		return false, fmt.Errorf("%w: user id is required", music.ErrValidation)
	}
	exists, err := s.trackRepo.Exists(ctx, trackID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: track %d", music.ErrNotFound, trackID)
	}

	favourited, err := s.favouriteRepo.Exists(ctx, userID, trackID)
	if err != nil {
		return false, err
	}

	if favourited {
		if _, err := s.favouriteRepo.Delete(ctx, userID, trackID); err != nil {
			slog.Error("Toggle delete failed", "userID", userID, "trackID", trackID, "error", err)
			return false, err
		}
		slog.Info("Track removed from favourites", "userID", userID, "trackID", trackID)
		return false, nil
	}

	_, err = s.favouriteRepo.Insert(ctx, &music.Favourite{UserID: userID, TrackID: trackID})
	if err != nil {
		if errors.Is(err, music.ErrConflict) {
			// A concurrent toggle inserted first; the row exists, which is
			// exactly the state this call was converging on.
			slog.Debug("Toggle lost insert race, row already present", "userID", userID, "trackID", trackID)
			return true, nil
		}
		slog.Error("Toggle insert failed", "userID", userID, "trackID", trackID, "error", err)
		return false, err
	}
	slog.Info("Track added to favourites", "userID", userID, "trackID", trackID)
	return true, nil
}

// Add favourites a track without toggle semantics; favouriting twice is
// ErrConflict.
func (s *Service) Add(ctx context.Context, userID, trackID int64) (*music.Favourite, error) {
	slog.Debug("Add service called", "userID", userID, "trackID", trackID)

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

	favourite, err := s.favouriteRepo.Insert(ctx, &music.Favourite{UserID: userID, TrackID: trackID})
	if err != nil {
		return nil, err
	}
	slog.Info("Track added to favourites", "userID", userID, "trackID", trackID)
	return favourite, nil
}

// Remove un-favourites a track, reporting whether a row existed. Removing an
// absent favourite is not an error.
func (s *Service) Remove(ctx context.Context, userID, trackID int64) (bool, error) {
	slog.Debug("Remove service called", "userID", userID, "trackID", trackID)

	removed, err := s.favouriteRepo.Delete(ctx, userID, trackID)
	if err != nil {
		slog.Error("Remove failed", "userID", userID, "trackID", trackID, "error", err)
		return false, err
	}
	if removed {
		slog.Info("Track removed from favourites", "userID", userID, "trackID", trackID)
	}
	return removed, nil
}

// IsFavourited checks whether a user has favourited a track.
func (s *Service) IsFavourited(ctx context.Context, userID, trackID int64) (bool, error) {
	return s.favouriteRepo.Exists(ctx, userID, trackID)
}

// Count returns the number of favourites referencing a track.
func (s *Service) Count(ctx context.Context, trackID int64) (int, error) {
	return s.favouriteRepo.CountByTrack(ctx, trackID)
}

// ListForUser returns all of a user's favourites.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*music.Favourite, error) {
	return s.favouriteRepo.GetByUser(ctx, userID)
}

// TrackFavourites returns all favourites for a track.
func (s *Service) TrackFavourites(ctx context.Context, trackID int64) ([]*music.Favourite, error) {
	return s.favouriteRepo.GetByTrack(ctx, trackID)
}
