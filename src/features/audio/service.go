package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musicchat/src/music"
)

// Service is the domain service for the track catalog. Uploaded audio bytes
// are handled by an external collaborator; this service owns the metadata rows
// everything else references.
type Service struct {
	trackRepo music.TrackRepository
}

// NewService creates a new audio service.
func NewService(trackRepo music.TrackRepository) *Service {
	return &Service{trackRepo: trackRepo}
}

// Upload registers a track's catalog entry.
func (s *Service) Upload(ctx context.Context, track *music.Track) (*music.Track, error) {
	slog.Debug("Upload service called", "title", track.Title, "artist", track.Artist)

	track.UploadedAt = time.Now()
	if err := track.Validate(); err != nil {
		slog.Error("Upload validation failed", "error", err)
		return nil, err
	}

	if err := s.trackRepo.Add(ctx, track); err != nil {
		slog.Error("Upload failed", "title", track.Title, "error", err)
		return nil, err
	}

	slog.Info("Upload completed", "id", track.ID, "title", track.Title)
	return track, nil
}

// GetTrack gets a track by id.
func (s *Service) GetTrack(ctx context.Context, id int64) (*music.Track, error) {
	slog.Debug("GetTrack service called", "id", id)

	track, err := s.trackRepo.Get(ctx, id)
	if err != nil {
		slog.Error("GetTrack failed", "id", id, "error", err)
		return nil, err
	}
	if track == nil {
		return nil, fmt.Errorf("%w: track %d", music.ErrNotFound, id)
	}
	return track, nil
}

// GetTracks gets all tracks, newest first.
func (s *Service) GetTracks(ctx context.Context) ([]*music.Track, error) {
	slog.Debug("GetTracks service called")
	return s.trackRepo.GetAll(ctx)
}

// SearchByTitle finds tracks whose title contains the query, case-insensitive.
func (s *Service) SearchByTitle(ctx context.Context, query string) ([]*music.Track, error) {
	slog.Debug("SearchByTitle service called", "query", query)

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", music.ErrValidation)
	}
	return s.trackRepo.SearchByTitle(ctx, strings.TrimSpace(query))
}

// SearchByArtist finds tracks whose artist contains the query, case-insensitive.
func (s *Service) SearchByArtist(ctx context.Context, query string) ([]*music.Track, error) {
	slog.Debug("SearchByArtist service called", "query", query)

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", music.ErrValidation)
	}
	return s.trackRepo.SearchByArtist(ctx, strings.TrimSpace(query))
}

// TrackCount returns the catalog size.
func (s *Service) TrackCount(ctx context.Context) (int, error) {
	return s.trackRepo.Count(ctx)
}
