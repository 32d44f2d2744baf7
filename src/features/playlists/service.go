package playlists

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"musicchat/src/music"
)

// Service is the domain service for the playlists feature. It owns playlist
// membership and ordering: entries are only ever created or destroyed here, so
// the position invariant (exactly {0..n-1} per playlist) holds at the service
// boundary.
//
// Mutations on one playlist are serialized through a per-playlist mutex.
// Without it, two concurrent adds both read the same max position and commit
// duplicate ranks; the storage transaction alone does not order them.
type Service struct {
	playlistRepo music.PlaylistRepository
	trackRepo    music.TrackRepository

	locks sync.Map // playlist id -> *sync.Mutex
}

// NewService creates a new playlists service.
func NewService(playlistRepo music.PlaylistRepository, trackRepo music.TrackRepository) *Service {
	return &Service{
		playlistRepo: playlistRepo,
		trackRepo:    trackRepo,
	}
}

func (s *Service) lockPlaylist(playlistID int64) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(playlistID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// CreatePlaylist creates a new playlist, optionally seeding it with tracks.
func (s *Service) CreatePlaylist(ctx context.Context, ownerID int64, name, description string, trackIDs []int64) (*music.Playlist, error) {
	slog.Debug("CreatePlaylist service called", "ownerID", ownerID, "name", name, "seedTracks", len(trackIDs))

	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: owner id is required", music.ErrValidation)
	}

	playlist := &music.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		Entries:     []music.PlaylistEntry{},
	}
	if err := playlist.Validate(); err != nil {
		slog.Error("CreatePlaylist validation failed", "error", err)
		return nil, err
	}

	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		slog.Error("CreatePlaylist failed", "name", name, "error", err)
		return nil, err
	}

	if len(trackIDs) > 0 {
		updated, err := s.AddTracks(ctx, playlist.ID, trackIDs)
		if err != nil {
			return nil, err
		}
		playlist = updated
	}

	slog.Info("CreatePlaylist completed", "id", playlist.ID, "name", name)
	return playlist, nil
}

// GetPlaylist gets a playlist with its ordered entries.
func (s *Service) GetPlaylist(ctx context.Context, id int64) (*music.Playlist, error) {
	slog.Debug("GetPlaylist service called", "id", id)

	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		slog.Error("GetPlaylist failed", "id", id, "error", err)
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d", music.ErrNotFound, id)
	}
	return playlist, nil
}

// GetAllPlaylists gets all playlists, newest first.
func (s *Service) GetAllPlaylists(ctx context.Context) ([]*music.Playlist, error) {
	slog.Debug("GetAllPlaylists service called")
	return s.playlistRepo.GetAll(ctx)
}

// GetPlaylistsByOwner gets all playlists owned by a user, newest first.
func (s *Service) GetPlaylistsByOwner(ctx context.Context, ownerID int64) ([]*music.Playlist, error) {
	slog.Debug("GetPlaylistsByOwner service called", "ownerID", ownerID)
	return s.playlistRepo.GetByOwner(ctx, ownerID)
}

// SearchPlaylistsByName searches playlists whose name contains the given text.
func (s *Service) SearchPlaylistsByName(ctx context.Context, name string) ([]*music.Playlist, error) {
	slog.Debug("SearchPlaylistsByName service called", "name", name)
	return s.playlistRepo.SearchByName(ctx, name)
}

// UpdatePlaylist updates a playlist's name and description. An empty name
// keeps the current one.
func (s *Service) UpdatePlaylist(ctx context.Context, id int64, name, description string) (*music.Playlist, error) {
	slog.Debug("UpdatePlaylist service called", "id", id, "name", name)

	playlist, err := s.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		playlist.Name = name
	}
	playlist.Description = description

	if err := playlist.Validate(); err != nil {
		slog.Error("UpdatePlaylist validation failed", "id", id, "error", err)
		return nil, err
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		slog.Error("UpdatePlaylist failed", "id", id, "error", err)
		return nil, err
	}
	return playlist, nil
}

// DeletePlaylist deletes a playlist and all its entries.
func (s *Service) DeletePlaylist(ctx context.Context, id int64) error {
	slog.Debug("DeletePlaylist service called", "id", id)

	mu := s.lockPlaylist(id)
	mu.Lock()
	defer mu.Unlock()

	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if playlist == nil {
		return fmt.Errorf("%w: playlist %d", music.ErrNotFound, id)
	}

	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		slog.Error("DeletePlaylist failed", "id", id, "error", err)
		return err
	}
	slog.Info("DeletePlaylist completed", "id", id)
	return nil
}

// AddTracks appends tracks to a playlist in input order. Tracks already in the
// playlist are skipped, never duplicated. Every appended entry gets the next
// free position (max+1, or 0 for an empty playlist). Returns the playlist with
// its full, position-ordered entry list.
func (s *Service) AddTracks(ctx context.Context, playlistID int64, trackIDs []int64) (*music.Playlist, error) {
	slog.Debug("AddTracks service called", "playlistID", playlistID, "trackIDs", trackIDs)

	mu := s.lockPlaylist(playlistID)
	mu.Lock()
	defer mu.Unlock()

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		slog.Error("AddTracks: failed to get playlist", "playlistID", playlistID, "error", err)
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d", music.ErrNotFound, playlistID)
	}

	if len(trackIDs) == 0 {
		return playlist, nil
	}

	for _, trackID := range trackIDs {
		exists, err := s.trackRepo.Exists(ctx, trackID)
		if err != nil {
			slog.Error("AddTracks: failed to check track", "trackID", trackID, "error", err)
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: track %d", music.ErrNotFound, trackID)
		}
	}

	if err := s.playlistRepo.AppendEntries(ctx, playlistID, trackIDs); err != nil {
		slog.Error("AddTracks failed", "playlistID", playlistID, "error", err)
		return nil, err
	}

	updated, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	slog.Info("AddTracks completed", "playlistID", playlistID, "entries", len(updated.Entries))
	return updated, nil
}

// RemoveTracks deletes the given tracks from a playlist (absent ids are
// no-ops) and reindexes the remaining entries to 0..n-1, preserving their
// relative order. Returns the playlist with its updated entry list.
func (s *Service) RemoveTracks(ctx context.Context, playlistID int64, trackIDs []int64) (*music.Playlist, error) {
	slog.Debug("RemoveTracks service called", "playlistID", playlistID, "trackIDs", trackIDs)

	mu := s.lockPlaylist(playlistID)
	mu.Lock()
	defer mu.Unlock()

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		slog.Error("RemoveTracks: failed to get playlist", "playlistID", playlistID, "error", err)
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d", music.ErrNotFound, playlistID)
	}

	if len(trackIDs) == 0 {
		return playlist, nil
	}

	if err := s.playlistRepo.RemoveEntriesAndReindex(ctx, playlistID, trackIDs); err != nil {
		slog.Error("RemoveTracks failed", "playlistID", playlistID, "error", err)
		return nil, err
	}

	updated, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveTracks completed", "playlistID", playlistID, "entries", len(updated.Entries))
	return updated, nil
}

// ListTracks returns a playlist's entries ordered ascending by position.
func (s *Service) ListTracks(ctx context.Context, playlistID int64) ([]music.PlaylistEntry, error) {
	slog.Debug("ListTracks service called", "playlistID", playlistID)

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d", music.ErrNotFound, playlistID)
	}

	return s.playlistRepo.GetEntries(ctx, playlistID)
}

// PlaylistCount returns the total number of playlists.
func (s *Service) PlaylistCount(ctx context.Context) (int, error) {
	return s.playlistRepo.Count(ctx)
}
