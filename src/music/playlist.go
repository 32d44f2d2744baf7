package music

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Playlist represents a user-owned, ordered collection of tracks.
type Playlist struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Entries     []PlaylistEntry `json:"tracks"`
}

// PlaylistEntry is a single track's membership in a playlist. Position is the
// zero-based rank inside the playlist; for any playlist the set of positions is
// exactly {0..n-1}. Entries are created and destroyed only through the
// playlists service so that invariant holds.
type PlaylistEntry struct {
	ID         int64     `json:"id"`
	PlaylistID int64     `json:"playlistId"`
	TrackID    int64     `json:"trackId"`
	Position   int       `json:"position"`
	AddedAt    time.Time `json:"addedAt"`

	// Populated by joins when the playlist is loaded with track details.
	Track *Track `json:"track,omitempty"`
}

// Validate validates the playlist fields.
func (p *Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: playlist name cannot be empty", ErrValidation)
	}
	if len(p.Name) > 200 {
		return fmt.Errorf("%w: playlist name cannot exceed 200 characters, got %d", ErrValidation, len(p.Name))
	}
	if len(p.Description) > 1000 {
		return fmt.Errorf("%w: playlist description cannot exceed 1000 characters, got %d", ErrValidation, len(p.Description))
	}
	return nil
}

// ContainsTrack checks whether the playlist's loaded entries include a track.
func (p *Playlist) ContainsTrack(trackID int64) bool {
	for _, e := range p.Entries {
		if e.TrackID == trackID {
			return true
		}
	}
	return false
}

// PlaylistRepository defines the data access operations for playlists and
// their ordered entries.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	GetByID(ctx context.Context, id int64) (*Playlist, error)
	GetAll(ctx context.Context) ([]*Playlist, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]*Playlist, error)
	SearchByName(ctx context.Context, name string) ([]*Playlist, error)
	Update(ctx context.Context, playlist *Playlist) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)

	// Entry operations. AppendEntries and RemoveEntriesAndReindex each run in
	// a single transaction; density of positions is restored before commit.
	GetEntries(ctx context.Context, playlistID int64) ([]PlaylistEntry, error)
	AppendEntries(ctx context.Context, playlistID int64, trackIDs []int64) error
	RemoveEntriesAndReindex(ctx context.Context, playlistID int64, trackIDs []int64) error
}
