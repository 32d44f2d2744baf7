package music

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Track represents an uploaded audio track's catalog entry. The audio bytes
// themselves live outside this system; only metadata is persisted here.
type Track struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album,omitempty"`
	Genre      string    `json:"genre,omitempty"`
	Duration   int       `json:"duration,omitempty"` // seconds
	PreviewURL string    `json:"previewUrl,omitempty"`
	UploaderID int64     `json:"uploaderId"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Validate validates the track fields.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: track title cannot be empty", ErrValidation)
	}
	if len(t.Title) > 500 {
		return fmt.Errorf("%w: title cannot exceed 500 characters, got %d", ErrValidation, len(t.Title))
	}
	if strings.TrimSpace(t.Artist) == "" {
		return fmt.Errorf("%w: track artist cannot be empty", ErrValidation)
	}
	if len(t.Artist) > 500 {
		return fmt.Errorf("%w: artist cannot exceed 500 characters, got %d", ErrValidation, len(t.Artist))
	}
	if t.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative, got %d", ErrValidation, t.Duration)
	}
	if t.PreviewURL != "" && len(t.PreviewURL) > 500 {
		return fmt.Errorf("%w: preview URL cannot exceed 500 characters, got %d", ErrValidation, len(t.PreviewURL))
	}
	return nil
}

// TrackRepository defines the data access operations for the track catalog.
type TrackRepository interface {
	Add(ctx context.Context, track *Track) error
	Get(ctx context.Context, id int64) (*Track, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]*Track, error)
	SearchByTitle(ctx context.Context, query string) ([]*Track, error)
	SearchByArtist(ctx context.Context, query string) ([]*Track, error)
	Count(ctx context.Context) (int, error)
}
