package audio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"musicchat/src/music"
)

// MockTrackRepo is a map-backed implementation of music.TrackRepository.
type MockTrackRepo struct {
	nextID int64
	tracks map[int64]*music.Track
}

func NewMockTrackRepo() *MockTrackRepo {
	return &MockTrackRepo{nextID: 1, tracks: make(map[int64]*music.Track)}
}

func (m *MockTrackRepo) Add(ctx context.Context, track *music.Track) error {
	track.ID = m.nextID
	m.nextID++
	copied := *track
	m.tracks[track.ID] = &copied
	return nil
}

func (m *MockTrackRepo) Get(ctx context.Context, id int64) (*music.Track, error) {
	if t, ok := m.tracks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (m *MockTrackRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.tracks[id]
	return ok, nil
}

func (m *MockTrackRepo) GetAll(ctx context.Context) ([]*music.Track, error) {
	var out []*music.Track
	for _, t := range m.tracks {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockTrackRepo) SearchByTitle(ctx context.Context, query string) ([]*music.Track, error) {
	var out []*music.Track
	for _, t := range m.tracks {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockTrackRepo) SearchByArtist(ctx context.Context, query string) ([]*music.Track, error) {
	var out []*music.Track
	for _, t := range m.tracks {
		if strings.Contains(strings.ToLower(t.Artist), strings.ToLower(query)) {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockTrackRepo) Count(ctx context.Context) (int, error) {
	return len(m.tracks), nil
}

func TestUpload_RegistersTrack(t *testing.T) {
	service := NewService(NewMockTrackRepo())

	track, err := service.Upload(context.Background(), &music.Track{
		Title:      "Paranoid Android",
		Artist:     "Radiohead",
		Album:      "OK Computer",
		Duration:   387,
		UploaderID: 7,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if track.ID == 0 {
		t.Error("expected the uploaded track to carry an id")
	}
	if track.UploadedAt.IsZero() {
		t.Error("expected an upload timestamp")
	}
}

func TestUpload_RejectsMissingFields(t *testing.T) {
	service := NewService(NewMockTrackRepo())
	ctx := context.Background()

	if _, err := service.Upload(ctx, &music.Track{Artist: "Radiohead", UploaderID: 7}); !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation for missing title, got %v", err)
	}
	if _, err := service.Upload(ctx, &music.Track{Title: "Creep", UploaderID: 7}); !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation for missing artist, got %v", err)
	}
}

func TestGetTrack_NotFound(t *testing.T) {
	service := NewService(NewMockTrackRepo())

	_, err := service.GetTrack(context.Background(), 42)
	if !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchByTitle_RequiresQuery(t *testing.T) {
	service := NewService(NewMockTrackRepo())

	_, err := service.SearchByTitle(context.Background(), "   ")
	if !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSearchByArtist_MatchesSubstring(t *testing.T) {
	repo := NewMockTrackRepo()
	service := NewService(repo)
	ctx := context.Background()

	service.Upload(ctx, &music.Track{Title: "Creep", Artist: "Radiohead", UploaderID: 7})
	service.Upload(ctx, &music.Track{Title: "Eleanor Rigby", Artist: "The Beatles", UploaderID: 7})

	results, err := service.SearchByArtist(ctx, "radio")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].Artist != "Radiohead" {
		t.Errorf("expected only Radiohead, got %v", results)
	}
}
