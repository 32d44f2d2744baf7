package playlists

import (
	"context"
	"sync"
	"testing"

	"musicchat/src/music"

	"errors"
)

// MockPlaylistRepo is a map-backed implementation of music.PlaylistRepository
// that mirrors the storage semantics: append after max position, remove then
// renumber survivors to 0..n-1.
type MockPlaylistRepo struct {
	mu        sync.Mutex
	nextID    int64
	playlists map[int64]*music.Playlist
	entries   map[int64][]music.PlaylistEntry
}

func NewMockPlaylistRepo() *MockPlaylistRepo {
	return &MockPlaylistRepo{
		nextID:    1,
		playlists: make(map[int64]*music.Playlist),
		entries:   make(map[int64][]music.PlaylistEntry),
	}
}

func (m *MockPlaylistRepo) Create(ctx context.Context, playlist *music.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	playlist.ID = m.nextID
	m.nextID++
	copied := *playlist
	m.playlists[playlist.ID] = &copied
	return nil
}

func (m *MockPlaylistRepo) GetByID(ctx context.Context, id int64) (*music.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playlists[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	copied.Entries = append([]music.PlaylistEntry(nil), m.entries[id]...)
	return &copied, nil
}

func (m *MockPlaylistRepo) GetAll(ctx context.Context) ([]*music.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*music.Playlist
	for _, p := range m.playlists {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MockPlaylistRepo) GetByOwner(ctx context.Context, ownerID int64) ([]*music.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*music.Playlist
	for _, p := range m.playlists {
		if p.OwnerID == ownerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockPlaylistRepo) SearchByName(ctx context.Context, name string) ([]*music.Playlist, error) {
	return m.GetAll(ctx)
}

func (m *MockPlaylistRepo) Update(ctx context.Context, playlist *music.Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.playlists[playlist.ID]; !ok {
		return errors.New("playlist does not exist")
	}
	copied := *playlist
	m.playlists[playlist.ID] = &copied
	return nil
}

func (m *MockPlaylistRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.playlists, id)
	delete(m.entries, id)
	return nil
}

func (m *MockPlaylistRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.playlists), nil
}

func (m *MockPlaylistRepo) GetEntries(ctx context.Context, playlistID int64) ([]music.PlaylistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]music.PlaylistEntry(nil), m.entries[playlistID]...), nil
}

func (m *MockPlaylistRepo) AppendEntries(ctx context.Context, playlistID int64, trackIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.entries[playlistID]
	next := 0
	present := make(map[int64]bool)
	for _, e := range existing {
		present[e.TrackID] = true
		if e.Position >= next {
			next = e.Position + 1
		}
	}
	for _, trackID := range trackIDs {
		if present[trackID] {
			continue
		}
		existing = append(existing, music.PlaylistEntry{
			ID:         m.nextID,
			PlaylistID: playlistID,
			TrackID:    trackID,
			Position:   next,
		})
		m.nextID++
		present[trackID] = true
		next++
	}
	m.entries[playlistID] = existing
	return nil
}

func (m *MockPlaylistRepo) RemoveEntriesAndReindex(ctx context.Context, playlistID int64, trackIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doomed := make(map[int64]bool)
	for _, id := range trackIDs {
		doomed[id] = true
	}
	var kept []music.PlaylistEntry
	for _, e := range m.entries[playlistID] {
		if !doomed[e.TrackID] {
			kept = append(kept, e)
		}
	}
	for i := range kept {
		kept[i].Position = i
	}
	m.entries[playlistID] = kept
	return nil
}

// MockTrackRepo knows only which track ids exist.
type MockTrackRepo struct {
	music.TrackRepository
	known map[int64]bool
}

func NewMockTrackRepo(ids ...int64) *MockTrackRepo {
	known := make(map[int64]bool)
	for _, id := range ids {
		known[id] = true
	}
	return &MockTrackRepo{known: known}
}

func (m *MockTrackRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.known[id], nil
}

func newTestService(trackIDs ...int64) (*Service, *MockPlaylistRepo) {
	repo := NewMockPlaylistRepo()
	return NewService(repo, NewMockTrackRepo(trackIDs...)), repo
}

func positions(entries []music.PlaylistEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Position
	}
	return out
}

func trackOrder(entries []music.PlaylistEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.TrackID
	}
	return out
}

func assertDense(t *testing.T, entries []music.PlaylistEntry) {
	t.Helper()
	for i, e := range entries {
		if e.Position != i {
			t.Fatalf("expected dense positions, got %v", positions(entries))
		}
	}
}

func TestAddTracks_AppendsInOrder(t *testing.T) {
	service, _ := newTestService(1, 2, 3)
	ctx := context.Background()

	playlist, err := service.CreatePlaylist(ctx, 7, "Road Trip", "", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	playlist, err = service.AddTracks(ctx, playlist.ID, []int64{1, 2, 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(playlist.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(playlist.Entries))
	}
	assertDense(t, playlist.Entries)
	order := trackOrder(playlist.Entries)
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected order [1 2 3], got %v", order)
	}
}

func TestAddTracks_DuplicateIsNoOp(t *testing.T) {
	service, _ := newTestService(1, 2)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", []int64{1, 2})

	playlist, err := service.AddTracks(ctx, playlist.ID, []int64{1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(playlist.Entries) != 2 {
		t.Fatalf("expected duplicate add to leave 2 entries, got %d", len(playlist.Entries))
	}
	assertDense(t, playlist.Entries)
}

func TestRemoveTracks_ReindexesSurvivors(t *testing.T) {
	service, _ := newTestService(1, 2, 3)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", []int64{1, 2, 3})

	playlist, err := service.RemoveTracks(ctx, playlist.ID, []int64{2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(playlist.Entries) != 2 {
		t.Fatalf("expected 2 entries after removal, got %d", len(playlist.Entries))
	}
	assertDense(t, playlist.Entries)
	order := trackOrder(playlist.Entries)
	if order[0] != 1 || order[1] != 3 {
		t.Errorf("expected order [1 3], got %v", order)
	}
}

func TestRemoveThenReAdd_AppendsAtTail(t *testing.T) {
	service, _ := newTestService(1, 2, 3)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", []int64{1, 2, 3})

	if _, err := service.RemoveTracks(ctx, playlist.ID, []int64{2}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	playlist, err := service.AddTracks(ctx, playlist.ID, []int64{2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	assertDense(t, playlist.Entries)
	order := trackOrder(playlist.Entries)
	if order[0] != 1 || order[1] != 3 || order[2] != 2 {
		t.Errorf("expected re-added track at the tail [1 3 2], got %v", order)
	}
}

func TestRemoveTracks_AbsentTrackIsNoOp(t *testing.T) {
	service, _ := newTestService(1, 2)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", []int64{1, 2})

	playlist, err := service.RemoveTracks(ctx, playlist.ID, []int64{99})
	if err != nil {
		t.Fatalf("expected no error removing an absent track, got %v", err)
	}
	if len(playlist.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(playlist.Entries))
	}
}

func TestAddTracks_PlaylistNotFound(t *testing.T) {
	service, _ := newTestService(1)

	_, err := service.AddTracks(context.Background(), 42, []int64{1})
	if !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTracks_TrackNotFound(t *testing.T) {
	service, _ := newTestService(1)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", nil)

	_, err := service.AddTracks(ctx, playlist.ID, []int64{99})
	if !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown track, got %v", err)
	}
}

func TestCreatePlaylist_RequiresName(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreatePlaylist(context.Background(), 7, "   ", "", nil)
	if !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreatePlaylist_RequiresOwner(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreatePlaylist(context.Background(), 0, "Mix", "", nil)
	if !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestUpdatePlaylist_EmptyNameKeepsCurrent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Original", "old", nil)

	updated, err := service.UpdatePlaylist(ctx, playlist.ID, "", "new description")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Original" {
		t.Errorf("expected name to stay Original, got %s", updated.Name)
	}
	if updated.Description != "new description" {
		t.Errorf("expected description updated, got %s", updated.Description)
	}
}

func TestConcurrentAdds_PositionsStayDense(t *testing.T) {
	service, _ := newTestService(1, 2, 3, 4, 5, 6, 7, 8)
	ctx := context.Background()

	playlist, _ := service.CreatePlaylist(ctx, 7, "Mix", "", nil)

	var wg sync.WaitGroup
	for id := int64(1); id <= 8; id++ {
		wg.Add(1)
		go func(trackID int64) {
			defer wg.Done()
			if _, err := service.AddTracks(ctx, playlist.ID, []int64{trackID}); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}(id)
	}
	wg.Wait()

	entries, err := service.ListTracks(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(entries))
	}
	assertDense(t, entries)
}
