package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"musicchat/src/music"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	store, err := NewSqliteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTrackStore_GetAllReturnsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	tracks := store.Tracks()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := &music.Track{Title: "Older", Artist: "A", UploaderID: 1, UploadedAt: base}
	newer := &music.Track{Title: "Newer", Artist: "A", UploaderID: 1, UploadedAt: base.Add(time.Hour)}

	if err := tracks.Add(ctx, older); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := tracks.Add(ctx, newer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all, err := tracks.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(all))
	}
	if all[0].Title != "Newer" || all[1].Title != "Older" {
		t.Errorf("expected newest first, got [%s, %s]", all[0].Title, all[1].Title)
	}
}

func TestTrackStore_GetAllBreaksTimestampTiesByNewestID(t *testing.T) {
	store := newTestStore(t)
	tracks := store.Tracks()
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &music.Track{Title: "First", Artist: "A", UploaderID: 1, UploadedAt: at}
	second := &music.Track{Title: "Second", Artist: "A", UploaderID: 1, UploadedAt: at}

	tracks.Add(ctx, first)
	tracks.Add(ctx, second)

	all, err := tracks.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if all[0].Title != "Second" {
		t.Errorf("expected the later insert first on equal timestamps, got %s", all[0].Title)
	}
}

func TestPlaylistStore_ListingsReturnNewestFirst(t *testing.T) {
	store := newTestStore(t)
	playlists := store.Playlists()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := &music.Playlist{OwnerID: 7, Name: "Older", CreatedAt: base}
	newer := &music.Playlist{OwnerID: 7, Name: "Newer", CreatedAt: base.Add(time.Hour)}

	if err := playlists.Create(ctx, older); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := playlists.Create(ctx, newer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all, err := playlists.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 || all[0].Name != "Newer" || all[1].Name != "Older" {
		t.Fatalf("expected newest first from GetAll, got %v", []string{all[0].Name, all[1].Name})
	}

	byOwner, err := playlists.GetByOwner(ctx, 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(byOwner) != 2 || byOwner[0].Name != "Newer" {
		t.Errorf("expected newest first from GetByOwner, got %s first", byOwner[0].Name)
	}
}
