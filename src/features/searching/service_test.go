package searching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"musicchat/src/music"
)

// MockProvider counts upstream calls and records the queries it received.
type MockProvider struct {
	calls   int
	queries []string
	results []Metadata
	err     error
}

func (m *MockProvider) Search(ctx context.Context, query string) ([]Metadata, error) {
	m.calls++
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return append([]Metadata(nil), m.results...), nil
}

func (m *MockProvider) Name() string { return "mock" }

// MockCache is an unbounded map-backed QueryCache.
type MockCache struct {
	entries map[string][]Metadata
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]Metadata)}
}

func (m *MockCache) Get(key string) ([]Metadata, bool) {
	results, ok := m.entries[key]
	return results, ok
}

func (m *MockCache) Set(key string, results []Metadata) {
	m.entries[key] = results
}

func (m *MockCache) Keys() []string {
	var keys []string
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

func (m *MockCache) Len() int { return len(m.entries) }

func (m *MockCache) Clear() { m.entries = make(map[string][]Metadata) }

func TestSearch_EquivalentQueriesShareOneUpstreamCall(t *testing.T) {
	provider := &MockProvider{results: []Metadata{{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"}}}
	service := NewService(provider, NewMockCache())
	ctx := context.Background()

	first, err := service.Search(ctx, "Queen")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := service.Search(ctx, "  queen  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("expected a single upstream call, got %d", provider.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0].Title != second[0].Title {
		t.Error("expected both queries to return the same cached results")
	}
}

func TestSearch_UpstreamGetsTrimmedOriginalQuery(t *testing.T) {
	provider := &MockProvider{}
	service := NewService(provider, NewMockCache())

	if _, err := service.Search(context.Background(), "  Daft PUNK  "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(provider.queries) != 1 || provider.queries[0] != "Daft PUNK" {
		t.Errorf("expected upstream to receive the trimmed original casing, got %v", provider.queries)
	}
}

func TestSearch_EmptyQueryIsRejected(t *testing.T) {
	provider := &MockProvider{}
	service := NewService(provider, NewMockCache())

	for _, query := range []string{"", "   "} {
		_, err := service.Search(context.Background(), query)
		if !errors.Is(err, music.ErrValidation) {
			t.Errorf("query %q: expected ErrValidation, got %v", query, err)
		}
	}
	if provider.calls != 0 {
		t.Errorf("expected no upstream calls for blank queries, got %d", provider.calls)
	}
}

func TestSearch_FailuresAreNeverCached(t *testing.T) {
	provider := &MockProvider{err: fmt.Errorf("%w: upstream down", music.ErrExternalService)}
	cache := NewMockCache()
	service := NewService(provider, cache)
	ctx := context.Background()

	if _, err := service.Search(ctx, "queen"); !errors.Is(err, music.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatal("expected failed search to leave the cache empty")
	}

	// Upstream recovers; the same query must go out again and then cache.
	provider.err = nil
	provider.results = []Metadata{{Title: "Somebody to Love", Artist: "Queen"}}
	if _, err := service.Search(ctx, "queen"); err != nil {
		t.Fatalf("expected no error after recovery, got %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", provider.calls)
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 cached entry after recovery, got %d", cache.Len())
	}
}

func TestSearch_EmptyResultSetsAreCached(t *testing.T) {
	provider := &MockProvider{results: []Metadata{}}
	service := NewService(provider, NewMockCache())
	ctx := context.Background()

	service.Search(ctx, "nonexistent band")
	service.Search(ctx, "nonexistent band")

	if provider.calls != 1 {
		t.Errorf("expected an empty result set to be cached, got %d upstream calls", provider.calls)
	}
}

func TestSearch_FillsPlaceholdersForMissingFields(t *testing.T) {
	provider := &MockProvider{results: []Metadata{{Title: "Untitled Demo"}}}
	service := NewService(provider, NewMockCache())

	results, err := service.Search(context.Background(), "demo")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if results[0].Artist != UnknownArtist {
		t.Errorf("expected %q, got %q", UnknownArtist, results[0].Artist)
	}
	if results[0].Album != UnknownAlbum {
		t.Errorf("expected %q, got %q", UnknownAlbum, results[0].Album)
	}
}

func TestClear_ForcesUpstreamAgain(t *testing.T) {
	provider := &MockProvider{}
	service := NewService(provider, NewMockCache())
	ctx := context.Background()

	service.Search(ctx, "queen")
	service.Clear()
	service.Search(ctx, "queen")

	if provider.calls != 2 {
		t.Errorf("expected the cleared cache to force a second upstream call, got %d", provider.calls)
	}
}

func TestStats_ReportsNormalizedKeys(t *testing.T) {
	provider := &MockProvider{}
	service := NewService(provider, NewMockCache())
	ctx := context.Background()

	service.Search(ctx, "  The Beatles ")

	stats := service.Stats()
	if stats.Size != 1 {
		t.Fatalf("expected 1 entry, got %d", stats.Size)
	}
	if len(stats.Queries) != 1 || stats.Queries[0] != "the beatles" {
		t.Errorf("expected normalized key, got %v", stats.Queries)
	}
}

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"Queen":      "queen",
		"  queen  ":  "queen",
		"DAFT Punk":  "daft punk",
		"  a  b  ":   "a  b", // inner whitespace is preserved
	}
	for input, want := range cases {
		if got := NormalizeQuery(input); got != want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", input, got, want)
		}
	}
}
