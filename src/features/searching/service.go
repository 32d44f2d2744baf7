package searching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"musicchat/src/features/metrics"
	"musicchat/src/music"
)

// Service memoizes an upstream metadata search behind a query-keyed cache.
// The cache is a process-local accelerator, never authoritative: on restart it
// is empty and every query goes upstream again.
type Service struct {
	provider Provider
	cache    QueryCache
}

// NewService creates a new searching service.
func NewService(provider Provider, cache QueryCache) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
	}
}

// NormalizeQuery returns the cache key for a raw query: trimmed and lower-cased.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Search returns metadata for the query, consulting the cache first. The
// upstream provider is called with the trimmed query, not the normalized key.
// Failed upstream calls are never cached; empty result sets are.
func (s *Service) Search(ctx context.Context, query string) ([]Metadata, error) {
	slog.Debug("Search service called", "query", query)

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", music.ErrValidation)
	}
	key := NormalizeQuery(trimmed)

	if results, ok := s.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		slog.Debug("Search cache hit", "key", key, "results", len(results))
		return results, nil
	}
	metrics.CacheMisses.Inc()

	slog.Info("Searching upstream provider", "provider", s.provider.Name(), "query", trimmed)
	results, err := s.provider.Search(ctx, trimmed)
	if err != nil {
		slog.Error("Upstream search failed", "provider", s.provider.Name(), "query", trimmed, "error", err)
		return nil, err
	}

	for i := range results {
		results[i].EnsureDefaults()
	}

	s.cache.Set(key, results)
	metrics.CacheEntries.Set(float64(s.cache.Len()))
	slog.Debug("Search completed", "key", key, "results", len(results))
	return results, nil
}

// Stats returns the current entry count and the set of cached normalized keys.
func (s *Service) Stats() Stats {
	keys := s.cache.Keys()
	if keys == nil {
		keys = []string{}
	}
	return Stats{Size: s.cache.Len(), Queries: keys}
}

// Clear removes all cached entries unconditionally.
func (s *Service) Clear() {
	s.cache.Clear()
	metrics.CacheEntries.Set(0)
	slog.Info("External search cache cleared")
}
