package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"musicchat/src/features/metrics"
	"musicchat/src/features/searching"
	"musicchat/src/music"
)

// Deezer search API response structures.
type searchResponse struct {
	Data  []deezerTrack `json:"data"`
	Total int           `json:"total"`
	Next  string        `json:"next"`
}

type deezerTrack struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Artist   *deezerArtist `json:"artist"`
	Album    *deezerAlbum  `json:"album"`
	Preview  string        `json:"preview"`
	Duration int           `json:"duration"`
}

type deezerArtist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type deezerAlbum struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// Client implements searching.Provider against the Deezer search API. The
// upstream is rate-limited, so every call goes through a token-bucket limiter
// and carries a fixed request timeout.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Deezer client.
func NewClient(baseURL string, timeout time.Duration, perSecond float64) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Search queries the Deezer /search endpoint and maps results into the
// internal metadata shape. Timeouts and non-2xx responses surface as
// music.ErrExternalService.
func (c *Client) Search(ctx context.Context, query string) ([]searching.Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", music.ErrExternalService, err)
	}

	searchURL := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MusicChat/1.0")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: deezer request failed: %v", music.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: deezer returned status %d", music.ErrExternalService, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: failed to decode deezer response: %v", music.ErrExternalService, err)
	}
	metrics.UpstreamRequests.WithLabelValues("ok").Inc()

	results := make([]searching.Metadata, 0, len(parsed.Data))
	for _, track := range parsed.Data {
		results = append(results, track.toMetadata())
	}
	return results, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return "deezer" }

func (t deezerTrack) toMetadata() searching.Metadata {
	m := searching.Metadata{
		Title:      t.Title,
		PreviewURL: t.Preview,
		Duration:   t.Duration,
	}
	if t.Artist != nil {
		m.Artist = t.Artist.Name
	}
	if t.Album != nil {
		m.Album = t.Album.Title
		m.CoverURL = t.Album.Cover
	}
	return m
}
