package searching

import "context"

// Placeholders used when the upstream provider omits artist or album.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Metadata is the internal shape of one external search result.
type Metadata struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	CoverURL   string `json:"coverUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Duration   int    `json:"duration,omitempty"` // seconds
}

// EnsureDefaults fills placeholder values for missing artist/album. Other
// missing fields stay absent.
func (m *Metadata) EnsureDefaults() {
	if m.Artist == "" {
		m.Artist = UnknownArtist
	}
	if m.Album == "" {
		m.Album = UnknownAlbum
	}
}

// Provider is the upstream search API the service memoizes.
type Provider interface {
	Search(ctx context.Context, query string) ([]Metadata, error)
	Name() string
}

// QueryCache memoizes search results keyed by normalized query. Implementations
// must be safe for concurrent use; two goroutines racing on the same missed key
// may both store it, which is benign (last write wins, values are identical).
type QueryCache interface {
	Get(key string) ([]Metadata, bool)
	Set(key string, results []Metadata)
	Keys() []string
	Len() int
	Clear()
}

// Stats describes the current cache contents.
type Stats struct {
	Size    int      `json:"cacheSize"`
	Queries []string `json:"cachedQueries"`
}
