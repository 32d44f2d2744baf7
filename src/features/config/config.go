package config

// Config holds the application configuration.
type Config struct {
	Logger   Logger   `yaml:"logger"`
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database" validate:"required"`
	Deezer   Deezer   `yaml:"deezer"`
	Cache    Cache    `yaml:"cache"`
	Chat     Chat     `yaml:"chat"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	Path string `yaml:"path" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Deezer holds the configuration for the upstream metadata provider.
type Deezer struct {
	BaseURL        string  `yaml:"base_url" validate:"required,url"`
	TimeoutSeconds int     `yaml:"timeout_seconds" validate:"gte=1"`
	RatePerSecond  float64 `yaml:"rate_per_second" validate:"gt=0"`
}

// Cache holds the configuration for the external search query cache.
type Cache struct {
	MaxEntries int `yaml:"max_entries" validate:"gte=1"`
}

// Chat holds the configuration for chat message persistence.
type Chat struct {
	MaxMessageLength int `yaml:"max_message_length" validate:"gte=1"`
}
