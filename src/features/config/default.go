package config

var defaultConfig = Config{
	Logger: Logger{
		Enabled: true,
		Level:   "info",
		Format:  "text",
	},
	Server: Server{
		PrintRoutes: false,
		Port:        3535,
	},
	Database: Database{
		Path: "./musicchat.db",
	},
	Deezer: Deezer{
		BaseURL:        "https://api.deezer.com",
		TimeoutSeconds: 10,
		RatePerSecond:  5,
	},
	Cache: Cache{
		MaxEntries: 1024,
	},
	Chat: Chat{
		MaxMessageLength: 2000,
	},
}

func createDefaultConfig() *Config {
	cfg := defaultConfig
	return &cfg
}
