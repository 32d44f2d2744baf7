package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg := createDefaultConfig()
		applyEnvOverrides(cfg)

		if err := saveDefaultConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		return NewManager(cfg), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	// Fill in anything the file omits before validating.
	if cfg.Deezer.BaseURL == "" {
		cfg.Deezer.BaseURL = defaultConfig.Deezer.BaseURL
	}
	if cfg.Deezer.TimeoutSeconds == 0 {
		cfg.Deezer.TimeoutSeconds = defaultConfig.Deezer.TimeoutSeconds
	}
	if cfg.Deezer.RatePerSecond == 0 {
		cfg.Deezer.RatePerSecond = defaultConfig.Deezer.RatePerSecond
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = defaultConfig.Cache.MaxEntries
	}
	if cfg.Chat.MaxMessageLength == 0 {
		cfg.Chat.MaxMessageLength = defaultConfig.Chat.MaxMessageLength
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultConfig.Server.Port
	}

	applyEnvOverrides(&cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return NewManager(&cfg), nil
}

// applyEnvOverrides lets deployment environments override file settings.
func applyEnvOverrides(cfg *Config) {
	if dbPath := os.Getenv("MUSICCHAT_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if baseURL := os.Getenv("DEEZER_BASE_URL"); baseURL != "" {
		cfg.Deezer.BaseURL = baseURL
	}
	if port := os.Getenv("MUSICCHAT_PORT"); port != "" {
		if p, err := strconv.ParseUint(port, 10, 32); err == nil {
			cfg.Server.Port = uint32(p)
		} else {
			slog.Warn("Ignoring invalid MUSICCHAT_PORT", "value", port)
		}
	}
	if level := os.Getenv("MUSICCHAT_LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
}

func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	return encoder.Encode(cfg)
}
