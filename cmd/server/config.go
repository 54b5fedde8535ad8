package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/crocodile-words/internal/config"
)

// loadAppConfig loads the application configuration from the environment and the
// optional config file.
func loadAppConfig(configFile string) (*config.Config, error) {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"active_backend", cfg.Words.ActiveBackend)

	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}
	if cfg.Gemini.APIKey != "" {
		slog.Debug("Gemini configuration", "api_key_present", true)
	}

	return cfg, nil
}
