package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scrollforcause/platform/internal/feed"
)

// Config holds all configuration for the application
type Config struct {
	// File paths
	DBPath string

	// Server settings
	ServerHost string
	ServerPort int

	// Feed settings
	FeedPageSize int

	// Log settings
	LogLevel zerolog.Level
	LogJSON  bool
}

// DefaultConfig returns an initial configuration with hardcoded defaults,
// overridable via PLATFORM_* environment variables. A .env file in the
// working directory is loaded first if present.
func DefaultConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	logLevel, _ := zerolog.ParseLevel(DefaultLogLevel)

	cfg := &Config{
		DBPath:       GetEnvString("PLATFORM_DB_PATH", DefaultDBPath),
		ServerHost:   GetEnvString("PLATFORM_HOST", DefaultServerHost),
		ServerPort:   GetEnvInt("PLATFORM_PORT", DefaultServerPort),
		FeedPageSize: GetEnvInt("PLATFORM_FEED_PAGE_SIZE", DefaultFeedPageSize),
		LogLevel:     GetEnvLogLevel("PLATFORM_LOG_LEVEL", logLevel),
		LogJSON:      GetEnvBool("PLATFORM_LOG_JSON", false),
	}

	if cfg.FeedPageSize < feed.MinLimit || cfg.FeedPageSize > MaxFeedPageSize {
		log.Warn().Int("configured", cfg.FeedPageSize).Int("fallback", DefaultFeedPageSize).
			Msg("Feed page size out of bounds, using default")
		cfg.FeedPageSize = DefaultFeedPageSize
	}

	return cfg
}

// ListenAddr returns the formatted listen address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}
