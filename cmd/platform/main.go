package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scrollforcause/platform/internal/config"
	"scrollforcause/platform/internal/database"
	"scrollforcause/platform/internal/seed"
	"scrollforcause/platform/internal/server"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func main() {
	cfg := config.DefaultConfig()
	if cfg.LogJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	serveCmd := newFlagSet("serve", cfg)
	seedCmd := newFlagSet("seed", cfg)
	seedCmd.fs.BoolVar(&seedCmd.reset, "reset", false,
		"Delete the database file before seeding")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		serveCmd.fs.Parse(os.Args[2:])
		serveCmd.apply(cfg)

		if err := runServe(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "seed":
		seedCmd.fs.Parse(os.Args[2:])
		seedCmd.apply(cfg)

		if err := runSeed(cfg, seedCmd.reset); err != nil {
			log.Error().Err(err).Msg("Seed failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		usage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: platform [command] [options]")
	fmt.Println("Commands: serve, seed")
	fmt.Println("\nFor command-specific options, use: platform [command] -h")
}

// commandFlags holds the flags shared by every subcommand. Flag defaults come
// from the already-resolved config so precedence is flag > env > default.
type commandFlags struct {
	fs       *flag.FlagSet
	logLevel string
	reset    bool
}

func newFlagSet(name string, cfg *config.Config) *commandFlags {
	c := &commandFlags{fs: flag.NewFlagSet(name, flag.ExitOnError)}

	c.fs.StringVar(&cfg.DBPath, "db", cfg.DBPath,
		"Path to the SQLite database file (env: PLATFORM_DB_PATH)")
	c.fs.StringVar(&cfg.ServerHost, "host", cfg.ServerHost,
		"Host to bind the server to (env: PLATFORM_HOST)")
	c.fs.IntVar(&cfg.ServerPort, "port", cfg.ServerPort,
		"Port to listen on (env: PLATFORM_PORT)")
	c.fs.IntVar(&cfg.FeedPageSize, "feed-page-size", cfg.FeedPageSize,
		"Default number of feed items per page (env: PLATFORM_FEED_PAGE_SIZE)")
	c.fs.StringVar(&c.logLevel, "log-level", cfg.LogLevel.String(),
		"Log level: debug, info, warn, error (env: PLATFORM_LOG_LEVEL)")

	return c
}

func (c *commandFlags) apply(cfg *config.Config) {
	if level, err := zerolog.ParseLevel(c.logLevel); err == nil {
		cfg.LogLevel = level
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)
}

// runServe starts the HTTP API server with the provided configuration.
func runServe(cfg *config.Config) error {
	db, err := database.NewDB(database.NewConfig(cfg.DBPath))
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return server.RunServer(db, cfg.ListenAddr(), log.Logger, cfg.FeedPageSize)
}

// runSeed loads demo content into the database, optionally starting from a
// fresh file.
func runSeed(cfg *config.Config, reset bool) error {
	if reset {
		if err := database.DeleteDB(cfg.DBPath); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		log.Info().Str("path", cfg.DBPath).Msg("Existing database removed")
	}

	db, err := database.NewDB(database.NewConfig(cfg.DBPath))
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to initialize database")
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return seed.NewSeeder(db).Run(context.Background())
}
