// ABOUTME: Root Cobra command, global flags, and logging setup
// ABOUTME: Opens the SQLite store and configuration for all subcommands

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dmarchetti/viaggio/internal/config"
	"github.com/dmarchetti/viaggio/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	store  *storage.SQLiteStore
	logger zerolog.Logger

	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "viaggio",
	Short: "Travel logging with GPS trip tracking",
	Long: `viaggio records your trips: start one, feed it GPS fixes, attach photos
and notes along the way, and get distance statistics when you're done.
Exactly one trip is active at a time; its track is persisted waypoint by
waypoint, so nothing is lost if the process dies mid-journey.

Examples:
  viaggio create "Rome" --type multi-day
  viaggio track --input fixes.jsonl
  viaggio status
  viaggio stop
  viaggio stats`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg.GetLogLevel())

		if dbPath != "" {
			store, err = storage.NewSQLiteStore(dbPath)
		} else {
			store, err = cfg.OpenStore()
		}
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// newLogger builds a console logger at the configured level.
func newLogger(level string) zerolog.Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
