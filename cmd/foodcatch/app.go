package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/leaderboard"
	"github.com/vovakirdan/foodcatch/internal/platform/tui"
	"github.com/vovakirdan/foodcatch/internal/storage"
)

// newLogger creates a logger in the style used across the commands.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadCatchConfig loads game tuning and applies the difficulty preset.
func loadCatchConfig() (config.CatchConfig, error) {
	cfg, err := config.LoadCatch(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyCatchPreset(&cfg, preset)
	}
	return cfg, nil
}

// remoteBoard returns the remote leaderboard client, or nil when no URL is set.
func remoteBoard() leaderboard.Service {
	if flagLeaderboardURL == "" {
		return nil
	}
	return leaderboard.NewClient(flagLeaderboardURL, nil)
}

// openServices opens the store and builds the leaderboard and reporter.
// If the database cannot be opened the session runs on an in-memory one.
func openServices(logger *log.Logger) (tui.Services, func(), error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be kept", "path", flagDBPath, "error", err)
		store, err = storage.Open(":memory:")
		if err != nil {
			return tui.Services{}, nil, err
		}
	}

	local := leaderboard.NewLocalBoard(store, storage.KeyLeaderboard)
	board := leaderboard.NewBoard(local, remoteBoard(), logger)
	reporter := leaderboard.NewReporter(board, store, leaderboard.WithLogger(logger))

	svc := tui.Services{
		Store:    store,
		Board:    board,
		Reporter: reporter,
		Logger:   logger,
	}
	cleanup := func() {
		reporter.Wait()
		store.Close()
	}
	return svc, cleanup, nil
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
