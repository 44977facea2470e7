package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/foodcatch/internal/config"
	"github.com/vovakirdan/foodcatch/internal/core"
	"github.com/vovakirdan/foodcatch/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Left/Right, A/D   - Move the bowl
  Mouse             - Move the bowl toward the pointer
  P/Esc             - Pause
  R/Enter           - Restart (after game over)
  N                 - Change player name
  Tab               - Leaderboard
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start with the fewest lanes, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  foodcatch play
  foodcatch play --difficulty hard
  foodcatch play --name ann --config ./my-catch.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	catchCfg, err := loadCatchConfig()
	if err != nil {
		exitf("%v", err)
	}

	// The terminal is in alt-screen mode, so logs go to a file.
	logFile, err := openLogFile()
	if err != nil {
		exitf("cannot open log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "foodcatch")

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	svc, cleanup, err := openServices(logger)
	if err != nil {
		exitf("cannot open storage: %v", err)
	}

	opts := tui.Options{
		Runtime:      runtime,
		Catch:        catchCfg,
		Player:       flagName,
		RememberName: true,
	}

	logger.Info("starting", "difficulty", flagDifficulty, "remote", flagLeaderboardURL != "")
	runErr := tui.Run(svc, opts)

	// Close store before potential exit
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, config.AppDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "foodcatch.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
