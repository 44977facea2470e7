package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foodcatch/internal/leaderboard"
	"github.com/vovakirdan/foodcatch/internal/storage"
)

var (
	flagAPIAddr  string
	flagAPIRate  float64
	flagAPIBurst int
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the shared leaderboard over HTTP",
	Long: `Serve the leaderboard on /api/leaderboard.

  GET   returns {"entries": [...]}
  POST  {"type":"record","name":"ann","score":42}
  POST  {"type":"rename","oldName":"ann","newName":"Bob"}

Entries are kept in the database given by --db.

Examples:
  foodcatch api
  foodcatch api --addr :9000 --rate 5 --burst 10`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().Float64Var(&flagAPIRate, "rate", 20, "Allowed POST requests per second")
	apiCmd.Flags().IntVar(&flagAPIBurst, "burst", 40, "POST burst size")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "foodcatch-api")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening database: %v", err)
	}
	defer store.Close()

	board := leaderboard.NewLocalBoard(store, storage.KeyServerLeaderboard)
	handler := leaderboard.NewServer(board,
		leaderboard.WithServerLogger(logger),
		leaderboard.WithRateLimit(flagAPIRate, flagAPIBurst),
	)

	srv := &http.Server{
		Addr:              flagAPIAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting leaderboard API", "address", flagAPIAddr, "path", leaderboard.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}
}
