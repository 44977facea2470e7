package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foodcatch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own run, named after the SSH user.
All players share the server's leaderboard; with --leaderboard-url the
server also submits scores to a remote leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.foodcatch/host_key

Examples:
  foodcatch serve                           # Listen on :23234 with auto-generated key
  foodcatch serve --ssh :2222               # Listen on port 2222
  foodcatch serve --host-key ./my_host_key  # Use specific host key
  foodcatch serve --db ./foodcatch.db       # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	catchCfg, err := loadCatchConfig()
	if err != nil {
		exitf("%v", err)
	}

	logger := newLogger(os.Stderr, "foodcatch-ssh")
	svc, cleanup, err := openServices(logger)
	if err != nil {
		exitf("cannot open storage: %v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Catch:       catchCfg,
	}

	server, err := tui.NewSSHServer(cfg, svc)
	if err != nil {
		cleanup()
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting Food Catch SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()
	cleanup()
	if serveErr != nil {
		exitf("server: %v", serveErr)
	}
}
