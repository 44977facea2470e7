// foodcatch is a terminal catching game: food falls from a source at the
// top of the field and the player moves a bowl to catch it. Every falling
// item stays catchable from wherever the bowl is.
//
// Usage:
//
//	foodcatch play           - Play in this terminal
//	foodcatch serve          - Start SSH server for remote play
//	foodcatch api            - Serve the shared leaderboard over HTTP
//	foodcatch scores         - Show the leaderboard
//	foodcatch sim            - Run a headless autopilot game
//
// Global flags:
//
//	--fps <rate>              - Set tick rate (default: 60)
//	--seed <value>            - Set RNG seed for reproducible gameplay
//	--db <path>               - Set database path (default: ~/.foodcatch/foodcatch.db)
//	--config <path>           - Custom game tuning YAML
//	--difficulty <preset>     - easy, normal, hard or fixed
//	--name <player>           - Player name
//	--leaderboard-url <url>   - Remote leaderboard endpoint
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS            int
	flagSeed           int64
	flagDBPath         string
	flagConfig         string
	flagDifficulty     string
	flagName           string
	flagLeaderboardURL string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodcatch",
	Short: "Food Catch - catch falling food in your terminal",
	Long: `Food Catch drops food from the top of the screen. Move the bowl to
catch it; three misses end the run. Falling items slow down whenever the
bowl could not otherwise reach them in time.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Serve the shared leaderboard over HTTP
  scores   - Show the leaderboard
  sim      - Run a headless autopilot game

Examples:
  foodcatch play
  foodcatch play --difficulty hard --name ann
  foodcatch serve --ssh :2222
  foodcatch api --addr :8080
  foodcatch play --leaderboard-url http://localhost:8080/api/leaderboard
  foodcatch sim --seed 42 --duration 300`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.foodcatch/foodcatch.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Player name (default: saved name)")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboardURL, "leaderboard-url", "", "Remote leaderboard endpoint (empty = this machine only)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
