package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foodcatch/internal/leaderboard"
	"github.com/vovakirdan/foodcatch/internal/storage"
)

var (
	flagRemote  bool
	flagHistory bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 players.

By default the leaderboard cached on this machine is shown. With --remote
the board at --leaderboard-url is fetched instead. With --name the
player's own run history is summarized as well; --history lists every
run and --clear deletes that history (the leaderboard is not touched).

Examples:
  foodcatch scores
  foodcatch scores --name ann
  foodcatch scores --name ann --history
  foodcatch scores --name ann --clear
  foodcatch scores --remote --leaderboard-url http://localhost:8080/api/leaderboard`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRemote, "remote", false, "Fetch the remote leaderboard")
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "List every run of --name")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history of --name")
}

func runScores(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), leaderboard.DefaultTimeout)
	defer cancel()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening database: %v", err)
	}
	defer store.Close()

	if (flagHistory || flagClear) && flagName == "" {
		exitf("--history and --clear need --name")
	}
	if flagClear {
		if err := store.ClearScores(flagName); err != nil {
			exitf("clearing history: %v", err)
		}
		fmt.Printf("Run history of %s cleared.\n", flagName)
		return
	}

	var board leaderboard.Service = leaderboard.NewLocalBoard(store, storage.KeyLeaderboard)
	title := "Leaderboard - this machine"
	if flagRemote {
		if flagLeaderboardURL == "" {
			exitf("--remote needs --leaderboard-url")
		}
		client := leaderboard.NewClient(flagLeaderboardURL, nil)
		board = client
		title = "Leaderboard - " + client.Endpoint()
	}

	entries, err := board.Entries(ctx)
	if err != nil {
		exitf("reading leaderboard: %v", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'foodcatch play' to set the first high score!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "Rank", leaderboard.MaxNameLen, "Player", "Score", "Since")
		fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "----", leaderboard.MaxNameLen, "------", "-----", "-----")

		for i, e := range entries {
			since := "-"
			if e.At > 0 {
				since = time.UnixMilli(e.At).Format("2006-01-02 15:04")
			}
			fmt.Printf("  %-4d  %-*s  %-8d  %s\n", i+1, leaderboard.MaxNameLen, e.Name, e.Score, since)
		}
	}

	if flagName == "" {
		return
	}
	stats, err := store.Stats(flagName)
	if err != nil || stats.RunsCount == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%s: %d runs, best %d, average %.1f, last played %s\n",
		stats.Player, stats.RunsCount, stats.HighScore, stats.AvgScore,
		stats.LastPlayed.Format("2006-01-02 15:04"))

	if !flagHistory {
		return
	}
	runs, err := store.AllScores(flagName)
	if err != nil {
		exitf("reading history: %v", err)
	}
	fmt.Println()
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %s\n", i+1, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
