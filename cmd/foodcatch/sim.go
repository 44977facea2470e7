package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/foodcatch/internal/catch"
)

var (
	flagSimDuration float64
	flagSimRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot game",
	Long: `Run the game without a terminal, steering the bowl with the autopilot,
and print the result. The same seed always produces the same run.

With --record the final score is submitted to the leaderboard under
--name (default "autopilot").

Examples:
  foodcatch sim --seed 42
  foodcatch sim --seed 7 --duration 600 --difficulty hard
  foodcatch sim --record --name robot`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimDuration, "duration", 120, "Maximum simulated seconds")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Submit the final score to the leaderboard")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := loadCatchConfig()
	if err != nil {
		exitf("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)

	player := flagName
	if player == "" {
		player = "autopilot"
	}
	opts := []catch.Option{catch.WithSeed(seed), catch.WithPlayer(player)}

	var cleanup func()
	if flagSimRecord {
		svc, done, err := openServices(newLogger(os.Stderr, "foodcatch-sim"))
		if err != nil {
			exitf("cannot open storage: %v", err)
		}
		opts = append(opts, catch.WithReporter(svc.Reporter))
		cleanup = done
	}

	engine := catch.NewEngine(cfg, opts...)
	pilot := catch.NewAutopilot(cfg)
	caught := map[string]int{}

	for engine.Run().Phase == catch.PhasePlaying && engine.Run().Elapsed < flagSimDuration {
		ev := engine.Step(dt, pilot.Steer(engine.Snapshot()))
		for _, c := range ev.Caught {
			caught[c.Category.Name]++
		}
	}

	run := engine.Run()
	snap := engine.Snapshot()
	fmt.Printf("seed      %d\n", seed)
	fmt.Printf("elapsed   %.2fs\n", run.Elapsed)
	fmt.Printf("phase     %s\n", run.Phase)
	fmt.Printf("score     %d\n", run.Score)
	fmt.Printf("misses    %d/%d\n", run.Misses, run.MaxMisses)
	fmt.Printf("lanes     %d\n", engine.Lanes())
	fmt.Printf("hash      %016x\n", snap.Hash())

	names := make([]string, 0, len(caught))
	for name := range caught {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		fmt.Println()
		for _, name := range names {
			fmt.Printf("  %-12s %d\n", name, caught[name])
		}
	}

	if cleanup != nil {
		cleanup()
	}
}
