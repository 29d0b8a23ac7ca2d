package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
	"github.com/vovakirdan/flappy-gym/internal/platform/headless"
	"github.com/vovakirdan/flappy-gym/internal/registry"
	"github.com/vovakirdan/flappy-gym/internal/storage"
	"github.com/vovakirdan/flappy-gym/internal/trajectory"
)

var (
	flagRunAgent    string
	flagRunEpisodes int
	flagRunWorkers  int
	flagRunMaxSteps int
	flagRunCSV      string
	flagRunSave     bool
	flagRunQuiet    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play episodes headless with a policy",
	Long: `Play a batch of episodes without a terminal view and report the results.

Episode i uses seed --seed + i, so a batch is reproducible regardless of
the number of workers.

Examples:
  flappyenv run --agent heuristic --episodes 20
  flappyenv run --agent random --episodes 1000 --workers 8 --save
  flappyenv run --agent periodic --lidar --csv periodic.csv --seed 7`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&flagRunAgent, "agent", "heuristic", "Policy to evaluate (see 'flappyenv agents')")
	f.IntVar(&flagRunEpisodes, "episodes", 10, "Number of episodes")
	f.IntVar(&flagRunWorkers, "workers", 1, "Parallel environments")
	f.IntVar(&flagRunMaxSteps, "max-steps", 10000, "Step cap per episode (0 = no cap)")
	f.StringVar(&flagRunCSV, "csv", "", "Write every step's observation to this CSV file")
	f.BoolVar(&flagRunSave, "save", false, "Store episode summaries in the database")
	f.BoolVar(&flagRunQuiet, "quiet", false, "Only print the summary")
}

func runRun(cmd *cobra.Command, args []string) error {
	if !registry.Exists(flagRunAgent) {
		return fmt.Errorf("unknown agent %q; run 'flappyenv agents' to see available agents", flagRunAgent)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	seed := resolveSeed()

	logger.Info("running episodes",
		"agent", flagRunAgent,
		"episodes", flagRunEpisodes,
		"workers", flagRunWorkers,
		"seed", seed,
	)
	results, err := headless.RunBatch(cmd.Context(), cfg, headless.BatchOptions{
		Agent:    flagRunAgent,
		Episodes: flagRunEpisodes,
		Workers:  flagRunWorkers,
		MaxSteps: flagRunMaxSteps,
		Seed:     seed,
		Record:   flagRunCSV != "",
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if !flagRunQuiet {
		printResults(results)
	}
	printSummary(headless.Summarize(results))

	if flagRunCSV != "" {
		labels := flappy.NewEncoder(flappy.NewRules(cfg), cfg.Observation).Labels()
		rec := trajectory.NewRecorder(labels)
		for _, r := range results {
			rec.Append(r.Trajectory...)
		}
		if err := rec.WriteFile(flagRunCSV); err != nil {
			return err
		}
		logger.Info("trajectory written", "path", flagRunCSV, "rows", rec.Len())
	}

	if flagRunSave {
		if err := saveResults(results, cfg.Observation.UseLidar); err != nil {
			return err
		}
		logger.Info("episodes saved", "db", flagDBPath, "count", len(results))
	}
	return nil
}

func printResults(results []headless.EpisodeResult) {
	fmt.Printf("  %-7s  %-12s  %-6s  %-7s  %-9s  %s\n", "Episode", "Seed", "Score", "Steps", "Reward", "End")
	fmt.Printf("  %-7s  %-12s  %-6s  %-7s  %-9s  %s\n", "-------", "----", "-----", "-----", "------", "---")
	for _, r := range results {
		fmt.Printf("  %-7d  %-12d  %-6d  %-7d  %-9.2f  %s\n", r.Episode, r.Seed, r.Score, r.Steps, r.TotalReward, r.EndReason)
	}
	fmt.Println()
}

func printSummary(s headless.Summary) {
	fmt.Printf("Episodes: %d  Best: %d  Avg score: %.2f  Avg steps: %.1f  Avg reward: %.2f\n",
		s.Episodes, s.BestScore, s.AvgScore, s.AvgSteps, s.AvgReward)

	reasons := make([]string, 0, len(s.EndCounts))
	for r := range s.EndCounts {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  %-12s %d\n", r, s.EndCounts[r])
	}
}

func saveResults(results []headless.EpisodeResult, useLidar bool) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	eps := make([]storage.Episode, len(results))
	for i, r := range results {
		eps[i] = storage.Episode{
			Agent:       flagRunAgent,
			Seed:        r.Seed,
			Score:       r.Score,
			Steps:       r.Steps,
			TotalReward: r.TotalReward,
			EndReason:   r.EndReason,
			UseLidar:    useLidar,
		}
	}
	return store.SaveEpisodes(eps)
}
