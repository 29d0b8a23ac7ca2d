// flappyenv runs the Flappy Bird reinforcement-learning environment from the terminal.
//
// Usage:
//
//	flappyenv agents           - List registered policies
//	flappyenv run              - Play episodes headless and report scores
//	flappyenv bench            - Measure environment steps per second
//	flappyenv play             - Play in the terminal, or watch a policy
//	flappyenv scores           - Show stored episode results
//
// Global flags:
//
//	--config <path>     - Environment config YAML (overlays the defaults)
//	--preset <name>     - Pipe gap preset: easy, normal, hard
//	--seed <value>      - RNG seed for reproducible pipes (0 = from clock)
//	--lidar             - Use the 180-ray LIDAR observation
//	--normalize         - Scale observations to roughly [-1, 1]
//	--score-limit <n>   - Truncate episodes at this score (0 = never)
//	--db <path>         - Episode database (default: ~/.flappy-gym/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the built-in policies
	_ "github.com/vovakirdan/flappy-gym/internal/agents"
	"github.com/vovakirdan/flappy-gym/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagPreset     string
	flagSeed       int64
	flagLidar      bool
	flagNormalize  bool
	flagScoreLimit int
	flagDBPath     string
	flagLogLevel   string

	logger = log.New(os.Stderr)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyenv",
	Short: "Flappy Bird environment for reinforcement learning",
	Long: `flappyenv drives a deterministic Flappy Bird simulation built for
reinforcement-learning experiments.

Available commands:
  agents   - Show all registered policies
  run      - Play episodes headless with a policy
  bench    - Measure simulation throughput
  play     - Play in the terminal or watch a policy
  scores   - View stored episode results

Examples:
  flappyenv agents
  flappyenv run --agent heuristic --episodes 100 --workers 4
  flappyenv run --agent random --lidar --csv random.csv
  flappyenv play --preset easy
  flappyenv play --agent heuristic
  flappyenv scores --tui`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to environment config YAML")
	pf.StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.BoolVar(&flagLidar, "lidar", false, "Use the LIDAR observation")
	pf.BoolVar(&flagNormalize, "normalize", true, "Normalize observations")
	pf.IntVar(&flagScoreLimit, "score-limit", 0, "Truncate episodes at this score (0 = never)")
	pf.StringVar(&flagDBPath, "db", config.DefaultDBPath(), "Path to episode database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}

func setupLogger(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "flappyenv",
		Level:           level,
	})
	return nil
}

// loadConfig resolves the environment config from file, preset and flags.
// Flags only override the file when set explicitly.
func loadConfig(cmd *cobra.Command) (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyFlappyPreset(&cfg, preset)
	}

	flags := cmd.Flags()
	if flags.Changed("lidar") {
		cfg.Observation.UseLidar = flagLidar
	}
	if flags.Changed("normalize") {
		cfg.Observation.Normalize = flagNormalize
	}
	if flags.Changed("score-limit") {
		cfg.ScoreLimit = flagScoreLimit
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("config loaded",
		"lidar", cfg.Observation.UseLidar,
		"normalize", cfg.Observation.Normalize,
		"pipe_gap", cfg.Obstacles.PipeGap,
		"score_limit", cfg.ScoreLimit,
	)
	return cfg, nil
}

// resolveSeed returns --seed, or a clock-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
