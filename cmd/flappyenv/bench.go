package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-gym/internal/platform/headless"
)

var (
	flagBenchEnvs  int
	flagBenchSteps int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure simulation throughput",
	Long: `Step independent environments in parallel with random actions and
report the aggregate steps per second.

Examples:
  flappyenv bench
  flappyenv bench --envs 16 --steps 200000 --lidar`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchEnvs, "envs", runtime.NumCPU(), "Parallel environments")
	benchCmd.Flags().IntVar(&flagBenchSteps, "steps", 100000, "Steps per environment")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("benchmarking", "envs", flagBenchEnvs, "steps", flagBenchSteps, "lidar", cfg.Observation.UseLidar)
	res, err := headless.Benchmark(cmd.Context(), cfg, headless.BenchOptions{
		Envs:  flagBenchEnvs,
		Steps: flagBenchSteps,
		Seed:  resolveSeed(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Envs:      %d\n", res.Envs)
	fmt.Printf("Steps:     %d\n", res.Steps)
	fmt.Printf("Episodes:  %d\n", res.Episodes)
	fmt.Printf("Elapsed:   %s\n", res.Elapsed)
	fmt.Printf("Steps/sec: %.0f\n", res.StepsPerSecond())
	return nil
}
