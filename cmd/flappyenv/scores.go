package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-gym/internal/platform/tui"
	"github.com/vovakirdan/flappy-gym/internal/storage"
)

var (
	flagScoresAgent string
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored episode results",
	Long: `Display per-agent statistics, or the best episodes of one agent.

Examples:
  flappyenv scores
  flappyenv scores --agent heuristic --limit 20
  flappyenv scores --tui
  flappyenv scores --agent random --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	f := scoresCmd.Flags()
	f.StringVar(&flagScoresAgent, "agent", "", "Show the best episodes of this agent")
	f.IntVar(&flagScoresLimit, "limit", 10, "Number of episodes to show")
	f.BoolVar(&flagScoresTUI, "tui", false, "Browse results in an interactive table")
	f.BoolVar(&flagScoresClear, "clear", false, "Delete the stored episodes of --agent")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if flagScoresAgent == "" {
			return errors.New("--clear needs --agent")
		}
		if err := store.ClearEpisodes(flagScoresAgent); err != nil {
			return err
		}
		logger.Info("episodes cleared", "agent", flagScoresAgent)
		return nil

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, flagScoresAgent, width, height)

	case flagScoresAgent != "":
		return printAgentEpisodes(store, flagScoresAgent, flagScoresLimit)
	}
	return printAllStats(store)
}

func printAgentEpisodes(store *storage.Store, agent string, limit int) error {
	episodes, err := store.TopEpisodes(agent, limit)
	if err != nil {
		return err
	}

	fmt.Printf("Best episodes - %s\n", agent)
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'flappyenv run --agent %s --save' to record some.\n", agent)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-9s  %-11s  %-5s  %s\n", "Rank", "Score", "Steps", "Reward", "End", "Lidar", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-9s  %-11s  %-5s  %s\n", "----", "-----", "-----", "------", "---", "-----", "----")
	for i, e := range episodes {
		fmt.Printf("  %-4d  %-6d  %-7d  %-9.2f  %-11s  %-5t  %s\n",
			i+1, e.Score, e.Steps, e.TotalReward, e.EndReason, e.UseLidar, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(agent); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllAgentStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No episodes recorded yet.")
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  %-12s  %-8s  %-5s  %-9s  %-9s  %-10s  %s\n", "Agent", "Episodes", "Best", "AvgScore", "AvgSteps", "AvgReward", "Last")
	fmt.Printf("  %-12s  %-8s  %-5s  %-9s  %-9s  %-10s  %s\n", "-----", "--------", "----", "--------", "--------", "---------", "----")
	for _, name := range names {
		s := all[name]
		fmt.Printf("  %-12s  %-8d  %-5d  %-9.2f  %-9.1f  %-10.2f  %s\n",
			s.Agent, s.Episodes, s.BestScore, s.AvgScore, s.AvgSteps, s.AvgReward, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
