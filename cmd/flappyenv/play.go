package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-gym/internal/config"
	"github.com/vovakirdan/flappy-gym/internal/core"
	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
	"github.com/vovakirdan/flappy-gym/internal/platform/tui"
	"github.com/vovakirdan/flappy-gym/internal/registry"
	"github.com/vovakirdan/flappy-gym/internal/storage"
)

var (
	flagPlayAgent string
	flagPlayFPS   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal or watch a policy",
	Long: `Run the environment live in the terminal.

Without --agent you fly the bird yourself. With --agent the named policy
plays and you watch. Finished episodes are saved to the database.

Controls:
  Space/Up   - Flap (also starts the first episode)
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Examples:
  flappyenv play
  flappyenv play --preset easy
  flappyenv play --agent heuristic --fps 60
  flappyenv play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayAgent, "agent", "", "Policy to watch instead of playing")
	playCmd.Flags().IntVar(&flagPlayFPS, "fps", 30, "Ticks per second")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	playLog, closeLog := playLogger()
	defer closeLog()

	seed := resolveSeed()
	env, err := flappy.New(cfg, flappy.WithSeed(seed), flappy.WithLogger(playLog))
	if err != nil {
		return err
	}

	var policy registry.Policy
	if flagPlayAgent != "" {
		policy, err = registry.Create(flagPlayAgent, env.Rules(), seed)
		if err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open episode database, results will not be saved", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(env, tui.Options{
		Policy: policy,
		Store:  store,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagPlayFPS,
			Seed:     seed,
		},
		Logger: playLog,
	})
}

// playLogger writes to a file under the app directory, since the terminal
// belongs to the view while playing.
func playLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, config.AppDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "play.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "play",
		Level:           logger.GetLevel(),
	}), func() { f.Close() }
}
