package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/flappy-gym/internal/config"
)

// fixedGaps always picks the same gap offset index.
type fixedGaps int

func (f fixedGaps) Intn(n int) int {
	return int(f) % n
}

func defaultRules() Rules {
	return NewRules(config.DefaultFlappyConfig())
}

func newTestEnv(t *testing.T, mutate func(*config.FlappyConfig), opts ...Option) *Env {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// heuristicAction flaps when the player's bottom drops near the next gap's bottom.
func heuristicAction(r Rules, st State, margin float64) Action {
	next := st.Field.Upcoming(r, 1)
	if len(next) == 0 {
		return ActionIdle
	}
	if st.Player.Y+r.Player.H > next[0].GapBottom-margin {
		return ActionFlap
	}
	return ActionIdle
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
