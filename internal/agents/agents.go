// Package agents provides reference policies for the Flappy Bird environment.
// Importing the package registers them with the policy registry.
package agents

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
	"github.com/vovakirdan/flappy-gym/internal/registry"
)

// DefaultMargin is how far above the next gap's bottom the heuristic keeps the player.
const DefaultMargin = 22

// Idle never flaps.
type Idle struct{}

func (Idle) Name() string        { return "idle" }
func (Idle) Description() string { return "never flaps; falls to the ground" }

func (Idle) Act(flappy.Observation, flappy.State) flappy.Action {
	return flappy.ActionIdle
}

// Random flaps with a fixed probability each tick.
type Random struct {
	P   float64
	rng *rand.Rand
}

// NewRandom creates a random policy seeded for reproducibility.
func NewRandom(p float64, seed int64) *Random {
	return &Random{P: p, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Description() string {
	return fmt.Sprintf("flaps at random (p=%g per tick)", r.P)
}

func (r *Random) Act(flappy.Observation, flappy.State) flappy.Action {
	if r.rng.Float64() < r.P {
		return flappy.ActionFlap
	}
	return flappy.ActionIdle
}

// Periodic flaps once every Every ticks, starting on the first tick.
type Periodic struct {
	Every int
}

func (p Periodic) Name() string { return "periodic" }

func (p Periodic) Description() string {
	if p.Every <= 0 {
		return "never flaps"
	}
	return fmt.Sprintf("flaps every %d ticks", p.Every)
}

func (p Periodic) Act(_ flappy.Observation, st flappy.State) flappy.Action {
	if p.Every > 0 && st.Tick%p.Every == 0 {
		return flappy.ActionFlap
	}
	return flappy.ActionIdle
}

// Heuristic flaps whenever the player's bottom edge sinks to within Margin
// pixels of the nearest gap's bottom.
type Heuristic struct {
	Margin float64
	rules  flappy.Rules
}

// NewHeuristic creates a heuristic policy for the given rules.
func NewHeuristic(r flappy.Rules, margin float64) Heuristic {
	return Heuristic{Margin: margin, rules: r}
}

func (h Heuristic) Name() string        { return "heuristic" }
func (h Heuristic) Description() string { return "flaps to stay just above the next gap's bottom" }

func (h Heuristic) Act(_ flappy.Observation, st flappy.State) flappy.Action {
	next := st.Field.Upcoming(h.rules, 1)
	if len(next) == 0 {
		return flappy.ActionIdle
	}
	if st.Player.Y+h.rules.Player.H > next[0].GapBottom-h.Margin {
		return flappy.ActionFlap
	}
	return flappy.ActionIdle
}

func init() {
	registry.Register("idle", func(flappy.Rules, int64) registry.Policy {
		return Idle{}
	})
	registry.Register("random", func(_ flappy.Rules, seed int64) registry.Policy {
		return NewRandom(0.125, seed)
	})
	registry.Register("periodic", func(flappy.Rules, int64) registry.Policy {
		return Periodic{Every: 10}
	})
	registry.Register("heuristic", func(r flappy.Rules, _ int64) registry.Policy {
		return NewHeuristic(r, DefaultMargin)
	})
}
