// Package flappy implements a Flappy Bird simulation exposed as a
// reinforcement-learning environment.
//
// The simulation is split into small pure pieces (Physics, PipeField,
// Collider, Lidar, Encoder, ScoreTracker) driven by Env, which owns a seeded
// random source and the episode state machine.
package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-gym/internal/config"
)

// Rules is the immutable geometry and physics of one environment,
// derived once from configuration.
type Rules struct {
	Width   float64 // Playfield width in pixels
	Height  float64 // Playfield height in pixels
	GroundY float64 // Y of the ground line

	Player  PlayerSpec
	Physics Physics
	Pipes   PipeSpec
}

// PlayerSpec describes the player's fixed column, size and starting state.
type PlayerSpec struct {
	X, W, H   float64
	Tolerance float64 // Hitbox inset on every side

	StartY, StartVelY, StartRotation float64
}

// PipeSpec describes pipe geometry and spawning.
type PipeSpec struct {
	Width, Height float64
	Speed         float64 // Pixels moved left per tick
	Spacing       float64 // Horizontal distance between consecutive pipes
	Gap           float64 // Vertical opening
	GapBase       float64
	GapOffsets    []float64
	Ahead         int // Minimum pipes kept at or right of the player
}

// NewRules derives Rules from a configuration.
func NewRules(cfg config.FlappyConfig) Rules {
	groundY := cfg.GroundY()
	offsets := make([]float64, len(cfg.Obstacles.GapOffsets))
	copy(offsets, cfg.Obstacles.GapOffsets)

	return Rules{
		Width:   cfg.Screen.Width,
		Height:  cfg.Screen.Height,
		GroundY: groundY,
		Player: PlayerSpec{
			X:             math.Trunc(cfg.Player.X),
			W:             cfg.Player.Width,
			H:             cfg.Player.Height,
			Tolerance:     cfg.Player.HitboxTolerance,
			StartY:        cfg.Player.StartY,
			StartVelY:     cfg.Player.StartVelocity,
			StartRotation: cfg.Player.StartRotation,
		},
		Physics: Physics{
			Gravity:       cfg.Physics.Gravity,
			FlapImpulse:   cfg.Physics.FlapImpulse,
			MaxVelY:       cfg.Physics.MaxFallSpeed,
			RotationSpeed: cfg.Physics.RotationSpeed,
			FlapRotation:  cfg.Physics.FlapRotation,
			MinRotation:   cfg.Physics.MinRotation,
			GroundY:       groundY,
			Height:        cfg.Player.Height,
		},
		Pipes: PipeSpec{
			Width:      cfg.Obstacles.PipeWidth,
			Height:     cfg.Obstacles.PipeHeight,
			Speed:      cfg.Obstacles.PipeSpeed,
			Spacing:    cfg.Obstacles.PipeSpacing,
			Gap:        cfg.Obstacles.PipeGap,
			GapBase:    cfg.Obstacles.GapBase,
			GapOffsets: offsets,
			Ahead:      upcomingPipes,
		},
	}
}

// SpawnThreshold is the x below which the last pipe triggers a new spawn.
func (r Rules) SpawnThreshold() float64 {
	return r.Width + r.Pipes.Spacing
}
