package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Screen: FlappyScreen{
			Width:       288,
			Height:      512,
			GroundRatio: 0.79,
		},
		Physics: FlappyPhysics{
			Gravity:       2,
			FlapImpulse:   -9,
			MaxFallSpeed:  10,
			RotationSpeed: 3,
			FlapRotation:  45,
			MinRotation:   -90,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:   52,
			PipeHeight:  320,
			PipeSpeed:   4,
			PipeSpacing: 144,
			PipeGap:     100,
			MinPipeGap:  48,
			GapOffsets:  []float64{20, 30, 40, 50, 60, 70, 80, 90},
			GapBase:     80,
		},
		Player: FlappyPlayer{
			X:               57,
			StartY:          244,
			StartVelocity:   -9,
			StartRotation:   45,
			Width:           34,
			Height:          24,
			HitboxTolerance: 1,
		},
		Observation: ObservationConfig{
			UseLidar:         false,
			Normalize:        true,
			LidarRays:        180,
			LidarMaxDistance: 198,
			LidarRotLimit:    20,
			ProximityZone:    32,
		},
		Rewards: RewardConfig{
			Alive:     0.1,
			PipePass:  1.0,
			Proximity: -0.5,
			Ceiling:   -0.5,
			Crash:     -1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
