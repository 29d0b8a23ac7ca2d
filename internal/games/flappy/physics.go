package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-gym/internal/core"
)

// PlayerState is the player's vertical kinematics.
// VelY is positive downward and always within [MinVelY, MaxVelY].
type PlayerState struct {
	Y        float64 // Top of the hitbox
	VelY     float64
	Rotation float64 // Degrees, positive is nose up
	Flapped  bool    // Whether the last tick was a flap
}

// Physics integrates the player's motion one tick at a time.
type Physics struct {
	Gravity       float64
	FlapImpulse   float64 // Negative, doubles as MinVelY
	MaxVelY       float64
	RotationSpeed float64
	FlapRotation  float64
	MinRotation   float64

	GroundY float64
	Height  float64 // Player height, used to stop at the floor
}

// MinVelY returns the lowest (most upward) velocity.
func (p Physics) MinVelY() float64 {
	return p.FlapImpulse
}

// Apply advances the player by one tick and reports whether it was clamped at the ceiling.
func (p Physics) Apply(a Action, s PlayerState) (PlayerState, bool) {
	next := s
	next.Flapped = a == ActionFlap

	if next.Flapped {
		next.VelY = p.FlapImpulse
	} else {
		next.VelY = math.Min(s.VelY+p.Gravity, p.MaxVelY)
	}
	next.VelY = core.ClampF(next.VelY, p.MinVelY(), p.MaxVelY)

	if next.Flapped {
		next.Rotation = p.FlapRotation
	} else if s.Rotation > p.MinRotation {
		next.Rotation = math.Max(s.Rotation-p.RotationSpeed, p.MinRotation)
	}

	// Never sink through the floor
	next.Y += math.Min(next.VelY, p.GroundY-s.Y-p.Height)

	if next.Y < 0 {
		next.Y = 0
		return next, true
	}
	return next, false
}
