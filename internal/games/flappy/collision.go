package flappy

import "github.com/vovakirdan/flappy-gym/internal/core"

// CrashKind names why an episode terminated.
type CrashKind int

const (
	CrashNone CrashKind = iota
	CrashGround
	CrashPipe
)

// String returns the crash kind as used in logs and stored episodes.
func (c CrashKind) String() string {
	switch c {
	case CrashGround:
		return "ground"
	case CrashPipe:
		return "pipe"
	default:
		return "none"
	}
}

// Collider tests the player against the ground and pipes.
// Touching the ceiling is never a crash.
type Collider struct {
	Player  PlayerSpec
	Pipes   PipeSpec
	GroundY float64
}

// NewCollider builds a collider for the given rules.
func NewCollider(r Rules) Collider {
	return Collider{Player: r.Player, Pipes: r.Pipes, GroundY: r.GroundY}
}

// Hitbox returns the player's collision box, inset by the tolerance.
func (c Collider) Hitbox(s PlayerState) core.Box {
	return core.NewBox(c.Player.X, s.Y, c.Player.W, c.Player.H).Inset(c.Player.Tolerance)
}

// Check reports the first crash, ground before pipes.
func (c Collider) Check(s PlayerState, pipes []Pipe) CrashKind {
	if s.Y+c.Player.H >= c.GroundY-1 {
		return CrashGround
	}

	box := c.Hitbox(s)
	for _, p := range pipes {
		if box.X >= p.X+c.Pipes.Width || p.X >= box.Right() {
			continue
		}
		if box.Y < p.GapTop || box.Bottom() > p.GapBottom {
			return CrashPipe
		}
	}
	return CrashNone
}
