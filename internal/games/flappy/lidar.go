package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-gym/internal/core"
)

// Lidar casts a fan of rays forward from the player's centre and measures
// the distance to the nearest pipe edge, the ground or the ceiling.
type Lidar struct {
	Rays        int
	MaxDistance float64
	RotLimit    float64 // Rotation above this does not tilt the fan further

	rules Rules
}

// NewLidar builds a sensor from the rules and observation settings.
func NewLidar(r Rules, rays int, maxDistance, rotLimit float64) Lidar {
	return Lidar{Rays: rays, MaxDistance: maxDistance, RotLimit: rotLimit, rules: r}
}

// Origin returns the point rays are cast from.
func (l Lidar) Origin(s PlayerState) core.Vec2 {
	p := l.rules.Player
	return core.NewBox(p.X, s.Y, p.W, p.H).Center()
}

// Angle returns ray i's direction in degrees, screen space (y down).
// Ray 0 points up, ray Rays/2 points forward.
func (l Lidar) Angle(i int, s PlayerState) float64 {
	visible := math.Min(s.Rotation, l.RotLimit)
	step := 180.0 / float64(l.Rays)
	return float64(i)*step - 90 - visible
}

// Scan returns one distance per ray. Rays that hit nothing report MaxDistance.
func (l Lidar) Scan(s PlayerState, pipes []Pipe) []float64 {
	out := make([]float64, l.Rays)
	l.ScanInto(out, s, pipes)
	return out
}

// ScanInto is Scan writing into dst, which must hold Rays values.
func (l Lidar) ScanInto(dst []float64, s PlayerState, pipes []Pipe) {
	origin := l.Origin(s)
	obstacles := l.obstacles(pipes)

	for i := 0; i < l.Rays; i++ {
		rad := l.Angle(i, s) * math.Pi / 180
		ray := core.Segment{A: origin, B: origin.Add(core.FromAngle(rad, l.MaxDistance))}

		best := l.MaxDistance
		for _, edge := range obstacles {
			hit, ok := ray.Intersect(edge)
			if !ok {
				continue
			}
			if d := hit.Sub(origin).Mag(); d < best {
				best = d
			}
		}
		dst[i] = best
	}
}

// obstacles lists every segment a ray can hit.
func (l Lidar) obstacles(pipes []Pipe) []core.Segment {
	r := l.rules
	left, right := -l.MaxDistance, r.Width+l.MaxDistance

	segs := make([]core.Segment, 0, 2+8*len(pipes))
	segs = append(segs,
		core.Segment{A: core.Vec2{X: left, Y: 0}, B: core.Vec2{X: right, Y: 0}},
		core.Segment{A: core.Vec2{X: left, Y: r.GroundY}, B: core.Vec2{X: right, Y: r.GroundY}},
	)
	for _, p := range pipes {
		top := p.TopBox(r.Pipes).Edges()
		bottom := p.BottomBox(r.Pipes).Edges()
		segs = append(segs, top[:]...)
		segs = append(segs, bottom[:]...)
	}
	return segs
}
