package flappy

import "github.com/vovakirdan/flappy-gym/internal/core"

// upcomingPipes is the number of pipes the field keeps ahead of the player.
const upcomingPipes = 3

// Pipe is one pipe pair: the upper pipe ends at GapTop and the lower one starts at GapBottom.
type Pipe struct {
	X         float64 // Left edge
	GapTop    float64
	GapBottom float64
	Passed    bool // Whether the player has already scored on this pipe
}

// TopBox returns the upper pipe's rectangle.
func (p Pipe) TopBox(spec PipeSpec) core.Box {
	return core.NewBox(p.X, p.GapTop-spec.Height, spec.Width, spec.Height)
}

// BottomBox returns the lower pipe's rectangle.
func (p Pipe) BottomBox(spec PipeSpec) core.Box {
	return core.NewBox(p.X, p.GapBottom, spec.Width, spec.Height)
}

// GapSampler picks a gap offset index. *rand.Rand satisfies it.
type GapSampler interface {
	Intn(n int) int
}

// PipeField is the ordered set of live pipes. X strictly increases along Pipes.
type PipeField struct {
	Pipes []Pipe
}

// NewPipeField spawns the first batch of pipes starting at the right screen edge.
func NewPipeField(r Rules, gaps GapSampler) PipeField {
	f := PipeField{Pipes: make([]Pipe, 0, r.Pipes.Ahead+2)}
	for i := 0; i < r.Pipes.Ahead; i++ {
		f.Pipes = append(f.Pipes, r.spawn(r.Width+float64(i)*r.Pipes.Spacing, gaps))
	}
	return f
}

// spawn creates a pipe at x with a sampled gap.
func (r Rules) spawn(x float64, gaps GapSampler) Pipe {
	top := r.Pipes.GapBase + r.Pipes.GapOffsets[gaps.Intn(len(r.Pipes.GapOffsets))]
	return Pipe{
		X:         x,
		GapTop:    top,
		GapBottom: top + r.Pipes.Gap,
	}
}

// Advance moves every pipe left by one tick, drops pipes that left the screen
// and spawns new ones at the far end. The receiver is not modified.
func (f PipeField) Advance(r Rules, gaps GapSampler) PipeField {
	next := PipeField{Pipes: make([]Pipe, 0, len(f.Pipes)+1)}
	for _, p := range f.Pipes {
		p.X -= r.Pipes.Speed
		if p.X+r.Pipes.Width < 0 {
			continue
		}
		next.Pipes = append(next.Pipes, p)
	}

	for len(next.Pipes) == 0 || next.last().X < r.SpawnThreshold() || next.ahead(r) < r.Pipes.Ahead {
		x := r.Width
		if len(next.Pipes) > 0 {
			x = next.last().X + r.Pipes.Spacing
		}
		next.Pipes = append(next.Pipes, r.spawn(x, gaps))
	}
	return next
}

func (f PipeField) last() Pipe {
	return f.Pipes[len(f.Pipes)-1]
}

// ahead counts pipes whose right edge is at or right of the player.
func (f PipeField) ahead(r Rules) int {
	n := 0
	for _, p := range f.Pipes {
		if p.X+r.Pipes.Width >= r.Player.X {
			n++
		}
	}
	return n
}

// Upcoming returns up to n pipes whose right edge has not passed the player, nearest first.
func (f PipeField) Upcoming(r Rules, n int) []Pipe {
	out := make([]Pipe, 0, n)
	for _, p := range f.Pipes {
		if len(out) == n {
			break
		}
		if p.X+r.Pipes.Width >= r.Player.X {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the field.
func (f PipeField) Clone() PipeField {
	pipes := make([]Pipe, len(f.Pipes))
	copy(pipes, f.Pipes)
	return PipeField{Pipes: pipes}
}
