package flappy

// ScoreTracker counts passed pipes and enforces an optional score limit.
type ScoreTracker struct {
	Limit int // 0 means unbounded

	playerCenter float64
	pipeHalf     float64
}

// NewScoreTracker builds a tracker for the given rules.
func NewScoreTracker(r Rules, limit int) ScoreTracker {
	return ScoreTracker{
		Limit:        limit,
		playerCenter: r.Player.X + r.Player.W/2,
		pipeHalf:     r.Pipes.Width / 2,
	}
}

// Update marks pipes whose centre reached the player's centre as passed and
// returns the new score along with how many pipes were passed this tick.
// pipes is modified in place.
func (t ScoreTracker) Update(score int, pipes []Pipe) (int, int) {
	passed := 0
	for i := range pipes {
		if pipes[i].Passed {
			continue
		}
		if pipes[i].X+t.pipeHalf <= t.playerCenter {
			pipes[i].Passed = true
			passed++
		}
	}
	return score + passed, passed
}

// Reached reports whether score hits the configured limit.
func (t ScoreTracker) Reached(score int) bool {
	return t.Limit > 0 && score >= t.Limit
}
