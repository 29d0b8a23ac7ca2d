package flappy

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-gym/internal/config"
)

// Action is the controller's choice for one tick.
type Action int

const (
	ActionIdle Action = 0
	ActionFlap Action = 1
)

// Valid reports whether a is one of the two known actions.
func (a Action) Valid() bool {
	return a == ActionIdle || a == ActionFlap
}

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionFlap:
		return "flap"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Phase is the episode lifecycle state of an Env.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseRunning
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	default:
		return "uninitialized"
	}
}

// State is the complete simulation state of one episode.
type State struct {
	Player PlayerState
	Field  PipeField
	Score  int
	Tick   int
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Field = s.Field.Clone()
	return s
}

// Info carries auxiliary per-step data.
type Info struct {
	Score int
	Tick  int
	Crash CrashKind
}

// StepResult is what Step returns for one tick.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool // Crash
	Truncated   bool // Score limit reached
	Info        Info
}

// Outcome describes the events of one transition.
type Outcome struct {
	Passed     int
	Crash      CrashKind
	HitCeiling bool
}

// Option configures an Env.
type Option func(*Env)

// WithSeed seeds the pipe generator.
func WithSeed(seed int64) Option {
	return func(e *Env) {
		e.seed = seed
	}
}

// WithLogger sets the logger used for episode lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) {
		if l != nil {
			e.log = l
		}
	}
}

// Env is a Flappy Bird environment. It is not safe for concurrent use;
// run one Env per goroutine.
type Env struct {
	cfg      config.FlappyConfig
	rules    Rules
	collider Collider
	tracker  ScoreTracker
	enc      Encoder

	seed  int64
	rng   *rand.Rand
	log   *log.Logger
	phase Phase
	state State

	episode     int
	totalReward float64
}

// New validates cfg and creates an environment. Call Reset before Step.
func New(cfg config.FlappyConfig, opts ...Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	rules := NewRules(cfg)
	e := &Env{
		cfg:      cfg,
		rules:    rules,
		collider: NewCollider(rules),
		tracker:  NewScoreTracker(rules, cfg.ScoreLimit),
		enc:      NewEncoder(rules, cfg.Observation),
		seed:     time.Now().UnixNano(),
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	return e, nil
}

// Reset starts a new episode, continuing the current random stream.
func (e *Env) Reset() (Observation, Info) {
	p := e.rules.Player
	e.state = State{
		Player: PlayerState{
			Y:        p.StartY,
			VelY:     p.StartVelY,
			Rotation: p.StartRotation,
		},
		Field: NewPipeField(e.rules, e.rng),
	}
	e.phase = PhaseRunning
	e.episode++
	e.totalReward = 0

	e.log.Debug("episode reset", "episode", e.episode, "seed", e.seed)
	return e.enc.Encode(e.state), Info{}
}

// ResetWithSeed reseeds the pipe generator and starts a new episode.
// The same seed always produces the same pipe sequence.
func (e *Env) ResetWithSeed(seed int64) (Observation, Info) {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
	return e.Reset()
}

// Step advances the episode by one tick.
func (e *Env) Step(a Action) (StepResult, error) {
	switch e.phase {
	case PhaseUninitialized:
		return StepResult{}, ErrNotReset
	case PhaseTerminated:
		return StepResult{}, ErrEpisodeOver
	}
	if !a.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}

	next, out := e.Transition(e.state, a, e.rng)
	e.state = next

	obs := e.enc.Encode(next)
	res := StepResult{
		Observation: obs,
		Reward:      e.reward(out, obs),
		Terminated:  out.Crash != CrashNone,
		Info:        Info{Score: next.Score, Tick: next.Tick, Crash: out.Crash},
	}
	res.Truncated = !res.Terminated && e.tracker.Reached(next.Score)
	e.totalReward += res.Reward

	if res.Terminated || res.Truncated {
		e.phase = PhaseTerminated
		e.log.Debug("episode over",
			"episode", e.episode,
			"score", next.Score,
			"ticks", next.Tick,
			"crash", out.Crash,
			"truncated", res.Truncated,
			"reward", e.totalReward,
		)
	}
	return res, nil
}

// Transition is the pure state transition behind Step:
// physics, pipe advance, collision, then score.
// st is not modified; gaps supplies gap offsets for newly spawned pipes.
func (e *Env) Transition(st State, a Action, gaps GapSampler) (State, Outcome) {
	var out Outcome
	next := State{Tick: st.Tick + 1}

	next.Player, out.HitCeiling = e.rules.Physics.Apply(a, st.Player)
	next.Field = st.Field.Advance(e.rules, gaps)
	out.Crash = e.collider.Check(next.Player, next.Field.Pipes)
	next.Score, out.Passed = e.tracker.Update(st.Score, next.Field.Pipes)

	return next, out
}

// reward applies the reward rules; later rules take precedence.
func (e *Env) reward(out Outcome, obs Observation) float64 {
	r := e.cfg.Rewards
	reward := r.Alive
	if out.Passed > 0 {
		reward = r.PipePass * float64(out.Passed)
	} else if ps, ok := e.enc.(proximitySensor); ok && ps.TooClose(obs) {
		reward = r.Proximity
	}
	if out.HitCeiling {
		reward = r.Ceiling
	}
	if out.Crash != CrashNone {
		reward = r.Crash
	}
	return reward
}

// State returns a copy of the current state.
func (e *Env) State() State {
	return e.state.Clone()
}

// Phase returns the lifecycle phase.
func (e *Env) Phase() Phase {
	return e.phase
}

// Config returns the configuration the env was built with.
func (e *Env) Config() config.FlappyConfig {
	return e.cfg
}

// Rules returns the derived geometry and physics.
func (e *Env) Rules() Rules {
	return e.rules
}

// Seed returns the seed of the current random stream.
func (e *Env) Seed() int64 {
	return e.seed
}

// Episode returns how many times Reset has been called.
func (e *Env) Episode() int {
	return e.episode
}

// ObservationSize returns the length of every observation.
func (e *Env) ObservationSize() int {
	return e.enc.Size()
}

// Labels returns one name per observation value.
func (e *Env) Labels() []string {
	return e.enc.Labels()
}
