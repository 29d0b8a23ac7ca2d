package headless

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/flappy-gym/internal/config"
	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
)

// BenchOptions configures Benchmark.
type BenchOptions struct {
	Envs  int   // Parallel environments, one goroutine each
	Steps int   // Steps per environment
	Seed  int64
}

// BenchResult reports environment throughput.
type BenchResult struct {
	Envs     int
	Steps    int // Total steps across all environments
	Episodes int
	Elapsed  time.Duration
}

// StepsPerSecond returns the aggregate throughput.
func (b BenchResult) StepsPerSecond() float64 {
	if b.Elapsed <= 0 {
		return 0
	}
	return float64(b.Steps) / b.Elapsed.Seconds()
}

// Benchmark steps independent environments with random actions and measures throughput.
// Finished episodes are reset immediately.
func Benchmark(ctx context.Context, cfg config.FlappyConfig, opts BenchOptions) (BenchResult, error) {
	if opts.Envs <= 0 {
		opts.Envs = 1
	}

	envs := make([]*flappy.Env, opts.Envs)
	for i := range envs {
		env, err := flappy.New(cfg, flappy.WithSeed(opts.Seed+int64(i)))
		if err != nil {
			return BenchResult{}, err
		}
		envs[i] = env
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    BenchResult
		firstErr error
	)
	total.Envs = opts.Envs

	start := time.Now()
	for i, env := range envs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			steps, episodes, err := benchEnv(ctx, env, opts.Steps, opts.Seed+int64(i))

			mu.Lock()
			defer mu.Unlock()
			total.Steps += steps
			total.Episodes += episodes
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}()
	}
	wg.Wait()
	total.Elapsed = time.Since(start)

	return total, firstErr
}

func benchEnv(ctx context.Context, env *flappy.Env, steps int, seed int64) (int, int, error) {
	rng := rand.New(rand.NewSource(seed))
	env.Reset()
	episodes := 1

	for n := 0; n < steps; n++ {
		// Poll for cancellation every 1024 steps
		if n&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return n, episodes, err
			}
		}
		a := flappy.ActionIdle
		if rng.Intn(8) == 0 {
			a = flappy.ActionFlap
		}
		res, err := env.Step(a)
		if err != nil {
			return n, episodes, err
		}
		if res.Terminated || res.Truncated {
			env.Reset()
			episodes++
		}
	}
	return steps, episodes, nil
}
