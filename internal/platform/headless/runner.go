// Package headless runs episodes without a terminal: single episodes,
// parallel batches and throughput benchmarks.
package headless

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-gym/internal/config"
	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
	"github.com/vovakirdan/flappy-gym/internal/registry"
	"github.com/vovakirdan/flappy-gym/internal/trajectory"
)

// Reasons an episode ended, as stored with episode summaries.
const (
	EndGround     = "ground"
	EndPipe       = "pipe"
	EndScoreLimit = "score_limit"
	EndMaxSteps   = "max_steps"
	EndCancelled  = "cancelled"
)

// EpisodeResult summarises one finished episode.
type EpisodeResult struct {
	Episode     int
	Seed        int64
	Score       int
	Steps       int
	TotalReward float64
	EndReason   string
	Trajectory  []trajectory.Step // Only filled when recording
}

// RunEpisode resets env with seed and plays policy until the episode ends,
// maxSteps ticks pass (0 = no limit) or ctx is cancelled.
// If rec is non-nil every step is recorded into it.
func RunEpisode(ctx context.Context, env *flappy.Env, policy registry.Policy, seed int64, maxSteps int, rec *trajectory.Recorder) (EpisodeResult, error) {
	obs, _ := env.ResetWithSeed(seed)
	res := EpisodeResult{Episode: env.Episode(), Seed: seed}

	for maxSteps <= 0 || res.Steps < maxSteps {
		if err := ctx.Err(); err != nil {
			res.EndReason = EndCancelled
			return res, err
		}

		a := policy.Act(obs, env.State())
		step, err := env.Step(a)
		if err != nil {
			return res, fmt.Errorf("headless: %s step %d: %w", policy.Name(), res.Steps, err)
		}
		if rec != nil {
			rec.Record(res.Episode, a, step)
		}

		res.Steps++
		res.Score = step.Info.Score
		res.TotalReward += step.Reward
		obs = step.Observation

		switch {
		case step.Terminated:
			res.EndReason = step.Info.Crash.String()
			return res, nil
		case step.Truncated:
			res.EndReason = EndScoreLimit
			return res, nil
		}
	}

	res.EndReason = EndMaxSteps
	return res, nil
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Agent    string
	Episodes int
	Workers  int   // Defaults to 1
	MaxSteps int   // 0 = no limit
	Seed     int64 // Episode i uses Seed+i
	Record   bool  // Keep every step in EpisodeResult.Trajectory
	Logger   *log.Logger
}

// RunBatch plays Episodes episodes across Workers goroutines, one Env per
// worker. Results are returned in episode order and do not depend on the
// number of workers.
func RunBatch(ctx context.Context, cfg config.FlappyConfig, opts BatchOptions) ([]EpisodeResult, error) {
	if opts.Episodes <= 0 {
		return nil, nil
	}
	if !registry.Exists(opts.Agent) {
		return nil, fmt.Errorf("headless: unknown agent %q", opts.Agent)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > opts.Episodes {
		workers = opts.Episodes
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make([]EpisodeResult, opts.Episodes)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	envs := make([]*flappy.Env, workers)
	for w := range envs {
		env, err := flappy.New(cfg, flappy.WithLogger(logger.WithPrefix(fmt.Sprintf("env-%d", w))))
		if err != nil {
			return nil, err
		}
		envs[w] = env
	}

	for _, env := range envs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := opts.Seed + int64(i)
				policy, err := registry.Create(opts.Agent, env.Rules(), seed)
				if err != nil {
					fail(err)
					return
				}

				var rec *trajectory.Recorder
				if opts.Record {
					rec = trajectory.NewRecorder(env.Labels())
				}
				res, err := RunEpisode(ctx, env, policy, seed, opts.MaxSteps, rec)
				if err != nil {
					fail(err)
					return
				}
				res.Episode = i + 1
				if rec != nil {
					res.Trajectory = rec.Steps()
					for j := range res.Trajectory {
						res.Trajectory[j].Episode = res.Episode
					}
				}
				results[i] = res
				logger.Debug("episode done", "episode", res.Episode, "seed", seed, "score", res.Score, "steps", res.Steps, "end", res.EndReason)
			}
		}()
	}

feed:
	for i := 0; i < opts.Episodes; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Episodes  int
	BestScore int
	AvgScore  float64
	AvgSteps  float64
	AvgReward float64
	EndCounts map[string]int
}

// Summarize aggregates results.
func Summarize(results []EpisodeResult) Summary {
	s := Summary{Episodes: len(results), EndCounts: make(map[string]int)}
	if len(results) == 0 {
		return s
	}
	var score, steps, reward float64
	for _, r := range results {
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
		score += float64(r.Score)
		steps += float64(r.Steps)
		reward += r.TotalReward
		s.EndCounts[r.EndReason]++
	}
	n := float64(len(results))
	s.AvgScore = score / n
	s.AvgSteps = steps / n
	s.AvgReward = reward / n
	return s
}
