package config

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable environment.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen must have positive size, got %vx%v", c.Screen.Width, c.Screen.Height)
	check(c.Screen.GroundRatio > 0 && c.Screen.GroundRatio <= 1, "ground_ratio must be in (0, 1], got %v", c.Screen.GroundRatio)

	check(c.Physics.Gravity > 0, "gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.FlapImpulse < 0, "flap_impulse must be negative, got %v", c.Physics.FlapImpulse)
	check(c.Physics.MaxFallSpeed > 0, "max_fall_speed must be positive, got %v", c.Physics.MaxFallSpeed)
	check(c.Physics.RotationSpeed >= 0, "rotation_speed must not be negative, got %v", c.Physics.RotationSpeed)
	check(c.Physics.MinRotation <= c.Physics.FlapRotation, "min_rotation %v must not exceed flap_rotation %v", c.Physics.MinRotation, c.Physics.FlapRotation)

	o := c.Obstacles
	check(o.PipeWidth > 0 && o.PipeHeight > 0, "pipe size must be positive")
	check(o.PipeSpeed > 0, "pipe_speed must be positive, got %v", o.PipeSpeed)
	check(o.PipeSpacing > o.PipeWidth, "pipe_spacing %v must exceed pipe_width %v", o.PipeSpacing, o.PipeWidth)
	check(o.PipeGap >= o.MinPipeGap, "pipe_gap %v is below min_pipe_gap %v", o.PipeGap, o.MinPipeGap)
	check(o.PipeGap > c.Player.Height, "pipe_gap %v must exceed player height %v", o.PipeGap, c.Player.Height)
	check(len(o.GapOffsets) > 0, "gap_offsets must not be empty")
	for _, off := range o.GapOffsets {
		top := o.GapBase + off
		check(top >= 0 && top+o.PipeGap <= c.GroundY(), "gap at %v..%v does not fit above ground %v", top, top+o.PipeGap, c.GroundY())
	}

	p := c.Player
	check(p.Width > 0 && p.Height > 0, "player size must be positive")
	check(p.X >= 0 && p.X+p.Width <= c.Screen.Width, "player x %v is off screen", p.X)
	check(p.StartY >= 0 && p.StartY+p.Height < c.GroundY(), "start_y %v must be above ground", p.StartY)
	check(p.HitboxTolerance >= 0 && 2*p.HitboxTolerance < p.Height, "hitbox_tolerance %v out of range", p.HitboxTolerance)

	if c.Observation.UseLidar {
		check(c.Observation.LidarRays > 0, "lidar_rays must be positive, got %d", c.Observation.LidarRays)
		check(c.Observation.LidarMaxDistance > 0, "lidar_max_distance must be positive, got %v", c.Observation.LidarMaxDistance)
		check(c.Observation.ProximityZone >= 0, "proximity_zone must not be negative, got %v", c.Observation.ProximityZone)
	}

	floats := c.floats()
	for _, name := range slices.Sorted(maps.Keys(floats)) {
		v := floats[name]
		check(!math.IsNaN(v) && !math.IsInf(v, 0), "%s must be finite, got %v", name, v)
	}

	check(c.ScoreLimit >= 0, "score_limit must not be negative, got %d", c.ScoreLimit)
	switch c.RenderMode {
	case "", "human", "ansi":
	default:
		check(false, "render_mode must be empty, human or ansi, got %q", c.RenderMode)
	}

	return errors.Join(errs...)
}

// floats returns every scalar float setting by its YAML path.
// The LIDAR settings are only read when the LIDAR is enabled.
func (c FlappyConfig) floats() map[string]float64 {
	f := map[string]float64{
		"screen.width":            c.Screen.Width,
		"screen.height":           c.Screen.Height,
		"screen.ground_ratio":     c.Screen.GroundRatio,
		"physics.gravity":         c.Physics.Gravity,
		"physics.flap_impulse":    c.Physics.FlapImpulse,
		"physics.max_fall_speed":  c.Physics.MaxFallSpeed,
		"physics.rotation_speed":  c.Physics.RotationSpeed,
		"physics.flap_rotation":   c.Physics.FlapRotation,
		"physics.min_rotation":    c.Physics.MinRotation,
		"obstacles.pipe_width":    c.Obstacles.PipeWidth,
		"obstacles.pipe_height":   c.Obstacles.PipeHeight,
		"obstacles.pipe_speed":    c.Obstacles.PipeSpeed,
		"obstacles.pipe_spacing":  c.Obstacles.PipeSpacing,
		"obstacles.pipe_gap":      c.Obstacles.PipeGap,
		"obstacles.min_pipe_gap":  c.Obstacles.MinPipeGap,
		"obstacles.gap_base":      c.Obstacles.GapBase,
		"player.x":                c.Player.X,
		"player.start_y":          c.Player.StartY,
		"player.start_velocity":   c.Player.StartVelocity,
		"player.start_rotation":   c.Player.StartRotation,
		"player.width":            c.Player.Width,
		"player.height":           c.Player.Height,
		"player.hitbox_tolerance": c.Player.HitboxTolerance,
		"rewards.alive":           c.Rewards.Alive,
		"rewards.pipe_pass":       c.Rewards.PipePass,
		"rewards.proximity":       c.Rewards.Proximity,
		"rewards.ceiling":         c.Rewards.Ceiling,
		"rewards.crash":           c.Rewards.Crash,
	}
	for i, off := range c.Obstacles.GapOffsets {
		f[fmt.Sprintf("obstacles.gap_offsets[%d]", i)] = off
	}
	if c.Observation.UseLidar {
		f["observation.lidar_max_distance"] = c.Observation.LidarMaxDistance
		f["observation.lidar_rotation_limit"] = c.Observation.LidarRotLimit
		f["observation.proximity_zone"] = c.Observation.ProximityZone
	}
	return f
}
