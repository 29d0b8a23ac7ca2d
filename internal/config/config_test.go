package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded yaml and DefaultFlappyConfig differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestGroundY(t *testing.T) {
	cfg := DefaultFlappyConfig()
	if got := cfg.GroundY(); got < 404.47 || got > 404.49 {
		t.Errorf("GroundY() = %v, expected 404.48", got)
	}
}

func TestLoadFlappyCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flappy.yaml")
	data := []byte("physics:\n  gravity: 1.5\nobservation:\n  use_lidar: true\nscore_limit: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy: %v", err)
	}
	if cfg.Physics.Gravity != 1.5 {
		t.Errorf("Gravity = %v, expected 1.5", cfg.Physics.Gravity)
	}
	if !cfg.Observation.UseLidar || cfg.ScoreLimit != 7 {
		t.Errorf("overrides not applied: %+v", cfg.Observation)
	}
	// Untouched fields keep their defaults
	if cfg.Physics.FlapImpulse != -9 || cfg.Obstacles.PipeGap != 100 {
		t.Errorf("defaults lost: flap=%v gap=%v", cfg.Physics.FlapImpulse, cfg.Obstacles.PipeGap)
	}
}

func TestLoadFlappyMissingCustomPath(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFlappyRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseFlappyMalformed(t *testing.T) {
	if _, err := ParseFlappy([]byte("screen: [not, a, map")); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseFlappyRejectsNonFinite(t *testing.T) {
	for _, doc := range []string{
		"physics:\n  rotation_speed: .nan\n",
		"physics:\n  min_rotation: 100\n",
		"rewards:\n  crash: -.inf\n",
		"observation:\n  use_lidar: true\n  lidar_rotation_limit: .nan\n",
	} {
		if _, err := ParseFlappy([]byte(doc)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("ParseFlappy(%q): expected ErrInvalidConfig, got %v", doc, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		ok     bool
	}{
		{"defaults", func(*FlappyConfig) {}, true},
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }, false},
		{"positive flap", func(c *FlappyConfig) { c.Physics.FlapImpulse = 5 }, false},
		{"gap below minimum", func(c *FlappyConfig) { c.Obstacles.PipeGap = 40 }, false},
		{"gap below ground", func(c *FlappyConfig) { c.Obstacles.GapBase = 350 }, false},
		{"no offsets", func(c *FlappyConfig) { c.Obstacles.GapOffsets = nil }, false},
		{"negative score limit", func(c *FlappyConfig) { c.ScoreLimit = -1 }, false},
		{"lidar without rays", func(c *FlappyConfig) {
			c.Observation.UseLidar = true
			c.Observation.LidarRays = 0
		}, false},
		{"rays ignored in compact mode", func(c *FlappyConfig) { c.Observation.LidarRays = 0 }, true},
		{"nan rotation speed", func(c *FlappyConfig) { c.Physics.RotationSpeed = math.NaN() }, false},
		{"negative rotation speed", func(c *FlappyConfig) { c.Physics.RotationSpeed = -3 }, false},
		{"min rotation above flap rotation", func(c *FlappyConfig) { c.Physics.MinRotation = 100 }, false},
		{"infinite flap rotation", func(c *FlappyConfig) { c.Physics.FlapRotation = math.Inf(1) }, false},
		{"infinite gravity", func(c *FlappyConfig) { c.Physics.Gravity = math.Inf(1) }, false},
		{"nan start velocity", func(c *FlappyConfig) { c.Player.StartVelocity = math.NaN() }, false},
		{"nan reward", func(c *FlappyConfig) { c.Rewards.Alive = math.NaN() }, false},
		{"infinite gap offset", func(c *FlappyConfig) { c.Obstacles.GapOffsets = []float64{math.Inf(-1)} }, false},
		{"lidar nan rotation limit", func(c *FlappyConfig) {
			c.Observation.UseLidar = true
			c.Observation.LidarRotLimit = math.NaN()
		}, false},
		{"lidar negative proximity zone", func(c *FlappyConfig) {
			c.Observation.UseLidar = true
			c.Observation.ProximityZone = -1
		}, false},
		{"lidar settings ignored in compact mode", func(c *FlappyConfig) {
			c.Observation.LidarRotLimit = math.NaN()
			c.Observation.ProximityZone = -1
		}, true},
		{"unknown render mode", func(c *FlappyConfig) { c.RenderMode = "rgb" }, false},
		{"human render mode", func(c *FlappyConfig) { c.RenderMode = "human" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in  string
		gap float64
	}{
		{"easy", 130},
		{"Normal", 100},
		{" hard ", 85},
	}
	for _, tc := range tests {
		p, err := ParsePreset(tc.in)
		if err != nil {
			t.Fatalf("ParsePreset(%q): %v", tc.in, err)
		}
		cfg := DefaultFlappyConfig()
		ApplyFlappyPreset(&cfg, p)
		if cfg.Obstacles.PipeGap != tc.gap {
			t.Errorf("%s: PipeGap = %v, expected %v", tc.in, cfg.Obstacles.PipeGap, tc.gap)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: preset produced invalid config: %v", tc.in, err)
		}
	}

	// A preset never loosens the configured minimum gap.
	cfg, err := ParseFlappy([]byte("obstacles:\n  min_pipe_gap: 95\n"))
	if err != nil {
		t.Fatalf("ParseFlappy: %v", err)
	}
	ApplyFlappyPreset(&cfg, PresetHard)
	if cfg.Obstacles.MinPipeGap != 95 {
		t.Errorf("MinPipeGap = %v, expected 95", cfg.Obstacles.MinPipeGap)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("hard preset under min_pipe_gap 95: expected ErrInvalidConfig, got %v", err)
	}

	if _, err := ParsePreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown preset, got %v", err)
	}
}
