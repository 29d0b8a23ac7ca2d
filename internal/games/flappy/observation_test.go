package flappy

import (
	"testing"

	"github.com/vovakirdan/flappy-gym/internal/config"
)

func sampleState() State {
	return State{
		Player: PlayerState{Y: 120, VelY: -5, Rotation: 30},
		Field: PipeField{Pipes: []Pipe{
			{X: 0, GapTop: 110, GapBottom: 210, Passed: true}, // already behind the player
			{X: 144, GapTop: 100, GapBottom: 200},
			{X: 288, GapTop: 150, GapBottom: 250},
			{X: 432, GapTop: 170, GapBottom: 270},
		}},
	}
}

func TestCompactEncoderRaw(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Observation
	cfg.Normalize = false
	enc := NewEncoder(defaultRules(), cfg)

	obs := enc.Encode(sampleState())
	want := Observation{
		144, 100, 200,
		288, 150, 250,
		432, 170, 270,
		120, -5, 30,
	}
	if len(obs) != enc.Size() || len(obs) != 12 {
		t.Fatalf("len = %d, Size() = %d, expected 12", len(obs), enc.Size())
	}
	for i := range want {
		if obs[i] != want[i] {
			t.Errorf("obs[%d] = %v, expected %v", i, obs[i], want[i])
		}
	}
}

func TestCompactEncoderNormalized(t *testing.T) {
	enc := NewEncoder(defaultRules(), config.DefaultFlappyConfig().Observation)
	obs := enc.Encode(sampleState())

	checks := map[int]float64{
		0:  144.0 / 288,
		1:  100.0 / 512,
		2:  200.0 / 512,
		9:  120.0 / 512,
		10: -5.0 / 10,
		11: 30.0 / 90,
	}
	for i, want := range checks {
		if !near(obs[i], want) {
			t.Errorf("obs[%d] = %v, expected %v", i, obs[i], want)
		}
	}
}

func TestCompactLabels(t *testing.T) {
	enc := NewEncoder(defaultRules(), config.DefaultFlappyConfig().Observation)
	want := []string{
		"pipe_0_x", "pipe_0_top", "pipe_0_bottom",
		"pipe_1_x", "pipe_1_top", "pipe_1_bottom",
		"pipe_2_x", "pipe_2_top", "pipe_2_bottom",
		"player_y", "player_y_velocity", "player_rotation",
	}
	got := enc.Labels()
	if len(got) != len(want) {
		t.Fatalf("got %d labels, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestLidarEncoder(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Observation
	cfg.UseLidar = true
	enc := NewEncoder(defaultRules(), cfg)

	if enc.Size() != 183 {
		t.Fatalf("Size() = %d, expected 183", enc.Size())
	}
	labels := enc.Labels()
	if labels[0] != "lidar_000" || labels[179] != "lidar_179" || labels[182] != "player_rotation" {
		t.Errorf("unexpected labels: %q %q %q", labels[0], labels[179], labels[182])
	}

	obs := enc.Encode(sampleState())
	for i := 0; i < 180; i++ {
		if obs[i] < 0 || obs[i] > 1 {
			t.Fatalf("normalized ray %d = %v outside [0, 1]", i, obs[i])
		}
	}
}

func TestEncodersAgreeOnPlayerValues(t *testing.T) {
	for _, normalize := range []bool{false, true} {
		cfg := config.DefaultFlappyConfig().Observation
		cfg.Normalize = normalize

		compact := NewEncoder(defaultRules(), cfg)
		cfg.UseLidar = true
		lidar := NewEncoder(defaultRules(), cfg)

		st := sampleState()
		a := compact.Encode(st)
		b := lidar.Encode(st)
		for i := 1; i <= 3; i++ {
			if a[len(a)-i] != b[len(b)-i] {
				t.Errorf("normalize=%v: trailing value %d differs: %v vs %v", normalize, i, a[len(a)-i], b[len(b)-i])
			}
		}
	}
}

func TestLidarTooClose(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Observation
	cfg.UseLidar = true
	enc := NewEncoder(defaultRules(), cfg).(lidarEncoder)

	// Hugging the ceiling: the upward ray is 12 px long
	atCeiling := enc.Encode(State{Player: PlayerState{Y: 0}})
	if !enc.TooClose(atCeiling) {
		t.Error("expected proximity at the ceiling")
	}

	// Mid-air with no pipes in range
	midAir := enc.Encode(State{Player: PlayerState{Y: 200}})
	if enc.TooClose(midAir) {
		t.Error("unexpected proximity in open air")
	}
}
