package flappy

import (
	"math"
	"testing"
)

func newDefaultLidar() Lidar {
	return NewLidar(defaultRules(), 180, 198, 20)
}

func TestLidarAngles(t *testing.T) {
	l := newDefaultLidar()

	tests := []struct {
		ray    int
		rot    float64
		expect float64
	}{
		{0, 0, -90},
		{90, 0, 0},
		{179, 0, 89},
		{110, 45, 0},  // tilt capped at 20
		{70, -20, 0}, // nose down tilts the fan down
		{0, -90, 0},  // fully diving: ray 0 points forward
	}
	for _, tc := range tests {
		if got := l.Angle(tc.ray, PlayerState{Rotation: tc.rot}); got != tc.expect {
			t.Errorf("Angle(%d, rot=%v) = %v, expected %v", tc.ray, tc.rot, got, tc.expect)
		}
	}
}

func TestLidarScan(t *testing.T) {
	l := newDefaultLidar()
	r := defaultRules()

	// Player centre at (74, 62)
	player := PlayerState{Y: 50}
	pipes := []Pipe{{X: 150, GapTop: 100, GapBottom: 200}}
	d := l.Scan(player, pipes)

	if len(d) != 180 {
		t.Fatalf("got %d rays, expected 180", len(d))
	}
	if !near(d[0], 62) {
		t.Errorf("ray 0 (up) = %v, expected ceiling at 62", d[0])
	}
	if !near(d[90], 76) {
		t.Errorf("ray 90 (forward) = %v, expected pipe face at 76", d[90])
	}
	for i, v := range d {
		if v < 0 || v > l.MaxDistance {
			t.Fatalf("ray %d = %v outside [0, %v]", i, v, l.MaxDistance)
		}
	}

	// Player centre at (74, 312), nothing but the ground in range
	low := PlayerState{Y: 300}
	d = l.Scan(low, nil)
	want := (r.GroundY - 312) / math.Sin(89*math.Pi/180)
	if math.Abs(d[179]-want) > 1e-6 {
		t.Errorf("ray 179 = %v, expected ground at %v", d[179], want)
	}
	if d[90] != l.MaxDistance {
		t.Errorf("ray 90 = %v, expected max distance with no obstacles ahead", d[90])
	}
}

func TestLidarNearestEdgeWins(t *testing.T) {
	l := newDefaultLidar()
	player := PlayerState{Y: 50}
	pipes := []Pipe{
		{X: 200, GapTop: 100, GapBottom: 200},
		{X: 120, GapTop: 100, GapBottom: 200},
	}
	d := l.Scan(player, pipes)
	if !near(d[90], 46) {
		t.Errorf("ray 90 = %v, expected nearest pipe at 46", d[90])
	}
}

func TestLidarIsDeterministic(t *testing.T) {
	l := newDefaultLidar()
	player := PlayerState{Y: 170, Rotation: 12}
	pipes := NewPipeField(defaultRules(), fixedGaps(3)).Pipes

	a := l.Scan(player, pipes)
	b := l.Scan(player, pipes)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ray %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
