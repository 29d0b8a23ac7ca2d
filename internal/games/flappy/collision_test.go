package flappy

import "testing"

func TestColliderCheck(t *testing.T) {
	r := defaultRules()
	c := NewCollider(r)
	gap := Pipe{X: 60, GapTop: 150, GapBottom: 250}

	tests := []struct {
		name   string
		y      float64
		pipes  []Pipe
		expect CrashKind
	}{
		{"open sky", 200, nil, CrashNone},
		{"ceiling is safe", 0, nil, CrashNone},
		{"just above ground", r.GroundY - 24 - 1.5, nil, CrashNone},
		{"ground contact", r.GroundY - 24 - 0.5, nil, CrashGround},
		{"inside gap", 180, []Pipe{gap}, CrashNone},
		{"hits upper pipe", 140, []Pipe{gap}, CrashPipe},
		{"hits lower pipe", 240, []Pipe{gap}, CrashPipe},
		{"tolerance above gap top", 149, []Pipe{gap}, CrashNone},
		{"past tolerance above gap top", 148.5, []Pipe{gap}, CrashPipe},
		{"tolerance below gap bottom", 227, []Pipe{gap}, CrashNone},
		{"past tolerance below gap bottom", 227.5, []Pipe{gap}, CrashPipe},
		{"pipe edge touching hitbox", 10, []Pipe{{X: 90, GapTop: 150, GapBottom: 250}}, CrashNone},
		{"pipe overlapping hitbox", 10, []Pipe{{X: 89.5, GapTop: 150, GapBottom: 250}}, CrashPipe},
		{"pipe behind hitbox", 10, []Pipe{{X: 6, GapTop: 150, GapBottom: 250}}, CrashNone},
		{"ground wins over pipe", r.GroundY - 24, []Pipe{gap}, CrashGround},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Check(PlayerState{Y: tc.y}, tc.pipes)
			if got != tc.expect {
				t.Errorf("Check(y=%v) = %v, expected %v", tc.y, got, tc.expect)
			}
		})
	}
}

func TestCrashKindString(t *testing.T) {
	if CrashNone.String() != "none" || CrashGround.String() != "ground" || CrashPipe.String() != "pipe" {
		t.Error("unexpected CrashKind strings")
	}
}
