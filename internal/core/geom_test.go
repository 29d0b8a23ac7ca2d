package core

import (
	"math"
	"testing"
)

func TestBoxInset(t *testing.T) {
	b := NewBox(10, 20, 34, 24).Inset(1)
	if b.X != 11 || b.Y != 21 || b.W != 32 || b.H != 22 {
		t.Errorf("Inset(1) = %+v, expected {11 21 32 22}", b)
	}

	c := b.Center()
	if c.X != 27 || c.Y != 32 {
		t.Errorf("Center() = %+v, expected (27, 32)", c)
	}
}

func TestBoxEdges(t *testing.T) {
	edges := NewBox(0, 0, 4, 2).Edges()
	top, right, bottom, left := edges[0], edges[1], edges[2], edges[3]

	if top.A != (Vec2{0, 0}) || top.B != (Vec2{4, 0}) {
		t.Errorf("top edge = %+v", top)
	}
	if right.A != (Vec2{4, 0}) || right.B != (Vec2{4, 2}) {
		t.Errorf("right edge = %+v", right)
	}
	if bottom.A != (Vec2{4, 2}) || bottom.B != (Vec2{0, 2}) {
		t.Errorf("bottom edge = %+v", bottom)
	}
	if left.A != (Vec2{0, 2}) || left.B != (Vec2{0, 0}) {
		t.Errorf("left edge = %+v", left)
	}
}

func TestSegmentIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Segment
		hit    bool
		expect Vec2
	}{
		{
			name:   "crossing",
			a:      Segment{Vec2{0, 0}, Vec2{10, 10}},
			b:      Segment{Vec2{0, 10}, Vec2{10, 0}},
			hit:    true,
			expect: Vec2{5, 5},
		},
		{
			name:   "touching at endpoint",
			a:      Segment{Vec2{0, 0}, Vec2{10, 0}},
			b:      Segment{Vec2{10, -5}, Vec2{10, 5}},
			hit:    true,
			expect: Vec2{10, 0},
		},
		{
			name: "too short",
			a:    Segment{Vec2{0, 0}, Vec2{4, 0}},
			b:    Segment{Vec2{5, -5}, Vec2{5, 5}},
			hit:  false,
		},
		{
			name: "parallel",
			a:    Segment{Vec2{0, 0}, Vec2{10, 0}},
			b:    Segment{Vec2{0, 1}, Vec2{10, 1}},
			hit:  false,
		},
		{
			name: "collinear overlap",
			a:    Segment{Vec2{0, 0}, Vec2{10, 0}},
			b:    Segment{Vec2{5, 0}, Vec2{15, 0}},
			hit:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.a.Intersect(tc.b)
			if ok != tc.hit {
				t.Fatalf("Intersect() hit = %v, expected %v", ok, tc.hit)
			}
			if ok && (math.Abs(p.X-tc.expect.X) > 1e-9 || math.Abs(p.Y-tc.expect.Y) > 1e-9) {
				t.Errorf("Intersect() = %+v, expected %+v", p, tc.expect)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/2, 10)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Errorf("FromAngle(pi/2, 10) = %+v, expected (0, 10)", v)
	}
	if math.Abs(v.Mag()-10) > 1e-9 {
		t.Errorf("Mag() = %f, expected 10", v.Mag())
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
}
