// Package core provides fundamental types and utilities for the simulation.
// It has no external dependencies so game logic stays pure and testable.
package core

import "math"

// Rect represents an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world pixels.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Inset shrinks the box by d on every side.
func (b Box) Inset(d float64) Box {
	return Box{X: b.X + d, Y: b.Y + d, W: b.W - 2*d, H: b.H - 2*d}
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Edges returns the four sides of the box as segments:
// top, right, bottom, left.
func (b Box) Edges() [4]Segment {
	tl := Vec2{b.X, b.Y}
	tr := Vec2{b.Right(), b.Y}
	br := Vec2{b.Right(), b.Bottom()}
	bl := Vec2{b.X, b.Bottom()}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Vec2 is a 2D vector in world pixels (y grows downward).
type Vec2 struct {
	X, Y float64
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a multiplied by f.
func (a Vec2) Scale(f float64) Vec2 {
	return Vec2{a.X * f, a.Y * f}
}

// Cross returns the z component of the 3D cross product.
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Mag returns the vector length.
func (a Vec2) Mag() float64 {
	return math.Hypot(a.X, a.Y)
}

// FromAngle returns a vector of the given length pointing at radians.
func FromAngle(radians, length float64) Vec2 {
	return Vec2{length * math.Cos(radians), length * math.Sin(radians)}
}

// Segment is a line segment between A and B.
type Segment struct {
	A, B Vec2
}

// Intersect returns the point where two segments cross.
// Parallel and collinear segments report no intersection.
func (s Segment) Intersect(o Segment) (Vec2, bool) {
	r := s.B.Sub(s.A)
	q := o.B.Sub(o.A)
	rxq := r.Cross(q)
	if isZero(rxq) {
		return Vec2{}, false
	}

	ap := o.A.Sub(s.A)
	t := ap.Cross(q) / rxq
	u := ap.Cross(r) / rxq
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return s.A.Add(r.Scale(t)), true
}

const epsilon = 1e-9

func isZero(f float64) bool {
	return math.Abs(f) < epsilon
}

// ClampF restricts v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
