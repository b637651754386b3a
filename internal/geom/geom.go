// Package geom holds the small value types the board is built from: vectors,
// line segments and circles. All of them are copied by value and never mutated
// in place.
package geom

import (
	"fmt"
	"math"
)

// Vect is a 2-D vector. Board coordinates grow rightwards in X and downwards in Y.
type Vect struct {
	X, Y float64
}

var Zero = Vect{}

func V(x, y float64) Vect { return Vect{X: x, Y: y} }

func (v Vect) Add(o Vect) Vect { return Vect{v.X + o.X, v.Y + o.Y} }

func (v Vect) Sub(o Vect) Vect { return Vect{v.X - o.X, v.Y - o.Y} }

func (v Vect) Scale(f float64) Vect { return Vect{v.X * f, v.Y * f} }

func (v Vect) Dot(o Vect) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vect) Length() float64 { return math.Hypot(v.X, v.Y) }

// Unit returns v scaled to length one, or the zero vector when v is zero.
func (v Vect) Unit() Vect {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vect{v.X / l, v.Y / l}
}

// Perp returns v rotated by 90 degrees.
func (v Vect) Perp() Vect { return Vect{-v.Y, v.X} }

// ApproxEqual reports whether both components differ by at most tol.
func (v Vect) ApproxEqual(o Vect, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

func (v Vect) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vect) String() string { return fmt.Sprintf("(%.4g, %.4g)", v.X, v.Y) }

// Segment is a wall edge between two endpoints.
type Segment struct {
	P1, P2 Vect
}

func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{P1: Vect{x1, y1}, P2: Vect{x2, y2}}
}

func (s Segment) Length() float64 { return s.P2.Sub(s.P1).Length() }

// Direction is the unit vector from P1 to P2.
func (s Segment) Direction() Vect { return s.P2.Sub(s.P1).Unit() }

// Distance is the shortest distance from p to any point of s.
func (s Segment) Distance(p Vect) float64 {
	d := s.P2.Sub(s.P1)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(s.P1).Length()
	}
	t := math.Max(0, math.Min(1, p.Sub(s.P1).Dot(d)/l2))
	return p.Sub(s.P1.Add(d.Scale(t))).Length()
}

// Circle is a center plus a non-negative radius. A zero radius stands for a point.
type Circle struct {
	Center Vect
	Radius float64
}

func Circ(x, y, r float64) Circle {
	return Circle{Center: Vect{x, y}, Radius: r}
}
