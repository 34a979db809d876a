// Package swipe decodes continuous finger-drag paths over a virtual keyboard
// into ranked word candidates. Decoding is a pure function of the path, the
// key layout and the language snapshot, so preview decoding of a growing
// prefix behaves exactly like decoding the same prefix as a finished path.
package swipe

import "math"

// Point is one sampled gesture position, normalized to [0,1] in both axes.
type Point struct {
	X float64
	Y float64
}

// Path is an ordered sequence of sampled points for one gesture. Immutable;
// created per gesture. At least two points are required for decoding.
type Path []Point

// Valid reports whether the path has enough points to decode.
func (p Path) Valid() bool {
	return len(p) >= 2
}

// Length returns the total traversed distance along the path.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		dx := p[i].X - p[i-1].X
		dy := p[i].Y - p[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}
