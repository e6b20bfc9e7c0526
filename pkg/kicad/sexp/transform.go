package sexp

import "math"

// Transform maps source coordinates into KiCad millimeters.
// Points are first re-origined on Origin and then scaled.
type Transform struct {
	Origin Position
	Scale  float64
	FlipY  bool // KiCad symbol space is Y-up
}

// NewTransform creates a transform centered on origin
func NewTransform(origin Position, scale float64) Transform {
	return Transform{Origin: origin, Scale: scale}
}

// Point converts a source coordinate
func (t Transform) Point(x, y float64) Position {
	p := Position{
		X: (x - t.Origin.X) * t.Scale,
		Y: (y - t.Origin.Y) * t.Scale,
	}
	if t.FlipY {
		p.Y = -p.Y
	}
	return p
}

// Length converts a source dimension
func (t Transform) Length(v float64) float64 {
	return v * t.Scale
}

// Rotate rotates p around center by degrees.
// Positive angles turn clockwise on a Y-down canvas.
func Rotate(p, center Position, degrees float64) Position {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Position{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// NormalizeAngle maps degrees into the range (-180, 180]
func NormalizeAngle(degrees float64) float64 {
	a := math.Mod(degrees, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}
