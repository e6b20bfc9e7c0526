// Package sexp provides shared S-expression infrastructure for KiCad files.
// It contains the geometry types and the read and write helpers common to
// the footprint and symbol library packages.
package sexp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Unit conversion constants
const (
	// MilsToMM converts EasyEDA source units (10 mil) to millimeters
	MilsToMM = 0.254
)

// Position represents a 2D coordinate in millimeters
type Position struct {
	X float64
	Y float64
}

// IsFinite reports whether both coordinates are finite
func (p Position) IsFinite() bool {
	return IsFinite(p.X, p.Y)
}

// Angle represents rotation in degrees
type Angle float64

// PositionAngle combines position with rotation
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions
type Size struct {
	Width  float64 // Width in mm
	Height float64 // Height in mm
}

// Stroke defines line/outline appearance
type Stroke struct {
	Width float64 // Line width in mm
	Type  string  // Line type (solid, dash, default, etc.)
}

// Fill defines area fill
type Fill struct {
	Type string // none, outline, background
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position // Minimum (top-left) corner
	Max Position // Maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: math.Inf(1), Y: math.Inf(1)},
		Max: Position{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BoundsOf returns the smallest box containing all given coordinates.
// xs and ys must have equal length; an empty input yields an empty box.
func BoundsOf(xs, ys []float64) BoundingBox {
	if len(xs) == 0 || len(xs) != len(ys) {
		return NewBoundingBox()
	}
	return BoundingBox{
		Min: Position{X: floats.Min(xs), Y: floats.Min(ys)},
		Max: Position{X: floats.Max(xs), Y: floats.Max(ys)},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	bb.Min.X = math.Min(bb.Min.X, pos.X)
	bb.Min.Y = math.Min(bb.Min.Y, pos.Y)
	bb.Max.X = math.Max(bb.Max.X, pos.X)
	bb.Max.Y = math.Max(bb.Max.Y, pos.Y)
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box.
// It is finite for any box with finite corners.
func (bb BoundingBox) Center() Position {
	return Position{
		X: bb.Min.X/2 + bb.Max.X/2,
		Y: bb.Min.Y/2 + bb.Max.Y/2,
	}
}

// IsFinite reports whether every value is neither NaN nor infinite
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Effects represents text effects (font, justification, etc.)
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// Font represents font properties
type Font struct {
	Size      Size    // Font size
	Thickness float64 // Line thickness for stroke fonts
	Bold      bool
	Italic    bool
}

// Justify represents text justification
type Justify struct {
	Horizontal string // left, center, right
	Vertical   string // top, center, bottom
	Mirror     bool
}

// Property represents a key-value property of a symbol
type Property struct {
	Key      string
	Value    string
	ID       int
	Position PositionAngle
	Effects  Effects
}

// GrLine represents a line graphic element
type GrLine struct {
	Start  Position
	End    Position
	Stroke Stroke
	Layer  string
}

// GrCircle represents a circle graphic element
// In KiCad, circles are defined by center and a point on the circumference
type GrCircle struct {
	Center Position
	End    Position
	Stroke Stroke
	Fill   Fill
	Layer  string
}

// Radius returns the distance from center to the circumference point
func (c GrCircle) Radius() float64 {
	return math.Hypot(c.End.X-c.Center.X, c.End.Y-c.Center.Y)
}

// GrArc represents an arc graphic element
// Arcs are defined by three points: start, mid (on arc), and end
type GrArc struct {
	Start  Position
	Mid    Position
	End    Position
	Stroke Stroke
	Layer  string
}

// GrText represents a text graphic element
type GrText struct {
	Kind     string // reference, value or user
	Text     string
	Position PositionAngle
	Layer    string
	Effects  Effects
}
