// Package footprint decodes EasyEDA footprint documents into a typed model.
package footprint

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// PadType is the mounting technology of a pad
type PadType string

const (
	PadSMD         PadType = "smd"
	PadThroughHole PadType = "through-hole"
)

// ThroughHoleLayer is the layer id that marks a through-hole pad
const ThroughHoleLayer = "11"

// DrillRatio derives the drill diameter of a through-hole pad from its width
const DrillRatio = 0.6

// DefaultLayer is used when a record carries no layer id
const DefaultLayer = "1"

// Pad represents a copper pad in source units
type Pad struct {
	Number   string   `json:"number" yaml:"number" cbor:"number"`
	Type     PadType  `json:"type" yaml:"type" cbor:"type"`
	Shape    string   `json:"shape" yaml:"shape" cbor:"shape"` // lower-cased source shape: rect, ellipse, oval, polygon...
	X        float64  `json:"x" yaml:"x" cbor:"x"`
	Y        float64  `json:"y" yaml:"y" cbor:"y"`
	Width    float64  `json:"width" yaml:"width" cbor:"width"`
	Height   float64  `json:"height" yaml:"height" cbor:"height"`
	Drill    *float64 `json:"drill,omitempty" yaml:"drill,omitempty" cbor:"drill,omitempty"` // set iff Type is PadThroughHole
	Rotation float64  `json:"rotation,omitempty" yaml:"rotation,omitempty" cbor:"rotation,omitempty"`
	Layer    string   `json:"layer" yaml:"layer" cbor:"layer"`
}

// Line represents a track segment
type Line struct {
	X1    float64 `json:"x1" yaml:"x1" cbor:"x1"`
	Y1    float64 `json:"y1" yaml:"y1" cbor:"y1"`
	X2    float64 `json:"x2" yaml:"x2" cbor:"x2"`
	Y2    float64 `json:"y2" yaml:"y2" cbor:"y2"`
	Width float64 `json:"width" yaml:"width" cbor:"width"`
	Layer string  `json:"layer" yaml:"layer" cbor:"layer"`
}

// Circle represents a circle outline
type Circle struct {
	X      float64 `json:"x" yaml:"x" cbor:"x"`
	Y      float64 `json:"y" yaml:"y" cbor:"y"`
	Radius float64 `json:"radius" yaml:"radius" cbor:"radius"`
	Width  float64 `json:"width" yaml:"width" cbor:"width"`
	Layer  string  `json:"layer" yaml:"layer" cbor:"layer"`
}

// Arc represents an arc given by its center, start point and signed sweep in degrees
type Arc struct {
	X      float64 `json:"x" yaml:"x" cbor:"x"`
	Y      float64 `json:"y" yaml:"y" cbor:"y"`
	StartX float64 `json:"startX" yaml:"startX" cbor:"startX"`
	StartY float64 `json:"startY" yaml:"startY" cbor:"startY"`
	Angle  float64 `json:"angle" yaml:"angle" cbor:"angle"`
	Width  float64 `json:"width" yaml:"width" cbor:"width"`
	Layer  string  `json:"layer" yaml:"layer" cbor:"layer"`
}

// Text represents a free text label
type Text struct {
	Text  string  `json:"text" yaml:"text" cbor:"text"`
	X     float64 `json:"x" yaml:"x" cbor:"x"`
	Y     float64 `json:"y" yaml:"y" cbor:"y"`
	Size  float64 `json:"size" yaml:"size" cbor:"size"`
	Layer string  `json:"layer" yaml:"layer" cbor:"layer"`
}

// DefaultTextSize is used when a TEXT record has no size
const DefaultTextSize = 12.0

// Footprint is a parsed footprint document. Each collection keeps parse order.
type Footprint struct {
	Name    string   `json:"name" yaml:"name" cbor:"name"`
	Pads    []Pad    `json:"pads" yaml:"pads" cbor:"pads"`
	Lines   []Line   `json:"lines" yaml:"lines" cbor:"lines"`
	Circles []Circle `json:"circles" yaml:"circles" cbor:"circles"`
	Arcs    []Arc    `json:"arcs" yaml:"arcs" cbor:"arcs"`
	Texts   []Text   `json:"texts" yaml:"texts" cbor:"texts"`
}

// HasThroughHole reports whether any pad is a through-hole pad
func (fp *Footprint) HasThroughHole() bool {
	for _, pad := range fp.Pads {
		if pad.Type == PadThroughHole {
			return true
		}
	}
	return false
}

// Finite returns a copy of the footprint without entities that have
// non-finite coordinates or dimensions. Pads and circles whose extent
// overflows are dropped as well.
func (fp *Footprint) Finite() *Footprint {
	out := &Footprint{Name: fp.Name}

	for _, p := range fp.Pads {
		if sexp.IsFinite(p.X, p.Y, p.Width, p.Height, p.Rotation) && (p.Drill == nil || sexp.IsFinite(*p.Drill)) &&
			sexp.IsFinite(p.X-p.Width/2, p.X+p.Width/2, p.Y-p.Height/2, p.Y+p.Height/2) {
			out.Pads = append(out.Pads, p)
		}
	}
	for _, l := range fp.Lines {
		if sexp.IsFinite(l.X1, l.Y1, l.X2, l.Y2, l.Width) {
			out.Lines = append(out.Lines, l)
		}
	}
	for _, c := range fp.Circles {
		if sexp.IsFinite(c.X, c.Y, c.Radius, c.Width) && sexp.IsFinite(c.X-c.Radius, c.X+c.Radius, c.Y-c.Radius, c.Y+c.Radius) {
			out.Circles = append(out.Circles, c)
		}
	}
	for _, a := range fp.Arcs {
		if sexp.IsFinite(a.X, a.Y, a.StartX, a.StartY, a.Angle, a.Width) {
			out.Arcs = append(out.Arcs, a)
		}
	}
	for _, t := range fp.Texts {
		if sexp.IsFinite(t.X, t.Y, t.Size) {
			out.Texts = append(out.Texts, t)
		}
	}

	return out
}

// Bounds returns the extent of pads, lines and circles in source units.
// Non-finite entities are ignored. A footprint without such geometry
// yields the zero box.
func (fp *Footprint) Bounds() sexp.BoundingBox {
	var xs, ys []float64
	add := func(x, y float64) {
		xs = append(xs, x)
		ys = append(ys, y)
	}

	finite := fp.Finite()
	for _, p := range finite.Pads {
		add(p.X-p.Width/2, p.Y-p.Height/2)
		add(p.X+p.Width/2, p.Y+p.Height/2)
	}
	for _, l := range finite.Lines {
		add(l.X1, l.Y1)
		add(l.X2, l.Y2)
	}
	for _, c := range finite.Circles {
		add(c.X-c.Radius, c.Y-c.Radius)
		add(c.X+c.Radius, c.Y+c.Radius)
	}

	if len(xs) == 0 {
		return sexp.BoundingBox{}
	}
	return sexp.BoundsOf(xs, ys)
}
