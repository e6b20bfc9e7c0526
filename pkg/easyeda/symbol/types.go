// Package symbol decodes EasyEDA schematic symbol documents into a typed model.
package symbol

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// DefaultStrokeWidth is used when a polyline has no stroke width
const DefaultStrokeWidth = 1.0

// TextSize is the size given to every symbol text
const TextSize = 12.0

// FallbackBounds is the box used for a symbol without measurable geometry
var FallbackBounds = sexp.BoundingBox{
	Min: sexp.Position{X: 0, Y: 0},
	Max: sexp.Position{X: 100, Y: 100},
}

// Pin is a symbol pin. X and Y locate the connection point.
type Pin struct {
	Number   string  `json:"number" yaml:"number" cbor:"number"`
	Name     string  `json:"name" yaml:"name" cbor:"name"`
	X        float64 `json:"x" yaml:"x" cbor:"x"`
	Y        float64 `json:"y" yaml:"y" cbor:"y"`
	Rotation float64 `json:"rotation" yaml:"rotation" cbor:"rotation"`
	Length   float64 `json:"length" yaml:"length" cbor:"length"`
}

// Polyline is an open outline
type Polyline struct {
	Points      []shape.Point `json:"points" yaml:"points" cbor:"points"`
	StrokeWidth float64       `json:"strokeWidth" yaml:"strokeWidth" cbor:"strokeWidth"`
}

// Circle is a circle outline. Ellipses are stored with their mean radius.
type Circle struct {
	X      float64 `json:"x" yaml:"x" cbor:"x"`
	Y      float64 `json:"y" yaml:"y" cbor:"y"`
	Radius float64 `json:"radius" yaml:"radius" cbor:"radius"`
}

// Rectangle is an axis aligned rectangle with its top-left corner at X,Y
type Rectangle struct {
	X      float64 `json:"x" yaml:"x" cbor:"x"`
	Y      float64 `json:"y" yaml:"y" cbor:"y"`
	Width  float64 `json:"width" yaml:"width" cbor:"width"`
	Height float64 `json:"height" yaml:"height" cbor:"height"`
	RX     float64 `json:"rx" yaml:"rx" cbor:"rx"`
	RY     float64 `json:"ry" yaml:"ry" cbor:"ry"`
}

// Text is a free text label
type Text struct {
	Text string  `json:"text" yaml:"text" cbor:"text"`
	X    float64 `json:"x" yaml:"x" cbor:"x"`
	Y    float64 `json:"y" yaml:"y" cbor:"y"`
	Size float64 `json:"size" yaml:"size" cbor:"size"`
}

// Symbol is a parsed symbol document. Each collection keeps parse order.
type Symbol struct {
	Name       string      `json:"name" yaml:"name" cbor:"name"`
	Pins       []Pin       `json:"pins" yaml:"pins" cbor:"pins"`
	Polylines  []Polyline  `json:"polylines" yaml:"polylines" cbor:"polylines"`
	Circles    []Circle    `json:"circles" yaml:"circles" cbor:"circles"`
	Rectangles []Rectangle `json:"rectangles" yaml:"rectangles" cbor:"rectangles"`
	Texts      []Text      `json:"texts" yaml:"texts" cbor:"texts"`
}

// Finite returns a copy of the symbol without entities that have
// non-finite coordinates or dimensions. Pins, circles and rectangles whose
// extent overflows are dropped as well. Polylines lose their non-finite
// points and are dropped once empty.
func (s *Symbol) Finite() *Symbol {
	out := &Symbol{Name: s.Name}

	for _, p := range s.Pins {
		if !sexp.IsFinite(p.X, p.Y, p.Rotation, p.Length) {
			continue
		}
		if ex, ey := p.End(); sexp.IsFinite(ex, ey) {
			out.Pins = append(out.Pins, p)
		}
	}
	for _, pl := range s.Polylines {
		if !sexp.IsFinite(pl.StrokeWidth) {
			continue
		}
		var points []shape.Point
		for _, pt := range pl.Points {
			if sexp.IsFinite(pt.X, pt.Y) {
				points = append(points, pt)
			}
		}
		if len(points) > 0 {
			out.Polylines = append(out.Polylines, Polyline{Points: points, StrokeWidth: pl.StrokeWidth})
		}
	}
	for _, c := range s.Circles {
		if sexp.IsFinite(c.X, c.Y, c.Radius) && sexp.IsFinite(c.X-c.Radius, c.X+c.Radius, c.Y-c.Radius, c.Y+c.Radius) {
			out.Circles = append(out.Circles, c)
		}
	}
	for _, r := range s.Rectangles {
		if sexp.IsFinite(r.X, r.Y, r.Width, r.Height, r.RX, r.RY) && sexp.IsFinite(r.X+r.Width, r.Y+r.Height) {
			out.Rectangles = append(out.Rectangles, r)
		}
	}
	for _, t := range s.Texts {
		if sexp.IsFinite(t.X, t.Y, t.Size) {
			out.Texts = append(out.Texts, t)
		}
	}

	return out
}

// Bounds returns the extent of pins, polylines, circles and rectangles in
// source units. Texts do not contribute. A symbol without such geometry
// yields FallbackBounds.
func (s *Symbol) Bounds() sexp.BoundingBox {
	var xs, ys []float64
	add := func(x, y float64) {
		xs = append(xs, x)
		ys = append(ys, y)
	}

	finite := s.Finite()
	for _, p := range finite.Pins {
		add(p.X, p.Y)
	}
	for _, pl := range finite.Polylines {
		for _, pt := range pl.Points {
			add(pt.X, pt.Y)
		}
	}
	for _, c := range finite.Circles {
		add(c.X-c.Radius, c.Y-c.Radius)
		add(c.X+c.Radius, c.Y+c.Radius)
	}
	for _, r := range finite.Rectangles {
		add(r.X, r.Y)
		add(r.X+r.Width, r.Y+r.Height)
	}

	if len(xs) == 0 {
		return FallbackBounds
	}
	return sexp.BoundsOf(xs, ys)
}
