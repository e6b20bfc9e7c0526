// Package pcb converts EasyEDA footprints to KiCad footprints (.kicad_mod)
// and reads .kicad_mod files back.
package pcb

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// Shared types (aliases to sexp package)
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type Stroke = sexp.Stroke
type Fill = sexp.Fill
type BoundingBox = sexp.BoundingBox
type GrLine = sexp.GrLine
type GrCircle = sexp.GrCircle
type GrArc = sexp.GrArc
type GrText = sexp.GrText

// NewBoundingBox re-exports the sexp constructor
var NewBoundingBox = sexp.NewBoundingBox

// Footprint is a footprint read from a .kicad_mod file
type Footprint struct {
	Name       string   // Footprint name
	Version    int      // File format version
	Generator  string   // Program that wrote the file
	Layer      string   // Placement layer, normally F.Cu
	Attributes []string // (attr ...) flags: smd, through_hole, ...
	Reference  string   // Reference designator text
	Value      string   // Value text
	Pads       []Pad
	Lines      []GrLine
	Circles    []GrCircle
	Arcs       []GrArc
	Texts      []GrText // fp_text user entries
}

// Pad represents a footprint pad
type Pad struct {
	Number   string        // Pad number/name
	Type     string        // Pad type (thru_hole, smd, etc.)
	Shape    string        // Pad shape (circle, rect, oval, etc.)
	Position PositionAngle // Position and rotation
	Size     Size          // Pad size
	Drill    float64       // Drill diameter (0 for SMD)
	Layers   LayerSet      // Layers the pad appears on
}

// HasAttribute reports whether the footprint carries the given attr flag
func (fp *Footprint) HasAttribute(attr string) bool {
	for _, a := range fp.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}
