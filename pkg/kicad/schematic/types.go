// Package schematic converts EasyEDA symbols to KiCad symbol libraries
// (.kicad_sym) and reads symbol libraries back.
package schematic

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// Re-export shared types from sexp package for convenience
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type Stroke = sexp.Stroke
type Fill = sexp.Fill
type Effects = sexp.Effects
type Font = sexp.Font
type Justify = sexp.Justify
type Property = sexp.Property

// Library represents a parsed .kicad_sym file
type Library struct {
	Version   int         // File format version
	Generator string      // Program that wrote the file
	Symbols   []LibSymbol // Symbol definitions in file order
}

// LibSymbol represents a library symbol definition
type LibSymbol struct {
	Name       string       // Symbol name
	PinNumbers bool         // Show pin numbers
	PinNames   bool         // Show pin names
	InBom      bool         // Include in BOM
	OnBoard    bool         // Place on board
	Properties []Property   // Symbol properties
	Pins       []Pin        // Pins of all units
	Graphics   []SymGraphic // Graphics of all units
	Units      []SymbolUnit // Symbol units (NAME_unit_style)
}

// SymbolUnit represents a unit of a symbol
type SymbolUnit struct {
	Name     string       // Unit name
	Graphics []SymGraphic // Unit graphics
	Pins     []Pin        // Unit pins
}

// SymGraphic represents a graphical element in a symbol
type SymGraphic struct {
	Type     string        // rectangle, circle, arc, polyline, text
	Start    Position      // Start point
	End      Position      // End point
	Center   Position      // Center (for circles)
	Mid      Position      // Mid point (for arcs)
	Points   []Position    // Points (for polylines)
	Radius   float64       // Radius (for circles)
	Stroke   Stroke        // Stroke style
	Fill     Fill          // Fill style
	Text     string        // Text content (for text elements)
	Position PositionAngle // Anchor (for text elements)
	Effects  Effects       // Text effects (for text elements)
}

// Pin represents a symbol pin
type Pin struct {
	Type     string   // Electrical type (input, output, passive, etc.)
	Style    string   // Graphic style (line, inverted, clock, etc.)
	Position Position // Connection point
	Angle    Angle    // Pin angle (0, 90, 180, 270)
	Length   float64  // Pin length
	Name     PinName  // Pin name
	Number   PinNum   // Pin number
	Hide     bool     // Hidden pin
}

// PinName contains pin name information
type PinName struct {
	Name    string
	Effects Effects
}

// PinNum contains pin number information
type PinNum struct {
	Number  string
	Effects Effects
}

// Symbol returns the symbol with the given name, or nil
func (l *Library) Symbol(name string) *LibSymbol {
	for i := range l.Symbols {
		if l.Symbols[i].Name == name {
			return &l.Symbols[i]
		}
	}
	return nil
}

// Property returns the value of the named property
func (s *LibSymbol) Property(key string) (string, bool) {
	for _, p := range s.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Texts returns the text graphics of the symbol
func (s *LibSymbol) Texts() []SymGraphic {
	var texts []SymGraphic
	for _, g := range s.Graphics {
		if g.Type == "text" {
			texts = append(texts, g)
		}
	}
	return texts
}

// GetBoundingBox calculates the bounding box of pins and graphics.
// Texts only contribute their anchor.
func (s *LibSymbol) GetBoundingBox() sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()

	for _, pin := range s.Pins {
		bbox.Expand(pin.Position)
	}

	for _, g := range s.Graphics {
		switch g.Type {
		case "rectangle":
			bbox.Expand(g.Start)
			bbox.Expand(g.End)
		case "circle":
			bbox.Expand(Position{X: g.Center.X - g.Radius, Y: g.Center.Y - g.Radius})
			bbox.Expand(Position{X: g.Center.X + g.Radius, Y: g.Center.Y + g.Radius})
		case "arc":
			bbox.Expand(g.Start)
			bbox.Expand(g.Mid)
			bbox.Expand(g.End)
		case "polyline":
			for _, p := range g.Points {
				bbox.Expand(p)
			}
		case "text":
			bbox.Expand(g.Position.Position)
		}
	}

	return bbox
}
