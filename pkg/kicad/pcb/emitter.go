package pcb

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

const (
	// FormatVersion is the .kicad_mod format written by EmitFootprint (KiCad 7)
	FormatVersion = 20221018

	// Generator is written into the generator field of emitted files
	Generator = "easyeda2kicad"

	// DefaultFootprintName replaces names that sanitize to nothing
	DefaultFootprintName = "EasyEDA_Footprint"

	// textMargin is the gap in mm between the bounding box and the reference/value texts
	textMargin = 1.0

	// designatorSize is the font size in mm of the reference and value texts
	designatorSize = 1.0

	// textThicknessRatio derives stroke font thickness from its size
	textThicknessRatio = 0.15
)

// EmitFootprint renders a parsed EasyEDA footprint as .kicad_mod text.
// Geometry is re-origined on the center of the pad, line and circle
// bounding box and scaled to millimeters. Non-finite entities are skipped.
// The output is deterministic for a given footprint.
func EmitFootprint(fp *footprint.Footprint) string {
	if fp == nil {
		fp = &footprint.Footprint{}
	}

	// Step 1: Filter and compute the centering origin
	finite := fp.Finite()
	bbox := finite.Bounds()
	t := sexp.NewTransform(bbox.Center(), sexp.MilsToMM)

	name := sexp.SanitizeName(fp.Name, DefaultFootprintName)
	attr := "smd"
	if finite.HasThroughHole() {
		attr = "through_hole"
	}

	// Step 2: Header
	w := sexp.NewWriter()
	w.Open("footprint", sexp.Quote(name))
	w.Line("version", strconv.Itoa(FormatVersion))
	w.Line("generator", Generator)
	w.Line("layer", sexp.Quote("F.Cu"))
	w.Line("attr", attr)

	// Step 3: Reference above and value below the bounding box
	offset := t.Length(bbox.Height())/2 + textMargin
	writeText(w, "reference", "REF**", Position{Y: -offset}, "F.SilkS", designatorSize)
	writeText(w, "value", name, Position{Y: offset}, "F.Fab", designatorSize)

	// Step 4: Graphics, pads, then free texts
	for _, l := range finite.Lines {
		w.Line("fp_line",
			sexp.XY("start", t.Point(l.X1, l.Y1)),
			sexp.XY("end", t.Point(l.X2, l.Y2)),
			stroke(t.Length(l.Width)),
			sexp.List("layer", sexp.Quote(LayerName(l.Layer))),
		)
	}

	for _, c := range finite.Circles {
		center := t.Point(c.X, c.Y)
		end := Position{X: center.X + t.Length(c.Radius), Y: center.Y}
		w.Line("fp_circle",
			sexp.XY("center", center),
			sexp.XY("end", end),
			stroke(t.Length(c.Width)),
			sexp.List("fill", "none"),
			sexp.List("layer", sexp.Quote(LayerName(c.Layer))),
		)
	}

	for _, a := range finite.Arcs {
		center := t.Point(a.X, a.Y)
		start := t.Point(a.StartX, a.StartY)
		w.Line("fp_arc",
			sexp.XY("start", start),
			sexp.XY("mid", sexp.Rotate(start, center, a.Angle/2)),
			sexp.XY("end", sexp.Rotate(start, center, a.Angle)),
			stroke(t.Length(a.Width)),
			sexp.List("layer", sexp.Quote(LayerName(a.Layer))),
		)
	}

	for _, p := range finite.Pads {
		writePad(w, t, p)
	}

	for _, text := range finite.Texts {
		writeText(w, "user", text.Text, t.Point(text.X, text.Y), LayerName(text.Layer), t.Length(text.Size))
	}

	w.Close()
	return w.String()
}

// writePad emits one pad line
func writePad(w *sexp.Writer, t sexp.Transform, p footprint.Pad) {
	pos := t.Point(p.X, p.Y)
	at := []string{sexp.Float(pos.X), sexp.Float(pos.Y)}
	if rot := sexp.NormalizeAngle(p.Rotation); rot != 0 {
		at = append(at, sexp.Float(rot))
	}

	atoms := []string{
		sexp.Quote(p.Number),
		padType(p.Type),
		padShape(p.Shape),
		sexp.List("at", at...),
		sexp.List("size", sexp.Float(t.Length(p.Width)), sexp.Float(t.Length(p.Height))),
	}

	layers := SMDPadLayers
	if p.Type == footprint.PadThroughHole {
		drill := p.Width * footprint.DrillRatio
		if p.Drill != nil {
			drill = *p.Drill
		}
		atoms = append(atoms, sexp.List("drill", sexp.Float(t.Length(drill))))
		layers = ThroughHolePadLayers
	}
	atoms = append(atoms, sexp.List("layers", quoteAll(layers)...))

	w.Line("pad", atoms...)
}

// writeText emits an fp_text block
func writeText(w *sexp.Writer, kind, text string, at Position, layer string, size float64) {
	w.Open("fp_text", kind, sexp.Quote(text), sexp.XY("at", at), sexp.List("layer", sexp.Quote(layer)))
	w.Line("effects", sexp.List("font",
		sexp.List("size", sexp.Float(size), sexp.Float(size)),
		sexp.List("thickness", sexp.Float(size*textThicknessRatio)),
	))
	w.Close()
}

func stroke(width float64) string {
	return sexp.List("stroke", sexp.List("width", sexp.Float(width)), sexp.List("type", "solid"))
}

// padType maps the pad mounting type to its KiCad keyword
func padType(t footprint.PadType) string {
	if t == footprint.PadThroughHole {
		return "thru_hole"
	}
	return "smd"
}

// padShape maps an EasyEDA pad shape to a KiCad pad shape
func padShape(shape string) string {
	switch strings.ToLower(shape) {
	case "circle", "ellipse":
		return "circle"
	case "oval":
		return "oval"
	default:
		return "rect"
	}
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = sexp.Quote(v)
	}
	return quoted
}
