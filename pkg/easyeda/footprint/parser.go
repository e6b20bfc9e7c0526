package footprint

import (
	"strings"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
)

// decoder adds the entity described by one record to the footprint
type decoder func(fp *Footprint, rec shape.Record)

var decoders = map[string]decoder{
	"PAD":    decodePad,
	"TRACK":  decodeTrack,
	"CIRCLE": decodeCircle,
	"ARC":    decodeArc,
	"TEXT":   decodeText,
}

// Parse decodes a footprint document. raw may be JSON text, bytes, a decoded
// JSON value or an *easyeda.Document. Parse never fails: problems are
// reported as diagnostics and the affected records are skipped.
func Parse(raw any) (*Footprint, easyeda.Diagnostics) {
	doc, diags := easyeda.Load(raw)
	fp := &Footprint{Name: doc.Head.Param("package")}

	entries, indexes := doc.Entries()
	for i, entry := range entries {
		rec := shape.Tokenize(entry)
		decode, ok := decoders[rec.Tag()]
		if !ok {
			diags.Add(indexes[i], rec.Tag(), "unsupported footprint shape ignored")
			continue
		}
		decode(fp, rec)
	}

	return fp, diags
}

// PAD~shape~x~y~width~height~layer~net~number~...~rotation
func decodePad(fp *Footprint, rec shape.Record) {
	pad := Pad{
		Number:   rec.String(8, ""),
		Type:     PadSMD,
		Shape:    strings.ToLower(rec.String(1, "RECT")),
		X:        rec.Float(2, 0),
		Y:        rec.Float(3, 0),
		Width:    rec.Float(4, 0),
		Height:   rec.Float(5, 0),
		Rotation: rec.Float(11, 0),
		Layer:    rec.String(6, DefaultLayer),
	}

	if pad.Layer == ThroughHoleLayer {
		pad.Type = PadThroughHole
		drill := pad.Width * DrillRatio
		pad.Drill = &drill
	}

	fp.Pads = append(fp.Pads, pad)
}

// TRACK~width~layer~net~x1 y1 x2 y2 ...~id
//
// Coordinates are packed into field 4. Some exports put them in field 3
// instead, and the oldest layout stores x1~y1~x2~y2 in fields 2 to 5.
func decodeTrack(fp *Footprint, rec shape.Record) {
	width := rec.Float(1, 0)
	layer := rec.String(2, DefaultLayer)

	points := shape.Points(rec.String(4, ""))
	if len(points) < 2 {
		points = shape.Points(rec.String(3, ""))
	}

	if len(points) < 2 {
		if legacy, ok := legacyTrack(rec); ok {
			points = legacy
		}
	}

	if len(points) < 2 {
		fp.Lines = append(fp.Lines, Line{Width: width, Layer: layer})
		return
	}

	for i := 0; i+1 < len(points); i++ {
		fp.Lines = append(fp.Lines, Line{
			X1:    points[i].X,
			Y1:    points[i].Y,
			X2:    points[i+1].X,
			Y2:    points[i+1].Y,
			Width: width,
			Layer: layer,
		})
	}
}

// legacyTrack reads x1~y1~x2~y2 from fields 2 to 5 when all four are numbers
func legacyTrack(rec shape.Record) ([]shape.Point, bool) {
	if rec.Len() < 6 {
		return nil, false
	}
	for i := 2; i <= 5; i++ {
		if !shape.IsNumber(rec[i]) {
			return nil, false
		}
	}
	return []shape.Point{
		{X: rec.Float(2, 0), Y: rec.Float(3, 0)},
		{X: rec.Float(4, 0), Y: rec.Float(5, 0)},
	}, true
}

// CIRCLE~x~y~radius~width~layer
func decodeCircle(fp *Footprint, rec shape.Record) {
	fp.Circles = append(fp.Circles, Circle{
		X:      rec.Float(1, 0),
		Y:      rec.Float(2, 0),
		Radius: rec.Float(3, 0),
		Width:  rec.Float(4, 0),
		Layer:  rec.String(5, DefaultLayer),
	})
}

// ARC~width~x~y~startX~startY~angle~layer
func decodeArc(fp *Footprint, rec shape.Record) {
	fp.Arcs = append(fp.Arcs, Arc{
		X:      rec.Float(2, 0),
		Y:      rec.Float(3, 0),
		StartX: rec.Float(4, 0),
		StartY: rec.Float(5, 0),
		Angle:  rec.Float(6, 0),
		Width:  rec.Float(1, 0),
		Layer:  rec.String(7, DefaultLayer),
	})
}

// TEXT~text~x~y~~size~layer
func decodeText(fp *Footprint, rec shape.Record) {
	fp.Texts = append(fp.Texts, Text{
		Text:  rec.String(1, ""),
		X:     rec.Float(2, 0),
		Y:     rec.Float(3, 0),
		Size:  rec.Float(5, DefaultTextSize),
		Layer: rec.String(6, DefaultLayer),
	})
}
