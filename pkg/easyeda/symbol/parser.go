package symbol

import (
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
)

// decoder adds the entity described by one record to the symbol
type decoder func(sym *Symbol, rec shape.Record)

var decoders = map[string]decoder{
	"P":      decodePin,
	"PL":     decodePolyline,
	"C":      decodeCircle,
	"CIRCLE": decodeCircle,
	"E":      decodeEllipse,
	"R":      decodeRect,
	"T":      decodeText,
	"TEXT":   decodeText,
}

// ignored lists tags that are recognized but carry nothing the model keeps
var ignored = map[string]bool{
	"A": true,
}

// Parse decodes a symbol document. raw may be JSON text, bytes, a decoded
// JSON value or an *easyeda.Document. Parse never fails: problems are
// reported as diagnostics and the affected records are skipped.
func Parse(raw any) (*Symbol, easyeda.Diagnostics) {
	doc, diags := easyeda.Load(raw)

	name := doc.Head.Param("name")
	if name == "" {
		name = doc.Head.Param("package")
	}
	sym := &Symbol{Name: name}

	entries, indexes := doc.Entries()
	for i, entry := range entries {
		rec := shape.Tokenize(entry)
		if ignored[rec.Tag()] {
			continue
		}
		decode, ok := decoders[rec.Tag()]
		if !ok {
			diags.Add(indexes[i], rec.Tag(), "unsupported symbol shape ignored")
			continue
		}
		decode(sym, rec)
	}

	return sym, diags
}

// P~show~type~number~x~y~rotation~id~...^^dot^^path~color^^name...
func decodePin(sym *Symbol, rec shape.Record) {
	raw := rec.Raw()
	pin := Pin{
		Number:   rec.String(3, ""),
		X:        rec.Float(4, 0),
		Y:        rec.Float(5, 0),
		Rotation: rec.Float(6, 0),
		Length:   shape.PinPathLength(raw),
	}

	pin.Name = shape.PinName(raw)
	if pin.Name == "" {
		pin.Name = pin.Number
	}

	sym.Pins = append(sym.Pins, pin)
}

// PL~x1 y1 x2 y2 ...~color~strokeWidth~...
func decodePolyline(sym *Symbol, rec shape.Record) {
	points := shape.Points(rec.String(1, ""))
	if len(points) == 0 {
		return
	}
	sym.Polylines = append(sym.Polylines, Polyline{
		Points:      points,
		StrokeWidth: rec.Float(3, DefaultStrokeWidth),
	})
}

// C~x~y~radius~...
func decodeCircle(sym *Symbol, rec shape.Record) {
	sym.Circles = append(sym.Circles, Circle{
		X:      rec.Float(1, 0),
		Y:      rec.Float(2, 0),
		Radius: rec.Float(3, 0),
	})
}

// E~x~y~rx~ry~...
func decodeEllipse(sym *Symbol, rec shape.Record) {
	sym.Circles = append(sym.Circles, Circle{
		X:      rec.Float(1, 0),
		Y:      rec.Float(2, 0),
		Radius: (rec.Float(3, 0) + rec.Float(4, 0)) / 2,
	})
}

// R~x~y~rx~ry~width~height~... or R~x~y~width~height~...
//
// Both layouts occur. Fields 3 and 4 are corner radii when field 3 is
// empty or when fields 5 and 6 are both larger than them.
func decodeRect(sym *Symbol, rec shape.Record) {
	v3 := rec.Float(3, 0)
	v4 := rec.Float(4, 0)
	v5 := rec.Float(5, 0)
	v6 := rec.Float(6, 0)

	r := Rectangle{X: rec.Float(1, 0), Y: rec.Float(2, 0)}
	if rec.String(3, "") == "" || (v5 > v3 && v6 > v4) {
		r.RX, r.RY = v3, v4
		r.Width, r.Height = v5, v6
	} else {
		r.Width, r.Height = v3, v4
	}

	if r.Width > 0 && r.Height > 0 {
		sym.Rectangles = append(sym.Rectangles, r)
	}
}

// T~x~y~rotation~text~...
func decodeText(sym *Symbol, rec shape.Record) {
	sym.Texts = append(sym.Texts, Text{
		Text: rec.String(4, ""),
		X:    rec.Float(1, 0),
		Y:    rec.Float(2, 0),
		Size: TextSize,
	})
}
