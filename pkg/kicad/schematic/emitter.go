package schematic

import (
	"math"
	"strconv"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

const (
	// FormatVersion is the .kicad_sym format written by EmitSymbol (KiCad 6)
	FormatVersion = 20211014

	// Generator is written into the generator field of emitted files
	Generator = "easyeda2kicad"

	// DefaultSymbolName replaces names that sanitize to nothing
	DefaultSymbolName = "EasyEDA_Symbol"

	// DefaultReference is the reference designator prefix of emitted symbols
	DefaultReference = "U"

	// propertyMargin is the gap in mm between the bounding box and the reference/value fields
	propertyMargin = 1.0

	// propertySize is the font size in mm of fields and pin texts
	propertySize = 1.27

	// pinLabelSize is the font size of pin labels in source units
	pinLabelSize = 9.6
)

// Fields holds optional symbol properties
type Fields struct {
	Footprint string // library:name of the matching footprint
	Datasheet string
	LCSC      string // LCSC part number, emitted as "LCSC Part" when set
}

// EmitSymbol renders a parsed EasyEDA symbol as a .kicad_sym library
// containing one symbol.
func EmitSymbol(sym *symbol.Symbol) string {
	return EmitSymbolFields(sym, Fields{})
}

// EmitSymbolFields is EmitSymbol with footprint, datasheet and part fields.
// Geometry is re-origined on the center of the symbol bounding box, scaled
// to millimeters and flipped to KiCad's Y-up axis. Non-finite entities are
// skipped. The output is deterministic for a given symbol and fields.
func EmitSymbolFields(sym *symbol.Symbol, fields Fields) string {
	if sym == nil {
		sym = &symbol.Symbol{}
	}

	finite := sym.Finite()
	bbox := finite.Bounds()
	t := sexp.Transform{Origin: bbox.Center(), Scale: sexp.MilsToMM, FlipY: true}

	name := sexp.SanitizeName(sym.Name, DefaultSymbolName)

	w := sexp.NewWriter()
	w.Open("kicad_symbol_lib", sexp.List("version", strconv.Itoa(FormatVersion)), sexp.List("generator", Generator))
	w.Open("symbol", sexp.Quote(name), sexp.List("in_bom", "yes"), sexp.List("on_board", "yes"))

	// Reference above and value below the bounding box
	offset := t.Length(bbox.Height())/2 + propertyMargin
	writeProperty(w, 0, "Reference", DefaultReference, Position{Y: offset}, false)
	writeProperty(w, 1, "Value", name, Position{Y: -offset}, false)
	writeProperty(w, 2, "Footprint", fields.Footprint, Position{}, true)
	writeProperty(w, 3, "Datasheet", fields.Datasheet, Position{}, true)
	if fields.LCSC != "" {
		writeProperty(w, 4, "LCSC Part", fields.LCSC, Position{}, true)
	}

	// Unit 0 style 1 holds graphics shared by all units
	w.Open("symbol", sexp.Quote(name+"_0_1"))

	for _, pl := range finite.Polylines {
		points := make([]string, len(pl.Points))
		for i, p := range pl.Points {
			points[i] = sexp.XY("xy", t.Point(p.X, p.Y))
		}
		w.Open("polyline")
		w.Line("pts", points...)
		w.Line("stroke", sexp.List("width", sexp.Float(t.Length(pl.StrokeWidth))), sexp.List("type", "default"))
		w.Line("fill", sexp.List("type", "none"))
		w.Close()
	}

	for _, c := range finite.Circles {
		w.Line("circle",
			sexp.XY("center", t.Point(c.X, c.Y)),
			sexp.List("radius", sexp.Float(t.Length(c.Radius))),
			outlineStroke(),
			sexp.List("fill", sexp.List("type", "none")),
		)
	}

	for _, r := range finite.Rectangles {
		w.Line("rectangle",
			sexp.XY("start", t.Point(r.X, r.Y)),
			sexp.XY("end", t.Point(r.X+r.Width, r.Y+r.Height)),
			outlineStroke(),
			sexp.List("fill", sexp.List("type", "none")),
		)
	}

	for _, text := range finite.Texts {
		writeText(w, text.Text, t.Point(text.X, text.Y), t.Length(text.Size), "")
	}

	for _, pin := range finite.Pins {
		outer, inner := pin.Labels()
		for _, label := range []symbol.Label{outer, inner} {
			writeText(w, pin.Number, t.Point(label.X, label.Y), t.Length(pinLabelSize), justifications[label.Anchor])
		}
	}

	w.Close()

	// Unit 1 style 1 holds the pins
	w.Open("symbol", sexp.Quote(name+"_1_1"))
	for _, pin := range finite.Pins {
		writePin(w, t, pin)
	}
	w.Close()

	w.Close()
	w.Close()
	return w.String()
}

// writeProperty emits a symbol property block
func writeProperty(w *sexp.Writer, id int, key, value string, at Position, hide bool) {
	w.Open("property", sexp.Quote(key), sexp.Quote(value),
		sexp.List("id", strconv.Itoa(id)),
		sexp.List("at", sexp.Float(at.X), sexp.Float(at.Y), "0"),
	)
	effects := []string{fontList(propertySize)}
	if hide {
		effects = append(effects, "hide")
	}
	w.Line("effects", effects...)
	w.Close()
}

// writeText emits a text graphic, justified left or right when justify is set
func writeText(w *sexp.Writer, text string, at Position, size float64, justify string) {
	effects := []string{fontList(size)}
	if justify != "" {
		effects = append(effects, sexp.List("justify", justify))
	}
	w.Line("text", sexp.Quote(text),
		sexp.List("at", sexp.Float(at.X), sexp.Float(at.Y), "0"),
		sexp.List("effects", effects...),
	)
}

// writePin emits one passive pin
func writePin(w *sexp.Writer, t sexp.Transform, pin symbol.Pin) {
	at := t.Point(pin.X, pin.Y)
	angle := math.Mod(pin.Quadrant()+180, 360)

	w.Open("pin", "passive", "line",
		sexp.List("at", sexp.Float(at.X), sexp.Float(at.Y), strconv.Itoa(int(angle))),
		sexp.List("length", sexp.Float(t.Length(pin.Length))),
	)
	w.Line("name", sexp.Quote(pin.Name), sexp.List("effects", fontList(propertySize)))
	w.Line("number", sexp.Quote(pin.Number), sexp.List("effects", fontList(propertySize)))
	w.Close()
}

// justifications maps label anchors to KiCad text justification
var justifications = map[string]string{
	symbol.AnchorStart: "left",
	symbol.AnchorEnd:   "right",
}

func fontList(size float64) string {
	return sexp.List("font", sexp.List("size", sexp.Float(size), sexp.Float(size)))
}

func outlineStroke() string {
	return sexp.List("stroke", sexp.List("width", "0"), sexp.List("type", "default"))
}
