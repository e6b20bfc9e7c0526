package preview

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// symbolStrokeWidth is the outline width of rectangles, circles and pins in source units
const symbolStrokeWidth = 2.0

// Symbol draws sym onto an SVG canvas. Pins are drawn as lines with their
// number at both ends. Non-finite entities are skipped.
func Symbol(w io.Writer, sym *symbol.Symbol, opts Options) error {
	if sym == nil {
		sym = &symbol.Symbol{}
	}
	opts = opts.withDefaults()

	finite := sym.Finite()
	cam := NewCamera(opts.Width, opts.Height)
	cam.Fit(symbolBounds(finite), opts.Padding)

	outline := strokeStyle(ColorSymbol, cam.Length(symbolStrokeWidth))

	return render(w, opts, sym.Name, func(canvas *svg.SVG) {
		canvas.Rect(0, 0, opts.Width, opts.Height, fillStyle(ColorPaper))

		for _, pl := range finite.Polylines {
			xs := make([]int, len(pl.Points))
			ys := make([]int, len(pl.Points))
			for i, pt := range pl.Points {
				xs[i], ys[i] = cam.WorldToScreen(pt.X, pt.Y)
			}
			canvas.Polyline(xs, ys, strokeStyle(ColorSymbol, cam.Length(pl.StrokeWidth)))
		}

		for _, c := range finite.Circles {
			cx, cy := cam.WorldToScreen(c.X, c.Y)
			canvas.Circle(cx, cy, cam.Length(c.Radius), outline)
		}

		for _, r := range finite.Rectangles {
			x, y := cam.WorldToScreen(r.X, r.Y)
			canvas.Roundrect(x, y, cam.Length(r.Width), cam.Length(r.Height),
				int(r.RX*cam.Zoom), int(r.RY*cam.Zoom), outline)
		}

		for _, t := range finite.Texts {
			x, y := cam.WorldToScreen(t.X, t.Y)
			canvas.Text(x, y, t.Text, textStyle(ColorSymbol, cam.Length(t.Size), symbol.AnchorStart))
		}

		labelSize := cam.Length(symbol.TextSize * 0.8)
		for _, pin := range finite.Pins {
			x1, y1 := cam.WorldToScreen(pin.X, pin.Y)
			x2, y2 := cam.WorldToScreen(pin.End())
			canvas.Line(x1, y1, x2, y2, outline)

			outer, inner := pin.Labels()
			for _, label := range []symbol.Label{outer, inner} {
				lx, ly := cam.WorldToScreen(label.X, label.Y)
				canvas.Text(lx, ly, pin.Number, textStyle(ColorSymbol, labelSize, label.Anchor))
			}
		}
	})
}

// symbolBounds extends the symbol bounds with the free ends of pins
func symbolBounds(sym *symbol.Symbol) sexp.BoundingBox {
	bbox := sym.Bounds()
	for _, pin := range sym.Pins {
		x, y := pin.End()
		bbox.Expand(sexp.Position{X: x, Y: y})
	}
	return bbox
}
