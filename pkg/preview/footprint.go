package preview

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// arcSegments is the number of straight segments an arc is drawn with
const arcSegments = 16

// Footprint draws fp onto an SVG canvas in the KiCad Classic palette.
// Non-finite entities are skipped.
func Footprint(w io.Writer, fp *footprint.Footprint, opts Options) error {
	if fp == nil {
		fp = &footprint.Footprint{}
	}
	opts = opts.withDefaults()

	finite := fp.Finite()
	cam := NewCamera(opts.Width, opts.Height)
	cam.Fit(footprintBounds(finite), opts.Padding)

	return render(w, opts, fp.Name, func(canvas *svg.SVG) {
		canvas.Rect(0, 0, opts.Width, opts.Height, fillStyle(ColorBackground))

		for _, l := range finite.Lines {
			x1, y1 := cam.WorldToScreen(l.X1, l.Y1)
			x2, y2 := cam.WorldToScreen(l.X2, l.Y2)
			canvas.Line(x1, y1, x2, y2, strokeStyle(layerColor(l.Layer), cam.Length(l.Width)))
		}

		for _, c := range finite.Circles {
			cx, cy := cam.WorldToScreen(c.X, c.Y)
			canvas.Circle(cx, cy, cam.Length(c.Radius), strokeStyle(layerColor(c.Layer), cam.Length(c.Width)))
		}

		for _, a := range finite.Arcs {
			xs, ys := arcPoints(cam, a)
			canvas.Polyline(xs, ys, strokeStyle(layerColor(a.Layer), cam.Length(a.Width)))
		}

		for _, p := range finite.Pads {
			drawPad(canvas, cam, p)
		}

		for _, t := range finite.Texts {
			x, y := cam.WorldToScreen(t.X, t.Y)
			canvas.Text(x, y, t.Text, textStyle(layerColor(t.Layer), cam.Length(t.Size), "middle"))
		}
	})
}

// footprintBounds extends the footprint bounds with arc extremes
func footprintBounds(fp *footprint.Footprint) sexp.BoundingBox {
	bbox := fp.Bounds()
	if len(fp.Pads)+len(fp.Lines)+len(fp.Circles) == 0 {
		bbox = sexp.NewBoundingBox()
	}
	arcs := sexp.NewBoundingBox()
	for _, a := range fp.Arcs {
		r := math.Hypot(a.StartX-a.X, a.StartY-a.Y)
		arcs.Expand(sexp.Position{X: a.X - r, Y: a.Y - r})
		arcs.Expand(sexp.Position{X: a.X + r, Y: a.Y + r})
	}
	bbox.ExpandBox(arcs)
	return bbox
}

// drawPad draws the copper of one pad and its drill hole
func drawPad(canvas *svg.SVG, cam *Camera, p footprint.Pad) {
	cx, cy := cam.WorldToScreen(p.X, p.Y)
	w := cam.Length(p.Width)
	h := cam.Length(p.Height)
	style := fillStyle(ColorPad)

	rotated := p.Rotation != 0
	if rotated {
		canvas.Gtransform(fmt.Sprintf("rotate(%s %d %d)", sexp.Float(p.Rotation), cx, cy))
	}

	switch strings.ToLower(p.Shape) {
	case "circle", "ellipse":
		canvas.Ellipse(cx, cy, w/2, h/2, style)
	case "oval":
		r := min(w, h) / 2
		canvas.Roundrect(cx-w/2, cy-h/2, w, h, r, r, style)
	default:
		canvas.Rect(cx-w/2, cy-h/2, w, h, style)
	}

	if rotated {
		canvas.Gend()
	}

	if p.Type == footprint.PadThroughHole {
		drill := p.Width * footprint.DrillRatio
		if p.Drill != nil {
			drill = *p.Drill
		}
		canvas.Circle(cx, cy, cam.Length(drill/2), fillStyle(ColorBackground))
	}
}

// arcPoints samples an arc into canvas coordinates
func arcPoints(cam *Camera, a footprint.Arc) ([]int, []int) {
	center := sexp.Position{X: a.X, Y: a.Y}
	start := sexp.Position{X: a.StartX, Y: a.StartY}

	xs := make([]int, 0, arcSegments+1)
	ys := make([]int, 0, arcSegments+1)
	for i := 0; i <= arcSegments; i++ {
		p := sexp.Rotate(start, center, a.Angle*float64(i)/arcSegments)
		x, y := cam.WorldToScreen(p.X, p.Y)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func layerColor(id string) string {
	return LayerColor(pcb.LayerName(id))
}
