package symbol

import "math"

// Text anchors of pin labels, named after SVG text-anchor values
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Label is a pin label anchor in source units
type Label struct {
	X, Y   float64
	Anchor string
}

// Quadrant returns the pin rotation snapped to 0, 90, 180 or 270
func (p Pin) Quadrant() float64 {
	r := math.Mod(math.Round(p.Rotation/90)*90, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// End returns the free end of the pin line.
// Rotation 0 points the line left of the connection point, 90 down,
// 180 right and 270 up.
func (p Pin) End() (x, y float64) {
	switch p.Quadrant() {
	case 90:
		return p.X, p.Y + p.Length
	case 180:
		return p.X + p.Length, p.Y
	case 270:
		return p.X, p.Y - p.Length
	default:
		return p.X - p.Length, p.Y
	}
}

// Labels returns the outer label, placed beyond the free end of the pin
// line, and the inner label next to the connection point.
func (p Pin) Labels() (outer, inner Label) {
	x, y, l := p.X, p.Y, p.Length

	switch p.Quadrant() {
	case 90:
		return Label{x, y + l + 12, AnchorMiddle}, Label{x, y - 4, AnchorMiddle}
	case 180:
		return Label{x + l + 4, y + 4, AnchorStart}, Label{x - 4, y + 4, AnchorEnd}
	case 270:
		return Label{x, y - l - 4, AnchorMiddle}, Label{x, y + 12, AnchorMiddle}
	default:
		return Label{x - l - 4, y + 4, AnchorEnd}, Label{x + 4, y + 4, AnchorStart}
	}
}
