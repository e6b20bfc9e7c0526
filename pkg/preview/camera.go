package preview

import (
	"math"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

// Camera maps source coordinates onto the SVG canvas
type Camera struct {
	// Center position in source units
	CenterX float64
	CenterY float64

	// Zoom level (pixels per source unit)
	Zoom float64

	// Canvas dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera for a canvas of the given size
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         1.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts source coordinates to canvas pixels
func (c *Camera) WorldToScreen(x, y float64) (int, int) {
	sx := (x-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	sy := (y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return int(math.Round(sx)), int(math.Round(sy))
}

// Length converts a source dimension to pixels, never less than one
func (c *Camera) Length(v float64) int {
	return max(1, int(math.Round(v*c.Zoom)))
}

// Fit centers the camera on bbox and zooms so it fills the canvas
// minus padding pixels on every side. A degenerate box keeps the zoom.
func (c *Camera) Fit(bbox sexp.BoundingBox, padding int) {
	if bbox.IsEmpty() {
		return
	}

	center := bbox.Center()
	c.CenterX = center.X
	c.CenterY = center.Y

	width := bbox.Width()
	height := bbox.Height()
	if width <= 0 || height <= 0 {
		return
	}

	zoomX := float64(c.ScreenWidth-2*padding) / width
	zoomY := float64(c.ScreenHeight-2*padding) / height

	// Use the smaller zoom to ensure everything fits
	c.Zoom = math.Min(zoomX, zoomY)
	if c.Zoom <= 0 {
		c.Zoom = 1.0
	}
}
