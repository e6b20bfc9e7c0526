package preview

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/shape"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
)

func TestCameraFit(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Fit(sexp.BoundingBox{
		Min: sexp.Position{X: 0, Y: 0},
		Max: sexp.Position{X: 100, Y: 50},
	}, 50)

	assert.Equal(t, 7.0, cam.Zoom)
	assert.Equal(t, 50.0, cam.CenterX)
	assert.Equal(t, 25.0, cam.CenterY)

	x, y := cam.WorldToScreen(0, 0)
	assert.Equal(t, 50, x)
	assert.Equal(t, 125, y)

	x, y = cam.WorldToScreen(50, 25)
	assert.Equal(t, 400, x)
	assert.Equal(t, 300, y)
}

func TestCameraFitDegenerate(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Fit(sexp.NewBoundingBox(), 50)
	assert.Equal(t, 1.0, cam.Zoom)
	assert.Equal(t, 0.0, cam.CenterX)

	cam.Fit(sexp.BoundingBox{
		Min: sexp.Position{X: 10, Y: 10},
		Max: sexp.Position{X: 10, Y: 30},
	}, 50)
	assert.Equal(t, 1.0, cam.Zoom)
	assert.Equal(t, 10.0, cam.CenterX)
	assert.Equal(t, 20.0, cam.CenterY)
}

func TestCameraLength(t *testing.T) {
	cam := &Camera{Zoom: 0.5}
	assert.Equal(t, 5, cam.Length(10))
	assert.Equal(t, 1, cam.Length(0))
	assert.Equal(t, 1, cam.Length(0.4))
}

func TestOptionsDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"zero", Options{}, Options{Width: 800, Height: 600, Padding: 50}},
		{"custom", Options{Width: 400, Height: 300, Padding: 10}, Options{Width: 400, Height: 300, Padding: 10}},
		{"padding too large", Options{Width: 60, Height: 200}, Options{Width: 60, Height: 200, Padding: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}

func TestLayerColor(t *testing.T) {
	assert.Equal(t, "#c83434", LayerColor("F.Cu"))
	assert.Equal(t, "#f2eda1", LayerColor("F.SilkS"))
	assert.Equal(t, ColorUnknown, LayerColor("In7.Cu"))
}

func TestFootprintPads(t *testing.T) {
	drill := 20.0
	fp := &footprint.Footprint{
		Name: "TEST",
		Pads: []footprint.Pad{
			{Number: "1", Type: footprint.PadSMD, Shape: "rect", Width: 100, Height: 50, Layer: "1"},
			{Number: "2", Type: footprint.PadThroughHole, Shape: "ellipse", Width: 10, Height: 10, Drill: &drill, Layer: "11"},
			{Number: "3", Type: footprint.PadSMD, Shape: "oval", Width: 10, Height: 4, Rotation: 45, Layer: "1"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Footprint(&buf, fp, Options{}))
	out := buf.String()

	// Pad 1 spans the whole fitted area at zoom 7
	assert.Contains(t, out, `width="700"`)
	assert.Contains(t, out, `height="350"`)
	assert.Contains(t, out, "fill:"+ColorPad)
	// Drill of pad 2 is 20 units wide
	assert.Contains(t, out, `r="70"`)
	assert.Contains(t, out, "rotate(45.0000 400 300)")
	assert.Contains(t, out, "<title>TEST</title>")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestFootprintGraphics(t *testing.T) {
	fp := &footprint.Footprint{
		Lines:   []footprint.Line{{X1: 0, Y1: 0, X2: 100, Y2: 0, Width: 1, Layer: "3"}},
		Circles: []footprint.Circle{{X: 50, Y: 0, Radius: 10, Width: 1, Layer: "13"}},
		Arcs:    []footprint.Arc{{X: 50, Y: 0, StartX: 60, StartY: 0, Angle: 90, Width: 1, Layer: "4"}},
		Texts:   []footprint.Text{{Text: "<R&D>", X: 50, Y: 0, Size: 8, Layer: "3"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Footprint(&buf, fp, Options{}))
	out := buf.String()

	assert.Contains(t, out, "stroke:"+LayerColor("F.SilkS"))
	assert.Contains(t, out, "stroke:"+LayerColor("F.Fab"))
	assert.Contains(t, out, "stroke:"+LayerColor("B.SilkS"))
	assert.Equal(t, 1, strings.Count(out, "<polyline"))
	assert.Contains(t, out, "&lt;R&amp;D&gt;")
}

func TestFootprintSkipsNonFinite(t *testing.T) {
	fp := &footprint.Footprint{
		Pads:  []footprint.Pad{{Number: "1", X: math.NaN(), Width: 10, Height: 10}},
		Lines: []footprint.Line{{X1: 0, Y1: 0, X2: math.Inf(1), Y2: 0, Width: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, Footprint(&buf, fp, Options{}))
	assert.NotContains(t, buf.String(), "<line")
	assert.NotContains(t, buf.String(), "NaN")
	// Only the background remains
	assert.Equal(t, 1, strings.Count(buf.String(), "<rect"))
}

func TestFootprintNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Footprint(&buf, nil, Options{Width: 100, Height: 100}))
	assert.Contains(t, buf.String(), `width="100"`)
}

func TestSymbolPins(t *testing.T) {
	sym := &symbol.Symbol{
		Name: "NE555",
		Pins: []symbol.Pin{
			{Number: "1", Name: "GND", X: 0, Y: 0, Rotation: 0, Length: 10},
			{Number: "8", Name: "VCC", X: 40, Y: 0, Rotation: 180, Length: 10},
		},
		Rectangles: []symbol.Rectangle{{X: 0, Y: -20, Width: 40, Height: 40}},
		Polylines:  []symbol.Polyline{{Points: []shape.Point{{X: 5, Y: 5}, {X: 35, Y: 5}}, StrokeWidth: 1}},
		Circles:    []symbol.Circle{{X: 20, Y: 0, Radius: 3}},
		Texts:      []symbol.Text{{Text: "555", X: 10, Y: 10, Size: symbol.TextSize}},
	}

	var buf bytes.Buffer
	require.NoError(t, Symbol(&buf, sym, Options{}))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "<line"))
	// Two number labels per pin plus the free text
	assert.Equal(t, 5, strings.Count(out, "<text"))
	assert.Contains(t, out, "text-anchor:end")
	assert.Contains(t, out, "text-anchor:start")
	assert.Contains(t, out, "stroke:"+ColorSymbol)
	assert.Equal(t, 1, strings.Count(out, "<polyline"))
	assert.Equal(t, 1, strings.Count(out, "<circle"))
	assert.Contains(t, out, "<title>NE555</title>")
}

func TestSymbolEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Symbol(&buf, &symbol.Symbol{}, Options{}))
	out := buf.String()

	assert.Contains(t, out, "<svg")
	assert.Equal(t, 1, strings.Count(out, "<rect"))
	assert.NotContains(t, out, "<line")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteError(t *testing.T) {
	err := Footprint(failingWriter{}, &footprint.Footprint{}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write svg")
	assert.Contains(t, err.Error(), "disk full")

	err = Symbol(failingWriter{}, &symbol.Symbol{}, Options{})
	require.Error(t, err)
}
