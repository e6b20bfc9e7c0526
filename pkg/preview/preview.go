// Package preview renders EasyEDA footprints and symbols as SVG images.
package preview

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// Canvas defaults
const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultPadding = 50
)

// Options controls the canvas size. Zero values select the defaults.
type Options struct {
	Width   int
	Height  int
	Padding int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if 2*o.Padding >= min(o.Width, o.Height) {
		o.Padding = 0
	}
	return o
}

// render runs draw against a buffered canvas and copies the finished
// document to w
func render(w io.Writer, opts Options, title string, draw func(canvas *svg.SVG)) error {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(title)
	draw(canvas)
	canvas.End()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func strokeStyle(color string, width int) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-linecap:round", color, width)
}

func fillStyle(color string) string {
	return "fill:" + color + ";stroke:none"
}

func textStyle(color string, size int, anchor string) string {
	return fmt.Sprintf("fill:%s;font-family:monospace;font-size:%dpx;text-anchor:%s", color, size, anchor)
}
