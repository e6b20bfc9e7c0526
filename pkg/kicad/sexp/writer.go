package sexp

import (
	"fmt"
	"strings"
)

// Writer builds indented KiCad S-expression text
type Writer struct {
	b      strings.Builder
	depth  int
	indent string
}

// NewWriter creates a writer indenting nested lists by two spaces
func NewWriter() *Writer {
	return &Writer{indent: "  "}
}

// Open starts a multi-line list: "(name atoms..." followed by a newline
func (w *Writer) Open(name string, atoms ...string) {
	line := List(name, atoms...)
	w.writeIndent()
	w.b.WriteString(strings.TrimSuffix(line, ")"))
	w.b.WriteByte('\n')
	w.depth++
}

// Line writes a complete single-line list
func (w *Writer) Line(name string, atoms ...string) {
	w.writeIndent()
	w.b.WriteString(List(name, atoms...))
	w.b.WriteByte('\n')
}

// Close ends the innermost list opened with Open
func (w *Writer) Close() {
	if w.depth == 0 {
		return
	}
	w.depth--
	w.writeIndent()
	w.b.WriteString(")\n")
}

// String closes any open lists and returns the text
func (w *Writer) String() string {
	for w.depth > 0 {
		w.Close()
	}
	return w.b.String()
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString(w.indent)
	}
}

// List formats "(name atoms...)" on one line
func List(name string, atoms ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, a := range atoms {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	b.WriteByte(')')
	return b.String()
}

// XY formats "(name X Y)"
func XY(name string, p Position) string {
	return List(name, Float(p.X), Float(p.Y))
}

// Float formats a number with exactly four decimals.
// Negative zero is written as 0.0000.
func Float(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

// Quote formats a KiCad string literal
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
