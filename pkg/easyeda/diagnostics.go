package easyeda

import (
	"fmt"
	"io"
	"log"
)

// DocumentIndex marks a diagnostic that concerns the whole document
const DocumentIndex = -1

// Diagnostic describes a problem found while parsing a document.
// Diagnostics never abort a parse.
type Diagnostic struct {
	Index   int    // Position in the shape array, or DocumentIndex
	Tag     string // Record tag, if known
	Message string
}

func (d Diagnostic) String() string {
	if d.Index == DocumentIndex {
		return d.Message
	}
	if d.Tag == "" {
		return fmt.Sprintf("shape %d: %s", d.Index, d.Message)
	}
	return fmt.Sprintf("shape %d (%s): %s", d.Index, d.Tag, d.Message)
}

// Diagnostics is the list of problems found during one parse call
type Diagnostics []Diagnostic

// Add records a diagnostic and logs it
func (d *Diagnostics) Add(index int, tag, format string, args ...any) {
	diag := Diagnostic{
		Index:   index,
		Tag:     tag,
		Message: fmt.Sprintf(format, args...),
	}
	*d = append(*d, diag)
	logger.Printf("[WARN] %s", diag)
}

// Append adds all diagnostics of other without logging them again
func (d *Diagnostics) Append(other Diagnostics) {
	*d = append(*d, other...)
}

var logger = log.New(io.Discard, "easyeda: ", 0)

// SetLogger sets the logger used for parse diagnostics.
// Passing nil discards diagnostics output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// Logger returns the logger used for parse diagnostics
func Logger() *log.Logger {
	return logger
}
