// Package shape tokenizes EasyEDA shape records.
// A shape record is a single string such as "PAD~RECT~0~0~10~5~1~~1" whose
// fields are separated by '~'. Field 0 is the record tag.
package shape

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Delimiter separates the fields of a shape record
const Delimiter = "~"

// SegmentDelimiter separates the sub-records embedded in pin records
const SegmentDelimiter = "^^"

// entryKind distinguishes the two accepted shape entry forms
type entryKind int

const (
	kindRaw entryKind = iota
	kindWrapped
)

// Entry is one element of a document's shape array: either a bare string
// or an object carrying the string in its "gge" field.
type Entry struct {
	kind entryKind
	text string
}

// Raw creates an entry from a bare shape string
func Raw(s string) Entry {
	return Entry{kind: kindRaw, text: s}
}

// Wrapped creates an entry from the "gge" field of a shape object
func Wrapped(s string) Entry {
	return Entry{kind: kindWrapped, text: s}
}

// Text returns the shape string carried by the entry
func (e Entry) Text() string {
	return e.text
}

// IsWrapped reports whether the entry came from a {"gge": ...} object
func (e Entry) IsWrapped() bool {
	return e.kind == kindWrapped
}

// EntryFromJSON resolves a raw shape array element.
// It returns false for anything that is neither a string nor an object with
// a string "gge" field.
func EntryFromJSON(raw json.RawMessage) (Entry, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return Entry{}, false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Entry{}, false
		}
		return Raw(s), true

	case '{':
		var obj struct {
			GGE *string `json:"gge"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.GGE == nil {
			return Entry{}, false
		}
		return Wrapped(*obj.GGE), true
	}

	return Entry{}, false
}

// Record is a tokenized shape string
type Record []string

// Tokenize splits an entry into its fields. No field count validation is done.
func Tokenize(e Entry) Record {
	return Record(strings.Split(e.Text(), Delimiter))
}

// Tag returns field 0
func (r Record) Tag() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r)
}

// Raw rebuilds the original shape string
func (r Record) Raw() string {
	return strings.Join(r, Delimiter)
}

// String returns field i, or def when the field is missing or empty
func (r Record) String(i int, def string) string {
	if i < 0 || i >= len(r) || r[i] == "" {
		return def
	}
	return r[i]
}

// Float returns field i as a number, or def when the field is missing or not numeric
func (r Record) Float(i int, def float64) float64 {
	if i < 0 || i >= len(r) {
		return def
	}
	return ParseFloat(r[i], def)
}

// numberPrefix matches the leading numeric part of a field.
// Trailing garbage is ignored, so "12abc" reads as 12.
var numberPrefix = regexp.MustCompile(`^[-+]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)`)

// ParseFloat parses the numeric prefix of s.
// Empty, NaN and non-numeric input return def. Overflowing values and
// "Infinity" parse to an infinity, which callers filter as non-finite.
func ParseFloat(s string, def float64) float64 {
	m := numberPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return def
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return def
	}
	return v
}

// IsNumber reports whether s, ignoring surrounding whitespace, is a single number
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && numberPrefix.FindString(s) == s
}

// Point is a coordinate pair in source units
type Point struct {
	X float64 `json:"x" yaml:"x" cbor:"x"`
	Y float64 `json:"y" yaml:"y" cbor:"y"`
}

// Points decodes whitespace separated coordinate pairs.
// An odd trailing value is dropped and non-numeric values read as 0.
func Points(s string) []Point {
	values := strings.Fields(s)
	points := make([]Point, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		points = append(points, Point{
			X: ParseFloat(values[i], 0),
			Y: ParseFloat(values[i+1], 0),
		})
	}
	return points
}

// Segment returns the i-th "^^" separated segment of a raw record
func Segment(raw string, i int) (string, bool) {
	segments := strings.Split(raw, SegmentDelimiter)
	if i < 0 || i >= len(segments) {
		return "", false
	}
	return segments[i], true
}
