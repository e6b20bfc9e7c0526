package shape

import (
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DefaultPinLength is used when a pin record carries no usable path
const DefaultPinLength = 10.0

// Pin record segments, counted in "^^" separated parts
const (
	pinSegmentPath = 2
	pinSegmentName = 3
	pinNameField   = 4
)

// PathLexer tokenizes SVG path data as found in pin records,
// e.g. "M 360 300 h -10" or "M360,300v10".
var PathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Command", Pattern: `[A-Za-z]`},
	{Name: "Separator", Pattern: `[\s,]+`},
})

// Path is a parsed SVG path
type Path struct {
	Commands []*PathCommand `@@*`
}

// PathCommand is one path command with its numeric arguments
type PathCommand struct {
	Name string    `@Command`
	Args []float64 `@Number*`
}

var pathParser = participle.MustBuild[Path](
	participle.Lexer(PathLexer),
	participle.Elide("Separator"),
)

// ParsePath parses SVG path data
func ParsePath(data string) (*Path, error) {
	return pathParser.ParseString("", data)
}

// PinPathLength returns the pin length encoded in a raw pin record.
// The path segment is the third "^^" part; the length is the absolute value
// of the first relative h or v command. Anything unusable yields DefaultPinLength.
func PinPathLength(raw string) float64 {
	segment, ok := Segment(raw, pinSegmentPath)
	if !ok {
		return DefaultPinLength
	}

	// The path is followed by its stroke color, e.g. "M 0 0 h -10~#880000"
	if i := strings.Index(segment, Delimiter); i >= 0 {
		segment = segment[:i]
	}

	path, err := ParsePath(segment)
	if err != nil {
		return DefaultPinLength
	}

	for _, cmd := range path.Commands {
		if (cmd.Name == "h" || cmd.Name == "v") && len(cmd.Args) > 0 {
			length := math.Abs(cmd.Args[0])
			if math.IsNaN(length) || math.IsInf(length, 0) {
				return DefaultPinLength
			}
			return length
		}
	}

	return DefaultPinLength
}

// PinName returns the pin name text carried by a raw pin record,
// or "" when the record has no name segment.
func PinName(raw string) string {
	segment, ok := Segment(raw, pinSegmentName)
	if !ok {
		return ""
	}
	return Record(strings.Split(segment, Delimiter)).String(pinNameField, "")
}
