package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp/kicadsexp"
)

// S-expression navigation helpers

// FindNode searches for a child list with the given key (first symbol)
// Example: FindNode(sexp, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			return item, true
		}
	}

	return nil, false
}

// FindAllNodes finds all child lists with the given key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp

	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}

	return results
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((layers "F.Cu" "B.Cu")) returns ["F.Cu", "B.Cu"]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := SexpToSlice(s)
	if len(items) <= 1 {
		return []kicadsexp.Sexp{}
	}
	return items[1:]
}

// SexpToSlice converts an s-expression list to a Go slice
func SexpToSlice(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if s == nil || s.IsLeaf() {
		return nil
	}

	if list, ok := s.(*kicadsexp.List); ok {
		return list.Elements()
	}

	var items []kicadsexp.Sexp
	for s != nil && !s.IsLeaf() && s.LeafCount() > 0 {
		items = append(items, s.Head())
		s = s.Tail()
	}
	return items
}

// Typed value extraction helpers

// GetString extracts an atom at the given index in a list
// Index 0 is the key, 1 is first value, etc.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s == nil || s.IsLeaf() {
		return "", fmt.Errorf("expected list, got leaf")
	}

	items := SexpToSlice(s)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	if sym, ok := items[index].(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at index %d, got %T", index, items[index])
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}

	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil node")
	}
	if s.IsLeaf() {
		return s.String(), nil
	}

	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at head of list")
}

// HasSymbol checks if a list contains a specific bare symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range SexpToSlice(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// Domain-specific extraction helpers

// GetPosition extracts a PositionAngle from an (at X Y [angle]) node.
// Coordinates are millimeters and the angle is in degrees.
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	key, err := GetString(s, 0)
	if err != nil {
		return PositionAngle{}, err
	}
	if key != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	pos, err := GetPositionXY(s)
	if err != nil {
		return PositionAngle{}, err
	}

	result := PositionAngle{Position: pos}

	// Angle is optional
	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = Angle(angle)
	}

	return result, nil
}

// GetPositionXY extracts X,Y coordinates from (keyword X Y)
// Used for (start X Y), (end X Y), (center X Y), (xy X Y), etc.
func GetPositionXY(s kicadsexp.Sexp) (Position, error) {
	x, err := GetFloat(s, 1)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse X: %w", err)
	}

	y, err := GetFloat(s, 2)
	if err != nil {
		return Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}

	return Position{X: x, Y: y}, nil
}

// GetPoints extracts all (xy X Y) entries of a (pts ...) node
func GetPoints(s kicadsexp.Sexp) ([]Position, error) {
	var points []Position
	for _, xy := range FindAllNodes(s, "xy") {
		pos, err := GetPositionXY(xy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse point %d: %w", len(points), err)
		}
		points = append(points, pos)
	}
	return points, nil
}

// GetStroke extracts stroke properties from (stroke ...) node
// Format: (stroke (width W) (type solid|dash|dot|default))
func GetStroke(s kicadsexp.Sexp) Stroke {
	stroke := Stroke{Type: "solid"}

	if widthNode, ok := FindNode(s, "width"); ok {
		if width, err := GetFloat(widthNode, 1); err == nil {
			stroke.Width = width
		}
	}

	if typeNode, ok := FindNode(s, "type"); ok {
		if strokeType, err := GetString(typeNode, 1); err == nil {
			stroke.Type = strokeType
		}
	}

	return stroke
}

// GetFill extracts fill properties from (fill ...) node
// Format: (fill none) in footprints or (fill (type none|outline|background)) in symbols
func GetFill(s kicadsexp.Sexp) Fill {
	fill := Fill{Type: "none"}

	if typeNode, ok := FindNode(s, "type"); ok {
		if fillType, err := GetString(typeNode, 1); err == nil {
			fill.Type = fillType
		}
		return fill
	}

	if fillType, err := GetString(s, 1); err == nil {
		fill.Type = fillType
	}

	return fill
}

// GetEffects extracts text effects from an (effects ...) node
func GetEffects(s kicadsexp.Sexp) Effects {
	effects := Effects{
		Justify: Justify{Horizontal: "center", Vertical: "center"},
	}

	if fontNode, ok := FindNode(s, "font"); ok {
		effects.Font = GetFont(fontNode)
	}

	if justifyNode, ok := FindNode(s, "justify"); ok {
		effects.Justify = GetJustify(justifyNode)
	}

	effects.Hide = HasSymbol(s, "hide")

	return effects
}

// GetFont extracts font properties from a (font ...) node
func GetFont(s kicadsexp.Sexp) Font {
	font := Font{}

	if sizeNode, ok := FindNode(s, "size"); ok {
		w, _ := GetFloat(sizeNode, 1)
		h, _ := GetFloat(sizeNode, 2)
		font.Size = Size{Width: w, Height: h}
	}

	if thicknessNode, ok := FindNode(s, "thickness"); ok {
		font.Thickness, _ = GetFloat(thicknessNode, 1)
	}

	font.Bold = HasSymbol(s, "bold")
	font.Italic = HasSymbol(s, "italic")

	return font
}

// GetJustify extracts justification from a (justify ...) node
func GetJustify(s kicadsexp.Sexp) Justify {
	justify := Justify{
		Horizontal: "center",
		Vertical:   "center",
	}

	for _, item := range GetListItems(s) {
		sym, ok := item.(kicadsexp.Symbol)
		if !ok {
			continue
		}
		switch string(sym) {
		case "left", "right":
			justify.Horizontal = string(sym)
		case "top", "bottom":
			justify.Vertical = string(sym)
		case "mirror":
			justify.Mirror = true
		}
	}

	return justify
}

// GetProperty extracts a property from a (property ...) node
// Format: (property "key" "value" (id N) (at X Y angle) (effects ...))
func GetProperty(s kicadsexp.Sexp) (Property, error) {
	prop := Property{}

	key, err := GetString(s, 1)
	if err != nil {
		return prop, fmt.Errorf("failed to parse property key: %w", err)
	}
	prop.Key = key

	// Value can be empty
	prop.Value, _ = GetString(s, 2)

	if idNode, ok := FindNode(s, "id"); ok {
		prop.ID, _ = GetInt(idNode, 1)
	}

	if atNode, ok := FindNode(s, "at"); ok {
		if pos, err := GetPosition(atNode); err == nil {
			prop.Position = pos
		}
	}

	if effectsNode, ok := FindNode(s, "effects"); ok {
		prop.Effects = GetEffects(effectsNode)
	}

	return prop, nil
}

// GetText extracts a text element such as (fp_text kind "text" (at ...) (layer ...) (effects ...))
// or (text "text" (at ...) (effects ...)). hasKind selects the fp_text form.
func GetText(s kicadsexp.Sexp, hasKind bool) (GrText, error) {
	text := GrText{}
	index := 1

	if hasKind {
		kind, err := GetString(s, 1)
		if err != nil {
			return text, fmt.Errorf("failed to parse text kind: %w", err)
		}
		text.Kind = kind
		index = 2
	}

	value, err := GetString(s, index)
	if err != nil {
		return text, fmt.Errorf("failed to parse text: %w", err)
	}
	text.Text = value

	atNode, ok := FindNode(s, "at")
	if !ok {
		return text, fmt.Errorf("missing required 'at' position")
	}
	if text.Position, err = GetPosition(atNode); err != nil {
		return text, fmt.Errorf("failed to parse text position: %w", err)
	}

	if layerNode, ok := FindNode(s, "layer"); ok {
		text.Layer, _ = GetString(layerNode, 1)
	}

	if effectsNode, ok := FindNode(s, "effects"); ok {
		text.Effects = GetEffects(effectsNode)
	}

	return text, nil
}
