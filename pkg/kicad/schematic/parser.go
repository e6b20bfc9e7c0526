package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version for symbol libraries (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseLibraryFile reads and parses a .kicad_sym file
func ParseLibraryFile(filename string) (*Library, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseLibrary(file)
}

// ParseLibrary reads and parses a symbol library from an io.Reader
func ParseLibrary(r io.Reader) (*Library, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root should be a (kicad_symbol_lib ...) expression
	root := sexps[0]

	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}

	if rootName != "kicad_symbol_lib" {
		return nil, fmt.Errorf("not a KiCad symbol library: expected 'kicad_symbol_lib', got '%s'", rootName)
	}

	lib := &Library{}

	if err := parseHeader(root, lib); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	for _, symNode := range sexp.FindAllNodes(root, "symbol") {
		lib.Symbols = append(lib.Symbols, parseLibSymbol(symNode))
	}

	return lib, nil
}

// parseHeader extracts version and generator information
// Expected format: (kicad_symbol_lib (version 20211014) (generator kicad_symbol_editor) ...)
func parseHeader(root kicadsexp.Sexp, lib *Library) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}

	version, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if version < MinSupportedVersion {
		return fmt.Errorf("unsupported symbol library version: %d (minimum required: %d / KiCad 6.0)", version, MinSupportedVersion)
	}
	lib.Version = version

	lib.Generator = "unknown"
	if genNode, found := sexp.FindNode(root, "generator"); found {
		if gen, err := sexp.GetString(genNode, 1); err == nil {
			lib.Generator = gen
		}
	}

	return nil
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node kicadsexp.Sexp) LibSymbol {
	sym := LibSymbol{
		InBom:      true,
		OnBoard:    true,
		PinNumbers: true,
		PinNames:   true,
	}

	sym.Name, _ = sexp.GetString(node, 1)

	for _, pn := range sexp.FindAllNodes(node, "property") {
		if prop, err := sexp.GetProperty(pn); err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	if pnNode, found := sexp.FindNode(node, "pin_numbers"); found {
		sym.PinNumbers = !sexp.HasSymbol(pnNode, "hide")
	}

	if pnNode, found := sexp.FindNode(node, "pin_names"); found {
		sym.PinNames = !sexp.HasSymbol(pnNode, "hide")
	}

	if ibNode, found := sexp.FindNode(node, "in_bom"); found {
		val, _ := sexp.GetString(ibNode, 1)
		sym.InBom = val == "yes"
	}

	if obNode, found := sexp.FindNode(node, "on_board"); found {
		val, _ := sexp.GetString(obNode, 1)
		sym.OnBoard = val == "yes"
	}

	// Nested units hold the graphics and pins
	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		unit := parseSymbolUnit(unitNode)
		sym.Units = append(sym.Units, unit)

		sym.Graphics = append(sym.Graphics, unit.Graphics...)
		sym.Pins = append(sym.Pins, unit.Pins...)
	}

	return sym
}

// parseSymbolUnit parses a nested symbol unit (contains graphics and pins)
func parseSymbolUnit(node kicadsexp.Sexp) SymbolUnit {
	unit := SymbolUnit{}

	unit.Name, _ = sexp.GetString(node, 1)

	// Graphics keep file order so texts stay paired with their pins
	for _, item := range sexp.GetListItems(node) {
		name, err := sexp.GetNodeName(item)
		if err != nil || item.IsLeaf() {
			continue
		}

		switch name {
		case "rectangle":
			unit.Graphics = append(unit.Graphics, parseRectangle(item))
		case "circle":
			unit.Graphics = append(unit.Graphics, parseCircle(item))
		case "arc":
			unit.Graphics = append(unit.Graphics, parseArc(item))
		case "polyline":
			unit.Graphics = append(unit.Graphics, parseGraphicPolyline(item))
		case "text":
			if text, err := parseText(item); err == nil {
				unit.Graphics = append(unit.Graphics, text)
			}
		case "pin":
			unit.Pins = append(unit.Pins, parsePin(item))
		}
	}

	return unit
}

// parsePin parses a pin definition
// Expected format: (pin passive line (at x y angle) (length L) (name "N" ...) (number "1" ...))
func parsePin(node kicadsexp.Sexp) Pin {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := sexp.GetPosition(atNode)
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}

	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}

	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name.Name, _ = sexp.GetString(nameNode, 1)
		if effectsNode, found := sexp.FindNode(nameNode, "effects"); found {
			pin.Name.Effects = sexp.GetEffects(effectsNode)
		}
	}

	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number.Number, _ = sexp.GetString(numNode, 1)
		if effectsNode, found := sexp.FindNode(numNode, "effects"); found {
			pin.Number.Effects = sexp.GetEffects(effectsNode)
		}
	}

	pin.Hide = sexp.HasSymbol(node, "hide")

	return pin
}

// parseRectangle parses a rectangle graphic element
func parseRectangle(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "rectangle"}

	if startNode, found := sexp.FindNode(node, "start"); found {
		graphic.Start, _ = sexp.GetPositionXY(startNode)
	}
	if endNode, found := sexp.FindNode(node, "end"); found {
		graphic.End, _ = sexp.GetPositionXY(endNode)
	}
	parseOutline(node, &graphic)

	return graphic
}

// parseCircle parses a circle graphic element
func parseCircle(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "circle"}

	if centerNode, found := sexp.FindNode(node, "center"); found {
		graphic.Center, _ = sexp.GetPositionXY(centerNode)
	}
	if radiusNode, found := sexp.FindNode(node, "radius"); found {
		graphic.Radius, _ = sexp.GetFloat(radiusNode, 1)
	}
	parseOutline(node, &graphic)

	return graphic
}

// parseArc parses an arc graphic element
func parseArc(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "arc"}

	if startNode, found := sexp.FindNode(node, "start"); found {
		graphic.Start, _ = sexp.GetPositionXY(startNode)
	}
	if midNode, found := sexp.FindNode(node, "mid"); found {
		graphic.Mid, _ = sexp.GetPositionXY(midNode)
	}
	if endNode, found := sexp.FindNode(node, "end"); found {
		graphic.End, _ = sexp.GetPositionXY(endNode)
	}
	parseOutline(node, &graphic)

	return graphic
}

// parseGraphicPolyline parses a polyline graphic element
func parseGraphicPolyline(node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: "polyline"}

	if ptsNode, found := sexp.FindNode(node, "pts"); found {
		graphic.Points, _ = sexp.GetPoints(ptsNode)
	}
	parseOutline(node, &graphic)

	return graphic
}

// parseText parses (text "content" (at x y angle) (effects ...))
func parseText(node kicadsexp.Sexp) (SymGraphic, error) {
	text, err := sexp.GetText(node, false)
	if err != nil {
		return SymGraphic{}, err
	}

	return SymGraphic{
		Type:     "text",
		Text:     text.Text,
		Position: text.Position,
		Effects:  text.Effects,
	}, nil
}

func parseOutline(node kicadsexp.Sexp, graphic *SymGraphic) {
	if strokeNode, found := sexp.FindNode(node, "stroke"); found {
		graphic.Stroke = sexp.GetStroke(strokeNode)
	}
	if fillNode, found := sexp.FindNode(node, "fill"); found {
		graphic.Fill = sexp.GetFill(fillNode)
	}
}
