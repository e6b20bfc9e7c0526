package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/sexp/kicadsexp"
)

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) [(drill d)] (layers ...))
func parsePad(node kicadsexp.Sexp) (*Pad, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected pad list, got leaf")
	}

	pad := &Pad{}

	number, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	pad.Number = number

	// thru_hole, smd, connect, np_thru_hole
	padType, err := sexp.GetString(node, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	pad.Type = padType

	// circle, rect, oval, roundrect, trapezoid, custom
	shape, err := sexp.GetString(node, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}
	pad.Shape = shape

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	if pad.Position, err = sexp.GetPosition(atNode); err != nil {
		return nil, fmt.Errorf("failed to parse pad position: %w", err)
	}

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	width, err := sexp.GetFloat(sizeNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad width: %w", err)
	}
	height, err := sexp.GetFloat(sizeNode, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad height: %w", err)
	}
	pad.Size = Size{Width: width, Height: height}

	// Drill can be just a number or (drill oval w h)
	if drillNode, found := sexp.FindNode(node, "drill"); found {
		if drill, err := sexp.GetFloat(drillNode, 1); err == nil {
			pad.Drill = drill
		} else if drill, err := sexp.GetFloat(drillNode, 2); err == nil {
			pad.Drill = drill
		}
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	for _, item := range sexp.GetListItems(layersNode) {
		if item.IsLeaf() && item.String() != "" {
			pad.Layers = append(pad.Layers, item.String())
		}
	}

	return pad, nil
}

// parseFootprint extracts the footprint body
// Expected format: (footprint "name" (layer "F.Cu") (attr smd) (fp_text ...) (pad ...) ...)
func parseFootprint(node kicadsexp.Sexp) (*Footprint, error) {
	if node.IsLeaf() {
		return nil, fmt.Errorf("expected footprint list, got leaf")
	}

	fp := &Footprint{}

	name, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	fp.Name = name

	if layerNode, found := sexp.FindNode(node, "layer"); found {
		fp.Layer, _ = sexp.GetString(layerNode, 1)
	}

	if attrNode, found := sexp.FindNode(node, "attr"); found {
		for _, item := range sexp.GetListItems(attrNode) {
			if item.IsLeaf() {
				fp.Attributes = append(fp.Attributes, item.String())
			}
		}
	}

	// KiCad 8 moved reference and value into (property ...) nodes
	for _, propNode := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(propNode)
		if err != nil {
			continue
		}
		switch prop.Key {
		case "Reference":
			fp.Reference = prop.Value
		case "Value":
			fp.Value = prop.Value
		}
	}

	for _, textNode := range sexp.FindAllNodes(node, "fp_text") {
		text, err := sexp.GetText(textNode, true)
		if err != nil {
			continue
		}
		switch text.Kind {
		case "reference":
			fp.Reference = text.Text
		case "value":
			fp.Value = text.Text
		default:
			fp.Texts = append(fp.Texts, text)
		}
	}

	for _, padNode := range sexp.FindAllNodes(node, "pad") {
		pad, err := parsePad(padNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pad %d: %w", len(fp.Pads), err)
		}
		fp.Pads = append(fp.Pads, *pad)
	}

	for _, lineNode := range sexp.FindAllNodes(node, "fp_line") {
		line, err := parseLine(lineNode)
		if err != nil {
			// Skip lines that fail to parse
			continue
		}
		fp.Lines = append(fp.Lines, *line)
	}

	for _, circleNode := range sexp.FindAllNodes(node, "fp_circle") {
		circle, err := parseCircle(circleNode)
		if err != nil {
			continue
		}
		fp.Circles = append(fp.Circles, *circle)
	}

	for _, arcNode := range sexp.FindAllNodes(node, "fp_arc") {
		arc, err := parseArc(arcNode)
		if err != nil {
			continue
		}
		fp.Arcs = append(fp.Arcs, *arc)
	}

	return fp, nil
}

// parseLine extracts (fp_line (start x y) (end x y) (stroke ...) (layer "L"))
func parseLine(node kicadsexp.Sexp) (*GrLine, error) {
	start, end, err := parseEndpoints(node, "start", "end")
	if err != nil {
		return nil, err
	}

	return &GrLine{
		Start:  start,
		End:    end,
		Stroke: parseStroke(node),
		Layer:  parseLayer(node),
	}, nil
}

// parseCircle extracts (fp_circle (center x y) (end x y) (stroke ...) (fill ...) (layer "L"))
func parseCircle(node kicadsexp.Sexp) (*GrCircle, error) {
	center, end, err := parseEndpoints(node, "center", "end")
	if err != nil {
		return nil, err
	}

	circle := &GrCircle{
		Center: center,
		End:    end,
		Stroke: parseStroke(node),
		Layer:  parseLayer(node),
	}
	if fillNode, found := sexp.FindNode(node, "fill"); found {
		circle.Fill = sexp.GetFill(fillNode)
	}

	return circle, nil
}

// parseArc extracts (fp_arc (start x y) (mid x y) (end x y) (stroke ...) (layer "L"))
func parseArc(node kicadsexp.Sexp) (*GrArc, error) {
	start, end, err := parseEndpoints(node, "start", "end")
	if err != nil {
		return nil, err
	}

	midNode, found := sexp.FindNode(node, "mid")
	if !found {
		return nil, fmt.Errorf("missing required 'mid' point")
	}
	mid, err := sexp.GetPositionXY(midNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mid point: %w", err)
	}

	return &GrArc{
		Start:  start,
		Mid:    mid,
		End:    end,
		Stroke: parseStroke(node),
		Layer:  parseLayer(node),
	}, nil
}

func parseEndpoints(node kicadsexp.Sexp, first, second string) (Position, Position, error) {
	var points [2]Position
	for i, key := range []string{first, second} {
		n, found := sexp.FindNode(node, key)
		if !found {
			return Position{}, Position{}, fmt.Errorf("missing required '%s' point", key)
		}
		p, err := sexp.GetPositionXY(n)
		if err != nil {
			return Position{}, Position{}, fmt.Errorf("failed to parse %s point: %w", key, err)
		}
		points[i] = p
	}
	return points[0], points[1], nil
}

func parseStroke(node kicadsexp.Sexp) Stroke {
	if strokeNode, found := sexp.FindNode(node, "stroke"); found {
		return sexp.GetStroke(strokeNode)
	}
	// KiCad 6 files carry a bare (width W)
	stroke := Stroke{Type: "solid"}
	if widthNode, found := sexp.FindNode(node, "width"); found {
		stroke.Width, _ = sexp.GetFloat(widthNode, 1)
	}
	return stroke
}

func parseLayer(node kicadsexp.Sexp) string {
	if layerNode, found := sexp.FindNode(node, "layer"); found {
		layer, _ := sexp.GetString(layerNode, 1)
		return layer
	}
	return ""
}
