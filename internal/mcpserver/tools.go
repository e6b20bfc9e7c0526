package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda/symbol"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/schematic"
)

// MetadataConvertFootprint describes the convert_footprint tool.
var MetadataConvertFootprint = &mcp.Tool{
	Name: "convert_footprint",
	Description: "Convert an EasyEDA footprint shape document (the JSON object with \"head\" and \"shape\") " +
		"to KiCad .kicad_mod text. Malformed records are skipped and reported as diagnostics.",
}

// MetadataConvertSymbol describes the convert_symbol tool.
var MetadataConvertSymbol = &mcp.Tool{
	Name: "convert_symbol",
	Description: "Convert an EasyEDA schematic symbol shape document to a KiCad .kicad_sym library " +
		"holding one symbol. Malformed records are skipped and reported as diagnostics.",
}

// InputConvertFootprint is the input for the ConvertFootprint tool.
type InputConvertFootprint struct {
	Document string `json:"document" jsonschema:"EasyEDA footprint document as JSON text"`
}

// OutputConvertFootprint is the output for the ConvertFootprint tool.
type OutputConvertFootprint struct {
	Name        string   `json:"name"`
	Pads        int      `json:"pads"`
	KicadMod    string   `json:"kicad_mod"`
	Diagnostics []string `json:"diagnostics"`
}

// InputConvertSymbol is the input for the ConvertSymbol tool.
type InputConvertSymbol struct {
	Document  string `json:"document" jsonschema:"EasyEDA symbol document as JSON text"`
	Footprint string `json:"footprint,omitempty" jsonschema:"optional library:name written into the Footprint property"`
	LCSC      string `json:"lcsc,omitempty" jsonschema:"optional LCSC part number"`
}

// OutputConvertSymbol is the output for the ConvertSymbol tool.
type OutputConvertSymbol struct {
	Name        string   `json:"name"`
	Pins        int      `json:"pins"`
	KicadSym    string   `json:"kicad_sym"`
	Diagnostics []string `json:"diagnostics"`
}

// ConvertFootprint converts a footprint document to .kicad_mod text.
func ConvertFootprint(ctx context.Context, _ *mcp.CallToolRequest, input InputConvertFootprint) (*mcp.CallToolResult, OutputConvertFootprint, error) {
	if input.Document == "" {
		return nil, OutputConvertFootprint{}, fmt.Errorf("document is required")
	}

	fp, diags := footprint.Parse(input.Document)
	return nil, OutputConvertFootprint{
		Name:        fp.Name,
		Pads:        len(fp.Finite().Pads),
		KicadMod:    pcb.EmitFootprint(fp),
		Diagnostics: messages(diags),
	}, nil
}

// ConvertSymbol converts a symbol document to .kicad_sym text.
func ConvertSymbol(ctx context.Context, _ *mcp.CallToolRequest, input InputConvertSymbol) (*mcp.CallToolResult, OutputConvertSymbol, error) {
	if input.Document == "" {
		return nil, OutputConvertSymbol{}, fmt.Errorf("document is required")
	}

	sym, diags := symbol.Parse(input.Document)
	fields := schematic.Fields{Footprint: input.Footprint, LCSC: input.LCSC}
	return nil, OutputConvertSymbol{
		Name:        sym.Name,
		Pins:        len(sym.Finite().Pins),
		KicadSym:    schematic.EmitSymbolFields(sym, fields),
		Diagnostics: messages(diags),
	}, nil
}

// messages flattens diagnostics; the result is never nil so it encodes as []
func messages(diags easyeda.Diagnostics) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}
