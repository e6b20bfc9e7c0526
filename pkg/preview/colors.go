package preview

// KiCad Classic theme colors keyed by KiCad layer name
var classicColors = map[string]string{
	"F.Cu":      "#c83434",
	"B.Cu":      "#4d7fc4",
	"F.SilkS":   "#f2eda1",
	"B.SilkS":   "#e8b2a7",
	"F.Mask":    "#d864ff",
	"B.Mask":    "#02ffee",
	"F.Paste":   "#b4a09a",
	"B.Paste":   "#00c2c2",
	"F.Fab":     "#afafaf",
	"B.Fab":     "#585d84",
	"Dwgs.User": "#c2c2c2",
	"Cmts.User": "#5994dc",
	"Edge.Cuts": "#d0d2cd",
}

// Special colors
const (
	ColorPad        = "#e3b72e" // Pads (gold)
	ColorBackground = "#001023" // Footprint canvas (dark blue); also used for drill holes
	ColorUnknown    = "#808080" // Layers without a palette entry
	ColorSymbol     = "#7f1d1d" // Symbol outlines, pins and texts
	ColorPaper      = "#ffffff" // Symbol canvas
)

// LayerColor returns the color for a KiCad layer name
func LayerColor(layer string) string {
	if c, ok := classicColors[layer]; ok {
		return c
	}
	return ColorUnknown
}
