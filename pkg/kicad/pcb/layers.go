package pcb

// DefaultLayer is used for EasyEDA layer ids without a KiCad counterpart
const DefaultLayer = "F.Fab"

// layerNames maps EasyEDA layer ids to KiCad layer names
var layerNames = map[string]string{
	"1":   "F.Cu",
	"2":   "B.Cu",
	"3":   "F.SilkS",
	"4":   "B.SilkS",
	"5":   "F.Paste",
	"6":   "B.Paste",
	"7":   "F.Mask",
	"8":   "B.Mask",
	"10":  "Edge.Cuts",
	"11":  "Edge.Cuts",
	"12":  "Cmts.User",
	"13":  "F.Fab",
	"14":  "B.Fab",
	"15":  "Dwgs.User",
	"101": "F.Fab",
}

// LayerName returns the KiCad layer for an EasyEDA layer id
func LayerName(id string) string {
	if name, ok := layerNames[id]; ok {
		return name
	}
	return DefaultLayer
}

// Pad layer sets
var (
	SMDPadLayers         = LayerSet{"F.Cu", "F.Paste", "F.Mask"}
	ThroughHolePadLayers = LayerSet{"*.Cu", "*.Mask"}
)

// LayerSet represents a set of layers
type LayerSet []string

// Contains reports whether the set holds the named layer
func (ls LayerSet) Contains(name string) bool {
	for _, l := range ls {
		if l == name {
			return true
		}
	}
	return false
}

// HasCopper reports whether any layer of the set is a copper layer
func (ls LayerSet) HasCopper() bool {
	for _, l := range ls {
		if IsCopperLayer(l) {
			return true
		}
	}
	return false
}

// IsCopperLayer checks if a layer name is a copper layer
func IsCopperLayer(name string) bool {
	switch name {
	case "F.Cu", "B.Cu", "*.Cu":
		return true
	}
	return false
}
