package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/pcb"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/schematic"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.kicad_mod|file.kicad_sym>",
	Short: "Show a summary of a KiCad footprint or symbol library",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".kicad_mod":
		fp, err := pcb.ParseFile(filename)
		if err != nil {
			return fmt.Errorf("error parsing footprint: %w", err)
		}
		showFootprintSummary(fp, filename)
	case ".kicad_sym":
		lib, err := schematic.ParseLibraryFile(filename)
		if err != nil {
			return fmt.Errorf("error parsing symbol library: %w", err)
		}
		showLibrarySummary(lib, filename)
	default:
		return fmt.Errorf("unsupported file type %q: want .kicad_mod or .kicad_sym", filepath.Ext(filename))
	}

	return nil
}

func showFootprintSummary(fp *pcb.Footprint, filename string) {
	fmt.Printf("Footprint: %s\n", filename)
	fmt.Printf("Name: %s\n", fp.Name)
	fmt.Printf("Version: %d\n", fp.Version)
	fmt.Printf("Generator: %s\n", fp.Generator)
	if len(fp.Attributes) > 0 {
		fmt.Printf("Attributes: %s\n", strings.Join(fp.Attributes, " "))
	}
	fmt.Println()

	copper, paste := 0, 0
	for _, pad := range fp.Pads {
		if pad.Layers.HasCopper() {
			copper++
		}
		if pad.Layers.Contains("F.Paste") || pad.Layers.Contains("B.Paste") {
			paste++
		}
	}

	fmt.Println("Statistics:")
	fmt.Printf("  Pads: %d (%d copper, %d with paste)\n", len(fp.Pads), copper, paste)
	fmt.Printf("  Lines: %d\n", len(fp.Lines))
	fmt.Printf("  Circles: %d\n", len(fp.Circles))
	fmt.Printf("  Arcs: %d\n", len(fp.Arcs))
	fmt.Printf("  Texts: %d\n", len(fp.Texts))

	bbox := fp.GetBoundingBox()
	if !bbox.IsEmpty() {
		fmt.Printf("  Size: %.2f x %.2f mm\n", bbox.Width(), bbox.Height())
	}
	fmt.Println()

	if len(fp.Pads) > 0 {
		fmt.Println("Pads:")
		for _, pad := range fp.Pads {
			fmt.Printf("  %-4s %-9s %-6s (%.4f, %.4f) %.4f x %.4f",
				pad.Number, pad.Type, pad.Shape,
				pad.Position.X, pad.Position.Y, pad.Size.Width, pad.Size.Height)
			if pad.Drill > 0 {
				fmt.Printf(" drill %.4f", pad.Drill)
			}
			fmt.Println()
		}
	}
}

func showLibrarySummary(lib *schematic.Library, filename string) {
	fmt.Printf("Symbol library: %s\n", filename)
	fmt.Printf("Version: %d\n", lib.Version)
	fmt.Printf("Generator: %s\n", lib.Generator)
	fmt.Printf("Symbols: %d\n", len(lib.Symbols))

	for _, sym := range lib.Symbols {
		fmt.Println()
		fmt.Printf("Symbol: %s\n", sym.Name)
		fmt.Printf("  Units: %d\n", len(sym.Units))
		fmt.Printf("  Pins: %d\n", len(sym.Pins))
		fmt.Printf("  Graphics: %d\n", len(sym.Graphics))

		var keys []string
		values := make(map[string]string)
		for _, prop := range sym.Properties {
			keys = append(keys, prop.Key)
			values[prop.Key] = prop.Value
		}
		sort.Strings(keys)
		for _, key := range keys {
			if values[key] != "" {
				fmt.Printf("  %s: %s\n", key, values[key])
			}
		}
	}
}
