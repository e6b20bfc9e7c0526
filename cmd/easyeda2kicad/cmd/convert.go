package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/easyeda2kicad/internal/config"
	"github.com/OpenTraceLab/easyeda2kicad/internal/convert"
)

var sourceDir string

var convertCmd = &cobra.Command{
	Use:   "convert <file|id>...",
	Short: "Convert EasyEDA documents to KiCad files",
	Long: `Convert EasyEDA shape documents or component API responses to KiCad files.

Each argument is either a JSON file or a component id looked up as
<source>/<id>.json. Outputs are named {package}_{title}_{lcsc} for components
and after the package or symbol name for bare documents. 3D models are copied
from <source>/<uuid>.step and <source>/<uuid>.obj when present.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP(config.KeyOutput, "o", ".", "output directory")
	convertCmd.Flags().Bool(config.KeyModels, true, "copy 3D models")
	convertCmd.Flags().Bool(config.KeyPreview, false, "write SVG previews")
	convertCmd.Flags().Bool(config.KeyOverwrite, false, "replace existing files")
	convertCmd.Flags().Bool(config.KeyCheck, false, "re-parse emitted files with an independent s-expression reader")
	convertCmd.Flags().StringVar(&sourceDir, "source", ".", "directory holding <id>.json components and 3D models")
	addKindFlag(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := convert.DirSource{Dir: sourceDir}
	conv := convert.New(convert.Options{
		Output:    cfg.Output,
		Kind:      cfg.Kind,
		Models:    cfg.Models,
		Preview:   cfg.Preview,
		Overwrite: cfg.Overwrite,
		Check:     cfg.Check,
		Blobs:     src,
	})

	for _, arg := range args {
		var (
			res *convert.Result
			err error
		)
		if _, statErr := os.Stat(arg); statErr == nil {
			res, err = conv.ConvertFile(arg)
		} else {
			res, err = conv.ConvertID(src, arg)
		}
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", arg, err)
		}

		fmt.Printf("Converted %s:\n", res.Name)
		for _, file := range res.Files() {
			fmt.Printf("  %s\n", file)
		}
		reportDiagnostics(res.Diagnostics)
	}

	return nil
}
